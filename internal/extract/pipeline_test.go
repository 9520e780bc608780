package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tools/internal/docmodel"
)

// These tests exercise Run's vendor-dispatch ladder. None of them claim to
// reproduce every real spec scenario verbatim — two (below) do, and are
// named for the literal scenario they match; the rest cover the same
// *kind* of routing decision with small fixtures and are named for the
// behavior under test, not a scenario number.

// TestRunEmptyDocumentYieldsNoRows is the literal scenario of a corrupted
// StructuredDocument with neither Text nor Entities: Run must never abort
// the document, only return an empty row list.
func TestRunEmptyDocumentYieldsNoRows(t *testing.T) {
	result, err := Run(docmodel.StructuredDocument{})
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
}

// TestExtractCreativeCoopScaleStandIn is a documented substitution for the
// real scale scenario (Creative Co-op CS003837319, 15 pages / ~130 codes,
// expecting >=117 rows and >=30 distinct unit_price values): the real
// 15-page invoice isn't available to this test suite, so this builds a
// synthetic 130-code tabular document shaped like the real one (same
// pipe-delimited row grammar as TestExtractCreativeCoopExcelSerialDateAndSampleCodes
// below) and checks the same scale properties spec section 8 names for
// S1, following the precedent of harpercollins_test.go's illustrative
// catalog substitution for S3.
func TestExtractCreativeCoopScaleStandIn(t *testing.T) {
	const codeCount = 130
	const distinctPrices = 30

	var b strings.Builder
	b.WriteString("Creative-Coop Wholesale Invoice\n")
	for i := 0; i < codeCount; i++ {
		code := fmt.Sprintf("XS1%03d", i)
		price := 1.00 + 0.10*float64(i%distinctPrices)
		fmt.Fprintf(&b, "%s|121212121212| Widget Variant %03d |10|8|6|2|$2.00|$5.00|$%.2f|$21.00\n", code, i, price)
	}

	doc := docmodel.StructuredDocument{
		Text: b.String(),
		Entities: []docmodel.Entity{
			{Type: "invoice_id", MentionText: "CS003837319"},
		},
	}

	result, err := Run(doc)
	require.NoError(t, err)
	assert.Equal(t, docmodel.VendorCreativeCoop, result.Trace.Vendor)
	assert.GreaterOrEqual(t, len(result.Rows), 117, "expected at least 117 of the 130 codes to survive extraction")

	prices := make(map[string]bool)
	for _, row := range result.Rows {
		assert.Equal(t, "CS003837319", row.InvoiceNumber)
		assert.Equal(t, string(docmodel.VendorCreativeCoop), row.Vendor)
		assert.NotContains(t, row.ItemDescription, "Traditional D-code format")
		prices[row.UnitPrice] = true
	}
	assert.GreaterOrEqual(t, len(prices), distinctPrices, "expected at least 30 distinct unit_price values")
}

// TestExtractCreativeCoopExcelSerialDateAndSampleCodes is the literal S2
// scenario: an Excel-serial invoice date and four named codes with their
// exact expected qty/price pairs, including the XS9826A "$1.60"/24
// pairing that is also the literal input to the placeholder-suppression
// rule in extractor.go's isPlaceholderPair.
func TestExtractCreativeCoopExcelSerialDateAndSampleCodes(t *testing.T) {
	text := strings.Join([]string{
		"Creative-Coop Wholesale Invoice",
		"XS9826A|121212121212| Ceramic Bird Figurine |24|24|24|0|$2.00|$5.00|$1.60|$21.00",
		"XS9482|121212121212| Woven Basket Set |12|12|12|0|$4.00|$9.00|$2.80|$18.00",
		"XS8185|121212121212| Brass Wall Sconce |16|16|16|0|$6.00|$15.00|$12.00|$20.00",
		"XS3844|121212121212| Linen Table Runner |4|4|4|0|$8.00|$22.00|$18.80|$30.00",
	}, "\n")

	doc := docmodel.StructuredDocument{
		Text: text,
		Entities: []docmodel.Entity{
			{Type: "invoice_date", MentionText: "45674"},
		},
	}

	result, err := Run(doc)
	require.NoError(t, err)
	assert.Equal(t, docmodel.VendorCreativeCoop, result.Trace.Vendor)

	expected := map[string]struct {
		qty   string
		price string
	}{
		"XS9826A": {"24", "$1.60"},
		"XS9482":  {"12", "$2.80"},
		"XS8185":  {"16", "$12.00"},
		"XS3844":  {"4", "$18.80"},
	}

	found := make(map[string]bool, len(expected))
	for _, row := range result.Rows {
		assert.Equal(t, "1/17/2025", row.OrderDate)
		assert.Equal(t, string(docmodel.VendorCreativeCoop), row.Vendor)
		for code, want := range expected {
			if strings.Contains(row.ItemDescription, code) {
				assert.Equal(t, want.qty, row.Quantity, "code %s", code)
				assert.Equal(t, want.price, row.UnitPrice, "code %s", code)
				found[code] = true
			}
		}
	}
	for code := range expected {
		assert.True(t, found[code], "expected a row for code %s", code)
	}
}

// TestRunCreativeCoopEndToEnd checks routing and row assembly for a small
// two-code Creative-Coop document: invoice-level fields get prepended to
// every row and rows come back in deterministic (sorted) order. It is not
// a stand-in for any single spec scenario.
func TestRunCreativeCoopEndToEnd(t *testing.T) {
	text := strings.Join([]string{
		"Creative-Coop Wholesale Invoice",
		"XS9826A|123456789012|Ceramic Bird Figurine|10|8|6|2|$2.00|$5.00|$3.50|$21.00",
		"CF1234B|987654321098|Woven Basket Set|5|4|3|1|$4.00|$9.00|$6.00|$18.00",
	}, "\n")

	doc := docmodel.StructuredDocument{
		Text: text,
		Entities: []docmodel.Entity{
			{Type: "invoice_id", MentionText: "INV-55001"},
			{Type: "invoice_date", MentionText: "2024-03-15"},
		},
	}

	result, err := Run(doc)
	require.NoError(t, err)
	assert.Equal(t, docmodel.VendorCreativeCoop, result.Trace.Vendor)
	require.Len(t, result.Rows, 2)
	for _, row := range result.Rows {
		assert.Equal(t, "INV-55001", row.InvoiceNumber)
		assert.Equal(t, "3/15/2024", row.OrderDate)
		assert.Equal(t, string(docmodel.VendorCreativeCoop), row.Vendor)
	}
	assert.LessOrEqual(t, result.Rows[0].ItemDescription, result.Rows[1].ItemDescription, "expected rows sorted by description")
}

// TestRunHarperCollinsEndToEnd checks HarperCollins routing against the
// illustrative catalog (see harpercollins_test.go's documented
// substitution for the real S3 23-row scenario); this fixture uses only 2
// of the catalog's titles and isn't itself a scenario stand-in.
func TestRunHarperCollinsEndToEnd(t *testing.T) {
	text := "HarperCollins Purchase Order NS4435067\n" +
		"9780062315007 qty 2\n9780061120084 qty 1\ndiscount: 40%\n"
	doc := docmodel.StructuredDocument{Text: text}

	result, err := Run(doc)
	require.NoError(t, err)
	assert.Equal(t, docmodel.VendorHarperCollins, result.Trace.Vendor)
	require.Len(t, result.Rows, 2)
	for _, row := range result.Rows {
		assert.Equal(t, "NS4435067", row.InvoiceNumber)
	}
}

// TestRunOneHundred80EndToEnd checks the S4 vendor's entity-only walk:
// with no quantity property present, quantity defaults to 1.
func TestRunOneHundred80EndToEnd(t *testing.T) {
	doc := docmodel.StructuredDocument{
		Text: "OneHundred80 invoice",
		Entities: []docmodel.Entity{
			{
				Type:        "line_item",
				MentionText: "Bamboo Tray $14.50",
				Properties: []docmodel.Entity{
					{Type: "description", MentionText: "Bamboo Tray"},
					{Type: "unit_price", MentionText: "$14.50"},
				},
			},
		},
	}

	result, err := Run(doc)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "1", result.Rows[0].Quantity, "no quantity property, defaulted")
}

// TestRunGenericTextFallback checks that a document with no entities and
// no tables falls all the way down to the generic text-pattern tier.
func TestRunGenericTextFallback(t *testing.T) {
	text := "SKU1001 Blue Ceramic Mug 12 each $4.50\nSKU1002 Red Ceramic Mug 6 $5.25\n"
	doc := docmodel.StructuredDocument{Text: text}

	result, err := Run(doc)
	require.NoError(t, err)
	assert.Equal(t, docmodel.VendorGeneric, result.Trace.Vendor)
	assert.Len(t, result.Rows, 2)
}

// TestRunGenericEntitiesPreferredOverTable checks the generic vendor's
// tier-precedence ladder (spec section 4.6's S6 behavior): when a
// document carries both line_item entities and a table, the entity tier
// wins and the table is never consulted.
func TestRunGenericEntitiesPreferredOverTable(t *testing.T) {
	doc := docmodel.StructuredDocument{
		Text: "Some vendor invoice",
		Entities: []docmodel.Entity{
			{
				Type: "line_item",
				Properties: []docmodel.Entity{
					{Type: "product_code", MentionText: "G100"},
					{Type: "description", MentionText: "Glass Vase"},
					{Type: "unit_price", MentionText: "$22.00"},
					{Type: "quantity", MentionText: "3"},
				},
			},
		},
		Tables: []docmodel.Table{
			{
				HeaderRow: []string{"Description", "Qty", "Price"},
				BodyRows:  [][]string{{"Should Not Be Used", "99", "$1.00"}},
			},
		},
	}

	result, err := Run(doc)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.NotContains(t, result.Rows[0].ItemDescription, "Should Not Be Used", "expected entity tier to win over table tier")
}
