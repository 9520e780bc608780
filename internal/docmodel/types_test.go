package docmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityKindClassification(t *testing.T) {
	cases := map[string]EntityKind{
		"line_item":      EntityLineItem,
		"invoice_date":   EntityInvoiceDate,
		"invoice_id":     EntityInvoiceID,
		"invoice_number": EntityInvoiceID,
		"supplier_name":  EntitySupplierName,
		"vendor_name":    EntitySupplierName,
		"something_else": EntityOther,
	}
	for typ, want := range cases {
		e := Entity{Type: typ}
		assert.Equal(t, want, e.Kind(), "Entity{Type: %q}.Kind()", typ)
	}
}

func TestEntityPropertyNamespacedLookup(t *testing.T) {
	e := Entity{
		Type: "line_item",
		Properties: []Entity{
			{Type: "line_item/product_code", MentionText: "XS9826A"},
			{Type: "unit_price", MentionText: "$12.00"},
		},
	}
	assert.Equal(t, "XS9826A", e.PropertyText("product_code"))
	assert.Equal(t, "$12.00", e.PropertyText("unit_price"))
	assert.Empty(t, e.PropertyText("missing"))
}

func TestEntityPageFromPageAnchor(t *testing.T) {
	e := Entity{PageRefs: []PageRef{{Page: 2}}}
	assert.Equal(t, 3, e.Page(), "0-indexed ref + 1")
}

func TestEntityPageFromTextSegmentFallback(t *testing.T) {
	e := Entity{TextSegment: &TextSegment{StartIndex: 4500}}
	assert.Equal(t, 3, e.Page(), "4500/2000 + 1")
}

func TestEntityPageDefault(t *testing.T) {
	e := Entity{}
	assert.Equal(t, 1, e.Page())
}

func TestRowColumnsFixedOrder(t *testing.T) {
	r := Row{
		OrderDate:       "3/15/2024",
		Vendor:          "Creative Co-op",
		InvoiceNumber:   "INV-1",
		ItemDescription: "XS9826A - Widget",
		UnitPrice:       "$12.00",
		Quantity:        "24",
	}
	want := []string{"3/15/2024", "Creative Co-op", "INV-1", "XS9826A - Widget", "$12.00", "24"}
	assert.Equal(t, want, r.Columns())
}
