package extract

import (
	"sort"

	"tools/internal/creativecoop"
	"tools/internal/docmodel"
)

// Result is the full output of one Run: the assembled rows, the
// observability trace, and the derived quality score. Trace and
// QualityScore are first-class outputs per spec section 9, not log lines.
type Result struct {
	Rows    []docmodel.Row
	Trace   *docmodel.Trace
	Quality QualityScore
}

// Run executes the full pipeline: structured-doc -> vendor_detect ->
// dispatch(extractor) -> rows[] -> normalize -> emit (spec section 2). It
// never aborts on malformed input: a document missing both Text and
// Entities yields an empty row list, not an error.
func Run(doc docmodel.StructuredDocument) (Result, error) {
	trace := docmodel.NewTrace()

	if doc.Text == "" && len(doc.Entities) == 0 {
		return Result{Rows: []docmodel.Row{}, Trace: trace}, nil
	}

	vendor := DetectVendor(doc.Text)
	trace.Vendor = vendor

	var items []extractedItem
	var rows []docmodel.Row

	switch vendor {
	case docmodel.VendorCreativeCoop:
		ccRows := creativecoop.Extract(doc.Text, doc.Entities, trace)
		orderDate, _, invoiceNumber := invoiceLevelFields(doc, vendor)
		rows = make([]docmodel.Row, 0, len(ccRows))
		for _, r := range ccRows {
			rows = append(rows, docmodel.Row{
				OrderDate:       orderDate,
				Vendor:          string(docmodel.VendorCreativeCoop),
				InvoiceNumber:   invoiceNumber,
				ItemDescription: r.Description,
				UnitPrice:       r.UnitPrice,
				Quantity:        r.Quantity,
			})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].ItemDescription < rows[j].ItemDescription })

	case docmodel.VendorHarperCollins:
		invoiceNumber, hcItems := ExtractHarperCollins(doc)
		orderDate, _, parsedInvoiceNumber := invoiceLevelFields(doc, vendor)
		if invoiceNumber == "" {
			invoiceNumber = parsedInvoiceNumber
		}
		rows = AssembleRows(hcItems, orderDate, string(docmodel.VendorHarperCollins), invoiceNumber)

	case docmodel.VendorOneHundred80:
		items = ExtractOneHundred80(doc)
		orderDate, _, invoiceNumber := invoiceLevelFields(doc, vendor)
		rows = AssembleRows(items, orderDate, string(docmodel.VendorOneHundred80), invoiceNumber)

	default:
		items = ExtractGeneric(doc, trace)
		orderDate, resolvedVendor, invoiceNumber := invoiceLevelFields(doc, vendor)
		rows = AssembleRows(items, orderDate, resolvedVendor, invoiceNumber)
	}

	quality := ComputeQuality(rows, trace)
	return Result{Rows: rows, Trace: trace, Quality: quality}, nil
}
