package extract

import (
	"sort"
	"strconv"

	"tools/internal/docmodel"
)

// invoiceLevelFields pulls order_date, vendor, and invoice_number out of a
// document's top-level entities via the section-4.1 normalizers, for the
// Row Assembler to prepend onto every extractor row (spec section 4.6).
func invoiceLevelFields(doc docmodel.StructuredDocument, detected docmodel.Vendor) (orderDate, vendor, invoiceNumber string) {
	vendor = string(detected)
	for _, e := range doc.Entities {
		switch e.Kind() {
		case docmodel.EntityInvoiceDate:
			orderDate = docmodel.ParseDate(e.MentionText)
		case docmodel.EntityInvoiceID:
			invoiceNumber = e.MentionText
		case docmodel.EntitySupplierName:
			if detected == docmodel.VendorGeneric {
				vendor = docmodel.CanonicalizeVendor(e.MentionText)
			}
		}
	}
	return orderDate, vendor, invoiceNumber
}

// AssembleRows merges extractor items with invoice-level fields and applies
// the final invariant scan: drop empty descriptions, drop zero quantity,
// and force the vendor column to the canonical name (spec section 4.6).
func AssembleRows(items []extractedItem, orderDate, vendor, invoiceNumber string) []docmodel.Row {
	rows := make([]docmodel.Row, 0, len(items))
	for _, item := range items {
		if item.Description == "" {
			continue
		}
		if item.Quantity <= 0 {
			continue
		}
		rows = append(rows, docmodel.Row{
			OrderDate:       orderDate,
			Vendor:          vendor,
			InvoiceNumber:   invoiceNumber,
			ItemDescription: item.Description,
			UnitPrice:       item.UnitPrice,
			Quantity:        strconv.Itoa(item.Quantity),
		})
	}
	return rows
}

// sortedKeys returns m's keys in ascending order, for deterministic
// iteration over map-keyed observability data. Nothing in the package
// calls it.
func sortedKeys[K ~string](m map[K]int) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
