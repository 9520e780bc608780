// Package creativecoop implements the Creative-Coop extractor: the
// subsystem spec section 4.5 calls "the hard part" and the repository is
// really about. It consumes a document's flattened text plus its entities
// and produces validated line items through product-code discovery,
// UPC/description mapping, multi-tier price and quantity resolution,
// page-aware entity continuation, and description cleaning.
package creativecoop

// Item is one resolved Creative-Coop line, ready for the caller to prepend
// invoice-level fields (order date, vendor, invoice number) onto.
type Item struct {
	Code        string
	Description string
	UnitPrice   string
	Quantity    string
}
