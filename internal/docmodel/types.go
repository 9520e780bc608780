// Package docmodel holds the data model and cross-cutting machinery shared
// by the vendor detector, the generic/HarperCollins/OneHundred80
// extractors, and the Creative-Coop extractor: the StructuredDocument
// input contract, the Row output contract, section-4.1 normalizers, the
// process-wide regex pattern cache, typed error kinds, and the per-call
// ExtractionTrace. Kept as a leaf package so extract and creativecoop can
// both depend on it without a cycle.
package docmodel

// EntityKind tags the sum type of entities a StructuredDocument carries.
// The source schema (a generic document-AI response) represents these as
// loosely-typed records distinguished by a string Type field; we keep the
// string around for forward compatibility with vendor-specific entity
// types but classify into a small closed set for the tiers that care.
type EntityKind string

const (
	EntityLineItem     EntityKind = "line_item"
	EntityInvoiceDate  EntityKind = "invoice_date"
	EntityInvoiceID    EntityKind = "invoice_id"
	EntitySupplierName EntityKind = "supplier_name"
	EntityOther        EntityKind = "other"
)

// PageRef anchors an entity to a 0-based page index.
type PageRef struct {
	Page int
}

// TextSegment anchors an entity to a byte range of StructuredDocument.Text.
type TextSegment struct {
	StartIndex int
	EndIndex   int
}

// Entity is one typed span the document-understanding service recognized,
// optionally with child properties (e.g. a line_item's product_code,
// unit_price, quantity) and position anchors.
type Entity struct {
	Type        string
	MentionText string
	Confidence  float32
	Properties  []Entity
	PageRefs    []PageRef
	TextSegment *TextSegment
}

// Kind classifies Type into the closed EntityKind set; unrecognized types
// fall back to EntityOther so callers can match on the tag rather than
// inspecting the raw string everywhere.
func (e Entity) Kind() EntityKind {
	switch e.Type {
	case "line_item":
		return EntityLineItem
	case "invoice_date":
		return EntityInvoiceDate
	case "invoice_id", "invoice_number":
		return EntityInvoiceID
	case "supplier_name", "vendor_name":
		return EntitySupplierName
	default:
		return EntityOther
	}
}

// Property returns the first child property whose Type suffix matches name
// (child types are commonly namespaced "line_item/product_code").
func (e Entity) Property(name string) (Entity, bool) {
	for _, p := range e.Properties {
		if p.Type == name || p.Type == "line_item/"+name {
			return p, true
		}
	}
	return Entity{}, false
}

// PropertyText is a convenience for Property(name).MentionText, empty if absent.
func (e Entity) PropertyText(name string) string {
	if p, ok := e.Property(name); ok {
		return p.MentionText
	}
	return ""
}

// Page returns the 1-based page number for this entity: page_anchor when
// present, else an estimate from the text anchor's byte offset, else 1.
func (e Entity) Page() int {
	if len(e.PageRefs) > 0 {
		return e.PageRefs[0].Page + 1
	}
	if e.TextSegment != nil {
		return e.TextSegment.StartIndex/2000 + 1
	}
	return 1
}

// Page is a page of the source document. Only the number is required.
type Page struct {
	Number int
}

// Table is an optional tabular region of the document.
type Table struct {
	HeaderRow []string
	BodyRows  [][]string
}

// StructuredDocument is the input contract consumed from the
// document-understanding collaborator.
type StructuredDocument struct {
	Text     string
	Entities []Entity
	Pages    []Page
	Tables   []Table
}

// Row is the 6-column output tuple in fixed order.
type Row struct {
	OrderDate      string
	Vendor         string
	InvoiceNumber  string
	ItemDescription string
	UnitPrice      string
	Quantity       string
}

// Columns renders the row as its fixed 6-element string slice, the shape
// the spreadsheet collaborator appends verbatim.
func (r Row) Columns() []string {
	return []string{r.OrderDate, r.Vendor, r.InvoiceNumber, r.ItemDescription, r.UnitPrice, r.Quantity}
}

// ProductMapping maps a Creative-Coop product code to its resolved UPC and
// description. Rebuilt fresh per document; never persisted.
type ProductMapping struct {
	UPC            string
	Description    string
	RawDescription string
	Page           int
}

// QuantityTuple is the four standard Creative-Coop quantity columns. Zero
// value means "absent", not "zero ordered" — callers use the individual
// >0 checks per spec, not a presence flag, since the business rule only
// ever asks "is this column positive".
type QuantityTuple struct {
	Ordered     int
	Allocated   int
	Shipped     int
	Backordered int
}

// Vendor is the closed set of canonical vendor names the detector can
// return.
type Vendor string

const (
	VendorCreativeCoop  Vendor = "Creative Co-op"
	VendorHarperCollins Vendor = "HarperCollins"
	VendorOneHundred80  Vendor = "OneHundred80"
	VendorRiflePaper    Vendor = "Rifle Paper"
	VendorGeneric       Vendor = "Generic"
)
