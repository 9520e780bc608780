package extract

import (
	"strconv"
	"strings"

	"tools/internal/docmodel"
)

// genericLinePattern matches "<code> <desc…> <qty> <unit?> $<price>" lines
// in free text, the text-tier fallback of spec section 4.3.
var genericLinePattern = docmodel.CompilePattern(`(?m)^\s*(\S+)\s+(.+?)\s+(\d+)\s*(?:each|ea|pc|pcs|set)?\s*\$(\d+\.\d{2})\s*$`)

var priceHeaderWords = []string{"price", "unit price", "amount"}

// ExtractGeneric runs the three-tier fallback ladder: entity, table, text.
// The first tier producing at least one row wins. The entity and table
// tiers parse quantities with docmodel.CleanQuantity; the text tier takes
// the quantity and price exactly as its pattern captured them.
func ExtractGeneric(doc docmodel.StructuredDocument, trace *docmodel.Trace) []extractedItem {
	if rows := extractGenericEntities(doc); len(rows) > 0 {
		return rows
	}
	if rows := extractGenericTable(doc); len(rows) > 0 {
		return rows
	}
	return extractGenericText(doc)
}

// extractedItem is the extractor-agnostic pre-assembly row: everything the
// Row Assembler needs except the invoice-level fields it prepends.
type extractedItem struct {
	Description string
	UnitPrice   string
	Quantity    int
}

func extractGenericEntities(doc docmodel.StructuredDocument) []extractedItem {
	var items []extractedItem
	for _, e := range doc.Entities {
		if e.Kind() != docmodel.EntityLineItem {
			continue
		}
		code := e.PropertyText("product_code")
		desc := e.PropertyText("description")
		priceText := e.PropertyText("unit_price")
		qtyText := e.PropertyText("quantity")

		qty := docmodel.CleanQuantity(qtyText)
		if qty <= 0 {
			continue
		}
		price := normalizeFreeformPrice(priceText)
		if price == "" {
			continue
		}
		description := strings.TrimSpace(desc)
		if code != "" {
			description = strings.TrimSpace(code + " " + description)
		}
		if description == "" {
			continue
		}
		items = append(items, extractedItem{Description: description, UnitPrice: price, Quantity: qty})
	}
	return items
}

func extractGenericTable(doc docmodel.StructuredDocument) []extractedItem {
	for _, table := range doc.Tables {
		priceCol := -1
		descCol := -1
		qtyCol := -1
		for i, header := range table.HeaderRow {
			h := strings.ToLower(strings.TrimSpace(header))
			for _, want := range priceHeaderWords {
				if h == want {
					priceCol = i
				}
			}
			if strings.Contains(h, "desc") {
				descCol = i
			}
			if strings.Contains(h, "qty") || strings.Contains(h, "quantity") {
				qtyCol = i
			}
		}
		if priceCol == -1 {
			continue
		}
		var items []extractedItem
		for _, row := range table.BodyRows {
			if priceCol >= len(row) {
				continue
			}
			price := normalizeFreeformPrice(row[priceCol])
			if price == "" {
				continue
			}
			qty := 1
			if qtyCol != -1 && qtyCol < len(row) {
				if n := docmodel.CleanQuantity(row[qtyCol]); n > 0 {
					qty = n
				}
			}
			description := ""
			if descCol != -1 && descCol < len(row) {
				description = strings.TrimSpace(row[descCol])
			} else {
				description = strings.TrimSpace(strings.Join(row, " "))
			}
			if description == "" {
				continue
			}
			items = append(items, extractedItem{Description: description, UnitPrice: price, Quantity: qty})
		}
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

func extractGenericText(doc docmodel.StructuredDocument) []extractedItem {
	var items []extractedItem
	matches := genericLinePattern.FindAllStringSubmatch(doc.Text, -1)
	for _, m := range matches {
		code := m[1]
		desc := strings.TrimSpace(m[2])
		qty, err := strconv.Atoi(m[3])
		if err != nil || qty <= 0 {
			continue
		}
		items = append(items, extractedItem{
			Description: strings.TrimSpace(code + " " + desc),
			UnitPrice:   "$" + m[4],
			Quantity:    qty,
		})
	}
	return items
}

var freeformPricePattern = docmodel.CompilePattern(`\$?(\d+\.\d{2})`)

func normalizeFreeformPrice(s string) string {
	m := freeformPricePattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return "$" + m[1]
}
