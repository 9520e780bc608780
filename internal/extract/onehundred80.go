package extract

import (
	"strings"

	"tools/internal/docmodel"
)

// ExtractOneHundred80 performs a specialized entity walk for OneHundred80
// invoices: these carry line_item entities like the generic ladder's entity
// tier, but consistently omit a quantity property and require reading
// quantity out of the mention text itself (spec section 4.2's "specialized
// entity walk", distinguished from the Generic Extractor only in the
// no-fallback-to-table-or-text sense — OneHundred80 documents reliably
// carry the entity tier, so no ladder is needed).
func ExtractOneHundred80(doc docmodel.StructuredDocument) []extractedItem {
	var items []extractedItem
	for _, e := range doc.Entities {
		if e.Kind() != docmodel.EntityLineItem {
			continue
		}
		desc := strings.TrimSpace(e.PropertyText("description"))
		if desc == "" {
			desc = strings.TrimSpace(e.MentionText)
		}
		if desc == "" {
			continue
		}

		price := normalizeFreeformPrice(e.PropertyText("unit_price"))
		if price == "" {
			price = normalizeFreeformPrice(e.MentionText)
		}
		if price == "" {
			continue
		}

		qty := docmodel.CleanQuantity(e.PropertyText("quantity"))
		if qty <= 0 {
			qty = docmodel.CleanQuantity(e.MentionText)
		}
		if qty <= 0 {
			qty = 1
		}

		items = append(items, extractedItem{Description: desc, UnitPrice: price, Quantity: qty})
	}
	return items
}
