package creativecoop

import (
	"strconv"

	"tools/internal/docmodel"
)

// Extract runs the full Creative-Coop pipeline over flattened document
// text and parsed entities: code discovery, continuation merging, UPC and
// description mapping, price and quantity resolution, and description
// cleaning, applying the failure semantics of spec section 4.5.10:
//
//   - a missing UPC alone is not fatal (mapping already filters the
//     UPC-and-artefact-description combination);
//   - description cleaning that empties the string drops the code;
//   - exhausting every price tier drops the code;
//   - a zero resolved quantity drops the code;
//   - malformed entities are logged to the trace and skipped, never
//     aborting the whole document.
//
// Placeholder suppression: the "$1.60" / "24" pair is only allowed
// through when both the price and quantity trace to a tabular tier,
// since that pair is a legitimate tabular value and not an artefact of a
// failed lower-confidence tier (spec section 9).
func Extract(text string, entities []docmodel.Entity, trace *docmodel.Trace) []Item {
	if trace == nil {
		trace = docmodel.NewTrace()
	}

	codes := DiscoverCodes(text)
	entityContext := mergeContinuations(entities, trace)

	for code, ctxText := range entityContext {
		found := false
		for _, c := range codes {
			if c == code {
				found = true
				break
			}
		}
		if !found && codeFromText(ctxText) == code {
			codes = append(codes, code)
		}
	}

	mapping := buildMapping(text, codes, entityContext, trace)

	items := make([]Item, 0, len(codes))
	seen := make(map[string]bool, len(codes))

	for _, code := range codes {
		state := newCodeState(code)

		pm, ok := mapping[code]
		if !ok {
			// buildMapping already recorded the specific reason (missing
			// description vs. missing UPC with an artefact description).
			state.drop("missing_from_mapping")
			trace.RecordCodeState(code, state.stage.String(), state.reason)
			continue
		}
		state.advance(stageMapped)

		if seen[code] {
			state.drop("duplicate_code")
			trace.Drop(docmodel.DropDuplicateCode)
			trace.RecordCodeState(code, state.stage.String(), state.reason)
			continue
		}

		cleaned := pm.Description
		if cleaned == "" {
			state.drop("description_emptied")
			trace.Drop(docmodel.DropDescriptionEmptied)
			trace.RecordCodeState(code, state.stage.String(), state.reason)
			continue
		}

		price, priceTier, ok := resolvePrice(text, code, pm.UPC, trace)
		if !ok {
			state.drop("price_unresolved")
			trace.Drop(docmodel.DropPriceUnresolved)
			trace.RecordCodeState(code, state.stage.String(), state.reason)
			continue
		}
		state.advance(stagePriced)

		qty, qtyTier := resolveQuantity(text, code, trace)
		if qty <= 0 {
			state.drop("zero_quantity")
			trace.Drop(docmodel.DropZeroQuantity)
			trace.RecordCodeState(code, state.stage.String(), state.reason)
			continue
		}
		state.advance(stageQuantified)

		if isPlaceholderPair(price, qty) && !fromTabularTier(priceTier, qtyTier) {
			state.drop("placeholder_suppressed")
			trace.Drop(docmodel.DropPriceUnresolved)
			trace.RecordCodeState(code, state.stage.String(), state.reason)
			continue
		}

		description := assembleDescription(code, pm.UPC, cleaned)

		items = append(items, Item{
			Code:        code,
			Description: description,
			UnitPrice:   price,
			Quantity:    strconv.Itoa(qty),
		})
		seen[code] = true
		state.advance(stageEmitted)
		trace.RecordCodeState(code, state.stage.String(), "")
	}

	return items
}

// isPlaceholderPair reports whether price/qty match the known
// legacy-pipeline placeholder values ("$1.60", 24) that past low-confidence
// tiers have been observed to emit when no real value was found.
func isPlaceholderPair(price string, qty int) bool {
	return price == "$1.60" && qty == 24
}

func fromTabularTier(priceTier, qtyTier docmodel.TierKind) bool {
	priceOK := priceTier == docmodel.TierTabular || priceTier == docmodel.TierVerticalTabular
	qtyOK := qtyTier == docmodel.TierTabular || qtyTier == docmodel.TierVerticalTabular
	return priceOK && qtyOK
}
