package creativecoop

import (
	"strconv"
	"strings"

	"tools/internal/docmodel"
)

const qtyContextLines = 8

var (
	shippedLabelPattern    = docmodel.CompilePattern(`(?i)(?:shipped|ship):?\s*(\d+)`)
	orderedLabelPattern    = docmodel.CompilePattern(`(?i)(?:ordered|order):?\s*(\d+)`)
	allocatedLabelPattern  = docmodel.CompilePattern(`(?i)(?:allocated|alloc):?\s*(\d+)`)
	backorderedLabelPattern = docmodel.CompilePattern(`(?i)(?:back.?order|bkord):?\s*(\d+)`)
	fourIntLinesPattern    = docmodel.CompilePattern(`(?m)^\s*(\d+)\s*$`)
	legacyShippedBackPattern = docmodel.CompilePattern(`(\d+)\s+(\d+)\s+(?:lo|each|Set)`)
)

// resolveQuantity determines the QuantityTuple for code by trying sources
// in the order of spec section 4.5.4, then applies the shipped-first
// business rule to derive the emitted quantity. Tabular and vertical
// tabular evidence always takes precedence over the legacy pattern when
// both are present (spec section 9's resolution of the "shipped back"
// ambiguity).
func resolveQuantity(text, code string, trace *docmodel.Trace) (qty int, tier docmodel.TierKind) {
	if t, ok := tabularQuantity(text, code); ok {
		trace.RecordQtyTier(docmodel.TierTabular)
		return shippedFirst(t), docmodel.TierTabular
	}
	if t, ok := labelledQuantity(text, code); ok {
		trace.RecordQtyTier(docmodel.TierPattern)
		return shippedFirst(t), docmodel.TierPattern
	}
	if t, ok := fourConsecutiveIntQuantity(text, code); ok {
		trace.RecordQtyTier(docmodel.TierPattern)
		return shippedFirst(t), docmodel.TierPattern
	}
	if t, ok := legacyShippedBackQuantity(text, code); ok {
		trace.RecordQtyTier(docmodel.TierLegacy)
		return shippedFirst(t), docmodel.TierLegacy
	}
	trace.RecordQtyTier(docmodel.TierNone)
	return 0, docmodel.TierNone
}

// shippedFirst applies the rule of spec section 4.5.4: shipped if
// positive; else ordered when both ordered and backordered are positive
// (the customer wanted it, none shipped yet); else allocated; else 0.
func shippedFirst(t docmodel.QuantityTuple) int {
	switch {
	case t.Shipped > 0:
		return t.Shipped
	case t.Ordered > 0 && t.Backordered > 0:
		return t.Ordered
	case t.Allocated > 0:
		return t.Allocated
	default:
		return 0
	}
}

func validQty(n int) bool { return n >= 0 && n <= 10000 }

// tabularQuantity reuses the Tier-1/1' row locator: a pipe-delimited row
// or a vertical block gives ordered, allocated, shipped, backordered by
// fixed position.
func tabularQuantity(text, code string) (docmodel.QuantityTuple, bool) {
	for _, line := range tabularRowPattern.FindAllString(text, -1) {
		if !strings.Contains(line, code) {
			continue
		}
		fields := splitPipeRow(line)
		if len(fields) < 7 {
			continue
		}
		ord, e1 := strconv.Atoi(fields[3])
		alloc, e2 := strconv.Atoi(fields[4])
		shipped, e3 := strconv.Atoi(fields[5])
		bkord, e4 := strconv.Atoi(fields[6])
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
			continue
		}
		t := docmodel.QuantityTuple{Ordered: ord, Allocated: alloc, Shipped: shipped, Backordered: bkord}
		if !validQty(t.Ordered) || !validQty(t.Allocated) || !validQty(t.Shipped) || !validQty(t.Backordered) {
			continue
		}
		return t, true
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != code {
			continue
		}
		end := i + 1 + 12
		if end > len(lines) {
			end = len(lines)
		}
		block := lines[i+1 : end]
		if len(block) < 6 {
			continue
		}
		ord, e1 := strconv.Atoi(strings.TrimSpace(block[2]))
		alloc, e2 := strconv.Atoi(strings.TrimSpace(block[3]))
		shipped, e3 := strconv.Atoi(strings.TrimSpace(block[4]))
		bkord, e4 := strconv.Atoi(strings.TrimSpace(block[5]))
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
			continue
		}
		t := docmodel.QuantityTuple{Ordered: ord, Allocated: alloc, Shipped: shipped, Backordered: bkord}
		if !validQty(t.Ordered) || !validQty(t.Allocated) || !validQty(t.Shipped) || !validQty(t.Backordered) {
			continue
		}
		return t, true
	}
	return docmodel.QuantityTuple{}, false
}

// labelledQuantity searches a +-8 line context around the code for
// labelled tokens: shipped/ship, ordered/order, allocated/alloc,
// back.?order/bkord.
func labelledQuantity(text, code string) (docmodel.QuantityTuple, bool) {
	window := lineContext(text, code, qtyContextLines)
	if window == "" {
		return docmodel.QuantityTuple{}, false
	}
	var t docmodel.QuantityTuple
	found := false
	if m := shippedLabelPattern.FindStringSubmatch(window); m != nil {
		t.Shipped, _ = strconv.Atoi(m[1])
		found = true
	}
	if m := orderedLabelPattern.FindStringSubmatch(window); m != nil {
		t.Ordered, _ = strconv.Atoi(m[1])
		found = true
	}
	if m := allocatedLabelPattern.FindStringSubmatch(window); m != nil {
		t.Allocated, _ = strconv.Atoi(m[1])
		found = true
	}
	if m := backorderedLabelPattern.FindStringSubmatch(window); m != nil {
		t.Backordered, _ = strconv.Atoi(m[1])
		found = true
	}
	if !found || !validQty(t.Ordered) || !validQty(t.Allocated) || !validQty(t.Shipped) || !validQty(t.Backordered) {
		return docmodel.QuantityTuple{}, false
	}
	return t, true
}

// fourConsecutiveIntQuantity looks for four consecutive integers on four
// consecutive lines within the code's context, interpreted in the fixed
// order (ordered, allocated, shipped, backordered).
func fourConsecutiveIntQuantity(text, code string) (docmodel.QuantityTuple, bool) {
	window := lineContext(text, code, qtyContextLines)
	if window == "" {
		return docmodel.QuantityTuple{}, false
	}
	lines := strings.Split(window, "\n")
	for i := 0; i+3 < len(lines); i++ {
		vals := make([]int, 0, 4)
		ok := true
		for j := 0; j < 4; j++ {
			m := fourIntLinesPattern.FindStringSubmatch(lines[i+j])
			if m == nil {
				ok = false
				break
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, n)
		}
		if !ok {
			continue
		}
		t := docmodel.QuantityTuple{Ordered: vals[0], Allocated: vals[1], Shipped: vals[2], Backordered: vals[3]}
		if !validQty(t.Ordered) || !validQty(t.Allocated) || !validQty(t.Shipped) || !validQty(t.Backordered) {
			continue
		}
		return t, true
	}
	return docmodel.QuantityTuple{}, false
}

// legacyShippedBackQuantity implements the Creative-Coop legacy pattern
// "<n> <n> (?:lo|each|Set)", interpreting the first two integers as
// (shipped, back) per spec section 9's resolution of the ambiguity.
func legacyShippedBackQuantity(text, code string) (docmodel.QuantityTuple, bool) {
	window := contextWindow(text, code, priceContextWindow)
	if window == "" {
		return docmodel.QuantityTuple{}, false
	}
	m := legacyShippedBackPattern.FindStringSubmatch(window)
	if m == nil {
		return docmodel.QuantityTuple{}, false
	}
	shipped, e1 := strconv.Atoi(m[1])
	back, e2 := strconv.Atoi(m[2])
	if e1 != nil || e2 != nil {
		return docmodel.QuantityTuple{}, false
	}
	t := docmodel.QuantityTuple{Shipped: shipped, Backordered: back}
	if !validQty(t.Shipped) || !validQty(t.Backordered) {
		return docmodel.QuantityTuple{}, false
	}
	return t, true
}

// lineContext returns the +-n lines of text surrounding the line
// containing code's first occurrence.
func lineContext(text, code string, n int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, code) {
			continue
		}
		start := i - n
		if start < 0 {
			start = 0
		}
		end := i + n + 1
		if end > len(lines) {
			end = len(lines)
		}
		return strings.Join(lines[start:end], "\n")
	}
	return ""
}
