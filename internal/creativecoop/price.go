package creativecoop

import (
	"strconv"
	"strings"

	"tools/internal/docmodel"
)

const priceContextWindow = 400

var (
	tabularRowPattern    = docmodel.CompilePattern(`(?m)^[^\n|]*\|[^\n]*$`)
	tier2PatternPrice    = docmodel.CompilePattern(`(?i)(?:wholesale|your price|net|cost)[^$]{0,40}\$?(\d+\.\d{2})`)
	tier2ListYourPair    = docmodel.CompilePattern(`(?i)list\D{0,10}\$?(\d+\.\d{2})\D{0,10}your\D{0,10}\$?(\d+\.\d{2})`)
	tier3NearKeywordA    = docmodel.CompilePattern(`(?i)(?:each|unit|usd)[^$\n]{0,20}\$(\d+\.\d{2})`)
	tier3NearKeywordB    = docmodel.CompilePattern(`(?i)\$(\d+\.\d{2})[^\n]{0,20}(?:each|unit|usd)`)
	pageBreakPattern     = docmodel.CompilePattern(`\f|(?i)page\s+\d+`)
)

// resolvePrice determines unit_price for code by trying tiers in order;
// the first tier to yield a validated price wins (spec section 4.5.3).
// The tier that produced the value is recorded on trace both as a usage
// counter and as the returned TierKind, since placeholder suppression
// depends on knowing the tier of origin (spec section 9).
func resolvePrice(text, code, upc string, trace *docmodel.Trace) (price string, tier docmodel.TierKind, ok bool) {
	if p, ok := tabularPrice(text, code); ok {
		if validatePrice(p, upc) {
			trace.RecordPriceTier(docmodel.TierTabular)
			return docmodel.FormatPrice(p), docmodel.TierTabular, true
		}
	}
	if p, ok := verticalTabularPrice(text, code); ok {
		if validatePrice(p, upc) {
			trace.RecordPriceTier(docmodel.TierVerticalTabular)
			return docmodel.FormatPrice(p), docmodel.TierVerticalTabular, true
		}
	}
	if p, ok := patternPrice(text, code); ok {
		if validatePrice(p, upc) {
			trace.RecordPriceTier(docmodel.TierPattern)
			return docmodel.FormatPrice(p), docmodel.TierPattern, true
		}
	}
	if p, ok := pageContextPrice(text, code); ok {
		if validatePrice(p, upc) {
			trace.RecordPriceTier(docmodel.TierPageContext)
			return docmodel.FormatPrice(p), docmodel.TierPageContext, true
		}
	}
	trace.RecordPriceTier(docmodel.TierNone)
	return "$0.00", docmodel.TierNone, false
}

// validatePrice applies the business-logic guard of spec section 4.5.3:
// the range [0.10, 1000.00], and rejects a price whose digits are just a
// substring lifted from the UPC.
func validatePrice(price float64, upc string) bool {
	if price < 0.10 || price > 1000.00 {
		return false
	}
	digits := strconv.FormatFloat(price, 'f', 2, 64)
	digits = strings.ReplaceAll(digits, ".", "")
	if upc != "" && strings.Contains(upc, digits) {
		return false
	}
	return true
}

// tabularPrice implements Tier 1: a pipe-delimited row of
// code|upc|description|qty_ord|qty_alloc|qty_shipped|qty_bkord|unit|list|your|extd.
func tabularPrice(text, code string) (float64, bool) {
	for _, line := range tabularRowPattern.FindAllString(text, -1) {
		if !strings.Contains(line, code) {
			continue
		}
		fields := splitPipeRow(line)
		if len(fields) < 10 {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimPrefix(fields[9], "$"), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func splitPipeRow(line string) []string {
	parts := strings.Split(line, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// verticalTabularPrice implements Tier 1′: the same logical row emitted as
// one token per line. Detect the code's line and read the next <=12
// lines, parsing by fixed position: upc, description, 4 integers, unit,
// list, your, extd.
func verticalTabularPrice(text, code string) (float64, bool) {
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
		// Position 8 (0-indexed within block, after upc/description/4 ints/unit/list) is "your".
		if len(block) > 8 {
			if v, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(block[8]), "$"), 64); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

// patternPrice implements Tier 2: a labelled wholesale/net/cost price, or
// the second of a list/your pair, within the text window around the code.
func patternPrice(text, code string) (float64, bool) {
	window := contextWindow(text, code, priceContextWindow)
	if window == "" {
		return 0, false
	}
	if m := tier2PatternPrice.FindStringSubmatch(window); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, true
		}
	}
	if m := tier2ListYourPair.FindStringSubmatch(window); m != nil {
		if v, err := strconv.ParseFloat(m[2], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// pageContextPrice implements Tier 3: partition text into page-like
// sections and search the section containing code for a $price near
// each|unit|USD.
func pageContextPrice(text, code string) (float64, bool) {
	section := sectionContaining(text, code)
	if section == "" {
		return 0, false
	}
	if m := tier3NearKeywordA.FindStringSubmatch(section); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, true
		}
	}
	if m := tier3NearKeywordB.FindStringSubmatch(section); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// contextWindow returns up to span characters before and after the first
// occurrence of code in text.
func contextWindow(text, code string, span int) string {
	idx := strings.Index(text, code)
	if idx == -1 {
		return ""
	}
	start := idx - span
	if start < 0 {
		start = 0
	}
	end := idx + len(code) + span
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

// sectionContaining partitions text on form-feeds, explicit "Page N"
// markers, or ~2000-character buckets, and returns whichever section
// contains code.
func sectionContaining(text, code string) string {
	idx := strings.Index(text, code)
	if idx == -1 {
		return ""
	}
	breaks := pageBreakPattern.FindAllStringIndex(text, -1)
	if len(breaks) > 0 {
		start := 0
		for _, b := range breaks {
			if b[0] > idx {
				break
			}
			start = b[1]
		}
		end := len(text)
		for _, b := range breaks {
			if b[0] > idx {
				end = b[0]
				break
			}
		}
		if start < end {
			return text[start:end]
		}
	}
	const bucket = 2000
	start := (idx / bucket) * bucket
	end := start + bucket
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}
