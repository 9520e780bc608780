package extract

import (
	"regexp"
	"strings"

	"tools/internal/docmodel"
)

// creativeCoopCodePrefixes are the product-code families that, by
// themselves, are strong enough evidence of a Creative Co-op document to
// serve as detector indicators (spec section 4.2).
var creativeCoopLegacyCode = docmodel.CompilePattern(`D[A-Z]\d{4}`)

var creativeCoopCodePrefixes = []string{"XS", "CF", "CD", "HX", "XT"}

// harperCollinsIndicators and the rest are case-insensitive substrings
// tried in the fixed order the spec lists: Creative Co-op, HarperCollins,
// OneHundred80, Rifle Paper, else Generic.
var harperCollinsIndicators = []string{"harpercollins", "harper collins"}
var oneHundred80Indicators = []string{"onehundred80", "one hundred 80", "one hundred eighty"}
var riflePaperIndicators = []string{"rifle paper"}

// DetectVendor classifies document text into one of the five canonical
// vendors. First match wins in the order listed; this must stay under
// 0.1ms per call (spec section 5), so it is a flat sequence of
// strings.Contains checks plus two precompiled regexps, no backtracking
// patterns.
func DetectVendor(text string) docmodel.Vendor {
	lower := strings.ToLower(text)

	for _, indicator := range docmodel.CreativeCoopIndicators {
		if strings.Contains(lower, indicator) {
			return docmodel.VendorCreativeCoop
		}
	}
	for _, prefix := range creativeCoopCodePrefixes {
		if containsCodePrefix(text, prefix) {
			return docmodel.VendorCreativeCoop
		}
	}
	if creativeCoopLegacyCode.MatchString(text) {
		return docmodel.VendorCreativeCoop
	}

	for _, indicator := range harperCollinsIndicators {
		if strings.Contains(lower, indicator) {
			return docmodel.VendorHarperCollins
		}
	}
	for _, indicator := range oneHundred80Indicators {
		if strings.Contains(lower, indicator) {
			return docmodel.VendorOneHundred80
		}
	}
	for _, indicator := range riflePaperIndicators {
		if strings.Contains(lower, indicator) {
			return docmodel.VendorRiflePaper
		}
	}
	return docmodel.VendorGeneric
}

var codePrefixPattern = regexp.MustCompile(`^[A-Z]{2}\d`)

// containsCodePrefix reports whether text contains a token that looks like
// prefix followed by a digit, e.g. "XS9826A".
func containsCodePrefix(text, prefix string) bool {
	idx := strings.Index(text, prefix)
	for idx != -1 {
		rest := text[idx:]
		if len(rest) >= 3 && codePrefixPattern.MatchString(rest[:min3(len(rest), 3)]) {
			return true
		}
		next := strings.Index(text[idx+1:], prefix)
		if next == -1 {
			break
		}
		idx = idx + 1 + next
	}
	return false
}

func min3(a, b int) int {
	if a < b {
		return a
	}
	return b
}
