package creativecoop

import (
	"sort"

	"tools/internal/docmodel"
)

// productCodePattern is the union of every Creative-Coop product-code
// family recognized by spec section 4.5.1: XS/CF/CD/HX/XT/XM followed by
// digits and an optional letter suffix, plus the legacy D[A-Z]\d{4} form.
var productCodePattern = docmodel.CompilePattern(`\b(XS\d+[A-Z]?|CF\d+[A-Z]?|CD\d+[A-Z]?|HX\d+[A-Z]?|XT\d+[A-Z]?|XM\d+[A-Z]?|D[A-Z]\d{4}[A-Z]?)\b`)

// scanBudget is the minimum character budget for the product-code
// discovery and page-context scans. Spec section 9 resolves an ambiguity
// between two overlapping legacy implementations (8000 vs 25000 character
// windows) in favor of the larger one; text is never truncated short of
// the document, so this is a documented floor rather than an enforced cap.
const scanBudget = 25000

// DiscoverCodes scans text for the union of product-code patterns and
// returns the distinct set, sorted lexicographically. Sorting gives the
// deterministic output order spec section 5 requires for reproducibility.
func DiscoverCodes(text string) []string {
	seen := make(map[string]bool)
	for _, m := range productCodePattern.FindAllString(text, -1) {
		seen[m] = true
	}
	codes := make([]string, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// codeFromText returns the first product code recognized in s, or "" if
// none is found. Used to classify entity mention_text and page-context
// sections by the code they belong to.
func codeFromText(s string) string {
	return productCodePattern.FindString(s)
}
