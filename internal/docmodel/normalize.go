package docmodel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// excelEpoch is the legacy spreadsheet convention's day zero: 1899-12-30,
// not 1899-12-31, reproducing the off-by-one leap-year bug the spreadsheet
// ecosystem has carried since Lotus 1-2-3.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var monthNameLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2 2006",
	"2 Jan 2006",
}

// ParseDate recognizes, in order: an Excel serial date in [1, 60000], ISO
// YYYY-MM-DD, US slash/dash forms, and month-name forms. On any parse
// failure it returns the original string unchanged — NormalizerFailure is
// locally recovered per spec section 7, never raised to the caller.
func ParseDate(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n >= 1 && n <= 60000 {
			t := excelEpoch.AddDate(0, 0, n)
			return formatMDY(t)
		}
	}

	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return formatMDY(t)
	}

	if t, ok := parseUSDate(trimmed); ok {
		return formatMDY(t)
	}

	for _, layout := range monthNameLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return formatMDY(t)
		}
	}

	return s
}

func formatMDY(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

var usDateSeparators = []string{"/", "-"}

// parseUSDate handles M/D/YY, M/D/YYYY, M-D-YY, M-D-YYYY. Two-digit years
// in [0,49] map to 20YY, else 19YY.
func parseUSDate(s string) (time.Time, bool) {
	for _, sep := range usDateSeparators {
		parts := strings.Split(s, sep)
		if len(parts) != 3 {
			continue
		}
		month, err1 := strconv.Atoi(parts[0])
		day, err2 := strconv.Atoi(parts[1])
		yearStr := parts[2]
		year, err3 := strconv.Atoi(yearStr)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		if len(yearStr) == 2 {
			if year <= 49 {
				year += 2000
			} else {
				year += 1900
			}
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

var titleCaser = cases.Title(language.English)

// CreativeCoopIndicators are the case-insensitive substrings that identify
// the hyphenated Creative Co-op supplier in free text, per spec section 4.1.
var CreativeCoopIndicators = []string{"creative-coop", "creative co-op", "creative coop"}

// CanonicalizeVendor returns the canonical vendor name for raw, matching
// Creative Co-op's accepted spellings case-insensitively; other input is
// trimmed and returned title-cased.
func CanonicalizeVendor(raw string) string {
	lower := strings.ToLower(raw)
	for _, indicator := range CreativeCoopIndicators {
		if strings.Contains(lower, indicator) {
			return string(VendorCreativeCoop)
		}
	}
	return titleCaser.String(strings.TrimSpace(raw))
}

// ShortenProductCode replaces a long UPC/ISBN token (10-13 digits) with a
// short alphanumeric code only when one is supplied alongside; otherwise it
// passes the long token through unchanged.
func ShortenProductCode(longToken, shortCode string) string {
	digits := strings.TrimFunc(longToken, func(r rune) bool { return r < '0' || r > '9' })
	if len(digits) < 10 || len(digits) > 13 {
		return longToken
	}
	if shortCode == "" {
		return longToken
	}
	return shortCode
}

var quantityUnitWords = []string{"each", "Set", "set", "case", "piece", "lo", "ea"}

// CleanQuantity strips unit words, commas, and currency symbols from a free
// string, parses the remaining integer, and rejects negatives and values
// over 10000 (returning 0 for either).
func CleanQuantity(s string) int {
	cleaned := s
	for _, word := range quantityUnitWords {
		cleaned = strings.ReplaceAll(cleaned, word, "")
	}
	cleaned = strings.NewReplacer(",", "", "$", "", " ", "").Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	if n < 0 || n > 10000 {
		return 0
	}
	return n
}

var (
	wholesaleWordPattern = CompilePattern(`(?i)(?:wholesale|net)\s*[:\-]?\s*\$?(\d+\.\d{2})`)
	yourPriceColumnPattern = CompilePattern(`(?i)your\s*price\s*[:\-]?\s*\$?(\d+\.\d{2})`)
	listYourPairPattern    = CompilePattern(`(?i)list\D{0,10}\$?(\d+\.\d{2})\D{0,10}your\D{0,10}\$?(\d+\.\d{2})`)
)

// SelectWholesalePrice applies the heuristics of spec section 4.1, in
// order, to a line of text carrying a trailing price cluster: an explicit
// "Your Price" column, a number preceded by "wholesale"/"net", the second
// of two prices in a "list ... your" pair, else, when the caller passes
// exactly two prices, the smaller of them. Returns ("", false) if no
// candidate is found.
func SelectWholesalePrice(line string, prices []float64) (string, bool) {
	if m := yourPriceColumnPattern.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := wholesaleWordPattern.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := listYourPairPattern.FindStringSubmatch(line); m != nil {
		return m[2], true
	}
	if len(prices) == 2 {
		smaller := prices[0]
		if prices[1] < smaller {
			smaller = prices[1]
		}
		return strconv.FormatFloat(smaller, 'f', 2, 64), true
	}
	return "", false
}

// FormatPrice renders a float as the "$N.NN" currency string the Row
// contract requires.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
