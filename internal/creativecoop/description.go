package creativecoop

import (
	"strings"

	"tools/internal/docmodel"
)

var (
	literalArtefact   = "Traditional D-code format"
	headerTokens      = []string{
		"Product Code", "Description", "UPC", "Qty Ord", "Your Price",
		"List Price", "U/M", "Unit", "Qty", "Price",
	}
	repeatedPipes    = docmodel.CompilePattern(`\|{2,}`)
	dollarEnclosed   = docmodel.CompilePattern(`\$\$[^$]*\$\$`)
	pipeEnclosed     = docmodel.CompilePattern(`\|\|[^|]*\|\|`)
	runsOfSpaces     = docmodel.CompilePattern(` {2,}`)
	runsOfCommas     = docmodel.CompilePattern(`,{2,}`)
	runsOfNewlines   = docmodel.CompilePattern(`\n{2,}`)
	runsOfDashes     = docmodel.CompilePattern(`-{3,}`)
	trailingPunct    = docmodel.CompilePattern(`[\s.,;:\-]+$`)
)

// cleanDescription removes the artefacts of spec section 4.5.5 in a single
// pass: the literal "Traditional D-code format", standalone table-header
// tokens, repeated pipe separators (collapsed to one space), $$...$$ and
// ||...|| enclosed runs (contents removed), duplicate occurrences of code
// beyond the first two, and runs of whitespace/commas/newlines/dashes
// (collapsed to one). Trailing punctuation and whitespace are stripped
// last. Dimensions, percentages, ampersands, possessives, and
// material-word punctuation are preserved by construction: nothing above
// touches them.
func cleanDescription(raw, code string) string {
	d := strings.ReplaceAll(raw, literalArtefact, "")

	for _, tok := range headerTokens {
		d = removeStandaloneToken(d, tok)
	}

	d = dollarEnclosed.ReplaceAllString(d, "")
	d = pipeEnclosed.ReplaceAllString(d, "")
	d = repeatedPipes.ReplaceAllString(d, " ")

	d = dropDuplicateCodeOccurrences(d, code)

	d = runsOfSpaces.ReplaceAllString(d, " ")
	d = runsOfCommas.ReplaceAllString(d, ",")
	d = runsOfNewlines.ReplaceAllString(d, "\n")
	d = runsOfDashes.ReplaceAllString(d, "-")

	d = trailingPunct.ReplaceAllString(d, "")
	return strings.TrimSpace(d)
}

// removeStandaloneToken removes tok when it appears as its own word (not
// as a substring of a longer word), case-sensitively, matching the
// teacher's literal table-header vocabulary.
func removeStandaloneToken(s, tok string) string {
	pattern := docmodel.CompilePattern(`\b` + regexpQuoteLiteral(tok) + `\b`)
	return pattern.ReplaceAllString(s, "")
}

// dropDuplicateCodeOccurrences keeps the first two occurrences of code
// (one may be inside a UPC prefix per spec) and removes the rest.
func dropDuplicateCodeOccurrences(s, code string) string {
	if code == "" {
		return s
	}
	count := 0
	var b strings.Builder
	rest := s
	for {
		idx := strings.Index(rest, code)
		if idx == -1 {
			b.WriteString(rest)
			break
		}
		count++
		if count <= 2 {
			b.WriteString(rest[:idx+len(code)])
		} else {
			b.WriteString(rest[:idx])
		}
		rest = rest[idx+len(code):]
	}
	return b.String()
}

// isArtefact reports whether a candidate description is empty or
// effectively table noise once cleaned, per spec section 4.5.2's
// "non-artefact" requirement for the mapping's description resolution.
func isArtefact(raw, code string) bool {
	cleaned := cleanDescription(raw, code)
	if len(strings.TrimSpace(cleaned)) < 3 {
		return true
	}
	for _, tok := range headerTokens {
		if strings.EqualFold(strings.TrimSpace(cleaned), tok) {
			return true
		}
	}
	return false
}

// assembleDescription builds the final row description per spec section
// 4.5.5: "<code> - UPC: <upc> - <cleaned>" when a UPC is present,
// otherwise "<code> - <cleaned>".
func assembleDescription(code, upc, cleaned string) string {
	if upc != "" {
		return code + " - UPC: " + upc + " - " + cleaned
	}
	return code + " - " + cleaned
}

// regexpQuoteLiteral escapes s for embedding as a literal in a regexp,
// without pulling in regexp.QuoteMeta's broader escaping (the header
// vocabulary contains only letters, spaces, and slashes).
func regexpQuoteLiteral(s string) string {
	replacer := strings.NewReplacer(
		"/", `\/`,
	)
	return replacer.Replace(s)
}
