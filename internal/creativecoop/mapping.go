package creativecoop

import (
	"strings"
	"unicode"

	"tools/internal/docmodel"
)

const upcSearchWindow = 200

var upcPattern = docmodel.CompilePattern(`\b(\d{12})\b`)
var shortDescriptionPattern = docmodel.CompilePattern(`^[A-Za-z][^0-9]{5,50}`)

// buildMapping resolves a ProductMapping for every discovered code, trying
// the three description strategies of spec section 4.5.2 in order and
// keeping only entries that produce both a UPC (which may be empty) and a
// non-artefact description. Entries failing both are dropped — the
// mapping never contains a placeholder. Each drop is recorded on trace
// under the reason that actually applies (no description resolved at all,
// versus a resolved-but-artefact description with no UPC to fall back on).
func buildMapping(text string, codes []string, entityContext map[string]string, trace *docmodel.Trace) map[string]docmodel.ProductMapping {
	mapping := make(map[string]docmodel.ProductMapping, len(codes))

	for _, code := range codes {
		// idx stays -1 for a code known only via an entity continuation, not
		// the flattened text; the text-based strategies are then skipped.
		idx := strings.Index(text, code)
		codeEnd := idx + len(code)

		window := ""
		if idx != -1 {
			windowEnd := codeEnd + upcSearchWindow
			if windowEnd > len(text) {
				windowEnd = len(text)
			}
			window = text[codeEnd:windowEnd]
		}

		upc := ""
		upcRelIdx := -1
		if m := upcPattern.FindStringIndex(window); m != nil {
			upc = window[m[0]:m[1]]
			upcRelIdx = m[0]
		}

		raw := resolveRawDescription(text, code, idx, codeEnd, window, upcRelIdx, entityContext[code])
		if raw == "" {
			if upc == "" && strings.TrimSpace(window) != "" {
				// Text follows the code, but every candidate was artefact.
				trace.Drop(docmodel.DropMissingUPCAndDesc)
			} else {
				trace.Drop(docmodel.DropMissingDescription)
			}
			continue
		}
		if upc == "" && isArtefact(raw, code) {
			trace.Drop(docmodel.DropMissingUPCAndDesc)
			continue
		}

		page := derivePage(idx, len(text))

		mapping[code] = docmodel.ProductMapping{
			UPC:            upc,
			Description:    cleanDescription(raw, code),
			RawDescription: raw,
			Page:           page,
		}
	}
	return mapping
}

// resolveRawDescription tries, in order: the span between the code and a
// nearby UPC; the first 5-50 character run of mostly-non-digit text right
// after the code; a 200-character context window's longest multi-word
// non-digit run; finally, any merged entity continuation text for the
// code.
func resolveRawDescription(text, code string, idx, codeEnd int, window string, upcRelIdx int, entityText string) string {
	if upcRelIdx > 0 && upcRelIdx <= upcSearchWindow {
		span := strings.TrimSpace(window[:upcRelIdx])
		if span != "" && !isArtefact(span, code) {
			return span
		}
	}

	if m := shortDescriptionPattern.FindString(window); m != "" {
		candidate := strings.TrimSpace(m)
		if candidate != "" && !isArtefact(candidate, code) {
			return candidate
		}
	}

	start := idx - 100
	if start < 0 {
		start = 0
	}
	end := idx + 100
	if end > len(text) {
		end = len(text)
	}
	if idx >= 0 && idx <= len(text) {
		contextWindow := text[start:end]
		if phrase := longestNounPhrase(contextWindow); phrase != "" && !isArtefact(phrase, code) {
			return phrase
		}
	}

	if entityText != "" && !isArtefact(entityText, code) {
		return entityText
	}
	return ""
}

// longestNounPhrase returns the longest run of tokens without embedded
// digits in s, where tokens are separated by whitespace or pipe
// characters — a coarse approximation of "the longest multi-word noun
// phrase" spec section 4.5.2 calls for.
func longestNounPhrase(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '|' })
	best := ""
	current := make([]string, 0, len(fields))

	flush := func() {
		if len(current) >= 2 {
			phrase := strings.Join(current, " ")
			if len(phrase) > len(best) {
				best = phrase
			}
		}
		current = current[:0]
	}

	for _, f := range fields {
		if isWordLike(f) {
			current = append(current, f)
		} else {
			flush()
		}
	}
	flush()
	return best
}

func isWordLike(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}

// derivePage estimates a 1-based page number from a byte offset at
// roughly 2000 characters per page. buildMapping uses this estimate alone
// for ProductMapping.Page; entity page anchors are not consulted.
func derivePage(offset, _ int) int {
	return offset/2000 + 1
}
