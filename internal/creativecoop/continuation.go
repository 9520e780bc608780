package creativecoop

import (
	"sort"
	"strings"

	"tools/internal/docmodel"
)

// entityRecord is one registered line_item entity, keyed by product code,
// per spec section 4.5.6.
type entityRecord struct {
	code      string
	mentions  []pagedMention
	processed bool
}

type pagedMention struct {
	page int
	text string
}

// mergeContinuations walks document.entities of type line_item, grouping
// them by product code. A second entity for an already-seen code is a
// continuation: its mention_text is merged (sorted by page), not emitted
// as a second row. Orphan fragments carrying no recognizable code are
// discarded without raising (spec section 4.5.6's "continuation entity"
// handling); malformed entities are likewise skipped and counted rather
// than aborting the document (spec section 4.5.10).
func mergeContinuations(entities []docmodel.Entity, trace *docmodel.Trace) map[string]string {
	records := make(map[string]*entityRecord)

	for _, e := range entities {
		if e.Kind() != docmodel.EntityLineItem {
			continue
		}
		code := codeFromText(e.MentionText)
		if code == "" {
			if trace != nil {
				trace.EntitiesSkipped++
			}
			trace.Drop(docmodel.DropEntityParseFailure)
			continue
		}
		page := e.Page()
		rec, ok := records[code]
		if !ok {
			records[code] = &entityRecord{code: code, mentions: []pagedMention{{page: page, text: e.MentionText}}}
			continue
		}
		rec.mentions = append(rec.mentions, pagedMention{page: page, text: e.MentionText})
		if trace != nil {
			trace.ContinuationsMerged++
		}
	}

	merged := make(map[string]string, len(records))
	for code, rec := range records {
		sort.Slice(rec.mentions, func(i, j int) bool { return rec.mentions[i].page < rec.mentions[j].page })
		parts := make([]string, 0, len(rec.mentions))
		for _, m := range rec.mentions {
			parts = append(parts, m.text)
		}
		merged[code] = strings.Join(parts, " ")
	}
	return merged
}
