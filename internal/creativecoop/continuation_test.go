package creativecoop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tools/internal/docmodel"
)

func TestMergeContinuationsGroupsByCode(t *testing.T) {
	entities := []docmodel.Entity{
		{Type: "line_item", MentionText: "XS9826A Ceramic Bird", PageRefs: []docmodel.PageRef{{Page: 0}}},
		{Type: "line_item", MentionText: "XS9826A Figurine (cont.)", PageRefs: []docmodel.PageRef{{Page: 1}}},
	}
	trace := docmodel.NewTrace()
	merged := mergeContinuations(entities, trace)

	text, ok := merged["XS9826A"]
	require.True(t, ok, "expected a merged entry for XS9826A")
	assert.Equal(t, "XS9826A Ceramic Bird XS9826A Figurine (cont.)", text)
	assert.Equal(t, 1, trace.ContinuationsMerged)
}

func TestMergeContinuationsOrdersByPage(t *testing.T) {
	entities := []docmodel.Entity{
		{Type: "line_item", MentionText: "XS9826A second", PageRefs: []docmodel.PageRef{{Page: 2}}},
		{Type: "line_item", MentionText: "XS9826A first", PageRefs: []docmodel.PageRef{{Page: 0}}},
	}
	merged := mergeContinuations(entities, docmodel.NewTrace())
	assert.Equal(t, "XS9826A first XS9826A second", merged["XS9826A"])
}

func TestMergeContinuationsSkipsOrphanFragments(t *testing.T) {
	entities := []docmodel.Entity{
		{Type: "line_item", MentionText: "no recognizable code here"},
	}
	trace := docmodel.NewTrace()
	merged := mergeContinuations(entities, trace)
	assert.Empty(t, merged)
	assert.Equal(t, 1, trace.EntitiesSkipped)
	assert.Equal(t, 1, trace.DropCounts[docmodel.DropEntityParseFailure])
}

func TestMergeContinuationsIgnoresNonLineItemEntities(t *testing.T) {
	entities := []docmodel.Entity{
		{Type: "invoice_id", MentionText: "INV-1"},
	}
	merged := mergeContinuations(entities, docmodel.NewTrace())
	assert.Empty(t, merged)
}
