package creativecoop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tools/internal/docmodel"
)

func TestResolveQuantityTabularShippedWins(t *testing.T) {
	// ordered=10 allocated=8 shipped=6 backordered=2 -> shipped-first rule
	// picks shipped since it is positive.
	text := "XS9826A|123456789012|Ceramic Bird Figurine|10|8|6|2|$2.00|$5.00|$3.50|$21.00"
	trace := docmodel.NewTrace()
	qty, tier := resolveQuantity(text, "XS9826A", trace)
	assert.Equal(t, 6, qty, "want shipped")
	assert.Equal(t, docmodel.TierTabular, tier)
}

func TestResolveQuantityOrderedWhenBackorderedAndNoShipped(t *testing.T) {
	text := "XS9826A|123456789012|Ceramic Bird Figurine|10|0|0|3|$2.00|$5.00|$3.50|$21.00"
	trace := docmodel.NewTrace()
	qty, _ := resolveQuantity(text, "XS9826A", trace)
	assert.Equal(t, 10, qty, "want ordered, since backordered>0 and shipped=0")
}

func TestResolveQuantityAllocatedFallback(t *testing.T) {
	text := "XS9826A|123456789012|Ceramic Bird Figurine|0|7|0|0|$2.00|$5.00|$3.50|$21.00"
	trace := docmodel.NewTrace()
	qty, _ := resolveQuantity(text, "XS9826A", trace)
	assert.Equal(t, 7, qty, "want allocated fallback")
}

func TestResolveQuantityLabelledPattern(t *testing.T) {
	text := "XS9826A description here. Shipped: 15 Ordered: 20"
	trace := docmodel.NewTrace()
	qty, tier := resolveQuantity(text, "XS9826A", trace)
	assert.Equal(t, 15, qty, "want shipped label")
	assert.Equal(t, docmodel.TierPattern, tier)
}

func TestResolveQuantityLegacyShippedBack(t *testing.T) {
	text := "XS9826A widget details 12 3 each more text"
	trace := docmodel.NewTrace()
	qty, tier := resolveQuantity(text, "XS9826A", trace)
	assert.Equal(t, 12, qty, "want legacy shipped-back pattern, shipped=first number")
	assert.Equal(t, docmodel.TierLegacy, tier)
}

func TestResolveQuantityNoneFound(t *testing.T) {
	trace := docmodel.NewTrace()
	qty, tier := resolveQuantity("no quantity information here", "XS9826A", trace)
	assert.Equal(t, 0, qty)
	assert.Equal(t, docmodel.TierNone, tier)
}

func TestShippedFirstRule(t *testing.T) {
	cases := []struct {
		tuple docmodel.QuantityTuple
		want  int
	}{
		{docmodel.QuantityTuple{Shipped: 5, Ordered: 10}, 5},
		{docmodel.QuantityTuple{Ordered: 10, Backordered: 2}, 10},
		{docmodel.QuantityTuple{Allocated: 4}, 4},
		{docmodel.QuantityTuple{}, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, shippedFirst(c.tuple))
	}
}

func TestValidQtyBounds(t *testing.T) {
	assert.True(t, validQty(0))
	assert.True(t, validQty(10000))
	assert.False(t, validQty(-1))
	assert.False(t, validQty(10001))
}
