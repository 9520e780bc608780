package creativecoop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tools/internal/docmodel"
)

func TestResolvePriceTabularTier(t *testing.T) {
	text := "XS9826A|123456789012|Ceramic Bird Figurine|10|8|6|2|$2.00|$5.00|$3.50|$21.00"
	trace := docmodel.NewTrace()
	price, tier, ok := resolvePrice(text, "XS9826A", "123456789012", trace)
	require.True(t, ok, "expected tabular price to resolve")
	assert.Equal(t, "$3.50", price, "want the 'your' column")
	assert.Equal(t, docmodel.TierTabular, tier)
}

func TestResolvePricePatternTier(t *testing.T) {
	text := "Item XS9826A description here wholesale: $4.25 per unit"
	trace := docmodel.NewTrace()
	price, tier, ok := resolvePrice(text, "XS9826A", "", trace)
	require.True(t, ok, "expected pattern tier to resolve")
	assert.Equal(t, "$4.25", price)
	assert.Equal(t, docmodel.TierPattern, tier)
}

func TestResolvePricePageContextTier(t *testing.T) {
	text := "XS9826A some description each $6.75 unit"
	trace := docmodel.NewTrace()
	price, _, ok := resolvePrice(text, "XS9826A", "", trace)
	require.True(t, ok, "expected a price to resolve")
	assert.Equal(t, "$6.75", price)
}

func TestResolvePriceUnresolvedReturnsFalse(t *testing.T) {
	trace := docmodel.NewTrace()
	_, tier, ok := resolvePrice("nothing relevant", "XS9826A", "", trace)
	assert.False(t, ok)
	assert.Equal(t, docmodel.TierNone, tier)
}

func TestValidatePriceRejectsOutOfRange(t *testing.T) {
	assert.False(t, validatePrice(0.05, ""), "expected price below 0.10 to be rejected")
	assert.False(t, validatePrice(1500.00, ""), "expected price above 1000.00 to be rejected")
}

func TestValidatePriceRejectsUPCSubstring(t *testing.T) {
	// 3.50 -> digits "350"; reject when those digits appear inside the UPC.
	assert.False(t, validatePrice(3.50, "123350789012"))
}

func TestValidatePriceAcceptsNormalValue(t *testing.T) {
	assert.True(t, validatePrice(12.99, "123456789012"))
}
