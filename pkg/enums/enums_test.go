package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductCategory(t *testing.T) {
	got, err := ParseProductCategory("couple-gifts")
	require.NoError(t, err)
	assert.Equal(t, ProductCategoryCoupleGifts, got)
	assert.True(t, got.IsValid())

	_, err = ParseProductCategory("flowers")
	assert.Error(t, err)
	assert.False(t, ProductCategory("flowers").IsValid())
}

func TestParseSortKeyDefaultsToFeatured(t *testing.T) {
	got, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortKeyFeatured, got)

	got, err = ParseSortKey("price-high")
	require.NoError(t, err)
	assert.Equal(t, SortKeyPriceHigh, got)

	_, err = ParseSortKey("alphabetical")
	assert.Error(t, err)
}

func TestParsePriceBand(t *testing.T) {
	for _, band := range PriceBands() {
		got, err := ParsePriceBand(band.String())
		require.NoError(t, err)
		assert.Equal(t, band, got)
	}
	_, err := ParsePriceBand("200+")
	assert.Error(t, err)
}

func TestCheckoutStepOrder(t *testing.T) {
	next, ok := CheckoutStepShipping.Next()
	require.True(t, ok)
	assert.Equal(t, CheckoutStepPayment, next)

	next, ok = next.Next()
	require.True(t, ok)
	assert.Equal(t, CheckoutStepReview, next)

	_, ok = CheckoutStepReview.Next()
	assert.False(t, ok)
}

func TestParseSnapshotBackendAliases(t *testing.T) {
	got, err := ParseSnapshotBackend(" MEM ")
	require.NoError(t, err)
	assert.Equal(t, SnapshotBackendMemory, got)

	got, err = ParseSnapshotBackend("redis")
	require.NoError(t, err)
	assert.Equal(t, SnapshotBackendRedis, got)

	_, err = ParseSnapshotBackend("s3")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	got, err := ParsePaymentMethod("upi")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodUPI, got)
	assert.True(t, got.IsValid())
	_, err = ParsePaymentMethod("paypal")
	assert.Error(t, err)
}
