package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petokpredict/server/internal/domain/models"
)

func TestExtractPriceRupiahNotation(t *testing.T) {
	html := `<div class="price">Rp 45.000</div>`

	price, ok := ExtractPrice(html, 25000, 80000)
	require.True(t, ok)
	assert.Equal(t, 45000.0, price)
}

func TestExtractPriceJSONLD(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"Product","offers":{"price": "38500"}}</script>`

	price, ok := ExtractPrice(html, 25000, 80000)
	require.True(t, ok)
	assert.Equal(t, 38500.0, price)
}

func TestExtractPriceCurrencySuffix(t *testing.T) {
	html := `harga ayam hari ini 67.500 rupiah per ekor`

	price, ok := ExtractPrice(html, 30000, 200000)
	require.True(t, ok)
	assert.Equal(t, 67500.0, price)
}

func TestExtractPriceDataAttribute(t *testing.T) {
	html := `<span data-price="52000" class="amount"></span>`

	price, ok := ExtractPrice(html, 30000, 200000)
	require.True(t, ok)
	assert.Equal(t, 52000.0, price)
}

func TestExtractPriceRespectsBounds(t *testing.T) {
	// A phone number and a page total, both outside the plausible band.
	html := `Hubungi Rp 081234567890 atau total keranjang Rp 1.250.000`

	_, ok := ExtractPrice(html, 25000, 80000)
	assert.False(t, ok)
}

func TestExtractPriceSkipsOutOfRangeThenMatches(t *testing.T) {
	html := `Rp 999.000 promo spesial Rp 42.500 per kg`

	price, ok := ExtractPrice(html, 25000, 80000)
	require.True(t, ok)
	assert.Equal(t, 42500.0, price)
}

func TestExtractPriceNoMatch(t *testing.T) {
	_, ok := ExtractPrice("<html><body>tidak ada harga</body></html>", 25000, 80000)
	assert.False(t, ok)
}

func TestSourceFor(t *testing.T) {
	assert.Equal(t, SourceJapfaBest, SourceFor(models.ChickenBroiler))
	assert.Equal(t, SourcePasarSegar, SourceFor(models.ChickenKampung))
}

func TestSourceBounds(t *testing.T) {
	assert.Equal(t, 25000.0, SourceJapfaBest.MinPrice)
	assert.Equal(t, 80000.0, SourceJapfaBest.MaxPrice)
	assert.Equal(t, 30000.0, SourcePasarSegar.MinPrice)
	assert.Equal(t, 200000.0, SourcePasarSegar.MaxPrice)
}
