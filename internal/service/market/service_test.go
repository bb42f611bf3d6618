package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petokpredict/server/internal/domain/models"
	marketclient "github.com/petokpredict/server/pkg/clients/market"
)

type fakeClient struct {
	quotes map[string]*models.PriceQuote
	err    error
	calls  int
}

func (c *fakeClient) FetchPrice(_ context.Context, source marketclient.Source) (*models.PriceQuote, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	q, ok := c.quotes[source.Key]
	if !ok {
		return nil, errors.New("no fixture for source")
	}
	copied := *q
	return &copied, nil
}

func liveQuote(price float64, source marketclient.Source) *models.PriceQuote {
	return &models.PriceQuote{
		PricePerKg: price,
		Currency:   "IDR",
		Unit:       "per kg",
		Title:      source.Title,
		Source:     source.Label + " (Live)",
		Timestamp:  time.Now(),
	}
}

func TestQuoteEmptyCache(t *testing.T) {
	svc := NewService(&fakeClient{}, nil)
	assert.Nil(t, svc.Quote(models.ChickenBroiler))
}

func TestRefreshCachesQuote(t *testing.T) {
	client := &fakeClient{quotes: map[string]*models.PriceQuote{
		marketclient.SourceJapfaBest.Key: liveQuote(38000, marketclient.SourceJapfaBest),
	}}
	svc := NewService(client, nil)

	quote, err := svc.Refresh(context.Background(), models.ChickenBroiler)
	require.NoError(t, err)
	assert.Equal(t, 38000.0, quote.PricePerKg)

	cached := svc.Quote(models.ChickenBroiler)
	require.NotNil(t, cached)
	assert.Equal(t, 38000.0, cached.PricePerKg)
	assert.False(t, cached.ManualOverride)
}

func TestFailedRefreshKeepsPreviousQuote(t *testing.T) {
	client := &fakeClient{quotes: map[string]*models.PriceQuote{
		marketclient.SourcePasarSegar.Key: liveQuote(65000, marketclient.SourcePasarSegar),
	}}
	svc := NewService(client, nil)

	_, err := svc.Refresh(context.Background(), models.ChickenKampung)
	require.NoError(t, err)

	client.err = errors.New("site unreachable")
	_, err = svc.Refresh(context.Background(), models.ChickenKampung)
	require.Error(t, err)

	cached := svc.Quote(models.ChickenKampung)
	require.NotNil(t, cached)
	assert.Equal(t, 65000.0, cached.PricePerKg)
}

func TestOverrideReplacesQuote(t *testing.T) {
	svc := NewService(&fakeClient{}, nil)

	quote := svc.Override(models.ChickenBroiler, 42000)
	assert.True(t, quote.ManualOverride)
	assert.Equal(t, "Manual Input", quote.Source)
	assert.Equal(t, 42000.0, quote.PricePerKg)

	cached := svc.Quote(models.ChickenBroiler)
	require.NotNil(t, cached)
	assert.True(t, cached.ManualOverride)
	// The other type is untouched.
	assert.Nil(t, svc.Quote(models.ChickenKampung))
}

func TestRefreshAllContinuesPastFailures(t *testing.T) {
	client := &fakeClient{quotes: map[string]*models.PriceQuote{
		marketclient.SourcePasarSegar.Key: liveQuote(70000, marketclient.SourcePasarSegar),
	}}
	svc := NewService(client, nil)

	svc.RefreshAll(context.Background())

	// Broiler fetch had no fixture and failed; kampung still landed.
	assert.Nil(t, svc.Quote(models.ChickenBroiler))
	require.NotNil(t, svc.Quote(models.ChickenKampung))
	assert.Equal(t, 2, client.calls)
}
