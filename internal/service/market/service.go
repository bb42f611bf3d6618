package market

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/domain/models"
	"github.com/petokpredict/server/pkg/clients/market"
)

// Service caches the latest market price per chicken type. Scrapes are
// best effort; a failed refresh keeps the previous quote (including a
// manual override) instead of dropping to no price.
type Service struct {
	client market.Client
	logger *zap.Logger

	mu     sync.RWMutex
	quotes map[models.ChickenType]*models.PriceQuote
}

func NewService(client market.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		logger: logger,
		quotes: make(map[models.ChickenType]*models.PriceQuote),
	}
}

// Quote returns the cached quote for a chicken type, or nil when no
// scrape has succeeded and no override was set.
func (s *Service) Quote(t models.ChickenType) *models.PriceQuote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q, ok := s.quotes[t]; ok {
		quote := *q
		return &quote
	}
	return nil
}

// Refresh scrapes the live price for one chicken type and replaces the
// cached quote on success.
func (s *Service) Refresh(ctx context.Context, t models.ChickenType) (*models.PriceQuote, error) {
	source := market.SourceFor(t)
	quote, err := s.client.FetchPrice(ctx, source)
	if err != nil {
		s.logger.Warn("price refresh failed",
			zap.String("source", source.Key),
			zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.quotes[t] = quote
	s.mu.Unlock()

	s.logger.Info("price refreshed",
		zap.String("source", source.Key),
		zap.Float64("price", quote.PricePerKg))

	result := *quote
	return &result, nil
}

// RefreshAll refreshes every tracked chicken type. Errors are logged
// per type and do not abort the rest.
func (s *Service) RefreshAll(ctx context.Context) {
	for _, t := range []models.ChickenType{models.ChickenBroiler, models.ChickenKampung} {
		if _, err := s.Refresh(ctx, t); err != nil {
			continue
		}
	}
}

// Override replaces the cached quote with a farmer-entered price. The
// override survives until the next successful scrape or restart.
func (s *Service) Override(t models.ChickenType, price float64) *models.PriceQuote {
	quote := &models.PriceQuote{
		PricePerKg:     price,
		Currency:       "IDR",
		Unit:           "per kg",
		Title:          market.SourceFor(t).Title,
		Source:         "Manual Input",
		ManualOverride: true,
		Timestamp:      time.Now(),
	}

	s.mu.Lock()
	s.quotes[t] = quote
	s.mu.Unlock()

	s.logger.Info("manual price override set",
		zap.String("chicken_type", string(t)),
		zap.Float64("price", price))

	result := *quote
	return &result
}
