package dashboard

import (
	"sync"

	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/domain/models"
	"github.com/petokpredict/server/internal/service/calibration"
	"github.com/petokpredict/server/internal/service/economics"
	marketsvc "github.com/petokpredict/server/internal/service/market"
)

// Service holds the farmer's working inputs (chicken type + base
// assumptions) and keeps a current economics result derived from them,
// the market quote, and the calibration record. External changes
// (settings edits, price refreshes) invalidate the result through a
// coalescing recomputer rather than recomputing inline.
type Service struct {
	calibration *calibration.Service
	market      *marketsvc.Service
	logger      *zap.Logger
	recomputer  *economics.Recomputer

	mu          sync.RWMutex
	chickenType models.ChickenType
	assumptions models.Assumptions
	latest      models.EconomicsResult
}

func NewService(cal *calibration.Service, mkt *marketsvc.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		calibration: cal,
		market:      mkt,
		logger:      logger,
		chickenType: models.ChickenBroiler,
		assumptions: models.DefaultAssumptions(models.ChickenBroiler),
	}
	s.recomputer = economics.NewRecomputer(s.recompute)
	return s
}

// Start begins the background recompute loop and seeds the first result.
func (s *Service) Start() {
	s.recomputer.Start()
	s.recomputer.Invalidate()
}

// Stop shuts down the recompute loop after any pending pass drains.
func (s *Service) Stop() {
	s.recomputer.Stop()
}

// Invalidate schedules a background recompute. Bursts coalesce into a
// single pass.
func (s *Service) Invalidate() {
	s.recomputer.Invalidate()
}

// ChickenType returns the active chicken type.
func (s *Service) ChickenType() models.ChickenType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chickenType
}

// Assumptions returns a copy of the current base assumptions.
func (s *Service) Assumptions() models.Assumptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assumptions
}

// Latest returns the most recent computed result.
func (s *Service) Latest() models.EconomicsResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Compute applies an optional type switch and assumption patch, then
// computes and returns the result synchronously. Switching chicken type
// resets the assumptions to that type's defaults before the patch is
// applied, mirroring how a farmer starts over when changing flocks.
func (s *Service) Compute(req models.ComputeRequest) models.EconomicsResult {
	s.mu.Lock()
	if req.ChickenType != "" {
		if t := models.ParseChickenType(req.ChickenType); t != s.chickenType {
			s.chickenType = t
			s.assumptions = models.DefaultAssumptions(t)
		}
	}
	if req.Assumptions != nil {
		s.assumptions = req.Assumptions.Apply(s.assumptions)
	}
	chickenType := s.chickenType
	assumptions := s.assumptions
	s.mu.Unlock()

	result := economics.Compute(
		assumptions,
		s.calibration.Settings(),
		s.market.Quote(chickenType),
		economics.Options{ChickenType: chickenType, PriceOverride: req.Price},
	)

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	return result
}

// Scenarios generates the optimistic/realistic/conservative spread for
// the current inputs.
func (s *Service) Scenarios(req models.ComputeRequest) []models.ScenarioResult {
	s.Compute(req)

	s.mu.RLock()
	chickenType := s.chickenType
	assumptions := s.assumptions
	s.mu.RUnlock()

	return economics.GenerateScenarios(
		assumptions,
		s.calibration.Settings(),
		s.market.Quote(chickenType),
		chickenType,
	)
}

func (s *Service) recompute() {
	s.mu.RLock()
	chickenType := s.chickenType
	assumptions := s.assumptions
	s.mu.RUnlock()

	result := economics.Compute(
		assumptions,
		s.calibration.Settings(),
		s.market.Quote(chickenType),
		economics.Options{ChickenType: chickenType},
	)

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	s.logger.Debug("dashboard recomputed",
		zap.String("chicken_type", string(chickenType)),
		zap.Int64("total_cost", result.TotalCost))
}
