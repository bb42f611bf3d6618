package calibration

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/domain/models"
)

// ErrAdviceInFlight is returned when an advice refresh is requested
// while a previous one has not completed. The new request is ignored.
var ErrAdviceInFlight = errors.New("advice request already in flight")

// Repository persists the calibration record as one opaque blob keyed
// per installation.
type Repository interface {
	LoadSettings(ctx context.Context, installationID string) (*models.AdvancedSettings, error)
	SaveSettings(ctx context.Context, installationID string, settings models.AdvancedSettings) error
}

// AdviceClient produces a calibration advice payload for a farm context.
type AdviceClient interface {
	GenerateAdvice(ctx context.Context, req models.AdviceRequest) (*models.AdvicePayload, error)
}

// Service wraps the store with persistence and advisor orchestration.
type Service struct {
	store          *Store
	repo           Repository
	advice         AdviceClient
	installationID string
	logger         *zap.Logger

	adviceInFlight atomic.Bool
}

// NewService wires a calibration service. advice may be nil when no
// advisor is configured; RefreshAdvice then reports an error.
func NewService(repo Repository, advice AdviceClient, installationID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:          NewStore(),
		repo:           repo,
		advice:         advice,
		installationID: installationID,
		logger:         logger,
	}
}

// Load restores the persisted calibration. A missing record or a
// persistence failure both fall back to the built-in defaults; nothing
// here is fatal.
func (s *Service) Load(ctx context.Context) {
	settings, err := s.repo.LoadSettings(ctx, s.installationID)
	if err != nil {
		s.logger.Warn("failed loading advanced settings, using defaults", zap.Error(err))
		return
	}
	if settings == nil {
		s.logger.Info("no stored advanced settings, using defaults")
		return
	}
	s.store.Replace(*settings)
}

// Settings returns a copy of the current calibration record.
func (s *Service) Settings() models.AdvancedSettings {
	return s.store.Settings()
}

// Apply merges a direct edit and persists the result.
func (s *Service) Apply(ctx context.Context, patch models.AdvancedPatch) models.AdvancedSettings {
	settings := s.store.Apply(patch)
	s.persist(ctx)
	return settings
}

// Toggle drives the enable/disable state machine and persists the
// transition.
func (s *Service) Toggle(ctx context.Context, enable bool, opts ToggleOptions) ToggleResult {
	res := s.store.Toggle(enable, opts)
	if res.Changed {
		s.persist(ctx)
	}
	return res
}

// RefreshAdvice fetches fresh advice and hydrates the store with it.
// Only one request may be in flight; concurrent calls are ignored with
// ErrAdviceInFlight. A refresh completing after advanced mode was
// disabled is still applied; its effect stays inert until re-enable.
func (s *Service) RefreshAdvice(ctx context.Context, req models.AdviceRequest) (models.AdvancedSettings, error) {
	if s.advice == nil {
		return s.store.Settings(), errors.New("no advice client configured")
	}
	if !s.adviceInFlight.CompareAndSwap(false, true) {
		return s.store.Settings(), ErrAdviceInFlight
	}
	defer s.adviceInFlight.Store(false)

	payload, err := s.advice.GenerateAdvice(ctx, req)
	if err != nil {
		return s.store.Settings(), err
	}
	if err := s.store.HydrateFromAdvice(payload, time.Now()); err != nil {
		return s.store.Settings(), err
	}
	s.persist(ctx)
	s.logger.Info("advice hydrated into calibration", zap.Int("population", req.Population))
	return s.store.Settings(), nil
}

func (s *Service) persist(ctx context.Context) {
	if err := s.repo.SaveSettings(ctx, s.installationID, s.store.Settings()); err != nil {
		s.logger.Error("failed persisting advanced settings", zap.Error(err))
	}
}
