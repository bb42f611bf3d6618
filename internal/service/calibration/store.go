package calibration

import (
	"math"
	"sync"

	"github.com/petokpredict/server/internal/domain/models"
)

// Store owns the advanced calibration record. Every mutation goes
// through a named operation that enforces the field's clamp range, so
// the invariants hold no matter which caller writes. The mutex makes
// direct edits and advice hydration atomic relative to each other.
type Store struct {
	mu       sync.Mutex
	settings models.AdvancedSettings
}

// NewStore returns a store seeded with the built-in defaults.
func NewStore() *Store {
	return &Store{settings: models.DefaultAdvancedSettings()}
}

// Replace swaps in a previously persisted record, re-clamping every
// bounded field. Loaded blobs are not trusted to still be in range.
func (s *Store) Replace(settings models.AdvancedSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.DressingPct = clamp(settings.DressingPct, models.DressingMin, models.DressingMax)
	settings.WastagePct = clamp(settings.WastagePct, 0, models.WastageMax)
	settings.ShrinkagePct = clamp(settings.ShrinkagePct, 0, models.ShrinkageMax)
	settings.ProcessCostPerBird = math.Max(0, settings.ProcessCostPerBird)
	settings.LaborCost = math.Max(0, settings.LaborCost)
	settings.OverheadCost = math.Max(0, settings.OverheadCost)
	settings.TransportCost = math.Max(0, settings.TransportCost)
	settings.HeatingCost = math.Max(0, settings.HeatingCost)
	settings.VaccineCost = math.Max(0, settings.VaccineCost)
	if settings.HarvestAgeDays < 1 {
		settings.HarvestAgeDays = models.DefaultAdvancedSettings().HarvestAgeDays
	}
	if settings.Basis != models.BasisCarcass {
		settings.Basis = models.BasisLive
	}
	s.settings = settings
}

// Settings returns a copy of the current record.
func (s *Store) Settings() models.AdvancedSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Reset restores the built-in defaults, dropping all calibration.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = models.DefaultAdvancedSettings()
}

// Apply merges a partial direct edit, clamping each present field.
func (s *Store) Apply(patch models.AdvancedPatch) models.AdvancedSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Basis != nil {
		if *patch.Basis == models.BasisCarcass {
			s.settings.Basis = models.BasisCarcass
		} else {
			s.settings.Basis = models.BasisLive
		}
	}
	if patch.DressingPct != nil {
		s.settings.DressingPct = clamp(*patch.DressingPct, models.DressingMin, models.DressingMax)
	}
	if patch.ProcessCostPerBird != nil {
		s.settings.ProcessCostPerBird = math.Max(0, *patch.ProcessCostPerBird)
	}
	if patch.HarvestAgeDays != nil && *patch.HarvestAgeDays >= 1 {
		s.settings.HarvestAgeDays = *patch.HarvestAgeDays
	}
	if patch.WastagePct != nil {
		s.settings.WastagePct = clamp(*patch.WastagePct, 0, models.WastageMax)
	}
	if patch.ShrinkagePct != nil {
		s.settings.ShrinkagePct = clamp(*patch.ShrinkagePct, 0, models.ShrinkageMax)
	}
	if patch.LaborCost != nil {
		s.settings.LaborCost = math.Max(0, *patch.LaborCost)
	}
	if patch.OverheadCost != nil {
		s.settings.OverheadCost = math.Max(0, *patch.OverheadCost)
	}
	if patch.TransportCost != nil {
		s.settings.TransportCost = math.Max(0, *patch.TransportCost)
	}
	if patch.HeatingCost != nil {
		s.settings.HeatingCost = math.Max(0, *patch.HeatingCost)
		// A direct edit supersedes any electricity folded in by a
		// previous hydration, so later hydrations must not back it out.
		s.settings.AdviceMeta.Electricity = nil
	}
	if patch.VaccineCost != nil {
		s.settings.VaccineCost = math.Max(0, *patch.VaccineCost)
	}
	if patch.Notes != nil {
		s.settings.Notes = *patch.Notes
	}
	if patch.Coop != nil {
		s.settings.Coop = *patch.Coop
	}
	return s.settings
}

// ToggleOptions suppress the follow-up actions of enabling advanced
// mode, e.g. when restoring a saved configuration where re-prompting
// the farmer is unwanted.
type ToggleOptions struct {
	SkipConfigurator bool
	SkipAdvice       bool
}

// ToggleResult reports what the caller should do after a transition.
// The store orchestrates but does not execute the follow-ups.
type ToggleResult struct {
	Enabled          bool
	Changed          bool
	OpenConfigurator bool
	RequestAdvice    bool
}

// Toggle drives the advanced-mode state machine. Transitioning into the
// current state is a no-op. Enabling suggests opening the configurator
// when coop dimensions are missing or advice has never synced, and
// requesting advice when it has never synced; both independently
// suppressible. Disabling is unconditional.
func (s *Store) Toggle(enable bool, opts ToggleOptions) ToggleResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings.Enabled == enable {
		return ToggleResult{Enabled: enable}
	}
	s.settings.Enabled = enable
	res := ToggleResult{Enabled: enable, Changed: true}
	if enable {
		missingDims := s.settings.Coop.LengthM == nil || s.settings.Coop.WidthM == nil
		neverSynced := s.settings.AdviceMeta.LastSync == nil
		if (neverSynced || missingDims) && !opts.SkipConfigurator {
			res.OpenConfigurator = true
		}
		if neverSynced && !opts.SkipAdvice {
			res.RequestAdvice = true
		}
	}
	return res
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
