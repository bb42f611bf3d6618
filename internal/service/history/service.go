package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/petokpredict/server/internal/domain/models"
	"github.com/petokpredict/server/internal/repository/mongodb"
)

// defaultListLimit caps an unbounded history listing.
const defaultListLimit = 200

// SheetLogger mirrors saved calculations into an external audit sheet.
type SheetLogger interface {
	AppendCalculation(ctx context.Context, record models.CalculationRecord) error
}

// Service manages the saved-calculation history. MongoDB is the source
// of truth; the sheet mirror is best effort and never fails a save.
type Service struct {
	repo   mongodb.Repository
	sheet  SheetLogger
	logger *zap.Logger
}

// NewService wires a history service. sheet may be nil when no audit
// sheet is configured.
func NewService(repo mongodb.Repository, sheet SheetLogger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, sheet: sheet, logger: logger}
}

// Save snapshots a computed result into the history. quote supplies
// the provenance of the market price and may be nil.
func (s *Service) Save(ctx context.Context, chickenType models.ChickenType, result models.EconomicsResult, settings models.AdvancedSettings, quote *models.PriceQuote, notes string) (models.CalculationRecord, error) {
	record := buildRecord(chickenType, result, settings, notes)
	if quote != nil {
		record.MarketPriceSource = quote.Source
	}

	record, err := s.repo.InsertCalculation(ctx, record)
	if err != nil {
		return record, err
	}

	if s.sheet != nil {
		if err := s.sheet.AppendCalculation(ctx, record); err != nil {
			s.logger.Warn("failed to mirror calculation to sheet", zap.Error(err))
		}
	}

	s.logger.Info("calculation saved",
		zap.String("id", record.ID.Hex()),
		zap.String("chicken_type", string(chickenType)))
	return record, nil
}

// List returns the stored history, favorites first, newest first.
func (s *Service) List(ctx context.Context) ([]models.CalculationRecord, error) {
	return s.repo.ListCalculations(ctx, defaultListLimit)
}

// Delete removes one record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteCalculation(ctx, id)
}

// SetFavorite pins or unpins a record.
func (s *Service) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return s.repo.SetCalculationFavorite(ctx, id, favorite)
}

func buildRecord(chickenType models.ChickenType, result models.EconomicsResult, settings models.AdvancedSettings, notes string) models.CalculationRecord {
	now := time.Now()

	record := models.CalculationRecord{
		ChickenType: chickenType,
		Assumptions: models.Assumptions{
			Population:          result.Population,
			SurvivalRate:        result.SurvivalRate,
			TargetWeightKg:      result.WeightKg,
			FeedPricePerSack:    float64(result.FeedPricePerSack),
			FeedConversionRatio: result.FCR,
			DayOldChickPrice:    float64(result.DOCPrice),
		},
		HarvestedBirds: result.HarvestedBirds,
		DOCCost:        result.DOCCost,
		FeedCost:       result.TotalFeedCost,
		ExtraCost:      result.ExtraCost,
		TotalCost:      result.TotalCost,

		IsAdvanced:         result.AdvancedActive,
		Basis:              result.Basis,
		DressingPct:        result.DressingPct,
		ProcessCostPerBird: result.ProcessCostPerBird,
		WastagePct:         result.WastagePct,
		ShrinkagePct:       result.ShrinkagePct,
		HarvestAgeDays:     result.HarvestAgeDays,
		VaccineCost:        result.VaccineCost,
		HeatingCost:        result.EnergyCost,
		LaborCost:          result.LaborCost,
		OverheadCost:       result.OverheadCost,
		TransportCost:      result.TransportCost,
		CostPerKg:          result.CostPerKg,
		BreakEvenPrice:     result.BreakEven,
		EPEF:               result.EPEF,

		Notes:           notes,
		CalculationDate: now,
		CreatedAt:       now,
	}

	if result.PricePerKg != nil {
		record.MarketPrice = *result.PricePerKg
	}
	if result.Revenue != nil {
		record.Revenue = *result.Revenue
	}
	if result.Profit != nil {
		record.Profit = *result.Profit
	}
	if result.AdvancedActive {
		record.AINotes = settings.Notes
		record.AISnapshot = settings.AdviceMeta.Snapshot
	}
	return record
}
