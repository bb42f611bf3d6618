package economics

import (
	"math"

	"github.com/petokpredict/server/internal/domain/models"
)

// Scenario identifiers.
const (
	ScenarioOptimistic   = "optimistic"
	ScenarioRealistic    = "realistic"
	ScenarioConservative = "conservative"
)

// Scenario bounds: perturbed parameters never leave biologically or
// commercially plausible ranges.
const (
	minScenarioPopulation = 50
	minScenarioSurvival   = 0.7
	minScenarioFCR        = 1.5
	maxScenarioFCR        = 3.2
	minScenarioWeight     = 0.8
)

type scenarioSpec struct {
	id      string
	label   string
	note    string
	perturb func(models.Assumptions) models.Assumptions
}

var scenarioSpecs = []scenarioSpec{
	{
		id:    ScenarioOptimistic,
		label: "Optimis",
		note:  "Input turun, bobot naik, FCR lebih efisien.",
		perturb: func(b models.Assumptions) models.Assumptions {
			return models.Assumptions{
				Population:          int(math.Round(float64(b.Population) * 1.05)),
				SurvivalRate:        math.Min(1, b.SurvivalRate+0.03),
				DayOldChickPrice:    math.Round(b.DayOldChickPrice * 0.94),
				FeedPricePerSack:    math.Round(b.FeedPricePerSack * 0.96),
				FeedConversionRatio: math.Max(minScenarioFCR, round2(b.FeedConversionRatio*0.95)),
				TargetWeightKg:      round2(b.TargetWeightKg + 0.05),
			}
		},
	},
	{
		id:    ScenarioRealistic,
		label: "Realistis",
		note:  "Menggunakan asumsi dasar saat ini.",
		perturb: func(b models.Assumptions) models.Assumptions {
			return b
		},
	},
	{
		id:    ScenarioConservative,
		label: "Konservatif",
		note:  "Survival turun, pakan lebih mahal, bobot terkikis.",
		perturb: func(b models.Assumptions) models.Assumptions {
			return models.Assumptions{
				Population:          int(math.Max(minScenarioPopulation, math.Round(float64(b.Population)*0.92))),
				SurvivalRate:        math.Max(minScenarioSurvival, b.SurvivalRate-0.05),
				DayOldChickPrice:    math.Round(b.DayOldChickPrice * 1.08),
				FeedPricePerSack:    math.Round(b.FeedPricePerSack * 1.07),
				FeedConversionRatio: math.Min(maxScenarioFCR, round2(b.FeedConversionRatio*1.08)),
				TargetWeightKg:      math.Max(minScenarioWeight, round2(b.TargetWeightKg-0.05)),
			}
		},
	},
}

// GenerateScenarios runs the three fixed what-if perturbations of the
// base assumptions through the calculator. Advanced cost fields are
// scaled by the scenario-to-base population ratio with per-field
// floors, so shrinking flocks keep their fixed-cost component. The
// realistic scenario is, by construction, identical to computing the
// base assumptions directly.
func GenerateScenarios(base models.Assumptions, adv models.AdvancedSettings, quote *models.PriceQuote, chickenType models.ChickenType) []models.ScenarioResult {
	results := make([]models.ScenarioResult, 0, len(scenarioSpecs))
	for _, spec := range scenarioSpecs {
		overrides := spec.perturb(base)
		result := Compute(overrides, adv, quote, Options{
			ChickenType:            chickenType,
			ScaleAgainstPopulation: base.Population,
		})
		results = append(results, models.ScenarioResult{
			ID:        spec.id,
			Label:     spec.label,
			Note:      spec.note,
			Overrides: overrides,
			Result:    result,
		})
	}
	return results
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
