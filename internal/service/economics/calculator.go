package economics

import (
	"math"

	"github.com/petokpredict/server/internal/domain/models"
)

// Baseline cost banding: vaccine/vitamin and brooding energy scale in
// steps per started block of 100 birds. The energy figure models ten
// brooding bulbs per block over a 504-hour brooding window at the PLN
// household tariff.
const (
	feedSackKg = 50

	birdBlockSize       = 100
	vaccinePerBlock     = 100000
	vitaminPerBlock     = 50000
	bulbsPerBlock       = 10
	broodingHours       = 504
	tariffIDRPerKWh     = 1444.70
	minScenarioRatio    = 0.1
	minHarvestAgePredic = 20
)

// Per-field floors for population-ratio scaling of advanced cost
// fields. Costs carry a fixed component that does not shrink linearly
// with flock size, so small scenario populations keep a cost floor.
const (
	vaccineScaleFloor   = 0.5
	energyScaleFloor    = 0.6
	laborScaleFloor     = 0.5
	overheadScaleFloor  = 0.4
	transportScaleFloor = 0.7
)

// Options adjusts a single computation without touching the inputs.
type Options struct {
	// ChickenType selects the biological profile. Empty means kampung.
	ChickenType models.ChickenType
	// PriceOverride wins over the quote's price when set.
	PriceOverride *float64
	// ScaleAgainstPopulation, when positive, scales the advanced cost
	// fields by population ratio (used by the scenario generator).
	ScaleAgainstPopulation int
}

// Compute derives the full economics of one production cycle. It is a
// pure function of its arguments: no ambient state, no side effects,
// and it never fails: invalid inputs are clamped to safe values and a
// missing price yields nil revenue-dependent fields.
func Compute(a models.Assumptions, adv models.AdvancedSettings, quote *models.PriceQuote, opts Options) models.EconomicsResult {
	chickenType := opts.ChickenType
	if chickenType != models.ChickenBroiler {
		chickenType = models.ChickenKampung
	}
	isBroiler := chickenType == models.ChickenBroiler

	pop := a.Population
	if pop < 1 {
		pop = 1
	}
	survival := a.SurvivalRate
	if math.IsNaN(survival) || survival < 0 {
		survival = 0
	} else if survival > 1 {
		survival = 1
	}
	weight := a.TargetWeightKg
	if math.IsNaN(weight) || weight <= 0 {
		weight = 1
	}
	feedPrice := int64(math.Round(a.FeedPricePerSack))
	if feedPrice < 1 {
		feedPrice = 1
	}
	fcr := a.FeedConversionRatio
	if math.IsNaN(fcr) || fcr <= 0 {
		fcr = 2.0
	}
	docPrice := int64(math.Round(a.DayOldChickPrice))
	if docPrice < 0 {
		docPrice = 0
	}

	var priceInput float64
	if opts.PriceOverride != nil {
		priceInput = *opts.PriceOverride
	} else if quote != nil {
		priceInput = quote.PricePerKg
	}
	priceValid := priceInput > 0 && !math.IsNaN(priceInput) && !math.IsInf(priceInput, 0)

	// Heavier targets and less efficient conversion both imply longer
	// cycles. Calibrated so defaults land on 30-40 day broiler and
	// 60-75 day kampung cycles.
	var bioAge float64
	if isBroiler {
		bioAge = 20 + weight*8 + (fcr-1.6)*4
	} else {
		bioAge = 45 + weight*30 + (fcr-2.8)*5
	}
	predictedAge := int(math.Round(bioAge))
	if predictedAge < minHarvestAgePredic {
		predictedAge = minHarvestAgePredic
	}

	advancedActive := adv.Enabled

	wastage := 0.0
	if advancedActive {
		wastage = math.Max(0, adv.WastagePct)
	} else if isBroiler {
		wastage = 0.05
	}
	shrinkage := 0.0
	if advancedActive {
		shrinkage = math.Max(0, adv.ShrinkagePct)
	}
	shrinkageFactor := math.Max(0, 1-shrinkage)

	harvestAge := predictedAge
	if advancedActive {
		if adv.HarvestAgeDays > 0 {
			harvestAge = adv.HarvestAgeDays
		}
		if harvestAge < 1 {
			harvestAge = 1
		}
	}

	basis := models.BasisLive
	if advancedActive && adv.Basis == models.BasisCarcass {
		basis = models.BasisCarcass
	}
	dressing := 0.72
	var processCost int64
	if basis == models.BasisCarcass {
		dressing = math.Min(math.Max(adv.DressingPct, models.DressingMin), models.DressingMax)
		processCost = int64(math.Round(math.Max(0, adv.ProcessCostPerBird)))
	}

	harvest := int(math.Round(float64(pop) * survival))

	feedCostPerBird := int64(math.Round(float64(feedPrice) / feedSackKg * (1 + wastage) * fcr * weight))
	totalFeedCost := int64(pop) * feedCostPerBird
	docCost := int64(pop) * docPrice

	blocks := int64(math.Ceil(float64(pop) / birdBlockSize))
	baseVaccineCost := blocks*vaccinePerBlock + blocks*vitaminPerBlock
	baseEnergyCost := int64(math.Round(float64(blocks) * bulbsPerBlock * broodingHours / 1000 * tariffIDRPerKWh))

	ratio := 1.0
	if opts.ScaleAgainstPopulation > 0 {
		ratio = math.Max(float64(pop)/float64(opts.ScaleAgainstPopulation), minScenarioRatio)
	}
	scaled := func(value, minFactor float64) int64 {
		return int64(math.Round(value * math.Max(ratio, minFactor)))
	}

	var vaccineCost, energyCost, laborCost, overheadCost, transportCost, extraCost int64
	if advancedActive {
		vaccineCost = scaled(adv.VaccineCost, vaccineScaleFloor)
		energyCost = scaled(adv.HeatingCost, energyScaleFloor)
		laborCost = scaled(adv.LaborCost, laborScaleFloor)
		overheadCost = scaled(adv.OverheadCost, overheadScaleFloor)
		transportCost = scaled(adv.TransportCost, transportScaleFloor)
		extraCost = vaccineCost + energyCost + laborCost + overheadCost + transportCost
	} else {
		vaccineCost = baseVaccineCost
		energyCost = baseEnergyCost
		extraCost = baseVaccineCost + baseEnergyCost
	}

	totalCost := docCost + totalFeedCost + extraCost

	var revenue *int64
	var massKg float64
	if priceValid {
		var r int64
		if basis == models.BasisCarcass {
			massKg = float64(harvest) * weight * dressing
			r = int64(math.Round(massKg*priceInput - float64(harvest)*float64(processCost)))
		} else {
			massKg = float64(harvest) * weight * shrinkageFactor
			r = int64(math.Round(massKg * priceInput))
		}
		if r < 0 {
			r = 0
		}
		revenue = &r
	}

	var profit *int64
	var margin *float64
	if revenue != nil {
		p := *revenue - totalCost
		profit = &p
		if *revenue > 0 {
			m := float64(p) / float64(*revenue)
			margin = &m
		}
	}

	var productionKg, costPerKg, breakEven *float64
	if massKg > 0 {
		productionKg = &massKg
		perKg := float64(totalCost) / massKg
		costPerKg = &perKg
		breakEven = &perKg
	}

	epef := (survival * 100 * weight * 100) / (fcr * float64(harvestAge))

	result := models.EconomicsResult{
		ChickenType:             chickenType,
		Population:              pop,
		SurvivalRate:            survival,
		WeightKg:                weight,
		FeedPricePerSack:        feedPrice,
		FCR:                     fcr,
		DOCPrice:                docPrice,
		HarvestedBirds:          harvest,
		FeedCostPerBird:         feedCostPerBird,
		TotalFeedCost:           totalFeedCost,
		DOCCost:                 docCost,
		VaccineCost:             vaccineCost,
		EnergyCost:              energyCost,
		LaborCost:               laborCost,
		OverheadCost:            overheadCost,
		TransportCost:           transportCost,
		ExtraCost:               extraCost,
		TotalCost:               totalCost,
		PriceValid:              priceValid,
		Revenue:                 revenue,
		Profit:                  profit,
		Margin:                  margin,
		Basis:                   basis,
		DressingPct:             dressing,
		ProcessCostPerBird:      processCost,
		WastagePct:              wastage,
		ShrinkagePct:            shrinkage,
		ShrinkageFactor:         shrinkageFactor,
		HarvestAgeDays:          harvestAge,
		PredictedHarvestAgeDays: predictedAge,
		ProductionKg:            productionKg,
		CostPerKg:               costPerKg,
		BreakEven:               breakEven,
		EPEF:                    epef,
		AdvancedActive:          advancedActive,
		Notes:                   adv.Notes,
	}
	if priceValid {
		result.PricePerKg = &priceInput
	}
	return result
}
