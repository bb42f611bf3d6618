package economics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petokpredict/server/internal/domain/models"
)

func float64Ptr(v float64) *float64 { return &v }

func quoteAt(price float64) *models.PriceQuote {
	return &models.PriceQuote{PricePerKg: price, Currency: "IDR", Unit: "per kg"}
}

func TestComputeKampungDefaults(t *testing.T) {
	res := Compute(
		models.DefaultAssumptions(models.ChickenKampung),
		models.DefaultAdvancedSettings(),
		quoteAt(30000),
		Options{ChickenType: models.ChickenKampung},
	)

	assert.Equal(t, 95, res.HarvestedBirds)
	assert.Equal(t, int64(18400), res.FeedCostPerBird)
	assert.Equal(t, int64(1840000), res.TotalFeedCost)
	assert.Equal(t, int64(800000), res.DOCCost)
	assert.Equal(t, int64(150000), res.VaccineCost)
	assert.Equal(t, int64(7281), res.EnergyCost)
	assert.Equal(t, int64(2797281), res.TotalCost)

	require.NotNil(t, res.Revenue)
	assert.Equal(t, int64(2850000), *res.Revenue)
	require.NotNil(t, res.Profit)
	assert.Equal(t, int64(52719), *res.Profit)
	require.NotNil(t, res.Margin)
	assert.InDelta(t, 52719.0/2850000.0, *res.Margin, 1e-9)

	// Kampung growth curve: 45 + 1.0*30 + (2.3-2.8)*5 = 72.5, rounded up.
	assert.Equal(t, 73, res.PredictedHarvestAgeDays)
	assert.Equal(t, 73, res.HarvestAgeDays)
	assert.InDelta(t, 9500.0/(2.3*73), res.EPEF, 1e-9)

	require.NotNil(t, res.CostPerKg)
	assert.InDelta(t, 2797281.0/95.0, *res.CostPerKg, 1e-9)
	assert.Equal(t, res.CostPerKg, res.BreakEven)

	// Kampung baseline has no feed wastage.
	assert.Equal(t, 0.0, res.WastagePct)
	assert.Equal(t, models.BasisLive, res.Basis)
	assert.False(t, res.AdvancedActive)
}

func TestComputeBroilerDefaults(t *testing.T) {
	res := Compute(
		models.DefaultAssumptions(models.ChickenBroiler),
		models.DefaultAdvancedSettings(),
		quoteAt(35000),
		Options{ChickenType: models.ChickenBroiler},
	)

	// Broiler growth curve: 20 + 1.1*8 + (1.7-1.6)*4 = 29.2.
	assert.Equal(t, 29, res.PredictedHarvestAgeDays)
	// Broiler baseline carries 5% feed wastage.
	assert.Equal(t, 0.05, res.WastagePct)
	assert.Equal(t, int64(15708), res.FeedCostPerBird)
	assert.Equal(t, 96, res.HarvestedBirds)
}

func TestComputeNoPrice(t *testing.T) {
	res := Compute(
		models.DefaultAssumptions(models.ChickenKampung),
		models.DefaultAdvancedSettings(),
		nil,
		Options{ChickenType: models.ChickenKampung},
	)

	assert.False(t, res.PriceValid)
	assert.Nil(t, res.Revenue)
	assert.Nil(t, res.Profit)
	assert.Nil(t, res.Margin)
	assert.Nil(t, res.PricePerKg)
	// Cost-side figures still come out.
	assert.Equal(t, int64(2797281), res.TotalCost)
}

func TestComputePriceOverrideWins(t *testing.T) {
	res := Compute(
		models.DefaultAssumptions(models.ChickenKampung),
		models.DefaultAdvancedSettings(),
		quoteAt(30000),
		Options{ChickenType: models.ChickenKampung, PriceOverride: float64Ptr(40000)},
	)

	require.NotNil(t, res.PricePerKg)
	assert.Equal(t, 40000.0, *res.PricePerKg)
	require.NotNil(t, res.Revenue)
	assert.Equal(t, int64(95*40000), *res.Revenue)
}

func TestComputeClampsHostileInputs(t *testing.T) {
	res := Compute(
		models.Assumptions{
			Population:          -50,
			SurvivalRate:        1.7,
			TargetWeightKg:      -2,
			FeedPricePerSack:    0,
			FeedConversionRatio: -1,
			DayOldChickPrice:    -9000,
		},
		models.DefaultAdvancedSettings(),
		nil,
		Options{ChickenType: models.ChickenKampung},
	)

	assert.Equal(t, 1, res.Population)
	assert.Equal(t, 1.0, res.SurvivalRate)
	assert.Equal(t, 1.0, res.WeightKg)
	assert.Equal(t, int64(1), res.FeedPricePerSack)
	assert.Equal(t, 2.0, res.FCR)
	assert.Equal(t, int64(0), res.DOCPrice)
	assert.LessOrEqual(t, res.HarvestedBirds, res.Population)
}

func TestComputeNegativePriceInvalid(t *testing.T) {
	res := Compute(
		models.DefaultAssumptions(models.ChickenKampung),
		models.DefaultAdvancedSettings(),
		quoteAt(-5),
		Options{ChickenType: models.ChickenKampung},
	)

	assert.False(t, res.PriceValid)
	assert.Nil(t, res.Revenue)
}

func TestComputeAdvancedCarcassBasis(t *testing.T) {
	adv := models.DefaultAdvancedSettings()
	adv.Enabled = true
	adv.Basis = models.BasisCarcass
	adv.DressingPct = 0.72
	adv.ProcessCostPerBird = 1500
	adv.WastagePct = 0.03
	adv.ShrinkagePct = 0.02
	adv.HarvestAgeDays = 35

	live := adv
	live.Basis = models.BasisLive

	assumptions := models.DefaultAssumptions(models.ChickenBroiler)
	carcassRes := Compute(assumptions, adv, quoteAt(35000), Options{ChickenType: models.ChickenBroiler})
	liveRes := Compute(assumptions, live, quoteAt(35000), Options{ChickenType: models.ChickenBroiler})

	require.NotNil(t, carcassRes.ProductionKg)
	require.NotNil(t, liveRes.ProductionKg)
	// Dressing takes a bigger bite than shrinkage, so carcass mass is
	// strictly lower at the defaults.
	assert.Less(t, *carcassRes.ProductionKg, *liveRes.ProductionKg)
	assert.Equal(t, models.BasisCarcass, carcassRes.Basis)
	assert.Equal(t, int64(1500), carcassRes.ProcessCostPerBird)
	assert.Equal(t, 35, carcassRes.HarvestAgeDays)
	// Live basis ignores dressing and processing entirely.
	assert.Equal(t, int64(0), liveRes.ProcessCostPerBird)
	assert.InDelta(t, 0.98, liveRes.ShrinkageFactor, 1e-9)
}

func TestComputeAdvancedUsesCalibratedCosts(t *testing.T) {
	adv := models.DefaultAdvancedSettings()
	adv.Enabled = true
	adv.VaccineCost = 120000
	adv.HeatingCost = 90000
	adv.LaborCost = 300000
	adv.OverheadCost = 200000
	adv.TransportCost = 150000

	res := Compute(
		models.DefaultAssumptions(models.ChickenBroiler),
		adv,
		nil,
		Options{ChickenType: models.ChickenBroiler},
	)

	assert.Equal(t, int64(120000), res.VaccineCost)
	assert.Equal(t, int64(90000), res.EnergyCost)
	assert.Equal(t, int64(300000), res.LaborCost)
	assert.Equal(t, int64(200000), res.OverheadCost)
	assert.Equal(t, int64(150000), res.TransportCost)
	assert.Equal(t, int64(860000), res.ExtraCost)
	assert.True(t, res.AdvancedActive)
}

func TestComputeRevenueMonotonicInPrice(t *testing.T) {
	assumptions := models.DefaultAssumptions(models.ChickenBroiler)
	adv := models.DefaultAdvancedSettings()

	var prev int64 = -1
	for _, price := range []float64{20000, 25000, 30000, 35000, 40000} {
		res := Compute(assumptions, adv, quoteAt(price), Options{ChickenType: models.ChickenBroiler})
		require.NotNil(t, res.Revenue)
		assert.Greater(t, *res.Revenue, prev)
		prev = *res.Revenue
	}
}

func TestComputeBandedBaselineSteps(t *testing.T) {
	adv := models.DefaultAdvancedSettings()
	base := models.DefaultAssumptions(models.ChickenKampung)

	base.Population = 100
	oneBlock := Compute(base, adv, nil, Options{ChickenType: models.ChickenKampung})
	base.Population = 101
	twoBlocks := Compute(base, adv, nil, Options{ChickenType: models.ChickenKampung})

	assert.Equal(t, int64(150000), oneBlock.VaccineCost)
	assert.Equal(t, int64(300000), twoBlocks.VaccineCost)
	assert.Equal(t, int64(7281), oneBlock.EnergyCost)
	assert.Equal(t, int64(14563), twoBlocks.EnergyCost)
}
