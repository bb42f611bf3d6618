package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petokpredict/server/internal/domain/models"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

func TestStoreDefaults(t *testing.T) {
	s := NewStore()
	settings := s.Settings()

	assert.False(t, settings.Enabled)
	assert.Equal(t, models.BasisLive, settings.Basis)
	assert.Equal(t, 0.72, settings.DressingPct)
	assert.Equal(t, 35, settings.HarvestAgeDays)
	assert.Equal(t, 0.03, settings.WastagePct)
	assert.Equal(t, 0.02, settings.ShrinkagePct)
}

func TestStoreApplyClampsFields(t *testing.T) {
	s := NewStore()

	settings := s.Apply(models.AdvancedPatch{
		DressingPct:    float64Ptr(0.99),
		WastagePct:     float64Ptr(0.9),
		ShrinkagePct:   float64Ptr(-0.5),
		LaborCost:      float64Ptr(-100),
		HarvestAgeDays: intPtr(0),
	})

	assert.Equal(t, models.DressingMax, settings.DressingPct)
	assert.Equal(t, models.WastageMax, settings.WastagePct)
	assert.Equal(t, 0.0, settings.ShrinkagePct)
	assert.Equal(t, 0.0, settings.LaborCost)
	// Harvest age keeps its previous value rather than accepting zero.
	assert.Equal(t, 35, settings.HarvestAgeDays)
}

func TestStoreApplyPartialPatch(t *testing.T) {
	s := NewStore()

	settings := s.Apply(models.AdvancedPatch{LaborCost: float64Ptr(250000)})

	assert.Equal(t, 250000.0, settings.LaborCost)
	// Untouched fields keep their defaults.
	assert.Equal(t, 200000.0, settings.OverheadCost)
	assert.Equal(t, 150000.0, settings.TransportCost)
}

func TestStoreReplaceReclamps(t *testing.T) {
	s := NewStore()

	// A stored blob may predate the current bounds; loading must not
	// bypass the clamps.
	blob := models.DefaultAdvancedSettings()
	blob.DressingPct = 2.5
	blob.WastagePct = 0.5
	blob.LaborCost = -1
	s.Replace(blob)

	settings := s.Settings()
	assert.Equal(t, models.DressingMax, settings.DressingPct)
	assert.Equal(t, models.WastageMax, settings.WastagePct)
	assert.Equal(t, 0.0, settings.LaborCost)
}

func TestToggleSameStateIsNoop(t *testing.T) {
	s := NewStore()

	res := s.Toggle(false, ToggleOptions{})
	assert.False(t, res.Changed)
	assert.False(t, res.OpenConfigurator)
	assert.False(t, res.RequestAdvice)
}

func TestToggleEnableFirstTime(t *testing.T) {
	s := NewStore()

	res := s.Toggle(true, ToggleOptions{})
	require.True(t, res.Changed)
	assert.True(t, res.Enabled)
	// Never synced and no coop dimensions: both follow-ups fire.
	assert.True(t, res.OpenConfigurator)
	assert.True(t, res.RequestAdvice)
	assert.True(t, s.Settings().Enabled)
}

func TestToggleSkipFlags(t *testing.T) {
	s := NewStore()

	res := s.Toggle(true, ToggleOptions{SkipConfigurator: true, SkipAdvice: true})
	require.True(t, res.Changed)
	assert.False(t, res.OpenConfigurator)
	assert.False(t, res.RequestAdvice)
}

func TestToggleEnableAfterSync(t *testing.T) {
	s := NewStore()

	// Coop dimensions filled and advice synced once: re-enabling is
	// silent.
	s.Apply(models.AdvancedPatch{Coop: &models.CoopGeometry{
		LengthM: float64Ptr(10),
		WidthM:  float64Ptr(5),
	}})
	payload := &models.AdvicePayload{LaborCostIDR: float64Ptr(250000)}
	require.NoError(t, s.HydrateFromAdvice(payload, timeNowFixed()))

	res := s.Toggle(true, ToggleOptions{})
	require.True(t, res.Changed)
	assert.False(t, res.OpenConfigurator)
	assert.False(t, res.RequestAdvice)

	// Disabling is unconditional and quiet.
	res = s.Toggle(false, ToggleOptions{})
	require.True(t, res.Changed)
	assert.False(t, res.Enabled)
}
