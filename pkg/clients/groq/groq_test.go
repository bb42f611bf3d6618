package groq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petokpredict/server/internal/domain/models"
)

func float64Ptr(v float64) *float64 { return &v }

const sampleAdvice = `{
  "basis": "live",
  "harvest_age_days": 32,
  "dressing_pct": 0.72,
  "wastage_pct": 0.04,
  "heating": {
    "needed": true,
    "bulbs": 8,
    "watt_per_bulb": 60,
    "estimated_cost_idr": 95000
  },
  "electricity": {"kwh": 120, "cost_idr": 175000},
  "vaccines": {
    "total_cost_idr": 130000,
    "items": [{"name": "ND-IB", "day": 4, "dose": "tetes mata", "cost_idr": 60000}]
  },
  "labor_cost_idr": 280000,
  "notes": "Jaga suhu brooding."
}`

func TestParseAdvicePlainJSON(t *testing.T) {
	payload, err := ParseAdvice(sampleAdvice)
	require.NoError(t, err)

	assert.Equal(t, "live", payload.Basis)
	require.NotNil(t, payload.HarvestAgeDays)
	assert.Equal(t, 32.0, *payload.HarvestAgeDays)
	require.NotNil(t, payload.Heating)
	require.NotNil(t, payload.Heating.Bulbs)
	assert.Equal(t, 8, *payload.Heating.Bulbs)
	require.NotNil(t, payload.Electricity)
	assert.Equal(t, 175000.0, *payload.Electricity.CostIDR)
	require.NotNil(t, payload.Vaccines)
	require.Len(t, payload.Vaccines.Items, 1)
	assert.Equal(t, "ND-IB", payload.Vaccines.Items[0].Name)
	assert.Equal(t, "Jaga suhu brooding.", payload.Notes)
}

func TestParseAdviceStripsCodeFences(t *testing.T) {
	raw := "```json\n" + sampleAdvice + "\n```"

	payload, err := ParseAdvice(raw)
	require.NoError(t, err)
	require.NotNil(t, payload.LaborCostIDR)
	assert.Equal(t, 280000.0, *payload.LaborCostIDR)
}

func TestParseAdviceExtractsObjectFromProse(t *testing.T) {
	raw := "Berikut rekomendasi saya:\n" + sampleAdvice + "\nSemoga membantu!"

	payload, err := ParseAdvice(raw)
	require.NoError(t, err)
	assert.Equal(t, "live", payload.Basis)
}

func TestParseAdviceInvalidJSON(t *testing.T) {
	_, err := ParseAdvice("maaf, saya tidak bisa membantu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestBuildAdvisorPromptAnchors(t *testing.T) {
	req := models.AdviceRequest{
		Population:  500,
		ChickenType: models.ChickenBroiler,
		Coop: models.CoopGeometry{
			LengthM:     float64Ptr(12),
			WidthM:      float64Ptr(6),
			Ventilation: models.VentilationTunnel,
		},
		CustomNeeds: []string{"kipas tambahan"},
	}

	prompt := buildAdvisorPrompt(req)

	assert.Contains(t, prompt, "Populasi: 500")
	assert.Contains(t, prompt, "Jenis ayam: broiler")
	assert.Contains(t, prompt, "panjang 12, lebar 6, tinggi -")
	assert.Contains(t, prompt, "Ventilasi: tunnel")
	assert.Contains(t, prompt, "kipas tambahan")
	// The schema block itself must survive intact.
	assert.Contains(t, prompt, `"harvest_age_days": number`)
	assert.True(t, strings.Contains(prompt, "Aturan ketat"))
}

func TestBuildAdvisorPromptUnknownVentilation(t *testing.T) {
	prompt := buildAdvisorPrompt(models.AdviceRequest{Population: 100, ChickenType: models.ChickenKampung})
	assert.Contains(t, prompt, "Ventilasi: tidak diketahui")
	assert.Contains(t, prompt, "Detail custom: []")
}
