package models

// EconomicsResult is the full derived output of one economics
// computation. It is recomputed from scratch on every call and never
// mutated afterwards. Monetary totals are rounded to whole rupiah at
// the boundaries the UI displays them (per-bird feed cost, banded
// baseline costs, final totals); revenue-dependent fields are nil when
// no valid price was supplied.
type EconomicsResult struct {
	ChickenType ChickenType `json:"chicken_type"`

	// Sanitized inputs echoed back to the caller.
	Population       int     `json:"population"`
	SurvivalRate     float64 `json:"survival_rate"`
	WeightKg         float64 `json:"weight_kg"`
	FeedPricePerSack int64   `json:"feed_price_per_sack"`
	FCR              float64 `json:"fcr"`
	DOCPrice         int64   `json:"doc_price"`

	HarvestedBirds int `json:"harvested_birds"`

	FeedCostPerBird int64 `json:"feed_cost_per_bird"`
	TotalFeedCost   int64 `json:"total_feed_cost"`
	DOCCost         int64 `json:"doc_cost"`
	VaccineCost     int64 `json:"vaccine_cost"`
	EnergyCost      int64 `json:"energy_cost"`
	LaborCost       int64 `json:"labor_cost"`
	OverheadCost    int64 `json:"overhead_cost"`
	TransportCost   int64 `json:"transport_cost"`
	ExtraCost       int64 `json:"extra_cost"`
	TotalCost       int64 `json:"total_cost"`

	PriceValid bool     `json:"price_valid"`
	PricePerKg *float64 `json:"price_per_kg,omitempty"`

	Revenue *int64   `json:"revenue,omitempty"`
	Profit  *int64   `json:"profit,omitempty"`
	Margin  *float64 `json:"margin,omitempty"`

	Basis              Basis   `json:"basis"`
	DressingPct        float64 `json:"dressing_pct"`
	ProcessCostPerBird int64   `json:"process_cost_per_bird"`
	WastagePct         float64 `json:"wastage_pct"`
	ShrinkagePct       float64 `json:"shrinkage_pct"`
	ShrinkageFactor    float64 `json:"shrinkage_factor"`

	HarvestAgeDays          int `json:"harvest_age_days"`
	PredictedHarvestAgeDays int `json:"predicted_harvest_age_days"`

	ProductionKg *float64 `json:"production_kg,omitempty"`
	CostPerKg    *float64 `json:"cost_per_kg,omitempty"`
	BreakEven    *float64 `json:"break_even,omitempty"`
	EPEF         float64  `json:"epef"`

	AdvancedActive bool   `json:"advanced_active"`
	Notes          string `json:"notes,omitempty"`
}

// ScenarioResult pairs one what-if perturbation with its computed
// economics.
type ScenarioResult struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Note      string          `json:"note"`
	Overrides Assumptions     `json:"overrides"`
	Result    EconomicsResult `json:"result"`
}
