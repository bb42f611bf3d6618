package models

// ComputeRequest asks for a one-off economics computation. Assumptions
// and price are optional overrides; when absent the server's current
// dashboard state is used.
type ComputeRequest struct {
	ChickenType string            `json:"chicken_type"`
	Assumptions *AssumptionsPatch `json:"assumptions,omitempty"`
	Price       *float64          `json:"price,omitempty"`
}

// PriceOverrideRequest applies a manually entered market price.
type PriceOverrideRequest struct {
	ChickenType string  `json:"chicken_type"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// ToggleRequest drives the advanced-mode state machine. The skip flags
// suppress the configurator / advice follow-ups, e.g. when restoring a
// previously saved configuration.
type ToggleRequest struct {
	Enabled          bool `json:"enabled"`
	SkipConfigurator bool `json:"skip_configurator"`
	SkipAdvice       bool `json:"skip_advice"`
}

// AdvancedPatch carries partial direct edits to the advanced
// calibration. Nil fields are untouched; present fields are clamped to
// their valid ranges before being stored.
type AdvancedPatch struct {
	Basis              *Basis        `json:"basis,omitempty"`
	DressingPct        *float64      `json:"dressing_pct,omitempty"`
	ProcessCostPerBird *float64      `json:"process_cost_per_bird,omitempty"`
	HarvestAgeDays     *int          `json:"harvest_age_days,omitempty"`
	WastagePct         *float64      `json:"wastage_pct,omitempty"`
	ShrinkagePct       *float64      `json:"shrinkage_pct,omitempty"`
	LaborCost          *float64      `json:"labor_cost,omitempty"`
	OverheadCost       *float64      `json:"overhead_cost,omitempty"`
	TransportCost      *float64      `json:"transport_cost,omitempty"`
	HeatingCost        *float64      `json:"heating_cost,omitempty"`
	VaccineCost        *float64      `json:"vaccine_cost,omitempty"`
	Notes              *string       `json:"notes,omitempty"`
	Coop               *CoopGeometry `json:"coop,omitempty"`
}

// SaveCalculationRequest stores the current dashboard result in the
// history, optionally annotated.
type SaveCalculationRequest struct {
	Notes string `json:"notes"`
}
