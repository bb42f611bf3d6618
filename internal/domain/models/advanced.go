package models

import "time"

// Basis selects whether price and mass calculations use live weight or
// processed carcass weight.
type Basis string

const (
	BasisLive    Basis = "live"
	BasisCarcass Basis = "carcass"
)

// Ventilation enumerates coop airflow systems.
type Ventilation string

const (
	VentilationConventional Ventilation = "konvensional"
	VentilationTunnel       Ventilation = "tunnel"
	VentilationMixed        Ventilation = "mixed"
)

// Clamp ranges for the calibrated fields. Direct edits and advice
// hydration both go through these bounds.
const (
	DressingMin  = 0.45
	DressingMax  = 0.90
	WastageMax   = 0.15
	ShrinkageMax = 0.15
)

// CoopGeometry captures the physical coop description collected by the
// configurator. Dimensions are optional until the farmer fills them in.
type CoopGeometry struct {
	LengthM     *float64    `bson:"length_m" json:"length_m,omitempty"`
	WidthM      *float64    `bson:"width_m" json:"width_m,omitempty"`
	HeightM     *float64    `bson:"height_m" json:"height_m,omitempty"`
	Ventilation Ventilation `bson:"ventilation" json:"ventilation,omitempty"`
	Extras      []string    `bson:"extras" json:"extras,omitempty"`
}

// HeatingDetail records the heater sizing the advisor suggested.
type HeatingDetail struct {
	Bulbs        *int     `bson:"bulbs" json:"bulbs,omitempty"`
	WattPerBulb  *float64 `bson:"watt_per_bulb" json:"watt_per_bulb,omitempty"`
	HoursPerDay  *float64 `bson:"hours_per_day" json:"hours_per_day,omitempty"`
	Days         *int     `bson:"days" json:"days,omitempty"`
	OtherDevices []string `bson:"other_devices" json:"other_devices,omitempty"`
}

// ElectricityDetail records the advisor's electricity estimate before it
// was folded into the combined energy cost.
type ElectricityDetail struct {
	KWh  *float64 `bson:"kwh" json:"kwh,omitempty"`
	Cost float64  `bson:"cost" json:"cost"`
}

// VaccineItem is one line of the suggested vaccination schedule.
type VaccineItem struct {
	Name    string   `bson:"name" json:"name"`
	Day     *int     `bson:"day" json:"day,omitempty"`
	Dose    string   `bson:"dose" json:"dose,omitempty"`
	CostIDR *float64 `bson:"cost_idr" json:"cost_idr,omitempty"`
}

// AdviceMeta tracks advisor sync state and the detail behind the merged
// cost fields. Snapshot keeps the raw payload verbatim for audit/reuse.
type AdviceMeta struct {
	LastSync    *time.Time         `bson:"last_sync" json:"last_sync,omitempty"`
	Snapshot    *AdvicePayload     `bson:"snapshot" json:"snapshot,omitempty"`
	Heating     *HeatingDetail     `bson:"heating" json:"heating,omitempty"`
	Electricity *ElectricityDetail `bson:"electricity" json:"electricity,omitempty"`
	Vaccines    []VaccineItem      `bson:"vaccines" json:"vaccines,omitempty"`
}

// AdvancedSettings is the extended cost/process model ("advanced mode").
// All clamped fields must stay within their documented ranges at all
// times, including immediately after advice hydration.
type AdvancedSettings struct {
	Enabled            bool         `bson:"enabled" json:"enabled"`
	Basis              Basis        `bson:"basis" json:"basis"`
	DressingPct        float64      `bson:"dressing_pct" json:"dressing_pct"`
	ProcessCostPerBird float64      `bson:"process_cost_per_bird" json:"process_cost_per_bird"`
	HarvestAgeDays     int          `bson:"harvest_age_days" json:"harvest_age_days"`
	WastagePct         float64      `bson:"wastage_pct" json:"wastage_pct"`
	ShrinkagePct       float64      `bson:"shrinkage_pct" json:"shrinkage_pct"`
	LaborCost          float64      `bson:"labor_cost" json:"labor_cost"`
	OverheadCost       float64      `bson:"overhead_cost" json:"overhead_cost"`
	TransportCost      float64      `bson:"transport_cost" json:"transport_cost"`
	HeatingCost        float64      `bson:"heating_cost" json:"heating_cost"`
	VaccineCost        float64      `bson:"vaccine_cost" json:"vaccine_cost"`
	ElectricityCost    float64      `bson:"electricity_cost" json:"electricity_cost"`
	Notes              string       `bson:"notes" json:"notes"`
	Coop               CoopGeometry `bson:"coop" json:"coop"`
	AdviceMeta         AdviceMeta   `bson:"advice_meta" json:"advice_meta"`
}

// DefaultAdvancedSettings returns the record used before the farmer has
// calibrated anything.
func DefaultAdvancedSettings() AdvancedSettings {
	return AdvancedSettings{
		Enabled:            false,
		Basis:              BasisLive,
		DressingPct:        0.72,
		ProcessCostPerBird: 1500,
		HarvestAgeDays:     35,
		WastagePct:         0.03,
		ShrinkagePct:       0.02,
		LaborCost:          300000,
		OverheadCost:       200000,
		TransportCost:      150000,
		HeatingCost:        0,
		VaccineCost:        100000,
		ElectricityCost:    0,
	}
}
