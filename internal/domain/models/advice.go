package models

// AdvicePayload is the wire format produced by the AI advisor. Every
// field is optional; absent fields leave the calibration unchanged.
// Numeric values are untrusted and normalized/clamped on hydration.
type AdvicePayload struct {
	Basis            string             `bson:"basis,omitempty" json:"basis,omitempty"`
	HarvestAgeDays   *float64           `bson:"harvest_age_days,omitempty" json:"harvest_age_days,omitempty"`
	DressingPct      *float64           `bson:"dressing_pct,omitempty" json:"dressing_pct,omitempty"`
	ProcessCostIDR   *float64           `bson:"process_cost_idr,omitempty" json:"process_cost_idr,omitempty"`
	WastagePct       *float64           `bson:"wastage_pct,omitempty" json:"wastage_pct,omitempty"`
	ShrinkagePct     *float64           `bson:"shrinkage_pct,omitempty" json:"shrinkage_pct,omitempty"`
	Heating          *AdviceHeating     `bson:"heating,omitempty" json:"heating,omitempty"`
	Electricity      *AdviceElectricity `bson:"electricity,omitempty" json:"electricity,omitempty"`
	Vaccines         *AdviceVaccines    `bson:"vaccines,omitempty" json:"vaccines,omitempty"`
	LaborCostIDR     *float64           `bson:"labor_cost_idr,omitempty" json:"labor_cost_idr,omitempty"`
	OverheadCostIDR  *float64           `bson:"overhead_cost_idr,omitempty" json:"overhead_cost_idr,omitempty"`
	TransportCostIDR *float64           `bson:"transport_cost_idr,omitempty" json:"transport_cost_idr,omitempty"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// AdviceHeating describes the suggested brooding setup.
type AdviceHeating struct {
	Needed           *bool    `bson:"needed,omitempty" json:"needed,omitempty"`
	Bulbs            *int     `bson:"bulbs,omitempty" json:"bulbs,omitempty"`
	WattPerBulb      *float64 `bson:"watt_per_bulb,omitempty" json:"watt_per_bulb,omitempty"`
	HoursPerDay      *float64 `bson:"hours_per_day,omitempty" json:"hours_per_day,omitempty"`
	Days             *int     `bson:"days,omitempty" json:"days,omitempty"`
	OtherDevices     []string `bson:"other_devices,omitempty" json:"other_devices,omitempty"`
	EstimatedCostIDR *float64 `bson:"estimated_cost_idr,omitempty" json:"estimated_cost_idr,omitempty"`
}

// AdviceElectricity describes the suggested electricity budget.
type AdviceElectricity struct {
	KWh     *float64 `bson:"kwh,omitempty" json:"kwh,omitempty"`
	CostIDR *float64 `bson:"cost_idr,omitempty" json:"cost_idr,omitempty"`
}

// AdviceVaccines carries the vaccination schedule and its total cost.
type AdviceVaccines struct {
	TotalCostIDR *float64      `bson:"total_cost_idr,omitempty" json:"total_cost_idr,omitempty"`
	Items        []VaccineItem `bson:"items,omitempty" json:"items,omitempty"`
}

// IsZero reports whether the payload carries no usable field at all.
func (p *AdvicePayload) IsZero() bool {
	if p == nil {
		return true
	}
	return p.Basis == "" &&
		p.HarvestAgeDays == nil &&
		p.DressingPct == nil &&
		p.ProcessCostIDR == nil &&
		p.WastagePct == nil &&
		p.ShrinkagePct == nil &&
		p.Heating == nil &&
		p.Electricity == nil &&
		p.Vaccines == nil &&
		p.LaborCostIDR == nil &&
		p.OverheadCostIDR == nil &&
		p.TransportCostIDR == nil &&
		p.Notes == ""
}

// AdviceRequest is the farm context sent to the advisor as anchor data.
type AdviceRequest struct {
	Population  int          `json:"population"`
	ChickenType ChickenType  `json:"chicken_type"`
	Coop        CoopGeometry `json:"coop"`
	CustomNeeds []string     `json:"custom_needs,omitempty"`
}
