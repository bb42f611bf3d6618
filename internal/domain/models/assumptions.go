package models

import "strings"

// ChickenType selects the production segment a calculation targets.
type ChickenType string

const (
	ChickenBroiler ChickenType = "broiler"
	ChickenKampung ChickenType = "kampung"
)

// ParseChickenType normalizes free-form input, falling back to kampung.
func ParseChickenType(value string) ChickenType {
	if strings.EqualFold(strings.TrimSpace(value), string(ChickenBroiler)) {
		return ChickenBroiler
	}
	return ChickenKampung
}

// Assumptions holds the six base production parameters the farmer adjusts.
type Assumptions struct {
	Population          int     `bson:"population" json:"population"`
	SurvivalRate        float64 `bson:"survival_rate" json:"survival_rate"`
	TargetWeightKg      float64 `bson:"target_weight_kg" json:"target_weight_kg"`
	FeedPricePerSack    float64 `bson:"feed_price_per_sack" json:"feed_price_per_sack"`
	FeedConversionRatio float64 `bson:"fcr" json:"fcr"`
	DayOldChickPrice    float64 `bson:"doc_price" json:"doc_price"`
}

// DefaultAssumptions returns the starting parameters for a chicken type.
// Broiler cycles are shorter and cheaper per chick; kampung birds convert
// feed less efficiently but sell at a premium.
func DefaultAssumptions(t ChickenType) Assumptions {
	if t == ChickenBroiler {
		return Assumptions{
			Population:          100,
			SurvivalRate:        0.96,
			TargetWeightKg:      1.10,
			FeedPricePerSack:    400000,
			FeedConversionRatio: 1.7,
			DayOldChickPrice:    6000,
		}
	}
	return Assumptions{
		Population:          100,
		SurvivalRate:        0.95,
		TargetWeightKg:      1.00,
		FeedPricePerSack:    400000,
		FeedConversionRatio: 2.3,
		DayOldChickPrice:    8000,
	}
}

// AssumptionsPatch carries partial updates to the base assumptions.
// Nil fields leave the current value unchanged.
type AssumptionsPatch struct {
	Population          *int     `json:"population,omitempty"`
	SurvivalRate        *float64 `json:"survival_rate,omitempty"`
	TargetWeightKg      *float64 `json:"target_weight_kg,omitempty"`
	FeedPricePerSack    *float64 `json:"feed_price_per_sack,omitempty"`
	FeedConversionRatio *float64 `json:"fcr,omitempty"`
	DayOldChickPrice    *float64 `json:"doc_price,omitempty"`
}

// Apply merges the patch into a copy of the assumptions.
func (p AssumptionsPatch) Apply(base Assumptions) Assumptions {
	if p.Population != nil {
		base.Population = *p.Population
	}
	if p.SurvivalRate != nil {
		base.SurvivalRate = *p.SurvivalRate
	}
	if p.TargetWeightKg != nil {
		base.TargetWeightKg = *p.TargetWeightKg
	}
	if p.FeedPricePerSack != nil {
		base.FeedPricePerSack = *p.FeedPricePerSack
	}
	if p.FeedConversionRatio != nil {
		base.FeedConversionRatio = *p.FeedConversionRatio
	}
	if p.DayOldChickPrice != nil {
		base.DayOldChickPrice = *p.DayOldChickPrice
	}
	return base
}
