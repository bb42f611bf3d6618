package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalculationRecord is one saved calculation in the farmer's history.
// It snapshots both the inputs and the derived figures so a record can
// be reloaded even after assumptions or prices move on.
type CalculationRecord struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	ChickenType ChickenType `bson:"chicken_type" json:"chicken_type"`
	Assumptions Assumptions `bson:"assumptions" json:"assumptions"`

	MarketPrice       float64 `bson:"market_price" json:"market_price"`
	MarketPriceSource string  `bson:"market_price_source" json:"market_price_source,omitempty"`

	HarvestedBirds int   `bson:"harvested_birds" json:"harvested_birds"`
	DOCCost        int64 `bson:"doc_cost" json:"doc_cost"`
	FeedCost       int64 `bson:"feed_cost" json:"feed_cost"`
	ExtraCost      int64 `bson:"extra_cost" json:"extra_cost"`
	TotalCost      int64 `bson:"total_cost" json:"total_cost"`
	Revenue        int64 `bson:"revenue" json:"revenue"`
	Profit         int64 `bson:"profit" json:"profit"`

	IsAdvanced         bool     `bson:"is_advanced" json:"is_advanced"`
	Basis              Basis    `bson:"basis" json:"basis"`
	DressingPct        float64  `bson:"dressing_pct" json:"dressing_pct"`
	ProcessCostPerBird int64    `bson:"process_cost" json:"process_cost"`
	WastagePct         float64  `bson:"wastage_pct" json:"wastage_pct"`
	ShrinkagePct       float64  `bson:"shrinkage_pct" json:"shrinkage_pct"`
	HarvestAgeDays     int      `bson:"harvest_age" json:"harvest_age"`
	VaccineCost        int64    `bson:"vaccine_cost" json:"vaccine_cost"`
	HeatingCost        int64    `bson:"heating_cost" json:"heating_cost"`
	LaborCost          int64    `bson:"labor_cost" json:"labor_cost"`
	OverheadCost       int64    `bson:"overhead_cost" json:"overhead_cost"`
	TransportCost      int64    `bson:"transport_cost" json:"transport_cost"`
	CostPerKg          *float64 `bson:"cost_per_kg" json:"cost_per_kg,omitempty"`
	BreakEvenPrice     *float64 `bson:"break_even_price" json:"break_even_price,omitempty"`
	EPEF               float64  `bson:"epef" json:"epef"`

	Notes      string         `bson:"notes" json:"notes,omitempty"`
	AINotes    string         `bson:"ai_notes" json:"ai_notes,omitempty"`
	AISnapshot *AdvicePayload `bson:"ai_snapshot" json:"ai_snapshot,omitempty"`

	IsFavorite      bool      `bson:"is_favorite" json:"is_favorite"`
	CalculationDate time.Time `bson:"calculation_date" json:"calculation_date"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
