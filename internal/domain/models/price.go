package models

import "time"

// PriceQuote is a market price observation for one chicken type, either
// scraped from a retail source or entered manually by the farmer.
type PriceQuote struct {
	PricePerKg     float64   `json:"price"`
	Currency       string    `json:"currency"`
	Unit           string    `json:"unit"`
	Title          string    `json:"title,omitempty"`
	Source         string    `json:"source"`
	ManualOverride bool      `json:"manual_override,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
