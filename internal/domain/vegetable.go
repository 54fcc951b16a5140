package domain

import "time"

// PricingMode selects which price field of a VegetableRecord is authoritative.
type PricingMode string

const (
	PricePer500g   PricingMode = "per_500g"
	PricePerUnit   PricingMode = "per_unit"
	PricePerPacket PricingMode = "per_packet"
)

// VegetableRecord is a sellable vegetable in the catalog. Exactly one price
// field is meaningful, selected by PricingMode; the others may be zero.
type VegetableRecord struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	PricingMode    PricingMode `json:"pricing_mode"`
	PricePer500g   float64     `json:"price_per_500g"`
	PricePerUnit   float64     `json:"price_per_unit"`
	PricePerPacket float64     `json:"price_per_packet"`
}

// RawDetection is the unverified output of one vision inference call.
// Numeric-looking fields arrive as free text and are parsed later; the raw
// weight string is kept so a garbage value can still be displayed.
type RawDetection struct {
	VegetableName      string
	ConfidencePercent  int
	EstimatedWeightRaw string
	WeightConfidence   string
	Description        string
	NutritionalInfo    string
	StorageTips        string
}

// PriceQuote is the outcome of pricing a matched record at a given weight.
type PriceQuote struct {
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// PricedResult is what one scan produces for display. When Matched is false
// the prices are zero and VegetableID is empty.
type PricedResult struct {
	VegetableName     string  `json:"vegetable_name"`
	ConfidencePercent int     `json:"confidence"`
	WeightGrams       float64 `json:"estimated_weight_g"`
	WeightRaw         string  `json:"estimated_weight,omitempty"`
	WeightConfidence  string  `json:"weight_confidence,omitempty"`
	Description       string  `json:"description"`
	NutritionalInfo   string  `json:"nutritional_info,omitempty"`
	StorageTips       string  `json:"storage_tips,omitempty"`
	Matched           bool    `json:"database_match"`
	VegetableID       string  `json:"vegetable_id,omitempty"`
	UnitPrice         float64 `json:"unit_price"`
	TotalPrice        float64 `json:"total_price"`
}

// CartLineItem is one confirmed scan persisted to a kiosk session's cart.
// Rows are created on explicit confirm and never mutated afterwards.
type CartLineItem struct {
	ID                string    `json:"id"`
	SessionID         string    `json:"session_id"`
	VegetableID       string    `json:"vegetable_id,omitempty"`
	VegetableName     string    `json:"vegetable_name"`
	WeightGrams       float64   `json:"weight_g"`
	UnitPrice         float64   `json:"unit_price"`
	TotalPrice        float64   `json:"total_price"`
	ConfidencePercent int       `json:"confidence_score"`
	CreatedAt         time.Time `json:"created_at"`
}
