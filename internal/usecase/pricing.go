package usecase

import "github.com/veggiekiosk/backend/internal/domain"

// gramsPerPriceUnit is the reference weight for weight-based pricing.
const gramsPerPriceUnit = 500.0

// Quote computes the unit and total price for a matched record at the given
// weight. Per-unit and per-packet records ignore weight entirely: a single
// detected item is always one unit. No rounding happens here; rounding to two
// decimals is a display concern.
func Quote(record *domain.VegetableRecord, weightGrams float64) domain.PriceQuote {
	if weightGrams < 0 {
		weightGrams = 0
	}

	switch record.PricingMode {
	case domain.PricePerUnit:
		return domain.PriceQuote{UnitPrice: record.PricePerUnit, TotalPrice: record.PricePerUnit}
	case domain.PricePerPacket:
		return domain.PriceQuote{UnitPrice: record.PricePerPacket, TotalPrice: record.PricePerPacket}
	default:
		unit := record.PricePer500g
		return domain.PriceQuote{UnitPrice: unit, TotalPrice: unit * (weightGrams / gramsPerPriceUnit)}
	}
}
