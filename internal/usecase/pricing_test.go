package usecase

import (
	"testing"

	"github.com/veggiekiosk/backend/internal/domain"
)

func TestQuotePerFiveHundredGrams(t *testing.T) {
	potato := &domain.VegetableRecord{
		ID:           "veg-1",
		Name:         "Potato",
		PricingMode:  domain.PricePer500g,
		PricePer500g: 40,
	}

	t.Run("scales linearly with weight", func(t *testing.T) {
		quote := Quote(potato, 750)
		if quote.UnitPrice != 40 {
			t.Errorf("UnitPrice = %v, want 40", quote.UnitPrice)
		}
		if quote.TotalPrice != 60 {
			t.Errorf("TotalPrice = %v, want 60", quote.TotalPrice)
		}
	})

	t.Run("doubling weight doubles total", func(t *testing.T) {
		single := Quote(potato, 300)
		double := Quote(potato, 600)
		if double.TotalPrice != 2*single.TotalPrice {
			t.Errorf("Quote(600) = %v, want 2*Quote(300) = %v", double.TotalPrice, 2*single.TotalPrice)
		}
	})

	t.Run("zero weight prices to zero", func(t *testing.T) {
		quote := Quote(potato, 0)
		if quote.TotalPrice != 0 {
			t.Errorf("TotalPrice = %v, want 0", quote.TotalPrice)
		}
		if quote.UnitPrice != 40 {
			t.Errorf("UnitPrice = %v, want 40", quote.UnitPrice)
		}
	})

	t.Run("negative weight clamps to zero", func(t *testing.T) {
		quote := Quote(potato, -200)
		if quote.TotalPrice != 0 {
			t.Errorf("TotalPrice = %v, want 0", quote.TotalPrice)
		}
	})
}

func TestQuoteWeightInvariantModes(t *testing.T) {
	lettuce := &domain.VegetableRecord{
		ID:           "veg-2",
		Name:         "Lettuce",
		PricingMode:  domain.PricePerUnit,
		PricePerUnit: 50,
	}
	mint := &domain.VegetableRecord{
		ID:             "veg-3",
		Name:           "Mint",
		PricingMode:    domain.PricePerPacket,
		PricePerPacket: 15,
	}

	weights := []float64{0, 100, 500, 2000}

	t.Run("per unit ignores weight", func(t *testing.T) {
		for _, w := range weights {
			quote := Quote(lettuce, w)
			if quote.UnitPrice != 50 || quote.TotalPrice != 50 {
				t.Errorf("Quote(lettuce, %v) = %+v, want unit=total=50", w, quote)
			}
		}
	})

	t.Run("per packet ignores weight", func(t *testing.T) {
		for _, w := range weights {
			quote := Quote(mint, w)
			if quote.UnitPrice != 15 || quote.TotalPrice != 15 {
				t.Errorf("Quote(mint, %v) = %+v, want unit=total=15", w, quote)
			}
		}
	})
}

func TestQuoteNeverNegative(t *testing.T) {
	records := []*domain.VegetableRecord{
		{Name: "Potato", PricingMode: domain.PricePer500g, PricePer500g: 40},
		{Name: "Lettuce", PricingMode: domain.PricePerUnit, PricePerUnit: 50},
		{Name: "Mint", PricingMode: domain.PricePerPacket, PricePerPacket: 15},
	}

	for _, record := range records {
		for _, w := range []float64{0, 1, 250, 500, 1234.5} {
			if quote := Quote(record, w); quote.TotalPrice < 0 {
				t.Errorf("Quote(%s, %v).TotalPrice = %v, want >= 0", record.Name, w, quote.TotalPrice)
			}
		}
	}
}
