package sqlite

import (
	"context"
	"fmt"
	"log"

	"github.com/veggiekiosk/backend/internal/domain"
)

// defaultCatalog is the stock list a fresh kiosk starts with. Prices are in
// rupees; each record's pricing mode selects the one meaningful price field.
var defaultCatalog = []domain.VegetableRecord{
	{Name: "Potato", PricingMode: domain.PricePer500g, PricePer500g: 40},
	{Name: "Tomato", PricingMode: domain.PricePer500g, PricePer500g: 35},
	{Name: "Onion", PricingMode: domain.PricePer500g, PricePer500g: 30},
	{Name: "Onion Spring", PricingMode: domain.PricePerPacket, PricePerPacket: 25},
	{Name: "Carrot", PricingMode: domain.PricePer500g, PricePer500g: 45},
	{Name: "Lettuce", PricingMode: domain.PricePerUnit, PricePerUnit: 50},
	{Name: "Cabbage", PricingMode: domain.PricePerUnit, PricePerUnit: 35},
	{Name: "Chinese Cabbage (Bok choy)", PricingMode: domain.PricePerUnit, PricePerUnit: 45},
	{Name: "Cauliflower", PricingMode: domain.PricePerUnit, PricePerUnit: 40},
	{Name: "Eggplant", PricingMode: domain.PricePer500g, PricePer500g: 38},
	{Name: "Ginger", PricingMode: domain.PricePer500g, PricePer500g: 60},
	{Name: "Garlic", PricingMode: domain.PricePer500g, PricePer500g: 80},
	{Name: "Mint", PricingMode: domain.PricePerPacket, PricePerPacket: 15},
}

// Seed inserts the given records into the catalog.
func (s *Store) Seed(ctx context.Context, records []domain.VegetableRecord) error {
	for i := range records {
		if err := s.AddVegetable(ctx, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seedIfEmpty(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vegetables`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count vegetables: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Printf("[SQLITE] empty catalog, seeding %d default vegetables", len(defaultCatalog))
	return s.Seed(ctx, defaultCatalog)
}
