package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/veggiekiosk/backend/internal/domain"
)

const vegetableColumns = `id, name, pricing_mode, price_per_500g, price_per_unit, price_per_packet`

// ListVegetables returns the whole catalog ordered by name.
func (s *Store) ListVegetables(ctx context.Context) ([]domain.VegetableRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM vegetables ORDER BY name`, vegetableColumns)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vegetables: %w", err)
	}
	defer rows.Close()

	var records []domain.VegetableRecord
	for rows.Next() {
		record, err := scanVegetable(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

// FindByName matches the name exactly, case-insensitively (the name column
// collates NOCASE).
func (s *Store) FindByName(ctx context.Context, name string) (*domain.VegetableRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM vegetables WHERE name = ? LIMIT 1`, vegetableColumns)
	return s.findOne(ctx, query, name)
}

// FindByNameContains matches any name containing the fragment. When several
// names contain it ("Cabbage", "Chinese Cabbage (Bok choy)"), the shortest
// name wins, then lexicographic order.
func (s *Store) FindByNameContains(ctx context.Context, fragment string) (*domain.VegetableRecord, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM vegetables WHERE name LIKE '%%' || ? || '%%' ORDER BY length(name), name LIMIT 1`,
		vegetableColumns)
	return s.findOne(ctx, query, fragment)
}

// FindByCanonicalName matches the canonical name from the alias table.
func (s *Store) FindByCanonicalName(ctx context.Context, name string) (*domain.VegetableRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM vegetables WHERE name = ? LIMIT 1`, vegetableColumns)
	return s.findOne(ctx, query, name)
}

// AddVegetable inserts a catalog record, assigning an id when absent.
func (s *Store) AddVegetable(ctx context.Context, record *domain.VegetableRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vegetables (id, name, pricing_mode, price_per_500g, price_per_unit, price_per_packet)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.Name, string(record.PricingMode),
		record.PricePer500g, record.PricePerUnit, record.PricePerPacket)
	if err != nil {
		return fmt.Errorf("failed to insert vegetable %q: %w", record.Name, err)
	}
	return nil
}

func (s *Store) findOne(ctx context.Context, query string, arg string) (*domain.VegetableRecord, error) {
	row := s.db.QueryRowContext(ctx, query, arg)
	record, err := scanVegetable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVegetableNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVegetable(row rowScanner) (*domain.VegetableRecord, error) {
	var record domain.VegetableRecord
	var mode string
	err := row.Scan(&record.ID, &record.Name, &mode,
		&record.PricePer500g, &record.PricePerUnit, &record.PricePerPacket)
	if err != nil {
		return nil, err
	}
	record.PricingMode = domain.PricingMode(mode)
	return &record, nil
}
