package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veggiekiosk/backend/internal/domain"
)

// timeLayout is RFC3339 with fixed-width nanoseconds so stored timestamps
// sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// AddItem inserts a confirmed line item. The id and creation timestamp are
// assigned here when the caller left them empty.
func (s *Store) AddItem(ctx context.Context, item *domain.CartLineItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checkout_items
		 (id, session_id, vegetable_id, vegetable_name, weight_g, unit_price, total_price, confidence_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.SessionID, item.VegetableID, item.VegetableName,
		item.WeightGrams, item.UnitPrice, item.TotalPrice, item.ConfidencePercent,
		item.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert checkout item: %w", err)
	}
	return nil
}

// ListItems returns a session's line items, newest first.
func (s *Store) ListItems(ctx context.Context, sessionID string) ([]domain.CartLineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, vegetable_id, vegetable_name, weight_g, unit_price, total_price, confidence_score, created_at
		 FROM checkout_items WHERE session_id = ? ORDER BY created_at DESC, rowid DESC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkout items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartLineItem
	for rows.Next() {
		var item domain.CartLineItem
		var createdAt string
		err := rows.Scan(&item.ID, &item.SessionID, &item.VegetableID, &item.VegetableName,
			&item.WeightGrams, &item.UnitPrice, &item.TotalPrice, &item.ConfidencePercent, &createdAt)
		if err != nil {
			return nil, err
		}
		if ts, err := time.Parse(timeLayout, createdAt); err == nil {
			item.CreatedAt = ts
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// CartTotal sums a session's line totals.
func (s *Store) CartTotal(ctx context.Context, sessionID string) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM checkout_items WHERE session_id = ?`,
		sessionID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to compute cart total: %w", err)
	}
	return total, nil
}

// RemoveItem deletes a single line item by id.
func (s *Store) RemoveItem(ctx context.Context, itemID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM checkout_items WHERE id = ?`, itemID); err != nil {
		return fmt.Errorf("failed to remove checkout item: %w", err)
	}
	return nil
}

// ClearSession deletes every line item belonging to a session.
func (s *Store) ClearSession(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM checkout_items WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear checkout session: %w", err)
	}
	return nil
}
