package domain

import (
	"context"
	"time"
)

// CatalogRepository defines the read contract against the vegetable catalog.
// Lookup methods return ErrVegetableNotFound when no row matches; any other
// error means the query itself failed.
type CatalogRepository interface {
	// ListVegetables returns all records ordered by name.
	ListVegetables(ctx context.Context) ([]VegetableRecord, error)
	// FindByName matches the name exactly, case-insensitively.
	FindByName(ctx context.Context, name string) (*VegetableRecord, error)
	// FindByNameContains matches any name containing the fragment,
	// case-insensitively, preferring the shortest name.
	FindByNameContains(ctx context.Context, fragment string) (*VegetableRecord, error)
	// FindByCanonicalName matches the exact canonical name from the alias table.
	FindByCanonicalName(ctx context.Context, name string) (*VegetableRecord, error)
}

// CartRepository persists confirmed line items per kiosk session.
type CartRepository interface {
	AddItem(ctx context.Context, item *CartLineItem) error
	// ListItems returns a session's items, newest first.
	ListItems(ctx context.Context, sessionID string) ([]CartLineItem, error)
	CartTotal(ctx context.Context, sessionID string) (float64, error)
	RemoveItem(ctx context.Context, itemID string) error
	ClearSession(ctx context.Context, sessionID string) error
}

// VisionClient sends an image plus an instructional prompt to a multimodal
// model and returns its unstructured text output.
type VisionClient interface {
	Generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
