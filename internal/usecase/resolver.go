package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/veggiekiosk/backend/internal/domain"
)

// ResolverConfig holds configuration for the name resolver
type ResolverConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// NameResolver maps a detection's free-text vegetable name to a catalog
// record using tiered matching: exact, then substring, then the alias table.
// The first tier that produces a record wins.
type NameResolver struct {
	catalog  domain.CatalogRepository
	cache    domain.CacheRepository
	cacheTTL time.Duration
	debug    bool
}

// NewNameResolver creates a resolver. cache may be nil to disable memoization.
func NewNameResolver(catalog domain.CatalogRepository, cache domain.CacheRepository, config ResolverConfig) *NameResolver {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &NameResolver{
		catalog:  catalog,
		cache:    cache,
		cacheTTL: cacheTTL,
		debug:    config.EnableDebugLogging,
	}
}

// Resolve returns at most one catalog record for rawName. It returns
// ErrVegetableNotFound when no tier matches, and ErrLookupFailed (wrapping
// the cause) when a catalog query itself fails. Empty input short-circuits
// without touching the store.
func (r *NameResolver) Resolve(ctx context.Context, rawName string) (*domain.VegetableRecord, error) {
	normalized := strings.ToLower(strings.TrimSpace(rawName))
	if normalized == "" {
		return nil, domain.ErrVegetableNotFound
	}

	if cached := r.getCached(ctx, normalized); cached != nil {
		return cached, nil
	}

	// Tier 1: exact case-insensitive match
	record, err := r.catalog.FindByName(ctx, normalized)
	if err == nil {
		return r.resolved(ctx, normalized, "exact", record), nil
	}
	if !errors.Is(err, domain.ErrVegetableNotFound) {
		return nil, r.lookupFailed(normalized, err)
	}

	// Tier 2: substring match, shortest name wins
	record, err = r.catalog.FindByNameContains(ctx, normalized)
	if err == nil {
		return r.resolved(ctx, normalized, "substring", record), nil
	}
	if !errors.Is(err, domain.ErrVegetableNotFound) {
		return nil, r.lookupFailed(normalized, err)
	}

	// Tier 3: static alias table to a canonical catalog name
	if canonical, ok := vegetableAliases[normalized]; ok {
		record, err = r.catalog.FindByCanonicalName(ctx, canonical)
		if err == nil {
			return r.resolved(ctx, normalized, "alias", record), nil
		}
		if !errors.Is(err, domain.ErrVegetableNotFound) {
			return nil, r.lookupFailed(normalized, err)
		}
	}

	return nil, domain.ErrVegetableNotFound
}

func (r *NameResolver) resolved(ctx context.Context, normalized, tier string, record *domain.VegetableRecord) *domain.VegetableRecord {
	if r.debug {
		log.Printf("[RESOLVE] %q -> %q via %s tier", normalized, record.Name, tier)
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, resolveCacheKey(normalized), record, r.cacheTTL); err != nil {
			log.Printf("[RESOLVE] cache set failed for %q: %v", normalized, err)
		}
	}
	return record
}

func (r *NameResolver) getCached(ctx context.Context, normalized string) *domain.VegetableRecord {
	if r.cache == nil {
		return nil
	}
	value, err := r.cache.Get(ctx, resolveCacheKey(normalized))
	if err != nil {
		return nil
	}
	record, ok := value.(*domain.VegetableRecord)
	if !ok {
		return nil
	}
	if r.debug {
		log.Printf("[RESOLVE] %q served from cache", normalized)
	}
	return record
}

func (r *NameResolver) lookupFailed(normalized string, err error) error {
	log.Printf("[RESOLVE] catalog query failed for %q: %v", normalized, err)
	return fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
}

func resolveCacheKey(normalized string) string {
	return "resolve:" + normalized
}
