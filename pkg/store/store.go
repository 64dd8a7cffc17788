package store

import (
	"context"

	"github.com/vamartid/swapi-mirror/pkg/model"
)

// ListOptions control pagination and filtering of List.
type ListOptions struct {
	// Page is 1-based.
	Page     int
	PageSize int
	// Search filters on the category's display column (name or title),
	// case-insensitive substring match. Empty means no filter.
	Search string
}

// RecordStore is the generic CRUD surface for one category. Records are
// keyed by their natural key (the upstream locator); local keys are
// assigned by the store and never change once assigned.
type RecordStore interface {
	// Upsert inserts the record or updates the existing row with the
	// same natural key in place, preserving its local key. Scalar and
	// relationship attributes are applied atomically; concurrent
	// upserts on the same natural key are safe.
	Upsert(ctx context.Context, rec model.Record) error

	// Get returns the record with the given natural key, relationships
	// populated, or ErrNotFound.
	Get(ctx context.Context, naturalKey string) (model.Record, error)

	// List returns one page of records ordered by local key ascending
	// (insertion order, stable pagination) and the total count.
	List(ctx context.Context, opts ListOptions) ([]model.Record, int64, error)

	// Delete removes the record with the given natural key, or returns
	// ErrNotFound. Association rows referencing the record are removed;
	// placeholder rows in other categories are left intact.
	Delete(ctx context.Context, naturalKey string) error
}

// Stores maps each category to its record store.
type Stores map[model.Category]RecordStore

// Resolver maps an upstream locator to a local key, creating a
// placeholder row on first sight.
type Resolver interface {
	Resolve(ctx context.Context, locator string) (uint, error)
}

// ResolverFactory produces a Resolver for one sync pass. Resolvers
// cache locator-to-key mappings, so each pass needs its own: a cache
// that outlives a pass would hand out keys of rows deleted in between.
type ResolverFactory func() Resolver

// HealthStore reports storage connectivity for the status endpoint.
type HealthStore interface {
	CheckConnectivity(ctx context.Context) error
}
