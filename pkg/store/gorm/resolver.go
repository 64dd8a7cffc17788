package gorm

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/store"
)

// Ensure Resolver implements store.Resolver
var _ store.Resolver = (*Resolver)(nil)

// Resolver maps upstream locators to local keys, creating placeholder
// rows for natural keys that have not been synchronized yet. The cache
// is populated as a sync pass proceeds; a Resolver is used by one pass
// at a time and is not safe for concurrent use.
type Resolver struct {
	db    *gorm.DB
	cache map[string]uint
}

// NewResolver creates a Resolver over the given handle.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db, cache: map[string]uint{}}
}

// Resolve returns the local key for the record the locator identifies.
// An unseen natural key gets a placeholder row (natural key set, scalars
// at the unknown sentinel, no relationships) whose freshly assigned local
// key is returned. Resolution is order-independent: circular references
// between categories are absorbed by placeholders and filled in later.
func (r *Resolver) Resolve(ctx context.Context, locator string) (uint, error) {
	locator = strings.TrimSpace(locator)
	if id, ok := r.cache[locator]; ok {
		return id, nil
	}

	category, err := model.CategoryFromLocator(locator)
	if err != nil {
		return 0, err
	}

	rec := model.NewPlaceholder(category, locator)
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoNothing: true,
	}).Create(rec).Error
	if err != nil {
		return 0, store.Translate(err)
	}

	if rec.GetID() == 0 {
		// The row already existed (or a concurrent insert won the
		// conflict); read back its key.
		existing := model.New(category)
		err := r.db.WithContext(ctx).Select("id").
			Where("url = ?", locator).First(existing).Error
		if err != nil {
			return 0, store.Translate(err)
		}
		rec.SetID(existing.GetID())
	}

	r.cache[locator] = rec.GetID()
	return rec.GetID(), nil
}
