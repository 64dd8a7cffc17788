package gorm

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/store"
)

// recordPtr constrains P to a pointer to T that implements model.Record.
type recordPtr[T any] interface {
	*T
	model.Record
}

// Ensure Records implements store.RecordStore
var _ store.RecordStore = (*Records[model.Person, *model.Person])(nil)

// Records implements store.RecordStore for one category using GORM.
type Records[T any, P recordPtr[T]] struct {
	db            *gorm.DB
	searchColumn  string
	updateColumns []string
}

// NewRecords creates the record store for T's category.
func NewRecords[T any, P recordPtr[T]](db *gorm.DB) *Records[T, P] {
	searchColumn := "name"
	if P(new(T)).Category() == model.CategoryFilms {
		searchColumn = "title"
	}
	return &Records[T, P]{
		db:            db,
		searchColumn:  searchColumn,
		updateColumns: updateColumns[T, P](db),
	}
}

var schemaCache = &sync.Map{}

// updateColumns lists the columns an upsert rewrites on conflict. The
// primary key and the natural key anchor the row and created_at records
// first insertion, so those survive updates.
func updateColumns[T any, P recordPtr[T]](db *gorm.DB) []string {
	sch, err := schema.Parse(P(new(T)), schemaCache, db.NamingStrategy)
	if err != nil {
		// The models are static; this cannot fail past development.
		panic(err)
	}
	cols := make([]string, 0, len(sch.Fields))
	for _, f := range sch.Fields {
		if f.DBName == "" || f.PrimaryKey || f.DBName == "url" || f.DBName == "created_at" {
			continue
		}
		cols = append(cols, f.DBName)
	}
	return cols
}

// NewStores builds the full category-to-store registry over one handle.
func NewStores(db *gorm.DB) store.Stores {
	return store.Stores{
		model.CategoryPlanets:   NewRecords[model.Planet](db),
		model.CategoryPeople:    NewRecords[model.Person](db),
		model.CategoryFilms:     NewRecords[model.Film](db),
		model.CategorySpecies:   NewRecords[model.Species](db),
		model.CategoryStarships: NewRecords[model.Starship](db),
		model.CategoryVehicles:  NewRecords[model.Vehicle](db),
	}
}

// Upsert inserts the record or updates the row with the same natural key
// in place. Scalars and relationship rows are written in one transaction;
// the ON CONFLICT clause makes concurrent upserts on the same natural key
// safe without in-process locking.
func (s *Records[T, P]) Upsert(ctx context.Context, rec model.Record) error {
	p, ok := rec.(P)
	if !ok {
		return fmt.Errorf("%w: record is not a %s", store.ErrInternal, P(new(T)).Category())
	}
	if p.GetURL() == "" {
		return fmt.Errorf("%w: record has no natural key", store.ErrConflict)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prev := P(new(T))
		err := tx.Select("id").Where("url = ?", p.GetURL()).First(prev).Error
		switch {
		case err == nil:
			// Existing row: keep its local key.
			p.SetID(prev.GetID())
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns(s.updateColumns),
		}).Create(p).Error; err != nil {
			return err
		}
		if p.GetID() == 0 {
			// The insert raced a concurrent upsert and became an update;
			// fetch the key the winner assigned.
			if err := tx.Select("id").Where("url = ?", p.GetURL()).First(prev).Error; err != nil {
				return err
			}
			p.SetID(prev.GetID())
		}

		val := reflect.ValueOf(p).Elem()
		for _, name := range p.Relationships() {
			field := val.FieldByName(name)
			if !field.IsValid() {
				continue
			}
			assoc := tx.Model(p).Association(name)
			if field.Len() == 0 {
				if err := assoc.Clear(); err != nil {
					return err
				}
				continue
			}
			if err := assoc.Replace(field.Interface()); err != nil {
				return err
			}
		}
		return nil
	})
	return store.Translate(err)
}

// Get returns the record with the given natural key, relationships
// populated one level deep.
func (s *Records[T, P]) Get(ctx context.Context, naturalKey string) (model.Record, error) {
	rec := P(new(T))
	err := s.db.WithContext(ctx).Preload(clause.Associations).
		Where("url = ?", naturalKey).First(rec).Error
	if err != nil {
		return nil, store.Translate(err)
	}
	return rec, nil
}

// List returns one page ordered by local key ascending and the total
// count for the current filter.
func (s *Records[T, P]) List(ctx context.Context, opts store.ListOptions) ([]model.Record, int64, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	size := opts.PageSize
	if size < 1 {
		size = 10
	}

	query := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(P(new(T)))
		if opts.Search != "" {
			q = q.Where(s.searchColumn+" ILIKE ?", "%"+opts.Search+"%")
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, store.Translate(err)
	}

	var recs []T
	err := query().Order("id").Limit(size).Offset((page-1)*size).
		Preload(clause.Associations).Find(&recs).Error
	if err != nil {
		return nil, 0, store.Translate(err)
	}

	out := make([]model.Record, 0, len(recs))
	for i := range recs {
		out = append(out, P(&recs[i]))
	}
	return out, total, nil
}

// Delete removes the record with the given natural key. Association rows
// cascade at the schema level; homeworld references are set to NULL.
func (s *Records[T, P]) Delete(ctx context.Context, naturalKey string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := P(new(T))
		if err := tx.Select("id").Where("url = ?", naturalKey).First(rec).Error; err != nil {
			return err
		}
		return tx.Delete(rec).Error
	})
	return store.Translate(err)
}
