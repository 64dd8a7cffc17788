package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/vamartid/swapi-mirror/pkg/store"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore implements store.HealthStore using GORM.
type HealthStore struct {
	db *gorm.DB
}

// NewHealthStore creates a new HealthStore.
func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// CheckConnectivity verifies the database connection is alive.
func (s *HealthStore) CheckConnectivity(ctx context.Context) error {
	var one int
	return store.Translate(s.db.WithContext(ctx).Raw(`SELECT 1`).Scan(&one).Error)
}
