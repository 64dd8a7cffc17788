// Package gorm implements the store interfaces on PostgreSQL via GORM.
//
// Upserts rely on the natural-key uniqueness constraint plus an
// INSERT ... ON CONFLICT clause, so concurrent upserts on the same
// natural key are resolved by the database without in-process locking.
package gorm
