// Package store defines the persistence interfaces for the SWAPI mirror
// and the domain error taxonomy every implementation must translate
// storage failures into.
//
// Implementations live in subpackages (currently pkg/store/gorm for
// PostgreSQL via GORM). The HTTP endpoints and the sync orchestrator
// depend only on the interfaces and sentinel errors defined here and
// never see raw driver errors.
package store
