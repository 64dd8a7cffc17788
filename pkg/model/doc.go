// Package model defines the database models for the SWAPI mirror.
//
// This package contains GORM models that map one table per resource
// category, plus the association tables that hold many-to-many
// relationships between categories.
//
// # Keys
//
// Every record carries two keys:
//
//   - a local key (id): an auto-incremented integer used for relational
//     joins, assigned once and stable across repeated sync passes
//   - a natural key (url): the upstream record locator, unique per
//     category, used as the uniqueness anchor for upserts
//
// # Sentinel values
//
// Scalar attributes the upstream does not know are stored as the
// explicit Unknown sentinel rather than NULL or an empty string.
//
// # Tables
//
//   - planets, people, films, species, starships, vehicles
//   - film_characters, film_planets, film_starships, film_vehicles,
//     film_species, person_species, starship_pilots, vehicle_pilots
package model
