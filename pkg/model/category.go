package model

import (
	"fmt"
	"net/url"
	"strings"
)

// Category identifies one kind of mirrored resource. Its string value is
// both the API path segment and the upstream collection name.
type Category string

const (
	CategoryPlanets   Category = "planets"
	CategoryPeople    Category = "people"
	CategoryFilms     Category = "films"
	CategorySpecies   Category = "species"
	CategoryStarships Category = "starships"
	CategoryVehicles  Category = "vehicles"
)

// Categories returns all categories in sync order. Planets come first so
// that homeworld references mostly resolve without placeholders; the order
// is a churn optimization only, placeholders make any order correct.
func Categories() []Category {
	return []Category{
		CategoryPlanets,
		CategoryPeople,
		CategorySpecies,
		CategoryFilms,
		CategoryStarships,
		CategoryVehicles,
	}
}

// ParseCategory validates a category name, e.g. from a URL path segment.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryPlanets, CategoryPeople, CategoryFilms,
		CategorySpecies, CategoryStarships, CategoryVehicles:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// CategoryFromLocator extracts the category from an upstream record
// locator such as https://swapi.dev/api/people/1/.
func CategoryFromLocator(locator string) (Category, error) {
	u, err := url.Parse(strings.TrimSpace(locator))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("malformed locator %q", locator)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	// The record identifier follows the collection segment, so scan from
	// the end: .../api/<category>/<id>/
	for i := len(segments) - 1; i >= 0; i-- {
		if c, err := ParseCategory(segments[i]); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("locator %q names no known category", locator)
}

func (c Category) String() string { return string(c) }

// TableName returns the table holding this category's rows. Collection
// names double as table names.
func (c Category) TableName() string { return string(c) }
