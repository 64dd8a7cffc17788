package model

// Unknown is the sentinel stored for scalar attributes the upstream does
// not know. Upstream uses the same literal, so it round-trips unchanged.
const Unknown = "unknown"

// Record is implemented by every category model. It exposes the two keys
// the persistence layer works with and the names of the model's
// relationship fields.
type Record interface {
	GetID() uint
	SetID(uint)
	GetURL() string
	SetURL(string)
	Category() Category

	// Relationships returns the GORM field names of the model's
	// many-to-many associations, in a fixed order.
	Relationships() []string
}

// New returns an empty record of the given category.
func New(c Category) Record {
	switch c {
	case CategoryPlanets:
		return &Planet{}
	case CategoryPeople:
		return &Person{}
	case CategoryFilms:
		return &Film{}
	case CategorySpecies:
		return &Species{}
	case CategoryStarships:
		return &Starship{}
	case CategoryVehicles:
		return &Vehicle{}
	}
	return nil
}

// NewPlaceholder returns a minimally populated record for a natural key
// that has been referenced before its own category was synchronized:
// natural key set, scalars at the Unknown sentinel, no relationships.
// A later sync of the category overwrites everything but the local key.
func NewPlaceholder(c Category, locator string) Record {
	rec := New(c)
	if rec == nil {
		return nil
	}
	rec.SetURL(locator)
	return rec
}
