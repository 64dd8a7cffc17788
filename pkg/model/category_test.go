package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	t.Run("accepts every known category", func(t *testing.T) {
		for _, name := range []string{"planets", "people", "films", "species", "starships", "vehicles"} {
			c, err := ParseCategory(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.String())
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		c, err := ParseCategory("  Planets ")
		require.NoError(t, err)
		assert.Equal(t, CategoryPlanets, c)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ParseCategory("droids")
		assert.Error(t, err)

		_, err = ParseCategory("")
		assert.Error(t, err)
	})
}

func TestCategories(t *testing.T) {
	t.Run("planets come before the categories that reference them", func(t *testing.T) {
		order := Categories()
		require.Len(t, order, 6)
		assert.Equal(t, CategoryPlanets, order[0])
	})

	t.Run("covers every category exactly once", func(t *testing.T) {
		seen := map[Category]bool{}
		for _, c := range Categories() {
			assert.False(t, seen[c], "category %s listed twice", c)
			seen[c] = true
		}
		assert.Len(t, seen, 6)
	})
}

func TestCategoryFromLocator(t *testing.T) {
	tests := []struct {
		locator string
		want    Category
	}{
		{"https://swapi.dev/api/people/1/", CategoryPeople},
		{"https://swapi.dev/api/planets/3", CategoryPlanets},
		{"http://localhost:8080/api/films/2/", CategoryFilms},
		{"https://swapi.dev/api/starships/12/", CategoryStarships},
	}
	for _, tt := range tests {
		c, err := CategoryFromLocator(tt.locator)
		require.NoError(t, err, tt.locator)
		assert.Equal(t, tt.want, c, tt.locator)
	}

	t.Run("rejects locators without a category segment", func(t *testing.T) {
		_, err := CategoryFromLocator("https://swapi.dev/api/droids/1/")
		assert.Error(t, err)

		_, err = CategoryFromLocator("not a url")
		assert.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	for _, c := range Categories() {
		rec := New(c)
		require.NotNil(t, rec, c)
		assert.Equal(t, c, rec.Category())
		assert.Zero(t, rec.GetID())
	}
}

func TestNewPlaceholder(t *testing.T) {
	rec := NewPlaceholder(CategoryPeople, "https://swapi.dev/api/people/99/")
	require.NotNil(t, rec)
	assert.Equal(t, "https://swapi.dev/api/people/99/", rec.GetURL())
	assert.Zero(t, rec.GetID())

	person, ok := rec.(*Person)
	require.True(t, ok)
	assert.Empty(t, person.Name)
	assert.Empty(t, person.Films)
}
