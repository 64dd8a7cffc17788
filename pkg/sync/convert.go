package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/store"
	"github.com/vamartid/swapi-mirror/pkg/swapi"
)

// build decodes one raw upstream record and resolves its references
// into local keys through the pass's resolver. Decode failures and
// unresolvable references make the record fail as a whole; the caller
// skips it.
func build(ctx context.Context, r store.Resolver, category model.Category, raw json.RawMessage) (model.Record, error) {
	switch category {
	case model.CategoryPlanets:
		return buildPlanet(raw)
	case model.CategoryPeople:
		return buildPerson(ctx, r, raw)
	case model.CategoryFilms:
		return buildFilm(ctx, r, raw)
	case model.CategorySpecies:
		return buildSpecies(ctx, r, raw)
	case model.CategoryStarships:
		return buildStarship(ctx, r, raw)
	case model.CategoryVehicles:
		return buildVehicle(ctx, r, raw)
	}
	return nil, fmt.Errorf("unknown category %q", category)
}

func buildPlanet(raw json.RawMessage) (model.Record, error) {
	rp, err := swapi.DecodePlanet(raw)
	if err != nil {
		return nil, err
	}
	return &model.Planet{
		URL:            rp.URL,
		Name:           orUnknown(rp.Name),
		Diameter:       orUnknown(rp.Diameter),
		RotationPeriod: orUnknown(rp.RotationPeriod),
		OrbitalPeriod:  orUnknown(rp.OrbitalPeriod),
		Gravity:        orUnknown(rp.Gravity),
		Population:     orUnknown(rp.Population),
		Climate:        orUnknown(rp.Climate),
		Terrain:        orUnknown(rp.Terrain),
		SurfaceWater:   orUnknown(rp.SurfaceWater),
	}, nil
}

func buildPerson(ctx context.Context, r store.Resolver, raw json.RawMessage) (model.Record, error) {
	rp, err := swapi.DecodePerson(raw)
	if err != nil {
		return nil, err
	}
	homeworld, err := resolveOptional(ctx, r, rp.Homeworld)
	if err != nil {
		return nil, err
	}
	films, err := resolveAll[model.Film](ctx, r, rp.Films)
	if err != nil {
		return nil, err
	}
	species, err := resolveAll[model.Species](ctx, r, rp.Species)
	if err != nil {
		return nil, err
	}
	starships, err := resolveAll[model.Starship](ctx, r, rp.Starships)
	if err != nil {
		return nil, err
	}
	vehicles, err := resolveAll[model.Vehicle](ctx, r, rp.Vehicles)
	if err != nil {
		return nil, err
	}
	return &model.Person{
		URL:         rp.URL,
		Name:        orUnknown(rp.Name),
		BirthYear:   orUnknown(rp.BirthYear),
		EyeColor:    orUnknown(rp.EyeColor),
		Gender:      orUnknown(rp.Gender),
		HairColor:   orUnknown(rp.HairColor),
		Height:      orUnknown(rp.Height),
		Mass:        orUnknown(rp.Mass),
		SkinColor:   orUnknown(rp.SkinColor),
		HomeworldID: homeworld,
		Films:       films,
		Species:     species,
		Starships:   starships,
		Vehicles:    vehicles,
	}, nil
}

func buildFilm(ctx context.Context, r store.Resolver, raw json.RawMessage) (model.Record, error) {
	rf, err := swapi.DecodeFilm(raw)
	if err != nil {
		return nil, err
	}
	characters, err := resolveAll[model.Person](ctx, r, rf.Characters)
	if err != nil {
		return nil, err
	}
	planets, err := resolveAll[model.Planet](ctx, r, rf.Planets)
	if err != nil {
		return nil, err
	}
	starships, err := resolveAll[model.Starship](ctx, r, rf.Starships)
	if err != nil {
		return nil, err
	}
	vehicles, err := resolveAll[model.Vehicle](ctx, r, rf.Vehicles)
	if err != nil {
		return nil, err
	}
	species, err := resolveAll[model.Species](ctx, r, rf.Species)
	if err != nil {
		return nil, err
	}
	return &model.Film{
		URL:          rf.URL,
		Title:        orUnknown(rf.Title),
		EpisodeID:    rf.EpisodeID,
		OpeningCrawl: orUnknown(rf.OpeningCrawl),
		Director:     orUnknown(rf.Director),
		Producer:     orUnknown(rf.Producer),
		ReleaseDate:  orUnknown(rf.ReleaseDate),
		Characters:   characters,
		Planets:      planets,
		Starships:    starships,
		Vehicles:     vehicles,
		Species:      species,
	}, nil
}

func buildSpecies(ctx context.Context, r store.Resolver, raw json.RawMessage) (model.Record, error) {
	rs, err := swapi.DecodeSpecies(raw)
	if err != nil {
		return nil, err
	}
	homeworld, err := resolveOptional(ctx, r, rs.Homeworld)
	if err != nil {
		return nil, err
	}
	people, err := resolveAll[model.Person](ctx, r, rs.People)
	if err != nil {
		return nil, err
	}
	return &model.Species{
		URL:             rs.URL,
		Name:            orUnknown(rs.Name),
		Classification:  orUnknown(rs.Classification),
		Designation:     orUnknown(rs.Designation),
		AverageHeight:   orUnknown(rs.AverageHeight),
		AverageLifespan: orUnknown(rs.AverageLifespan),
		Language:        orUnknown(rs.Language),
		HomeworldID:     homeworld,
		People:          people,
	}, nil
}

func buildStarship(ctx context.Context, r store.Resolver, raw json.RawMessage) (model.Record, error) {
	rs, err := swapi.DecodeStarship(raw)
	if err != nil {
		return nil, err
	}
	pilots, err := resolveAll[model.Person](ctx, r, rs.Pilots)
	if err != nil {
		return nil, err
	}
	films, err := resolveAll[model.Film](ctx, r, rs.Films)
	if err != nil {
		return nil, err
	}
	return &model.Starship{
		URL:              rs.URL,
		Name:             orUnknown(rs.Name),
		Model:            orUnknown(rs.Model),
		StarshipClass:    orUnknown(rs.StarshipClass),
		Manufacturer:     orUnknown(rs.Manufacturer),
		CostInCredits:    orUnknown(rs.CostInCredits),
		Length:           orUnknown(rs.Length),
		Crew:             orUnknown(rs.Crew),
		Passengers:       orUnknown(rs.Passengers),
		HyperdriveRating: orUnknown(rs.HyperdriveRating),
		Pilots:           pilots,
		Films:            films,
	}, nil
}

func buildVehicle(ctx context.Context, r store.Resolver, raw json.RawMessage) (model.Record, error) {
	rv, err := swapi.DecodeVehicle(raw)
	if err != nil {
		return nil, err
	}
	pilots, err := resolveAll[model.Person](ctx, r, rv.Pilots)
	if err != nil {
		return nil, err
	}
	films, err := resolveAll[model.Film](ctx, r, rv.Films)
	if err != nil {
		return nil, err
	}
	return &model.Vehicle{
		URL:           rv.URL,
		Name:          orUnknown(rv.Name),
		Model:         orUnknown(rv.Model),
		VehicleClass:  orUnknown(rv.VehicleClass),
		Manufacturer:  orUnknown(rv.Manufacturer),
		CostInCredits: orUnknown(rv.CostInCredits),
		Length:        orUnknown(rv.Length),
		Crew:          orUnknown(rv.Crew),
		Passengers:    orUnknown(rv.Passengers),
		Pilots:        pilots,
		Films:         films,
	}, nil
}

// resolveOptional maps a nullable locator to a local key. Empty and
// "null" locators resolve to nil.
func resolveOptional(ctx context.Context, r store.Resolver, locator string) (*uint, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" || locator == "null" {
		return nil, nil
	}
	id, err := r.Resolve(ctx, locator)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type keyed interface {
	model.Planet | model.Person | model.Film | model.Species | model.Starship | model.Vehicle
}

// resolveAll resolves a list of locators into key-only association rows.
func resolveAll[T keyed](ctx context.Context, r store.Resolver, locators []string) ([]T, error) {
	if len(locators) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(locators))
	for _, locator := range locators {
		id, err := r.Resolve(ctx, locator)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", locator, err)
		}
		var rec T
		switch p := any(&rec).(type) {
		case *model.Planet:
			p.ID = id
		case *model.Person:
			p.ID = id
		case *model.Film:
			p.ID = id
		case *model.Species:
			p.ID = id
		case *model.Starship:
			p.ID = id
		case *model.Vehicle:
			p.ID = id
		}
		out = append(out, rec)
	}
	return out, nil
}

// orUnknown substitutes the catalog sentinel for missing scalar values.
func orUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return model.Unknown
	}
	return v
}
