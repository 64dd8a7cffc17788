package swapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The Raw* types mirror upstream records field for field. Relationship
// fields hold locators. Decoding checks the per-category schema: a
// record without its natural key, or with fields of the wrong shape, is
// rejected with ErrRecordInvalid instead of being stored malformed.

// RawPlanet mirrors one planets record.
type RawPlanet struct {
	Name           string `json:"name"`
	RotationPeriod string `json:"rotation_period"`
	OrbitalPeriod  string `json:"orbital_period"`
	Diameter       string `json:"diameter"`
	Climate        string `json:"climate"`
	Gravity        string `json:"gravity"`
	Terrain        string `json:"terrain"`
	SurfaceWater   string `json:"surface_water"`
	Population     string `json:"population"`
	URL            string `json:"url"`
}

// RawPerson mirrors one people record.
type RawPerson struct {
	Name      string   `json:"name"`
	Height    string   `json:"height"`
	Mass      string   `json:"mass"`
	HairColor string   `json:"hair_color"`
	SkinColor string   `json:"skin_color"`
	EyeColor  string   `json:"eye_color"`
	BirthYear string   `json:"birth_year"`
	Gender    string   `json:"gender"`
	Homeworld string   `json:"homeworld"`
	Films     []string `json:"films"`
	Species   []string `json:"species"`
	Vehicles  []string `json:"vehicles"`
	Starships []string `json:"starships"`
	URL       string   `json:"url"`
}

// RawFilm mirrors one films record.
type RawFilm struct {
	Title        string   `json:"title"`
	EpisodeID    int      `json:"episode_id"`
	OpeningCrawl string   `json:"opening_crawl"`
	Director     string   `json:"director"`
	Producer     string   `json:"producer"`
	ReleaseDate  string   `json:"release_date"`
	Characters   []string `json:"characters"`
	Planets      []string `json:"planets"`
	Starships    []string `json:"starships"`
	Vehicles     []string `json:"vehicles"`
	Species      []string `json:"species"`
	URL          string   `json:"url"`
}

// RawSpecies mirrors one species record.
type RawSpecies struct {
	Name            string   `json:"name"`
	Classification  string   `json:"classification"`
	Designation     string   `json:"designation"`
	AverageHeight   string   `json:"average_height"`
	AverageLifespan string   `json:"average_lifespan"`
	Language        string   `json:"language"`
	Homeworld       string   `json:"homeworld"`
	People          []string `json:"people"`
	URL             string   `json:"url"`
}

// RawStarship mirrors one starships record.
type RawStarship struct {
	Name             string   `json:"name"`
	Model            string   `json:"model"`
	Manufacturer     string   `json:"manufacturer"`
	CostInCredits    string   `json:"cost_in_credits"`
	Length           string   `json:"length"`
	Crew             string   `json:"crew"`
	Passengers       string   `json:"passengers"`
	HyperdriveRating string   `json:"hyperdrive_rating"`
	StarshipClass    string   `json:"starship_class"`
	Pilots           []string `json:"pilots"`
	Films            []string `json:"films"`
	URL              string   `json:"url"`
}

// RawVehicle mirrors one vehicles record.
type RawVehicle struct {
	Name          string   `json:"name"`
	Model         string   `json:"model"`
	Manufacturer  string   `json:"manufacturer"`
	CostInCredits string   `json:"cost_in_credits"`
	Length        string   `json:"length"`
	Crew          string   `json:"crew"`
	Passengers    string   `json:"passengers"`
	VehicleClass  string   `json:"vehicle_class"`
	Pilots        []string `json:"pilots"`
	Films         []string `json:"films"`
	URL           string   `json:"url"`
}

func decodeRaw(data json.RawMessage, v interface{ naturalKey() string }) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrRecordInvalid, err)
	}
	if strings.TrimSpace(v.naturalKey()) == "" {
		return fmt.Errorf("%w: record is missing its url", ErrRecordInvalid)
	}
	return nil
}

func (r *RawPlanet) naturalKey() string   { return r.URL }
func (r *RawPerson) naturalKey() string   { return r.URL }
func (r *RawFilm) naturalKey() string     { return r.URL }
func (r *RawSpecies) naturalKey() string  { return r.URL }
func (r *RawStarship) naturalKey() string { return r.URL }
func (r *RawVehicle) naturalKey() string  { return r.URL }

// DecodePlanet parses and validates one raw planets record.
func DecodePlanet(data json.RawMessage) (*RawPlanet, error) {
	var r RawPlanet
	if err := decodeRaw(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodePerson parses and validates one raw people record.
func DecodePerson(data json.RawMessage) (*RawPerson, error) {
	var r RawPerson
	if err := decodeRaw(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeFilm parses and validates one raw films record.
func DecodeFilm(data json.RawMessage) (*RawFilm, error) {
	var r RawFilm
	if err := decodeRaw(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeSpecies parses and validates one raw species record.
func DecodeSpecies(data json.RawMessage) (*RawSpecies, error) {
	var r RawSpecies
	if err := decodeRaw(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeStarship parses and validates one raw starships record.
func DecodeStarship(data json.RawMessage) (*RawStarship, error) {
	var r RawStarship
	if err := decodeRaw(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeVehicle parses and validates one raw vehicles record.
func DecodeVehicle(data json.RawMessage) (*RawVehicle, error) {
	var r RawVehicle
	if err := decodeRaw(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
