package model

import "time"

// Starship represents one row of the starships category.
type Starship struct {
	ID  uint   `gorm:"column:id;primaryKey" json:"id"`
	URL string `gorm:"column:url;uniqueIndex;not null" json:"url"`

	Name             string `gorm:"column:name;not null;default:unknown" json:"name"`
	Model            string `gorm:"column:model;default:unknown" json:"model"`
	Manufacturer     string `gorm:"column:manufacturer;default:unknown" json:"manufacturer"`
	CostInCredits    string `gorm:"column:cost_in_credits;default:unknown" json:"cost_in_credits"`
	Length           string `gorm:"column:length;default:unknown" json:"length"`
	Crew             string `gorm:"column:crew;default:unknown" json:"crew"`
	Passengers       string `gorm:"column:passengers;default:unknown" json:"passengers"`
	HyperdriveRating string `gorm:"column:hyperdrive_rating;default:unknown" json:"hyperdrive_rating"`
	StarshipClass    string `gorm:"column:starship_class;default:unknown" json:"starship_class"`

	Pilots []Person `gorm:"many2many:starship_pilots" json:"pilots,omitempty"`
	Films  []Film   `gorm:"many2many:film_starships" json:"films,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Starship) TableName() string { return "starships" }

func (s *Starship) GetID() uint     { return s.ID }
func (s *Starship) SetID(id uint)   { s.ID = id }
func (s *Starship) GetURL() string  { return s.URL }
func (s *Starship) SetURL(u string) { s.URL = u }
func (Starship) Category() Category { return CategoryStarships }

func (Starship) Relationships() []string { return []string{"Pilots", "Films"} }
