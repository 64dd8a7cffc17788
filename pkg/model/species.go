package model

import "time"

// Species represents one row of the species category.
type Species struct {
	ID  uint   `gorm:"column:id;primaryKey" json:"id"`
	URL string `gorm:"column:url;uniqueIndex;not null" json:"url"`

	Name            string `gorm:"column:name;not null;default:unknown" json:"name"`
	Classification  string `gorm:"column:classification;default:unknown" json:"classification"`
	Designation     string `gorm:"column:designation;default:unknown" json:"designation"`
	AverageHeight   string `gorm:"column:average_height;default:unknown" json:"average_height"`
	AverageLifespan string `gorm:"column:average_lifespan;default:unknown" json:"average_lifespan"`
	Language        string `gorm:"column:language;default:unknown" json:"language"`

	HomeworldID *uint `gorm:"column:homeworld_id" json:"homeworld_id,omitempty"`

	People []Person `gorm:"many2many:person_species" json:"people,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Species) TableName() string { return "species" }

func (s *Species) GetID() uint     { return s.ID }
func (s *Species) SetID(id uint)   { s.ID = id }
func (s *Species) GetURL() string  { return s.URL }
func (s *Species) SetURL(u string) { s.URL = u }
func (Species) Category() Category { return CategorySpecies }

func (Species) Relationships() []string { return []string{"People"} }
