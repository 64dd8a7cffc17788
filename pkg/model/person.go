package model

import "time"

// Person represents one row of the people category. Homeworld is a
// foreign key into planets; the list fields are many-to-many
// associations resolved to local keys before upsert.
type Person struct {
	ID  uint   `gorm:"column:id;primaryKey" json:"id"`
	URL string `gorm:"column:url;uniqueIndex;not null" json:"url"`

	Name      string `gorm:"column:name;not null;default:unknown" json:"name"`
	Height    string `gorm:"column:height;default:unknown" json:"height"`
	Mass      string `gorm:"column:mass;default:unknown" json:"mass"`
	HairColor string `gorm:"column:hair_color;default:unknown" json:"hair_color"`
	SkinColor string `gorm:"column:skin_color;default:unknown" json:"skin_color"`
	EyeColor  string `gorm:"column:eye_color;default:unknown" json:"eye_color"`
	BirthYear string `gorm:"column:birth_year;default:unknown" json:"birth_year"`
	Gender    string `gorm:"column:gender;default:unknown" json:"gender"`

	HomeworldID *uint `gorm:"column:homeworld_id" json:"homeworld_id,omitempty"`

	Films     []Film     `gorm:"many2many:film_characters" json:"films,omitempty"`
	Species   []Species  `gorm:"many2many:person_species" json:"species,omitempty"`
	Starships []Starship `gorm:"many2many:starship_pilots" json:"starships,omitempty"`
	Vehicles  []Vehicle  `gorm:"many2many:vehicle_pilots" json:"vehicles,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Person) TableName() string { return "people" }

func (p *Person) GetID() uint     { return p.ID }
func (p *Person) SetID(id uint)   { p.ID = id }
func (p *Person) GetURL() string  { return p.URL }
func (p *Person) SetURL(u string) { p.URL = u }
func (Person) Category() Category { return CategoryPeople }

func (Person) Relationships() []string {
	return []string{"Films", "Species", "Starships", "Vehicles"}
}
