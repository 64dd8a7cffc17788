package model

import "time"

// Film represents one row of the films category. Films reference every
// other category, which makes them the main source of placeholder rows
// when synchronized early.
type Film struct {
	ID  uint   `gorm:"column:id;primaryKey" json:"id"`
	URL string `gorm:"column:url;uniqueIndex;not null" json:"url"`

	Title        string `gorm:"column:title;not null;default:unknown" json:"title"`
	EpisodeID    int    `gorm:"column:episode_id" json:"episode_id"`
	OpeningCrawl string `gorm:"column:opening_crawl;default:unknown" json:"opening_crawl"`
	Director     string `gorm:"column:director;default:unknown" json:"director"`
	Producer     string `gorm:"column:producer;default:unknown" json:"producer"`
	ReleaseDate  string `gorm:"column:release_date;default:unknown" json:"release_date"`

	Characters []Person   `gorm:"many2many:film_characters" json:"characters,omitempty"`
	Planets    []Planet   `gorm:"many2many:film_planets" json:"planets,omitempty"`
	Starships  []Starship `gorm:"many2many:film_starships" json:"starships,omitempty"`
	Vehicles   []Vehicle  `gorm:"many2many:film_vehicles" json:"vehicles,omitempty"`
	Species    []Species  `gorm:"many2many:film_species" json:"species,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Film) TableName() string { return "films" }

func (f *Film) GetID() uint     { return f.ID }
func (f *Film) SetID(id uint)   { f.ID = id }
func (f *Film) GetURL() string  { return f.URL }
func (f *Film) SetURL(u string) { f.URL = u }
func (Film) Category() Category { return CategoryFilms }

func (Film) Relationships() []string {
	return []string{"Characters", "Planets", "Starships", "Vehicles", "Species"}
}
