package model

import "time"

// Planet represents one row of the planets category.
type Planet struct {
	ID  uint   `gorm:"column:id;primaryKey" json:"id"`
	URL string `gorm:"column:url;uniqueIndex;not null" json:"url"`

	Name           string `gorm:"column:name;not null;default:unknown" json:"name"`
	RotationPeriod string `gorm:"column:rotation_period;default:unknown" json:"rotation_period"`
	OrbitalPeriod  string `gorm:"column:orbital_period;default:unknown" json:"orbital_period"`
	Diameter       string `gorm:"column:diameter;default:unknown" json:"diameter"`
	Climate        string `gorm:"column:climate;default:unknown" json:"climate"`
	Gravity        string `gorm:"column:gravity;default:unknown" json:"gravity"`
	Terrain        string `gorm:"column:terrain;default:unknown" json:"terrain"`
	SurfaceWater   string `gorm:"column:surface_water;default:unknown" json:"surface_water"`
	Population     string `gorm:"column:population;default:unknown" json:"population"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Planet) TableName() string { return "planets" }

func (p *Planet) GetID() uint     { return p.ID }
func (p *Planet) SetID(id uint)   { p.ID = id }
func (p *Planet) GetURL() string  { return p.URL }
func (p *Planet) SetURL(u string) { p.URL = u }
func (Planet) Category() Category { return CategoryPlanets }

func (Planet) Relationships() []string { return nil }
