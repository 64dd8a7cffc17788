package model

import "time"

// Vehicle represents one row of the vehicles category.
type Vehicle struct {
	ID  uint   `gorm:"column:id;primaryKey" json:"id"`
	URL string `gorm:"column:url;uniqueIndex;not null" json:"url"`

	Name          string `gorm:"column:name;not null;default:unknown" json:"name"`
	Model         string `gorm:"column:model;default:unknown" json:"model"`
	Manufacturer  string `gorm:"column:manufacturer;default:unknown" json:"manufacturer"`
	CostInCredits string `gorm:"column:cost_in_credits;default:unknown" json:"cost_in_credits"`
	Length        string `gorm:"column:length;default:unknown" json:"length"`
	Crew          string `gorm:"column:crew;default:unknown" json:"crew"`
	Passengers    string `gorm:"column:passengers;default:unknown" json:"passengers"`
	VehicleClass  string `gorm:"column:vehicle_class;default:unknown" json:"vehicle_class"`

	Pilots []Person `gorm:"many2many:vehicle_pilots" json:"pilots,omitempty"`
	Films  []Film   `gorm:"many2many:film_vehicles" json:"films,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string { return "vehicles" }

func (v *Vehicle) GetID() uint     { return v.ID }
func (v *Vehicle) SetID(id uint)   { v.ID = id }
func (v *Vehicle) GetURL() string  { return v.URL }
func (v *Vehicle) SetURL(u string) { v.URL = u }
func (Vehicle) Category() Category { return CategoryVehicles }

func (Vehicle) Relationships() []string { return []string{"Pilots", "Films"} }
