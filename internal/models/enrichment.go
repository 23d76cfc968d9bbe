package models

import (
	"time"

	"github.com/diewo77/go-hebergement/internal/mapping"
)

// HotelProfile stores registry details of a hotel, keyed by hotel ID.
type HotelProfile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt       time.Time `json:"updated_at"`
	HotelID         uint      `gorm:"uniqueIndex;not null" json:"hotel_id"`
	Siret           string    `gorm:"size:20" json:"siret,omitempty"`
	Director        string    `gorm:"size:255" json:"director,omitempty"`
	DirectorContact string    `gorm:"size:255" json:"director_contact,omitempty"`
	Capacity        int       `json:"capacity"`
}

func (p HotelProfile) Mapping() mapping.HotelProfile {
	return mapping.HotelProfile{
		Siret:           p.Siret,
		Director:        p.Director,
		DirectorContact: p.DirectorContact,
		Capacity:        p.Capacity,
	}
}

// OrganizationProfile stores compliance details of an operator, keyed by
// operator ID.
type OrganizationProfile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt  time.Time `json:"updated_at"`
	OperatorID uint      `gorm:"uniqueIndex;not null" json:"operator_id"`
	Siret      string    `gorm:"size:20" json:"siret,omitempty"`
	Agrement   string    `gorm:"size:100" json:"agrement,omitempty"`
	Manager    string    `gorm:"size:255" json:"manager,omitempty"`
	Telephone  string    `gorm:"size:50" json:"telephone,omitempty"`
}

func (p OrganizationProfile) Mapping() mapping.OrganizationProfile {
	return mapping.OrganizationProfile{
		Siret:     p.Siret,
		Agrement:  p.Agrement,
		Manager:   p.Manager,
		Telephone: p.Telephone,
	}
}
