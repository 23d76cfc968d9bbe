package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/internal/mapping"
)

type Hotel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   string         `gorm:"size:500" json:"address,omitempty"`
	Phone     string         `gorm:"size:50" json:"phone,omitempty"`
	Email     string         `gorm:"size:255" json:"email,omitempty"`
	Rooms     []Room         `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}

// Operator is the social operator (prescribing organisation) paying for
// the stays.
type Operator struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Organization string         `gorm:"size:255;not null" json:"organization"`
	ContactName  string         `gorm:"size:255" json:"contact_name,omitempty"`
	Address      string         `gorm:"size:500" json:"address,omitempty"`
	Phone        string         `gorm:"size:50" json:"phone,omitempty"`
	Email        string         `gorm:"size:255" json:"email,omitempty"`
}

type Room struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HotelID  uint   `gorm:"index;not null" json:"hotel_id"`
	Number   string `gorm:"size:20;not null" json:"number"`
	Kind     string `gorm:"size:50" json:"kind,omitempty"`
	Capacity int    `gorm:"default:1" json:"capacity"`
}

// Reservation is a stay booked for a guest. Hotel, operator and room are
// optional: documents degrade to empty values when they are missing.
type Reservation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	GuestName     string         `gorm:"size:255;not null" json:"guest_name"`
	ArrivalDate   time.Time      `gorm:"not null" json:"arrival_date"`
	DepartureDate time.Time      `gorm:"not null" json:"departure_date"`
	NightlyPrice  float64        `gorm:"type:decimal(10,2);not null;default:0" json:"nightly_price"`
	Prescriber    string         `gorm:"size:255" json:"prescriber,omitempty"`
	FamilyStatus  string         `gorm:"size:50" json:"family_status,omitempty"`
	Adults        int            `gorm:"default:1" json:"adults"`
	Children      int            `gorm:"default:0" json:"children"`
	InvoiceNumber string         `gorm:"size:50" json:"invoice_number,omitempty"`

	ExtendedUntil   *time.Time `json:"extended_until,omitempty"`
	ExtensionReason string     `gorm:"size:500" json:"extension_reason,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	EndReason       string     `gorm:"size:500" json:"end_reason,omitempty"`

	HotelID    *uint     `gorm:"index" json:"hotel_id,omitempty"`
	OperatorID *uint     `gorm:"index" json:"operator_id,omitempty"`
	RoomID     *uint     `gorm:"index" json:"room_id,omitempty"`
	Hotel      *Hotel    `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Operator   *Operator `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
	Room       *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// Mapping converts the reservation fields, leaving related records to the
// caller.
func (r *Reservation) Mapping() mapping.Reservation {
	return mapping.Reservation{
		ID:              r.ID,
		GuestName:       r.GuestName,
		ArrivalDate:     r.ArrivalDate,
		DepartureDate:   r.DepartureDate,
		NightlyPrice:    r.NightlyPrice,
		Prescriber:      r.Prescriber,
		FamilyStatus:    r.FamilyStatus,
		Adults:          r.Adults,
		Children:        r.Children,
		ExtendedUntil:   r.ExtendedUntil,
		ExtensionReason: r.ExtensionReason,
		EndedAt:         r.EndedAt,
		EndReason:       r.EndReason,
		InvoiceNumber:   r.InvoiceNumber,
	}
}

func (h *Hotel) Mapping() *mapping.Hotel {
	if h == nil {
		return nil
	}
	return &mapping.Hotel{ID: h.ID, Name: h.Name, Address: h.Address, Phone: h.Phone, Email: h.Email}
}

func (o *Operator) Mapping() *mapping.Operator {
	if o == nil {
		return nil
	}
	return &mapping.Operator{
		ID:           o.ID,
		Organization: o.Organization,
		ContactName:  o.ContactName,
		Address:      o.Address,
		Phone:        o.Phone,
		Email:        o.Email,
	}
}

func (r *Room) Mapping() *mapping.Room {
	if r == nil {
		return nil
	}
	return &mapping.Room{ID: r.ID, Number: r.Number, Kind: r.Kind, Capacity: r.Capacity}
}
