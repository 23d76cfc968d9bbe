// Package models holds the gorm records persisted by the application.
package models

// All lists every model in migration order.
func All() []any {
	return []any{
		// Auth & authorization
		&Permission{},
		&Profile{},
		&User{},
		// Reservation aggregate
		&Hotel{},
		&Operator{},
		&Room{},
		&Reservation{},
		// Enrichment
		&HotelProfile{},
		&OrganizationProfile{},
		// Templates
		&DocumentTemplate{},
		&DocumentVariable{},
	}
}
