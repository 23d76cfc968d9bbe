// Package mapping turns a reservation aggregate into the variable
// dictionary consumed by document templates.
package mapping

import "time"

type Reservation struct {
	ID              uint
	GuestName       string
	ArrivalDate     time.Time
	DepartureDate   time.Time
	NightlyPrice    float64
	Prescriber      string
	FamilyStatus    string
	Adults          int
	Children        int
	ExtendedUntil   *time.Time
	ExtensionReason string
	EndedAt         *time.Time
	EndReason       string
	InvoiceNumber   string
}

type Hotel struct {
	ID      uint
	Name    string
	Address string
	Phone   string
	Email   string
}

type Operator struct {
	ID           uint
	Organization string
	ContactName  string
	Address      string
	Phone        string
	Email        string
}

type Room struct {
	ID       uint
	Number   string
	Kind     string
	Capacity int
}

// ReservationData is the rendering input: a reservation and whichever
// related records could be loaded.
type ReservationData struct {
	Reservation Reservation
	Hotel       *Hotel
	Operator    *Operator
	Room        *Room
}

// Nights returns the number of nights between arrival and departure.
func (r Reservation) Nights() int {
	return nightsBetween(r.ArrivalDate, r.DepartureDate)
}

func nightsBetween(from, to time.Time) int {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	n := int(b.Sub(a).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
