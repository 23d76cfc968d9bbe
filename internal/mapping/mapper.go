package mapping

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-hebergement/internal/templating"
)

const (
	DefaultFamilyStatus = "Célibataire"
	DefaultVATRate      = 0.10
)

// Mapper builds variable dictionaries from reservation aggregates.
type Mapper struct {
	source  EnrichmentSource
	now     func() time.Time
	vatRate float64
	logger  zerolog.Logger
}

type Option func(*Mapper)

// WithClock sets the clock used for the current-date keys.
func WithClock(now func() time.Time) Option { return func(m *Mapper) { m.now = now } }

// WithVATRate sets the rate applied to invoice totals.
func WithVATRate(rate float64) Option { return func(m *Mapper) { m.vatRate = rate } }

func WithLogger(l zerolog.Logger) Option { return func(m *Mapper) { m.logger = l } }

// NewMapper returns a mapper reading enrichment data from source. A nil
// source falls back to the static sample tables.
func NewMapper(source EnrichmentSource, opts ...Option) *Mapper {
	if source == nil {
		source = NewStaticSource()
	}
	m := &Mapper{source: source, now: time.Now, vatRate: DefaultVATRate, logger: zerolog.Nop()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Map returns the dictionary for rendering tpl from data. It never fails:
// absent data yields empty values or documented defaults.
func (m *Mapper) Map(ctx context.Context, data ReservationData, tpl templating.Template) templating.Dictionary {
	d := templating.Dictionary{}
	m.common(d, data.Reservation)
	if data.Hotel != nil {
		m.hotel(ctx, d, *data.Hotel)
	}
	if data.Operator != nil {
		m.operator(ctx, d, *data.Operator)
	}
	if ext, ok := extensions[tpl.Type]; ok {
		ext(ctx, m, d, data)
	}
	return d
}

// SyntheticKeys returns the keys of a document type whose values come
// from fixed literals instead of the reservation.
func (m *Mapper) SyntheticKeys(t templating.DocumentType) []string {
	return append([]string(nil), syntheticKeys[t]...)
}

func (m *Mapper) common(d templating.Dictionary, r Reservation) {
	today := formatDate(m.now())
	nights := r.Nights()
	d[KeyDate] = today
	d[KeyDateDuJour] = today
	d[KeyReservationNumber] = ""
	if r.ID != 0 {
		d[KeyReservationNumber] = uitoa(r.ID)
	}
	d[KeyGuest] = r.GuestName
	d[KeyArrival] = formatDate(r.ArrivalDate)
	d[KeyDeparture] = formatDate(r.DepartureDate)
	d[KeyNights] = itoa(nights)
	d[KeyNightlyPrice] = formatAmount(r.NightlyPrice)
	d[KeyTotal] = formatAmount(float64(nights) * r.NightlyPrice)
	d[KeyPrescriber] = r.Prescriber
}

func (m *Mapper) hotel(ctx context.Context, d templating.Dictionary, h Hotel) {
	d[KeyHotel] = h.Name
	d[KeyHotelAddress] = h.Address
	d[KeyHotelPhone] = h.Phone
	d[KeyHotelEmail] = h.Email
	p, ok := m.source.HotelProfile(ctx, h)
	if !ok {
		m.logger.Debug().Str("hotel", h.Name).Msg("no hotel enrichment")
		return
	}
	d[KeyHotelSiret] = p.Siret
	d[KeyHotelDirector] = p.Director
	d[KeyHotelDirectorContact] = p.DirectorContact
	if p.Capacity > 0 {
		d[KeyHotelCapacity] = itoa(p.Capacity)
	}
}

func (m *Mapper) operator(ctx context.Context, d templating.Dictionary, o Operator) {
	d[KeyOperator] = o.Organization
	d[KeyOperatorAddress] = o.Address
	d[KeyOperatorPhone] = o.Phone
	d[KeyOperatorEmail] = o.Email
	d[KeyOperatorContact] = o.ContactName
	p, ok := m.source.OrganizationProfile(ctx, o)
	if !ok {
		m.logger.Debug().Str("operator", o.Organization).Msg("no operator enrichment")
		return
	}
	d[KeyOperatorSiret] = p.Siret
	d[KeyOperatorAgrement] = p.Agrement
	d[KeyOperatorManager] = p.Manager
	if d[KeyOperatorPhone] == "" {
		d[KeyOperatorPhone] = p.Telephone
	}
}

// invoiceNumber returns the stored number or derives one from the
// reservation id and the departure year.
func invoiceNumber(r Reservation, now time.Time) string {
	if r.InvoiceNumber != "" {
		return r.InvoiceNumber
	}
	year := now.Year()
	if !r.DepartureDate.IsZero() {
		year = r.DepartureDate.Year()
	}
	return fmt.Sprintf("FAC-%d-%05d", year, r.ID)
}
