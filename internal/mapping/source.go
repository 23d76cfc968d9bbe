package mapping

import (
	"context"
	"strings"

	"github.com/diewo77/go-hebergement/internal/templating"
)

// HotelProfile carries the hotel details the primary hotel record lacks.
type HotelProfile struct {
	Siret           string
	Director        string
	DirectorContact string
	Capacity        int
}

// OrganizationProfile carries compliance details of an operator.
type OrganizationProfile struct {
	Siret     string
	Agrement  string
	Manager   string
	Telephone string
}

// Issuer identifies the organisation invoicing the stays.
type Issuer struct {
	Name         string
	Address      string
	Siret        string
	VATNumber    string
	Agrement     string
	IBAN         string
	BIC          string
	PaymentTerms string
}

// EnrichmentSource backfills data the reservation aggregate does not carry.
// Lookups report false when nothing matches; they never fail the mapping.
type EnrichmentSource interface {
	HotelProfile(ctx context.Context, h Hotel) (HotelProfile, bool)
	OrganizationProfile(ctx context.Context, o Operator) (OrganizationProfile, bool)
	Occupants(ctx context.Context, reservationID uint) []string
	Issuer(ctx context.Context) Issuer
}

type namedHotel struct {
	Name    string
	Profile HotelProfile
}

type namedOrganization struct {
	Name    string
	Profile OrganizationProfile
}

// StaticSource serves enrichment from in-memory sample tables. Hotels and
// organisations are matched by folded name, either name containing the
// other.
type StaticSource struct {
	hotels        []namedHotel
	organizations []namedOrganization
	occupants     [][]string
	issuer        Issuer
}

// NewStaticSource returns the source backed by the bundled sample tables.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		hotels:        sampleHotels,
		organizations: sampleOrganizations,
		occupants:     sampleOccupants,
		issuer:        sampleIssuer,
	}
}

func (s *StaticSource) HotelProfile(_ context.Context, h Hotel) (HotelProfile, bool) {
	for _, e := range s.hotels {
		if fuzzyMatch(h.Name, e.Name) {
			return e.Profile, true
		}
	}
	return HotelProfile{}, false
}

func (s *StaticSource) OrganizationProfile(_ context.Context, o Operator) (OrganizationProfile, bool) {
	for _, e := range s.organizations {
		if fuzzyMatch(o.Organization, e.Name) {
			return e.Profile, true
		}
	}
	return OrganizationProfile{}, false
}

// Occupants picks the sample list at reservationID modulo the table size.
func (s *StaticSource) Occupants(_ context.Context, reservationID uint) []string {
	if len(s.occupants) == 0 {
		return nil
	}
	list := s.occupants[int(reservationID%uint(len(s.occupants)))]
	return append([]string(nil), list...)
}

func (s *StaticSource) Issuer(context.Context) Issuer { return s.issuer }

// fuzzyMatch reports whether either folded name contains the other.
func fuzzyMatch(a, b string) bool {
	fa, fb := templating.Fold(a), templating.Fold(b)
	if fa == "" || fb == "" {
		return false
	}
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}
