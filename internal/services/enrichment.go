package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/internal/mapping"
	"github.com/diewo77/go-hebergement/internal/models"
)

// DBEnrichmentSource reads hotel and operator profiles from their tables,
// keyed by record ID. The database holds no occupant lists or issuer
// identity; those come from Fallback when set.
type DBEnrichmentSource struct {
	DB       *gorm.DB
	Fallback mapping.EnrichmentSource
	Logger   zerolog.Logger
}

func (s *DBEnrichmentSource) HotelProfile(ctx context.Context, h mapping.Hotel) (mapping.HotelProfile, bool) {
	var p models.HotelProfile
	if !s.first(ctx, &p, "hotel_id = ?", h.ID) {
		return mapping.HotelProfile{}, false
	}
	return p.Mapping(), true
}

func (s *DBEnrichmentSource) OrganizationProfile(ctx context.Context, o mapping.Operator) (mapping.OrganizationProfile, bool) {
	var p models.OrganizationProfile
	if !s.first(ctx, &p, "operator_id = ?", o.ID) {
		return mapping.OrganizationProfile{}, false
	}
	return p.Mapping(), true
}

func (s *DBEnrichmentSource) Occupants(ctx context.Context, reservationID uint) []string {
	if s.Fallback == nil {
		return nil
	}
	return s.Fallback.Occupants(ctx, reservationID)
}

func (s *DBEnrichmentSource) Issuer(ctx context.Context) mapping.Issuer {
	if s.Fallback == nil {
		return mapping.Issuer{}
	}
	return s.Fallback.Issuer(ctx)
}

func (s *DBEnrichmentSource) first(ctx context.Context, dst any, query string, id uint) bool {
	if id == 0 {
		return false
	}
	err := s.DB.WithContext(ctx).Where(query, id).First(dst).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.Logger.Warn().Err(err).Str("query", query).Uint("id", id).Msg("enrichment lookup failed")
	}
	return err == nil
}
