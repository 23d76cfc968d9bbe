package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/internal/mapping"
	"github.com/diewo77/go-hebergement/internal/models"
)

// ReservationLoader assembles the rendering aggregate from the database.
type ReservationLoader struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewReservationLoader(db *gorm.DB, logger zerolog.Logger) *ReservationLoader {
	return &ReservationLoader{db: db, logger: logger}
}

// Load reads the reservation and its hotel, operator and room. Failing to
// load a related record is logged and leaves it nil.
func (l *ReservationLoader) Load(ctx context.Context, id uint) (mapping.ReservationData, error) {
	db := l.db.WithContext(ctx)
	var r models.Reservation
	if err := db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mapping.ReservationData{}, fmt.Errorf("%w: %d", ErrReservationNotFound, id)
		}
		return mapping.ReservationData{}, fmt.Errorf("load reservation %d: %w", id, err)
	}

	data := mapping.ReservationData{Reservation: r.Mapping()}
	if r.HotelID != nil {
		var h models.Hotel
		if l.lookup(db, &h, *r.HotelID, "hotel", id) {
			data.Hotel = h.Mapping()
		}
	}
	if r.OperatorID != nil {
		var o models.Operator
		if l.lookup(db, &o, *r.OperatorID, "operator", id) {
			data.Operator = o.Mapping()
		}
	}
	if r.RoomID != nil {
		var room models.Room
		if l.lookup(db, &room, *r.RoomID, "room", id) {
			data.Room = room.Mapping()
		}
	}
	return data, nil
}

func (l *ReservationLoader) lookup(db *gorm.DB, dst any, key uint, kind string, reservationID uint) bool {
	if err := db.First(dst, key).Error; err != nil {
		l.logger.Warn().Err(err).
			Str("record", kind).
			Uint("id", key).
			Uint("reservation_id", reservationID).
			Msg("related record unavailable, continuing without it")
		return false
	}
	return true
}
