package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/httpx"
	"github.com/diewo77/go-hebergement/internal/models"
	"github.com/diewo77/go-hebergement/internal/policy"
)

// AdminUserProfileHandler lists users and assigns their profile.
type AdminUserProfileHandler struct {
	DB     *gorm.DB
	Gate   *policy.AuthGate
	Logger zerolog.Logger
}

func NewAdminUserProfileHandler(db *gorm.DB, ag *policy.AuthGate, logger zerolog.Logger) *AdminUserProfileHandler {
	return &AdminUserProfileHandler{DB: db, Gate: ag, Logger: logger}
}

func (h *AdminUserProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	db := h.DB.WithContext(r.Context())
	var users []models.User
	if err := db.Preload("Profile").Order("id").Find(&users).Error; err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	var profiles []models.Profile
	if err := db.Order("id").Find(&profiles).Error; err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"users":    users,
		"profiles": profiles,
	})
}

// AssignProfile sets the profile of user {id}. A null or zero profile_id
// removes it.
func (h *AdminUserProfileHandler) AssignProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "invalid_id", nil)
		return
	}
	var body struct {
		ProfileID *uint `json:"profile_id"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		badRequest(w, r, "invalid_json", nil)
		return
	}
	if body.ProfileID != nil && *body.ProfileID == 0 {
		body.ProfileID = nil
	}

	db := h.DB.WithContext(r.Context())
	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "user_not_found", nil)
			return
		}
		fail(w, r, h.Logger, err)
		return
	}
	if body.ProfileID != nil {
		var profile models.Profile
		if err := db.First(&profile, *body.ProfileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.JSONError(w, http.StatusNotFound, "profile_not_found", nil)
				return
			}
			fail(w, r, h.Logger, err)
			return
		}
	}

	if err := db.Model(&user).Update("profile_id", body.ProfileID).Error; err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	h.Gate.InvalidateUser(uid)
	h.Logger.Info().Uint("user_id", uid).Interface("profile_id", body.ProfileID).Msg("profile assigned")

	httpx.JSON(w, http.StatusOK, map[string]any{
		"user_id":    uid,
		"profile_id": body.ProfileID,
	})
}
