package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/httpx"
	"github.com/diewo77/go-hebergement/internal/models"
	"github.com/diewo77/go-hebergement/internal/policy"
	"github.com/diewo77/go-hebergement/internal/services"
	"github.com/diewo77/go-hebergement/validation"
)

// AdminProfileHandler manages profiles and their permissions.
type AdminProfileHandler struct {
	DB     *gorm.DB
	Gate   *policy.AuthGate // cache invalidation on changes
	Logger zerolog.Logger
}

func NewAdminProfileHandler(db *gorm.DB, ag *policy.AuthGate, logger zerolog.Logger) *AdminProfileHandler {
	return &AdminProfileHandler{DB: db, Gate: ag, Logger: logger}
}

// List returns every profile with its permissions.
func (h *AdminProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	var profiles []models.Profile
	if err := h.DB.WithContext(r.Context()).Preload("Permissions").Order("id").Find(&profiles).Error; err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

type profileInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *AdminProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in profileInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		badRequest(w, r, "invalid_json", nil)
		return
	}
	profile := models.Profile{Name: strings.TrimSpace(in.Name), Description: strings.TrimSpace(in.Description)}
	v := validation.Violations{}
	validation.Required("name", profile.Name, v)
	validation.MaxLen("name", profile.Name, 100, v)
	var count int64
	h.DB.WithContext(r.Context()).Model(&models.Profile{}).Where("name = ?", profile.Name).Count(&count)
	if count > 0 {
		v["name"] = "duplicate"
	}
	if !v.Empty() {
		fail(w, r, h.Logger, &services.ValidationError{Violations: v})
		return
	}
	if err := h.DB.WithContext(r.Context()).Create(&profile).Error; err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, profile)
}

// Delete removes a profile. System profiles and profiles still assigned
// to users are refused.
func (h *AdminProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "invalid_id", nil)
		return
	}
	var profile models.Profile
	if !h.find(w, r, h.DB.Preload("Users"), &profile, id) {
		return
	}
	if profile.IsSystem {
		httpx.JSONError(w, http.StatusForbidden, "cannot_delete_system_profile", nil)
		return
	}
	if len(profile.Users) > 0 {
		httpx.JSONError(w, http.StatusConflict, "profile_has_users", map[string]int{"users": len(profile.Users)})
		return
	}
	if err := h.DB.WithContext(r.Context()).Delete(&profile).Error; err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// ListPermissions returns the permission catalogue.
func (h *AdminProfileHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	var permissions []models.Permission
	if err := h.DB.WithContext(r.Context()).Order("resource_type, action").Find(&permissions).Error; err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"permissions": permissions})
}

// SavePermissions replaces the permissions of a profile. Unknown IDs are
// ignored.
func (h *AdminProfileHandler) SavePermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "invalid_id", nil)
		return
	}
	var body struct {
		PermissionIDs []uint `json:"permission_ids"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		badRequest(w, r, "invalid_json", nil)
		return
	}
	var profile models.Profile
	if !h.find(w, r, h.DB, &profile, id) {
		return
	}

	db := h.DB.WithContext(r.Context())
	var permissions []models.Permission
	if len(body.PermissionIDs) > 0 {
		if err := db.Where("id IN ?", body.PermissionIDs).Find(&permissions).Error; err != nil {
			fail(w, r, h.Logger, err)
			return
		}
	}
	if err := db.Model(&profile).Association("Permissions").Replace(permissions); err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	// the profile may be shared by many users
	h.Gate.InvalidateAll()
	profile.Permissions = permissions
	httpx.JSON(w, http.StatusOK, map[string]any{
		"profile":     profile,
		"permissions": profile.Codes(),
	})
}

func (h *AdminProfileHandler) find(w http.ResponseWriter, r *http.Request, db *gorm.DB, profile *models.Profile, id uint) bool {
	err := db.WithContext(r.Context()).First(profile, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httpx.JSONError(w, http.StatusNotFound, "profile_not_found", nil)
		return false
	case err != nil:
		fail(w, r, h.Logger, err)
		return false
	}
	return true
}
