package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-hebergement/auth"
	"github.com/diewo77/go-hebergement/httpx"
	"github.com/diewo77/go-hebergement/i18n"
	"github.com/diewo77/go-hebergement/internal/gate"
	"github.com/diewo77/go-hebergement/internal/middleware"
	"github.com/diewo77/go-hebergement/internal/preview"
	"github.com/diewo77/go-hebergement/internal/render"
	"github.com/diewo77/go-hebergement/internal/services"
	"github.com/diewo77/go-hebergement/internal/templating"
)

// fail writes the JSON error matching err. Unknown errors are logged and
// reported as db_error.
func fail(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	lang := middleware.LangFrom(r)
	write := func(status int, code string, details any) {
		httpx.JSONErrorMessage(w, status, code, i18n.T(lang, code), details)
	}

	var (
		missing    *services.MissingVariablesError
		ineligible *services.NotEligibleError
		invalid    *services.ValidationError
	)
	switch {
	case errors.As(err, &invalid):
		write(http.StatusUnprocessableEntity, "validation_failed", invalid.Violations)
	case errors.As(err, &missing):
		write(http.StatusUnprocessableEntity, "missing_variables", map[string]any{
			"template": missing.Template,
			"missing":  missing.Missing,
		})
	case errors.As(err, &ineligible):
		write(http.StatusConflict, "not_eligible", map[string]any{
			"type":    ineligible.Type,
			"missing": ineligible.Missing,
			"labels":  i18n.TAll(lang, ineligible.Missing),
		})
	case errors.Is(err, templating.ErrNotFound):
		write(http.StatusNotFound, "template_not_found", nil)
	case errors.Is(err, templating.ErrInactive):
		write(http.StatusConflict, "template_inactive", nil)
	case errors.Is(err, templating.ErrUndeclaredPlaceholder), errors.Is(err, templating.ErrInvalidTemplate):
		write(http.StatusUnprocessableEntity, "template_invalid", err.Error())
	case errors.Is(err, services.ErrReservationNotFound):
		write(http.StatusNotFound, "reservation_not_found", nil)
	case errors.Is(err, preview.ErrReleased):
		write(http.StatusGone, "preview_released", nil)
	case errors.Is(err, preview.ErrNotFound):
		write(http.StatusNotFound, "preview_not_found", nil)
	case errors.Is(err, render.ErrUnsupportedFormat):
		write(http.StatusUnprocessableEntity, "unsupported_format", nil)
	case errors.Is(err, render.ErrGenerationFailed):
		write(http.StatusInternalServerError, "generation_failed", nil)
	case errors.Is(err, gate.ErrNoProfile):
		write(http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, gate.ErrUnauthorized):
		if _, ok := userID(r); !ok {
			write(http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		write(http.StatusForbidden, "forbidden", nil)
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		write(http.StatusInternalServerError, "db_error", nil)
	}
}

func badRequest(w http.ResponseWriter, r *http.Request, code string, details any) {
	httpx.JSONErrorMessage(w, http.StatusBadRequest, code, i18n.T(middleware.LangFrom(r), code), details)
}

// pathID parses the {name} path value as a positive ID.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func userID(r *http.Request) (uint, bool) {
	id, ok := auth.UserIDFromContext(r.Context())
	return id, ok && id != 0
}
