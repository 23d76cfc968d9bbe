package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-hebergement/auth"
	"github.com/diewo77/go-hebergement/httpx"
	"github.com/diewo77/go-hebergement/internal/gate"
	"github.com/diewo77/go-hebergement/internal/preview"
	"github.com/diewo77/go-hebergement/internal/render"
	"github.com/diewo77/go-hebergement/internal/services"
	"github.com/diewo77/go-hebergement/internal/templating"
)

func TestFail_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&services.MissingVariablesError{Template: "facture", Missing: []string{"iban"}}, http.StatusUnprocessableEntity, "missing_variables"},
		{&services.NotEligibleError{Type: "facture", Missing: []string{"missing_hotel"}}, http.StatusConflict, "not_eligible"},
		{&services.ValidationError{Violations: map[string]string{"name": "required"}}, http.StatusUnprocessableEntity, "validation_failed"},
		{fmt.Errorf("%w: x", templating.ErrNotFound), http.StatusNotFound, "template_not_found"},
		{templating.ErrInactive, http.StatusConflict, "template_inactive"},
		{fmt.Errorf("%w: y", templating.ErrUndeclaredPlaceholder), http.StatusUnprocessableEntity, "template_invalid"},
		{fmt.Errorf("%w: 9", services.ErrReservationNotFound), http.StatusNotFound, "reservation_not_found"},
		{preview.ErrNotFound, http.StatusNotFound, "preview_not_found"},
		{preview.ErrReleased, http.StatusGone, "preview_released"},
		{fmt.Errorf("%w: %w", render.ErrGenerationFailed, render.ErrUnsupportedFormat), http.StatusUnprocessableEntity, "unsupported_format"},
		{fmt.Errorf("%w: boom", render.ErrGenerationFailed), http.StatusInternalServerError, "generation_failed"},
		{gate.ErrNoProfile, http.StatusForbidden, "forbidden"},
		{gate.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{errors.New("connection refused"), http.StatusInternalServerError, "db_error"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), zerolog.Nop(), c.err)
		assert.Equal(t, c.status, rec.Code, c.err.Error())

		var body httpx.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, c.code, body.Error, c.err.Error())
		assert.NotEmpty(t, body.Message)
	}
}

func TestFail_DeniedUserIsForbidden(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 3))
	rec := httptest.NewRecorder()
	fail(rec, req, zerolog.Nop(), gate.ErrUnauthorized)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/templates/12", nil)
	req.SetPathValue("id", "12")
	id, ok := pathID(req, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(12), id)

	for _, v := range []string{"0", "-1", "abc", ""} {
		req.SetPathValue("id", v)
		_, ok := pathID(req, "id")
		assert.False(t, ok, v)
	}
}
