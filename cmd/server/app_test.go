package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/auth"
	"github.com/diewo77/go-hebergement/internal/config"
	"github.com/diewo77/go-hebergement/internal/db"
	"github.com/diewo77/go-hebergement/internal/models"
	"github.com/diewo77/go-hebergement/internal/policy"
	"github.com/diewo77/go-hebergement/internal/services"
	"github.com/diewo77/go-hebergement/internal/templating"
)

type testApp struct {
	app   *App
	conn  *gorm.DB
	stack *services.Stack
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	conn, err := db.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file:" + t.Name() + "?mode=memory&cache=shared",
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	require.NoError(t, db.Seed(conn))
	require.NoError(t, db.SeedDemo(conn))

	stack, err := services.Wire(context.Background(), config.DocumentsConfig{
		EnrichmentSource:  config.EnrichmentDB,
		PreviewTTL:        time.Minute,
		DefaultPageFormat: "A4",
	}, conn, zerolog.Nop())
	require.NoError(t, err)

	ag := policy.NewAuthGate(conn, time.Minute)
	return &testApp{
		app:   NewApp(conn, ag, stack.Templates, stack.Documents, zerolog.Nop()),
		conn:  conn,
		stack: stack,
	}
}

func (a *testApp) user(t *testing.T, email string) uint {
	t.Helper()
	var u models.User
	require.NoError(t, a.conn.Where("email = ?", email).First(&u).Error)
	return u.ID
}

func (a *testApp) do(t *testing.T, uid uint, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if uid != 0 {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: auth.Token(uid)})
	}
	rec := httptest.NewRecorder()
	a.app.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)
	rec := a.do(t, 0, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 4, body["templates"])
}

func TestTemplates_ListRequiresPermission(t *testing.T) {
	a := newTestApp(t)
	reader := a.user(t, "lecteur@hebergement.example")

	rec := a.do(t, 0, http.MethodGet, "/templates", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, reader, http.MethodGet, "/templates?status=active&type=facture", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	rec = a.do(t, reader, http.MethodGet, "/templates?type=devis", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, reader, http.MethodPost, "/templates", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "template:create", decode(t, rec)["details"])
}

func TestTemplates_AuthorshipFlow(t *testing.T) {
	a := newTestApp(t)
	op := a.user(t, "operateur@hebergement.example")
	admin := a.user(t, "admin@hebergement.example")
	voucher, err := a.stack.Templates.Registry().Get("bon_reservation")
	require.NoError(t, err)

	rec := a.do(t, op, http.MethodPost, fmt.Sprintf("/templates/%d/deactivate", voucher.ID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, op, http.MethodPost, fmt.Sprintf("/templates/%d/duplicate", voucher.ID), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	dup := decode(t, rec)
	assert.Equal(t, "inactive", dup["status"])
	assert.EqualValues(t, op, dup["created_by_id"])
	dupID := uint(dup["id"].(float64))

	rec = a.do(t, op, http.MethodPost, fmt.Sprintf("/templates/%d/activate", dupID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "active", decode(t, rec)["status"])

	edit := map[string]any{
		"name": "Bon simplifié",
		"type": "bon_reservation",
		"body": "# BON\n\n{{usager}} à {{hotel}}",
		"variables": []map[string]any{
			{"name": "usager", "obligatoire": true},
			{"name": "hotel", "obligatoire": true},
		},
	}
	rec = a.do(t, op, http.MethodPut, fmt.Sprintf("/templates/%d", dupID), edit)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "1.1", decode(t, rec)["version"])

	edit["body"] = "{{inconnu}}"
	rec = a.do(t, op, http.MethodPut, fmt.Sprintf("/templates/%d", dupID), edit)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "template_invalid", decode(t, rec)["error"])

	rec = a.do(t, admin, http.MethodPost, fmt.Sprintf("/templates/%d/deactivate", voucher.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inactive", decode(t, rec)["status"])

	rec = a.do(t, op, http.MethodGet, "/templates/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.do(t, op, http.MethodGet, "/templates/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTemplates_Missing(t *testing.T) {
	a := newTestApp(t)
	reader := a.user(t, "lecteur@hebergement.example")
	invoice, _ := a.stack.Templates.Registry().Get("facture")

	rec := a.do(t, reader, http.MethodPost, fmt.Sprintf("/templates/%d/missing", invoice.ID),
		map[string]any{"values": map[string]string{"usager": "Jean Dupont"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["complete"])
	assert.Len(t, body["missing"], 15)
}

func TestDocuments_PreviewLifecycle(t *testing.T) {
	a := newTestApp(t)
	op := a.user(t, "operateur@hebergement.example")

	rec := a.do(t, op, http.MethodPost, "/documents/preview", map[string]any{
		"template_code":  "bon_reservation",
		"reservation_id": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	token := body["token"].(string)
	assert.Equal(t, "/documents/previews/"+token, body["url"])
	assert.True(t, strings.HasSuffix(body["filename"].(string), ".pdf"))
	assert.NotNil(t, body["missing"])

	rec = a.do(t, op, http.MethodGet, "/documents/previews/"+token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "inline"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = a.do(t, op, http.MethodDelete, "/documents/previews/"+token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = a.do(t, op, http.MethodDelete, "/documents/previews/"+token, nil)
	assert.Equal(t, http.StatusGone, rec.Code)
	rec = a.do(t, op, http.MethodGet, "/documents/previews/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocuments_DownloadRefusals(t *testing.T) {
	a := newTestApp(t)
	op := a.user(t, "operateur@hebergement.example")
	reader := a.user(t, "lecteur@hebergement.example")

	rec := a.do(t, reader, http.MethodPost, "/documents/download", map[string]any{"template_code": "facture", "reservation_id": 1})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, op, http.MethodPost, "/documents/download?lang=en", map[string]any{"template_code": "facture", "reservation_id": 3})
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not_eligible", body["error"])
	details := body["details"].(map[string]any)
	assert.Equal(t, []any{"Operator is missing"}, details["labels"])

	rec = a.do(t, op, http.MethodPost, "/documents/download", map[string]any{
		"template_code": "facture",
		"values":        map[string]string{"usager": "Jean Dupont"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "missing_variables", body["error"])
	assert.Equal(t, "Variables obligatoires manquantes", body["message"])

	rec = a.do(t, op, http.MethodPost, "/documents/download", map[string]any{"template_code": "facture", "reservation_id": 404})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "reservation_not_found", decode(t, rec)["error"])

	rec = a.do(t, op, http.MethodPost, "/documents/download", map[string]any{"template_code": "facture", "oops": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocuments_Download(t *testing.T) {
	a := newTestApp(t)
	op := a.user(t, "operateur@hebergement.example")

	rec := a.do(t, op, http.MethodPost, "/documents/download", map[string]any{
		"template_code":  "facture",
		"reservation_id": 1,
		"filename":       "facture-dupont",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename=facture-dupont.pdf`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	assert.Equal(t, 0, a.stack.Documents.Previews().Len())
}

func TestReservations_Eligibility(t *testing.T) {
	a := newTestApp(t)
	reader := a.user(t, "lecteur@hebergement.example")

	rec := a.do(t, reader, http.MethodGet, "/reservations/3/documents/prolongation/eligibility", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["canGenerate"])

	rec = a.do(t, reader, http.MethodGet, "/reservations/3/documents/bon_reservation/eligibility", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["canGenerate"])
	assert.Equal(t, []any{"missing_operator"}, body["missing"])

	rec = a.do(t, reader, http.MethodGet, "/reservations/3/documents/devis/eligibility", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_AssignProfile(t *testing.T) {
	a := newTestApp(t)
	admin := a.user(t, "admin@hebergement.example")
	op := a.user(t, "operateur@hebergement.example")

	rec := a.do(t, op, http.MethodGet, "/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, admin, http.MethodGet, "/admin/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["users"], 3)

	var reader models.Profile
	require.NoError(t, a.conn.Where("name = ?", "lecteur").First(&reader).Error)
	rec = a.do(t, admin, http.MethodPut, fmt.Sprintf("/admin/users/%d/profile", op), map[string]any{"profile_id": reader.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(t, op, http.MethodPost, "/documents/download", map[string]any{"template_code": "facture", "reservation_id": 1})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, admin, http.MethodPut, fmt.Sprintf("/admin/users/%d/profile", op), map[string]any{"profile_id": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, admin, http.MethodDelete, fmt.Sprintf("/admin/profiles/%d", reader.ID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdmin_Profiles(t *testing.T) {
	a := newTestApp(t)
	admin := a.user(t, "admin@hebergement.example")

	rec := a.do(t, admin, http.MethodPost, "/admin/profiles", map[string]any{"name": "comptable"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := uint(decode(t, rec)["id"].(float64))

	rec = a.do(t, admin, http.MethodPost, "/admin/profiles", map[string]any{"name": "comptable"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var perm models.Permission
	require.NoError(t, a.conn.Where("resource_type = ? AND action = ?", "document", "generate").First(&perm).Error)
	rec = a.do(t, admin, http.MethodPut, fmt.Sprintf("/admin/profiles/%d/permissions", id), map[string]any{"permission_ids": []uint{perm.ID}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"document:generate"}, decode(t, rec)["permissions"])

	rec = a.do(t, admin, http.MethodDelete, fmt.Sprintf("/admin/profiles/%d", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTemplates_CreateValidation(t *testing.T) {
	a := newTestApp(t)
	op := a.user(t, "operateur@hebergement.example")

	rec := a.do(t, op, http.MethodPost, "/templates", map[string]any{"name": "", "type": "memo", "body": "x"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "validation_failed", body["error"])
	assert.Equal(t, map[string]any{"name": "required", "type": "invalid_choice"}, body["details"])

	rec = a.do(t, op, http.MethodPost, "/templates", map[string]any{
		"name": "Attestation", "type": templating.TypeTermination, "body": "{{usager}}",
		"variables": []map[string]any{{"name": "usager", "obligatoire": true}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "attestation", decode(t, rec)["code"])
}
