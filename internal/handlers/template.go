package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-hebergement/httpx"
	"github.com/diewo77/go-hebergement/internal/gate"
	"github.com/diewo77/go-hebergement/internal/policy"
	"github.com/diewo77/go-hebergement/internal/services"
	"github.com/diewo77/go-hebergement/internal/templating"
)

// TemplateHandler exposes template management. Routes are expected behind
// RequirePermission; changes to an existing template are also checked
// against its author.
type TemplateHandler struct {
	Templates *services.TemplateService
	Documents *services.DocumentService
	Gate      *policy.AuthGate
	Logger    zerolog.Logger
}

func NewTemplateHandler(templates *services.TemplateService, documents *services.DocumentService, ag *policy.AuthGate, logger zerolog.Logger) *TemplateHandler {
	return &TemplateHandler{Templates: templates, Documents: documents, Gate: ag, Logger: logger}
}

// List returns the templates matching the optional status and type query
// parameters.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := templating.Filter{
		Status: templating.Status(q.Get("status")),
		Type:   templating.DocumentType(q.Get("type")),
	}
	if f.Status != "" && !f.Status.Valid() {
		badRequest(w, r, "invalid_choice", map[string]string{"status": "invalid_choice"})
		return
	}
	if f.Type != "" && !f.Type.Valid() {
		badRequest(w, r, "invalid_type", nil)
		return
	}
	templates := h.Templates.List(f)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}

// View returns one template with the declared variables the reservation
// mapping never fills.
func (h *TemplateHandler) View(w http.ResponseWriter, r *http.Request) {
	tpl, ok := h.load(w, r, gate.ActionView)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"template": tpl,
		"unmapped": h.Documents.Coverage(tpl),
	})
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := userID(r)
	var in services.TemplateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		badRequest(w, r, "invalid_json", nil)
		return
	}
	tpl, err := h.Templates.Create(r.Context(), in, uid)
	if err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tpl)
}

// Update replaces the editable fields. The version is bumped server side.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	tpl, ok := h.load(w, r, gate.ActionUpdate)
	if !ok {
		return
	}
	var in services.TemplateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		badRequest(w, r, "invalid_json", nil)
		return
	}
	updated, err := h.Templates.Update(r.Context(), tpl.ID, in)
	if err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *TemplateHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	tpl, ok := h.load(w, r, gate.ActionDuplicate)
	if !ok {
		return
	}
	uid, _ := userID(r)
	dup, err := h.Templates.Duplicate(r.Context(), tpl.ID, uid)
	if err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, dup)
}

func (h *TemplateHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.Templates.Activate)
}

func (h *TemplateHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.Templates.Deactivate)
}

// Missing lists the required variables left blank by the posted values.
func (h *TemplateHandler) Missing(w http.ResponseWriter, r *http.Request) {
	tpl, ok := h.load(w, r, gate.ActionView)
	if !ok {
		return
	}
	var body struct {
		Values map[string]string `json:"values"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		badRequest(w, r, "invalid_json", nil)
		return
	}
	missing, err := h.Documents.Missing(tpl.ID, body.Values)
	if err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	if missing == nil {
		missing = []string{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"template": tpl.Code,
		"missing":  missing,
		"complete": len(missing) == 0,
	})
}

func (h *TemplateHandler) setStatus(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id uint) (templating.Template, error)) {
	tpl, ok := h.load(w, r, gate.ActionActivate)
	if !ok {
		return
	}
	updated, err := apply(r.Context(), tpl.ID)
	if err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// load resolves the {id} template and authorizes action on it.
func (h *TemplateHandler) load(w http.ResponseWriter, r *http.Request, action gate.Action) (templating.Template, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "invalid_id", nil)
		return templating.Template{}, false
	}
	tpl, err := h.Templates.Get(id)
	if err != nil {
		fail(w, r, h.Logger, err)
		return templating.Template{}, false
	}
	if err := h.Gate.Authorize(r.Context(), action, gate.ResourceTemplate, tpl); err != nil {
		fail(w, r, h.Logger, err)
		return templating.Template{}, false
	}
	return tpl, true
}
