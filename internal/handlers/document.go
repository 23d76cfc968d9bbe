package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-hebergement/httpx"
	"github.com/diewo77/go-hebergement/i18n"
	"github.com/diewo77/go-hebergement/internal/middleware"
	"github.com/diewo77/go-hebergement/internal/services"
	"github.com/diewo77/go-hebergement/internal/templating"
)

// DocumentHandler generates documents for preview and download.
type DocumentHandler struct {
	Documents *services.DocumentService
	Logger    zerolog.Logger
}

func NewDocumentHandler(documents *services.DocumentService, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{Documents: documents, Logger: logger}
}

type previewResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	ExpiresAt time.Time `json:"expires_at"`
	// Missing lists optional variables left blank.
	Missing []string `json:"missing"`
}

// Preview renders a document and returns a reference to fetch it inline.
// A previous token in the request is released first.
func (h *DocumentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req services.GenerateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, r, "invalid_json", nil)
		return
	}
	handle, doc, p, err := h.Documents.Preview(r.Context(), req)
	if err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	missing := p.Blank
	if missing == nil {
		missing = []string{}
	}
	httpx.JSON(w, http.StatusCreated, previewResponse{
		Token:     handle.Token,
		URL:       "/documents/previews/" + handle.Token,
		Filename:  doc.Filename,
		ExpiresAt: handle.ExpiresAt,
		Missing:   missing,
	})
}

// View serves a held preview inline.
func (h *DocumentHandler) View(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Documents.Previews().Get(r.PathValue("token"))
	if err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.File(w, httpx.Inline, doc.Filename, doc.ContentType, doc.Data)
}

// Release frees a preview. Releasing twice answers 410.
func (h *DocumentHandler) Release(w http.ResponseWriter, r *http.Request) {
	if err := h.Documents.Previews().Release(r.PathValue("token")); err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Download renders a document as an attachment. Nothing is retained.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req services.GenerateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, r, "invalid_json", nil)
		return
	}
	req.Previous = ""
	doc, _, err := h.Documents.Generate(r.Context(), req)
	if err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.File(w, httpx.Attachment, doc.Filename, doc.ContentType, doc.Data)
}

// Eligibility reports whether {type} can be generated for reservation {id}.
func (h *DocumentHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "invalid_id", nil)
		return
	}
	t := templating.DocumentType(r.PathValue("type"))
	if !t.Valid() {
		badRequest(w, r, "invalid_type", nil)
		return
	}
	e, err := h.Documents.Eligibility(r.Context(), id, t)
	if err != nil {
		fail(w, r, h.Logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"reservation_id": id,
		"type":           t,
		"canGenerate":    e.CanGenerate,
		"missing":        e.Missing,
		"labels":         i18n.TAll(middleware.LangFrom(r), e.Missing),
	})
}
