package services

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/diewo77/go-hebergement/internal/mapping"
	"github.com/diewo77/go-hebergement/internal/preview"
	"github.com/diewo77/go-hebergement/internal/render"
	"github.com/diewo77/go-hebergement/internal/templating"
)

// Loader reads the rendering aggregate of a reservation.
type Loader interface {
	Load(ctx context.Context, id uint) (mapping.ReservationData, error)
}

// GenerateRequest selects a template by ID or code. ReservationID is
// optional: without it only Values feed the template. Values override
// mapped values when non-empty.
type GenerateRequest struct {
	TemplateID    uint              `json:"template_id,omitempty"`
	TemplateCode  string            `json:"template_code,omitempty"`
	ReservationID uint              `json:"reservation_id,omitempty"`
	Values        map[string]string `json:"values,omitempty"`
	Filename      string            `json:"filename,omitempty"`
	ForceBody     bool              `json:"force_body,omitempty"`
	// Previous is the preview token this request supersedes.
	Previous string `json:"previous,omitempty"`
}

// Prepared is a template with its resolved dictionary.
type Prepared struct {
	Template   templating.Template   `json:"template"`
	Dictionary templating.Dictionary `json:"values"`
	Missing    []string              `json:"missing"`
	Blank      []string              `json:"blank"`
}

// DocumentService runs template selection, mapping, validation and
// rendering.
type DocumentService struct {
	registry *templating.Registry
	loader   Loader
	mapper   *mapping.Mapper
	renderer *render.Renderer
	previews *preview.Store
	logger   zerolog.Logger
}

func NewDocumentService(registry *templating.Registry, loader Loader, mapper *mapping.Mapper, renderer *render.Renderer, previews *preview.Store, logger zerolog.Logger) *DocumentService {
	return &DocumentService{
		registry: registry,
		loader:   loader,
		mapper:   mapper,
		renderer: renderer,
		previews: previews,
		logger:   logger,
	}
}

func (s *DocumentService) Template(req GenerateRequest) (templating.Template, error) {
	if req.TemplateID != 0 {
		return s.registry.GetByID(req.TemplateID)
	}
	return s.registry.Get(req.TemplateCode)
}

// Prepare resolves the template and its dictionary without rendering.
func (s *DocumentService) Prepare(ctx context.Context, req GenerateRequest) (*Prepared, error) {
	tpl, err := s.Template(req)
	if err != nil {
		return nil, err
	}
	dict := templating.Dictionary{}
	if req.ReservationID != 0 {
		data, err := s.loader.Load(ctx, req.ReservationID)
		if err != nil {
			return nil, err
		}
		if e := mapping.CanGenerate(tpl.Type, data); !e.CanGenerate {
			return nil, &NotEligibleError{Type: string(tpl.Type), Missing: e.Missing}
		}
		dict = s.mapper.Map(ctx, data, tpl)
	}
	dict = dict.Merge(req.Values)
	return &Prepared{
		Template:   tpl,
		Dictionary: dict,
		Missing:    templating.Missing(tpl, dict),
		Blank:      templating.Blank(tpl, dict),
	}, nil
}

// Generate renders the document. Inactive templates and incomplete
// dictionaries are refused before rendering.
func (s *DocumentService) Generate(ctx context.Context, req GenerateRequest) (*render.Document, *Prepared, error) {
	p, err := s.Prepare(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if !p.Template.Active() {
		return nil, p, templating.ErrInactive
	}
	if len(p.Missing) > 0 {
		return nil, p, &MissingVariablesError{Template: p.Template.Code, Missing: p.Missing}
	}
	if req.ReservationID != 0 {
		s.warnSynthetic(p.Template, req)
	}
	doc, err := s.renderer.Render(p.Template, p.Dictionary, render.Options{Filename: req.Filename, ForceBody: req.ForceBody})
	if err != nil {
		return nil, p, err
	}
	return doc, p, nil
}

// Preview renders the document and holds it behind a reference, releasing
// req.Previous first.
func (s *DocumentService) Preview(ctx context.Context, req GenerateRequest) (preview.Handle, *render.Document, *Prepared, error) {
	doc, p, err := s.Generate(ctx, req)
	if err != nil {
		return preview.Handle{}, nil, p, err
	}
	return s.previews.Replace(req.Previous, doc), doc, p, nil
}

func (s *DocumentService) Previews() *preview.Store { return s.previews }

// Eligibility reports whether a document type can be generated for the
// reservation.
func (s *DocumentService) Eligibility(ctx context.Context, reservationID uint, t templating.DocumentType) (mapping.Eligibility, error) {
	data, err := s.loader.Load(ctx, reservationID)
	if err != nil {
		return mapping.Eligibility{}, err
	}
	return mapping.CanGenerate(t, data), nil
}

// Missing validates values against a template without loading anything.
func (s *DocumentService) Missing(id uint, values map[string]string) ([]string, error) {
	tpl, err := s.registry.GetByID(id)
	if err != nil {
		return nil, err
	}
	return templating.Missing(tpl, templating.Dictionary(values)), nil
}

// Coverage lists the declared variables of tpl that the mapper never
// fills for its document type.
func (s *DocumentService) Coverage(tpl templating.Template) []string {
	return templating.Uncovered(tpl, mapping.KeySet(tpl.Type))
}

// warnSynthetic logs the fixed-literal keys that end up in the document:
// all of them for designed layouts, the referenced ones otherwise.
func (s *DocumentService) warnSynthetic(tpl templating.Template, req GenerateRequest) {
	modern := render.UsesModernLayout(tpl, req.ForceBody)
	placeholders := tpl.Placeholders()
	var used []string
	for _, k := range s.mapper.SyntheticKeys(tpl.Type) {
		if modern || slices.Contains(placeholders, k) {
			used = append(used, k)
		}
	}
	if len(used) == 0 {
		return
	}
	s.logger.Warn().
		Str("template", tpl.Code).
		Uint("reservation_id", req.ReservationID).
		Strs("keys", used).
		Msg("document uses placeholder data not taken from the reservation")
}
