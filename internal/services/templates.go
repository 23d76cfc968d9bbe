package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/internal/models"
	"github.com/diewo77/go-hebergement/internal/templating"
	"github.com/diewo77/go-hebergement/validation"
)

var (
	pageFormats  = []templating.PageFormat{templating.PageA4, templating.PageA3, templating.PageLetter}
	orientations = []templating.Orientation{templating.Portrait, templating.Landscape}
	formats      = []templating.Format{templating.FormatPDF, templating.FormatDOCX, templating.FormatHTML}
	layouts      = []string{templating.LayoutBody}
)

// TemplateInput is the editable part of a template.
type TemplateInput struct {
	Name        string                  `json:"name"`
	Type        templating.DocumentType `json:"type"`
	Body        string                  `json:"body"`
	Header      string                  `json:"header,omitempty"`
	Footer      string                  `json:"footer,omitempty"`
	Format      templating.Format       `json:"format,omitempty"`
	PageFormat  templating.PageFormat   `json:"page_format,omitempty"`
	Orientation templating.Orientation  `json:"orientation,omitempty"`
	Layout      string                  `json:"layout,omitempty"`
	Variables   []templating.Variable   `json:"variables"`
}

func (in TemplateInput) validate() error {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, 255, v)
	validation.Required("type", string(in.Type), v)
	validation.OneOf("type", in.Type, templating.DocumentTypes, v)
	validation.OneOf("format", in.Format, formats, v)
	validation.OneOf("page_format", in.PageFormat, pageFormats, v)
	validation.OneOf("orientation", in.Orientation, orientations, v)
	validation.OneOf("layout", in.Layout, layouts, v)
	names := make([]string, len(in.Variables))
	for i, variable := range in.Variables {
		names[i] = variable.Name
		validation.Required(fmt.Sprintf("variables[%d].name", i), variable.Name, v)
	}
	validation.Unique("variables", names, v)
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

func (in TemplateInput) apply(t *templating.Template) {
	t.Name = strings.TrimSpace(in.Name)
	t.Type = in.Type
	t.Body = in.Body
	t.Header = in.Header
	t.Footer = in.Footer
	t.Format = in.Format
	if t.Format == "" {
		t.Format = templating.FormatPDF
	}
	t.PageFormat = in.PageFormat
	t.Orientation = in.Orientation
	t.Layout = in.Layout
	t.Variables = make([]templating.Variable, len(in.Variables))
	for i, v := range in.Variables {
		if v.Kind == "" {
			v.Kind = templating.KindText
		}
		t.Variables[i] = v
	}
}

// TemplateService persists templates and keeps the registry in sync.
type TemplateService struct {
	db       *gorm.DB
	registry *templating.Registry
	logger   zerolog.Logger
}

func NewTemplateService(db *gorm.DB, registry *templating.Registry, logger zerolog.Logger) *TemplateService {
	return &TemplateService{db: db, registry: registry, logger: logger}
}

func (s *TemplateService) Registry() *templating.Registry { return s.registry }

// Sync loads every stored template into the registry, in ID order.
// Stored templates replace registry entries sharing their code.
func (s *TemplateService) Sync(ctx context.Context) error {
	var recs []models.DocumentTemplate
	err := s.db.WithContext(ctx).
		Preload("Variables", orderByPosition).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	for i := range recs {
		if err := s.registry.Put(recs[i].Template()); err != nil {
			s.logger.Warn().Err(err).Str("template", recs[i].Code).Msg("stored template skipped")
			continue
		}
	}
	s.logger.Info().Int("stored", len(recs)).Int("registered", s.registry.Len()).Msg("templates synced")
	return nil
}

func orderByPosition(db *gorm.DB) *gorm.DB { return db.Order("position") }

func (s *TemplateService) List(f templating.Filter) []templating.Template {
	return s.registry.List(f)
}

func (s *TemplateService) Get(id uint) (templating.Template, error) {
	return s.registry.GetByID(id)
}

// Create stores a new active template authored by authorID.
func (s *TemplateService) Create(ctx context.Context, in TemplateInput, authorID uint) (templating.Template, error) {
	if err := in.validate(); err != nil {
		return templating.Template{}, err
	}
	tpl := templating.Template{
		Code:        s.uniqueCode(in.Name),
		Status:      templating.StatusActive,
		Version:     "1.0",
		CreatedByID: authorID,
	}
	in.apply(&tpl)
	return s.insert(ctx, tpl)
}

// Update replaces the editable fields and bumps the minor version.
func (s *TemplateService) Update(ctx context.Context, id uint, in TemplateInput) (templating.Template, error) {
	if err := in.validate(); err != nil {
		return templating.Template{}, err
	}
	tpl, err := s.registry.GetByID(id)
	if err != nil {
		return templating.Template{}, err
	}
	in.apply(&tpl)
	tpl.Version = NextVersion(tpl.Version)
	if err := tpl.Check(); err != nil {
		return templating.Template{}, err
	}

	rec := models.NewDocumentTemplate(tpl)
	rec.ID = id
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&models.DocumentVariable{}).Error; err != nil {
			return err
		}
		vars := rec.Variables
		rec.Variables = nil
		if err := tx.Model(&models.DocumentTemplate{ID: id}).Select("*").Omit("ID", "CreatedAt", "Variables").Updates(&rec).Error; err != nil {
			return err
		}
		for i := range vars {
			vars[i].TemplateID = id
		}
		if len(vars) > 0 {
			return tx.Create(&vars).Error
		}
		return nil
	})
	if err != nil {
		return templating.Template{}, fmt.Errorf("update template %d: %w", id, err)
	}
	if err := s.registry.Put(tpl); err != nil {
		return templating.Template{}, err
	}
	s.logger.Info().Uint("id", id).Str("version", tpl.Version).Msg("template updated")
	return tpl, nil
}

// Duplicate copies a template under a new code. The copy is inactive,
// starts over at version 1.0 and belongs to authorID.
func (s *TemplateService) Duplicate(ctx context.Context, id, authorID uint) (templating.Template, error) {
	src, err := s.registry.GetByID(id)
	if err != nil {
		return templating.Template{}, err
	}
	dup := src.Clone()
	dup.ID = 0
	dup.Name = src.Name + " (copie)"
	dup.Code = s.uniqueCode(dup.Name)
	dup.Status = templating.StatusInactive
	dup.Version = "1.0"
	dup.CreatedByID = authorID
	return s.insert(ctx, dup)
}

func (s *TemplateService) Activate(ctx context.Context, id uint) (templating.Template, error) {
	return s.setStatus(ctx, id, templating.StatusActive)
}

// Deactivate hides a template from generation. Templates are never
// deleted.
func (s *TemplateService) Deactivate(ctx context.Context, id uint) (templating.Template, error) {
	return s.setStatus(ctx, id, templating.StatusInactive)
}

func (s *TemplateService) setStatus(ctx context.Context, id uint, status templating.Status) (templating.Template, error) {
	tpl, err := s.registry.GetByID(id)
	if err != nil {
		return templating.Template{}, err
	}
	err = s.db.WithContext(ctx).Model(&models.DocumentTemplate{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
	if err != nil {
		return templating.Template{}, fmt.Errorf("set template %d status: %w", id, err)
	}
	tpl.Status = status
	if err := s.registry.Put(tpl); err != nil {
		return templating.Template{}, err
	}
	return tpl, nil
}

func (s *TemplateService) insert(ctx context.Context, tpl templating.Template) (templating.Template, error) {
	if err := tpl.Check(); err != nil {
		return templating.Template{}, err
	}
	rec := models.NewDocumentTemplate(tpl)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return templating.Template{}, fmt.Errorf("create template %s: %w", tpl.Code, err)
	}
	tpl.ID = rec.ID
	if err := s.registry.Put(tpl); err != nil {
		return templating.Template{}, err
	}
	s.logger.Info().Uint("id", tpl.ID).Str("code", tpl.Code).Msg("template created")
	return tpl, nil
}

// uniqueCode derives a code from name, suffixing a counter when the code
// is taken.
func (s *TemplateService) uniqueCode(name string) string {
	base := templating.Slug(name)
	if base == "" {
		base = "modele"
	}
	code := base
	for i := 2; ; i++ {
		if _, err := s.registry.Get(code); errors.Is(err, templating.ErrNotFound) {
			return code
		}
		code = base + "-" + strconv.Itoa(i)
	}
}

// NextVersion increments the minor part of a "major.minor" version.
// Unparseable versions restart at 1.0.
func NextVersion(v string) string {
	major, minor, ok := strings.Cut(v, ".")
	ma, err1 := strconv.Atoi(major)
	mi, err2 := strconv.Atoi(minor)
	if !ok || err1 != nil || err2 != nil {
		return "1.0"
	}
	return strconv.Itoa(ma) + "." + strconv.Itoa(mi+1)
}
