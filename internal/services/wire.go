package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/internal/config"
	"github.com/diewo77/go-hebergement/internal/logging"
	"github.com/diewo77/go-hebergement/internal/mapping"
	"github.com/diewo77/go-hebergement/internal/preview"
	"github.com/diewo77/go-hebergement/internal/render"
	"github.com/diewo77/go-hebergement/internal/templating"
)

// Stack is the document pipeline assembled for a process.
type Stack struct {
	Templates *TemplateService
	Documents *DocumentService
}

// NewEnrichmentSource returns the source named by cfg. The database source
// falls back to the static tables for data it does not store.
func NewEnrichmentSource(cfg config.DocumentsConfig, db *gorm.DB, logger zerolog.Logger) (mapping.EnrichmentSource, error) {
	switch cfg.EnrichmentSource {
	case "", config.EnrichmentStatic:
		return mapping.NewStaticSource(), nil
	case config.EnrichmentDB:
		return &DBEnrichmentSource{DB: db, Fallback: mapping.NewStaticSource(), Logger: logger}, nil
	}
	return nil, fmt.Errorf("unknown enrichment source %q", cfg.EnrichmentSource)
}

// Wire builds the registry from the builtin templates, overlays the stored
// ones and assembles the services around it.
func Wire(ctx context.Context, cfg config.DocumentsConfig, db *gorm.DB, logger zerolog.Logger) (*Stack, error) {
	pageFormat := templating.PageFormat(cfg.DefaultPageFormat)
	if _, err := render.PageSize(pageFormat, templating.Portrait); err != nil {
		return nil, err
	}
	builtins, err := templating.LoadBuiltin()
	if err != nil {
		return nil, err
	}
	registry, err := templating.NewRegistry(builtins...)
	if err != nil {
		return nil, err
	}
	templates := NewTemplateService(db, registry, logging.Component(logger, "templates"))
	if err := templates.Sync(ctx); err != nil {
		return nil, err
	}

	source, err := NewEnrichmentSource(cfg, db, logging.Component(logger, "enrichment"))
	if err != nil {
		return nil, err
	}
	ttl := cfg.PreviewTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	documents := NewDocumentService(
		registry,
		NewReservationLoader(db, logging.Component(logger, "reservations")),
		mapping.NewMapper(source, mapping.WithLogger(logging.Component(logger, "mapping"))),
		render.New(logging.Component(logger, "render"), render.WithDefaultPageFormat(pageFormat)),
		preview.NewStore(ttl, preview.WithLogger(logging.Component(logger, "preview"))),
		logging.Component(logger, "documents"),
	)
	return &Stack{Templates: templates, Documents: documents}, nil
}
