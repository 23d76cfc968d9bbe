// Package render turns a template and a variable dictionary into a
// finished document.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/rs/zerolog"

	"github.com/diewo77/go-hebergement/internal/templating"
)

// Catalog dictionaries are written in key order so identical inputs give
// identical bytes. The setting is global and also applies to the gofpdf
// instances maroto creates.
func init() {
	gofpdf.SetDefaultCatalogSort(true)
}

// Document is a rendered output ready to be previewed or downloaded.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
	Template    string
}

// Options tune a single render.
type Options struct {
	// Filename overrides the generated file name.
	Filename string
	// ForceBody renders the template body even when a designed layout
	// exists for the document type.
	ForceBody bool
}

// Renderer produces documents. It holds no per-render state and is safe
// for concurrent use.
type Renderer struct {
	logger        zerolog.Logger
	now           func() time.Time
	newID         func() string
	defaultFormat templating.PageFormat
}

type Option func(*Renderer)

func WithClock(now func() time.Time) Option { return func(r *Renderer) { r.now = now } }

// WithIDFunc sets the generator for the identifier suffix of default
// file names.
func WithIDFunc(f func() string) Option { return func(r *Renderer) { r.newID = f } }

// WithDefaultPageFormat sets the page format of templates that declare
// none.
func WithDefaultPageFormat(f templating.PageFormat) Option {
	return func(r *Renderer) { r.defaultFormat = f }
}

func New(logger zerolog.Logger, opts ...Option) *Renderer {
	r := &Renderer{
		logger:        logger,
		now:           time.Now,
		newID:         func() string { return uuid.NewString()[:8] },
		defaultFormat: templating.PageA4,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render substitutes d into tpl and encodes the result in the template
// format. Any failure is logged with its cause and reported as
// ErrGenerationFailed; no partial output is returned.
func (r *Renderer) Render(tpl templating.Template, d templating.Dictionary, opts Options) (*Document, error) {
	doc, err := r.render(tpl, d, opts)
	if err != nil {
		r.logger.Error().Err(err).Str("template", tpl.Code).Str("type", string(tpl.Type)).Msg("document generation failed")
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	r.logger.Debug().Str("template", tpl.Code).Str("file", doc.Filename).Int("bytes", len(doc.Data)).Msg("document generated")
	return doc, nil
}

func (r *Renderer) render(tpl templating.Template, d templating.Dictionary, opts Options) (*Document, error) {
	now := r.now()
	format := tpl.PageFormat
	if format == "" {
		format = r.defaultFormat
	}
	size, err := PageSize(format, tpl.Orientation)
	if err != nil {
		return nil, err
	}
	d = withDateTokens(d, now)
	p := page{
		Title:   tpl.Name,
		Size:    size,
		Header:  templating.Substitute(tpl.Header, d, now),
		Footer:  templating.Substitute(tpl.Footer, d, now),
		Created: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}

	var data []byte
	switch tpl.Format {
	case templating.FormatPDF, "":
		if UsesModernLayout(tpl, opts.ForceBody) {
			data, err = writeModernPDF(p, modernLayouts[tpl.Type], d)
			break
		}
		p.Blocks = Resolve(ParseLayout(tpl.Body), d, now)
		var buf bytes.Buffer
		err = writeBodyPDF(&buf, p)
		data = buf.Bytes()
	case templating.FormatHTML:
		p.Blocks = Resolve(ParseLayout(tpl.Body), d, now)
		var buf bytes.Buffer
		err = writeHTML(&buf, p)
		data = buf.Bytes()
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, tpl.Format)
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty output for template %q", tpl.Code)
	}

	outFormat := tpl.Format
	if outFormat == "" {
		outFormat = templating.FormatPDF
	}
	return &Document{
		Filename:    Filename(tpl, opts.Filename, r.newID()),
		ContentType: contentTypes[outFormat],
		Data:        data,
		Template:    tpl.Code,
	}, nil
}

// withDateTokens returns d with the date tokens set when absent.
func withDateTokens(d templating.Dictionary, now time.Time) templating.Dictionary {
	today := now.Format(templating.DateLayout)
	return templating.Dictionary{
		templating.DateToken:    today,
		templating.DateTokenAlt: today,
	}.Merge(d)
}
