package render

import (
	"path"
	"strings"

	"github.com/diewo77/go-hebergement/internal/templating"
)

var extensions = map[templating.Format]string{
	templating.FormatPDF:  ".pdf",
	templating.FormatHTML: ".html",
	templating.FormatDOCX: ".docx",
}

var contentTypes = map[templating.Format]string{
	templating.FormatPDF:  "application/pdf",
	templating.FormatHTML: "text/html; charset=utf-8",
}

// Filename returns override when set, with the format extension appended
// if missing, or the slugified template name followed by id.
func Filename(tpl templating.Template, override, id string) string {
	ext := extensions[tpl.Format]
	if ext == "" {
		ext = ".pdf"
	}
	if override = strings.TrimSpace(path.Base("/" + override)); override != "/" && override != "" {
		if !strings.EqualFold(path.Ext(override), ext) {
			override += ext
		}
		return override
	}
	base := templating.Slug(tpl.Name)
	if base == "" {
		base = "document"
	}
	return base + "-" + id + ext
}
