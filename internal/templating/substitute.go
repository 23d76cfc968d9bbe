package templating

import (
	"regexp"
	"time"
)

// Date tokens resolve to the current date whether or not a template
// declares them.
const (
	DateToken    = "date"
	DateTokenAlt = "date_du_jour"
	DateLayout   = "02/01/2006"
)

var (
	placeholderRe   = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)
	placeholderName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

func IsDateToken(name string) bool { return name == DateToken || name == DateTokenAlt }

// Placeholders returns the placeholder names found in text, in order,
// duplicates included.
func Placeholders(text string) []string {
	matches := placeholderRe.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Substitute replaces every {{name}} in text with d[name]. Absent names
// become the empty string, except date tokens which fall back to now.
// Replaced values are not scanned again.
func Substitute(text string, d Dictionary, now time.Time) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-2]
		if v, ok := d[name]; ok {
			return v
		}
		if IsDateToken(name) {
			return now.Format(DateLayout)
		}
		return ""
	})
}
