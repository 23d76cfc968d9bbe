package templating

import "strings"

// Missing returns the required variables of t that are absent from d or
// blank, in declaration order.
func Missing(t Template, d Dictionary) []string {
	var out []string
	for _, v := range t.Variables {
		if !v.Required {
			continue
		}
		if strings.TrimSpace(d[v.Name]) == "" {
			out = append(out, v.Name)
		}
	}
	return out
}

// Blank returns every declared variable, required or not, whose value in
// d is absent or blank.
func Blank(t Template, d Dictionary) []string {
	var out []string
	for _, v := range t.Variables {
		if strings.TrimSpace(d[v.Name]) == "" {
			out = append(out, v.Name)
		}
	}
	return out
}
