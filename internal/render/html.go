package render

import (
	"html/template"
	"io"
)

var htmlDocument = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.Width}}mm {{.Height}}mm; margin: 25mm 20mm; }
body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; }
header, footer { color: #6e6e6e; font-size: 8pt; font-style: italic; text-align: center; }
dl.field { display: flex; margin: 0 0 2pt; }
dl.field dt { font-weight: bold; width: 55mm; }
dl.field dd { margin: 0; }
h2 { border-bottom: 1px solid #a0a0a0; }
p { white-space: pre-line; text-align: justify; }
</style>
</head>
<body>
{{- if .Header}}
<header>{{.Header}}</header>
{{- end}}
<main>
{{- range .Blocks}}
{{- if eq .Kind "heading"}}
{{- if le .Level 1}}
<h1>{{.Text}}</h1>
{{- else}}
<h2>{{.Text}}</h2>
{{- end}}
{{- else if eq .Kind "field"}}
<dl class="field"><dt>{{.Label}}</dt><dd>{{.Text}}</dd></dl>
{{- else if eq .Kind "paragraph"}}
<p>{{.Text}}</p>
{{- else}}
<br>
{{- end}}
{{- end}}
</main>
{{- if .Footer}}
<footer>{{.Footer}}</footer>
{{- end}}
</body>
</html>
`))

type htmlPage struct {
	page
	Width, Height float64
}

// writeHTML renders the block layout as a standalone HTML document.
func writeHTML(w io.Writer, p page) error {
	return htmlDocument.Execute(w, htmlPage{page: p, Width: p.Size.Width, Height: p.Size.Height})
}
