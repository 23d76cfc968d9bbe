package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-hebergement/internal/templating"
)

var renderNow = time.Date(2025, time.April, 2, 10, 30, 0, 0, time.UTC)

func newTestRenderer() *Renderer {
	return New(zerolog.Nop(),
		WithClock(func() time.Time { return renderNow }),
		WithIDFunc(func() string { return "abc123" }),
	)
}

func builtin(t *testing.T, code string) templating.Template {
	t.Helper()
	all, err := templating.LoadBuiltin()
	require.NoError(t, err)
	for _, tpl := range all {
		if tpl.Code == code {
			return tpl
		}
	}
	t.Fatalf("builtin %q not found", code)
	return templating.Template{}
}

func TestPageSize(t *testing.T) {
	cases := []struct {
		format templating.PageFormat
		orient templating.Orientation
		want   Dimensions
	}{
		{templating.PageA4, templating.Portrait, Dimensions{210, 297}},
		{templating.PageA4, templating.Landscape, Dimensions{297, 210}},
		{templating.PageA3, "", Dimensions{297, 420}},
		{templating.PageA3, templating.Landscape, Dimensions{420, 297}},
		{templating.PageLetter, templating.Portrait, Dimensions{216, 279}},
		{templating.PageLetter, templating.Landscape, Dimensions{279, 216}},
	}
	for _, c := range cases {
		got, err := PageSize(c.format, c.orient)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s %s", c.format, c.orient)
	}
	_, err := PageSize("A5", templating.Portrait)
	assert.ErrorIs(t, err, ErrUnknownPageFormat)
	_, err = PageSize(templating.PageA4, "diagonal")
	assert.ErrorIs(t, err, ErrUnknownPageFormat)
}

func TestParseLayout(t *testing.T) {
	body := `# BON DE CONFIRMATION

Bon de confirmation pour {{usager}}
sur deux lignes.

## OCCUPANTS:
- Adultes: {{nombre_adultes}}
- Note libre
- Horaires: 8:00 - 20:00

---

Fait le {{date}}.`

	blocks := ParseLayout(body)
	require.Len(t, blocks, 8)
	assert.Equal(t, Block{Kind: BlockHeading, Level: 1, Text: "BON DE CONFIRMATION"}, blocks[0])
	assert.Equal(t, Block{Kind: BlockParagraph, Text: "Bon de confirmation pour {{usager}}\nsur deux lignes."}, blocks[1])
	assert.Equal(t, Block{Kind: BlockHeading, Level: 2, Text: "OCCUPANTS:"}, blocks[2])
	assert.Equal(t, Block{Kind: BlockField, Label: "Adultes", Text: "{{nombre_adultes}}"}, blocks[3])
	assert.Equal(t, Block{Kind: BlockField, Text: "Note libre"}, blocks[4])
	assert.Equal(t, Block{Kind: BlockField, Label: "Horaires", Text: "8:00 - 20:00"}, blocks[5])
	assert.Equal(t, Block{Kind: BlockBlank}, blocks[6])
	assert.Equal(t, Block{Kind: BlockParagraph, Text: "Fait le {{date}}."}, blocks[7])
}

func TestParseLayout_RuleUnderParagraphIsSpacer(t *testing.T) {
	blocks := ParseLayout("Paiement à réception de {{usager}}\n---\nFin")
	assert.Equal(t, []Block{
		{Kind: BlockParagraph, Text: "Paiement à réception de {{usager}}"},
		{Kind: BlockBlank},
		{Kind: BlockParagraph, Text: "Fin"},
	}, blocks)

	blocks = ParseLayout("Titre\n===")
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockParagraph, blocks[0].Kind)
}

func TestResolve_ValuesCannotChangeStructure(t *testing.T) {
	blocks := ParseLayout("- Nom: {{usager}}")
	got := Resolve(blocks, templating.Dictionary{"usager": "# Titre: piégé\n- x"}, renderNow)
	require.Len(t, got, 1)
	assert.Equal(t, BlockField, got[0].Kind)
	assert.Equal(t, "Nom", got[0].Label)
	assert.Equal(t, "# Titre: piégé\n- x", got[0].Text)
}

func TestRender_BodyPDF(t *testing.T) {
	tpl := builtin(t, "prolongation")
	d := templating.Dictionary{"usager": "Jean Dupont", "hotel": "Hôtel Central", "numero_reservation": "5"}

	doc, err := newTestRenderer().Render(tpl, d, Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "avis-de-prolongation-abc123.pdf", doc.Filename)
	assert.Equal(t, "prolongation", doc.Template)
}

func TestRender_Idempotent(t *testing.T) {
	d := templating.Dictionary{
		"usager":             "Jean Dupont",
		"hotel":              "Hôtel Central",
		"numero_reservation": "5",
		"date_fin":           "12/01/2025",
	}
	r := newTestRenderer()
	for _, code := range []string{"fin_prise_charge", "facture", "bon_reservation"} {
		tpl := builtin(t, code)
		for i := 0; i < 5; i++ {
			first, err := r.Render(tpl, d, Options{})
			require.NoError(t, err, code)
			second, err := r.Render(tpl, d, Options{})
			require.NoError(t, err, code)
			require.Equal(t, first.Data, second.Data, code)
		}
	}
}

func TestRender_ModernLayouts(t *testing.T) {
	for _, code := range []string{"facture", "bon_reservation"} {
		tpl := builtin(t, code)
		require.True(t, HasModernLayout(tpl.Type))
		d := templating.Dictionary{"usager": "Jean Dupont", "hotel": "Hôtel Central", "numero_reservation": "5"}
		doc, err := newTestRenderer().Render(tpl, d, Options{Filename: "bon"})
		require.NoError(t, err, code)
		assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")), code)
		assert.Equal(t, "bon.pdf", doc.Filename)
	}
	assert.False(t, HasModernLayout(templating.TypeTermination))
}

func TestRender_ForceBodyAndLandscape(t *testing.T) {
	tpl := builtin(t, "bon_reservation")
	tpl.Orientation = templating.Landscape
	tpl.PageFormat = templating.PageA3
	doc, err := newTestRenderer().Render(tpl, templating.Dictionary{"usager": "A"}, Options{ForceBody: true})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
}

func TestRender_HTML(t *testing.T) {
	tpl := builtin(t, "bon_reservation")
	tpl.Format = templating.FormatHTML
	d := templating.Dictionary{"usager": "Jean Dupont", "hotel": "Hôtel <Central>"}

	doc, err := newTestRenderer().Render(tpl, d, Options{})
	require.NoError(t, err)
	out := string(doc.Data)
	assert.Equal(t, "text/html; charset=utf-8", doc.ContentType)
	assert.True(t, strings.HasSuffix(doc.Filename, ".html"))
	assert.Contains(t, out, "Bon de confirmation pour Jean Dupont à l&#39;hôtel Hôtel &lt;Central&gt;")
	assert.Contains(t, out, "Fait le 02/04/2025.")
	assert.Contains(t, out, "Document à présenter")
	assert.Contains(t, out, "210mm 297mm")
	assert.NotContains(t, out, "{{")
}

func TestRender_Failures(t *testing.T) {
	r := newTestRenderer()

	tpl := builtin(t, "facture")
	tpl.Format = templating.FormatDOCX
	doc, err := r.Render(tpl, templating.Dictionary{}, Options{})
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	tpl = builtin(t, "fin_prise_charge")
	tpl.PageFormat = "B5"
	doc, err = r.Render(tpl, templating.Dictionary{}, Options{})
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, ErrUnknownPageFormat)
}

func TestFilename(t *testing.T) {
	tpl := templating.Template{Name: "Bon de confirmation", Format: templating.FormatPDF}
	assert.Equal(t, "bon-de-confirmation-x1.pdf", Filename(tpl, "", "x1"))
	assert.Equal(t, "mon-bon.pdf", Filename(tpl, "mon-bon", "x1"))
	assert.Equal(t, "mon-bon.PDF", Filename(tpl, "mon-bon.PDF", "x1"))
	assert.Equal(t, "passwd.pdf", Filename(tpl, "../../etc/passwd", "x1"))
	assert.Equal(t, "document-x1.pdf", Filename(templating.Template{Name: "!!"}, "  ", "x1"))
}

func TestUsesModernLayout(t *testing.T) {
	invoice := templating.Template{Type: templating.TypeInvoice, Format: templating.FormatPDF}
	assert.True(t, UsesModernLayout(invoice, false))
	assert.False(t, UsesModernLayout(invoice, true))

	body := invoice
	body.Layout = templating.LayoutBody
	assert.False(t, UsesModernLayout(body, false))

	html := invoice
	html.Format = templating.FormatHTML
	assert.False(t, UsesModernLayout(html, false))

	assert.False(t, UsesModernLayout(templating.Template{Type: templating.TypeExtension}, false))
}
