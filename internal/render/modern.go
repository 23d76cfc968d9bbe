package render

import (
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/diewo77/go-hebergement/internal/mapping"
	"github.com/diewo77/go-hebergement/internal/templating"
)

// modernLayout builds the content rows of a designed document from the
// resolved dictionary.
type modernLayout func(d templating.Dictionary) []core.Row

var modernLayouts = map[templating.DocumentType]modernLayout{
	templating.TypeInvoice:        invoiceLayout,
	templating.TypeBookingVoucher: voucherLayout,
}

// HasModernLayout reports whether a designed layout exists for t.
func HasModernLayout(t templating.DocumentType) bool {
	_, ok := modernLayouts[t]
	return ok
}

// UsesModernLayout reports whether a PDF render of tpl goes through its
// designed layout rather than the template body.
func UsesModernLayout(tpl templating.Template, forceBody bool) bool {
	if forceBody || tpl.Layout == templating.LayoutBody || !HasModernLayout(tpl.Type) {
		return false
	}
	return tpl.Format == templating.FormatPDF || tpl.Format == ""
}

var (
	grey   = &props.Color{Red: 110, Green: 110, Blue: 110}
	accent = &props.Color{Red: 31, Green: 78, Blue: 121}
)

func writeModernPDF(p page, layout modernLayout, d templating.Dictionary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(p.Size.Width, p.Size.Height).
		WithLeftMargin(15).
		WithTopMargin(headerY).
		WithRightMargin(15).
		WithTitle(p.Title, true).
		WithCreator("go-hebergement", true).
		WithCreationDate(p.Created).
		Build()

	m := maroto.New(cfg)
	if p.Header != "" {
		if err := m.RegisterHeader(
			text.NewRow(6, p.Header, props.Text{Size: 8, Style: fontstyle.Italic, Align: align.Center, Color: grey}),
			line.NewRow(4),
		); err != nil {
			return nil, err
		}
	}
	if p.Footer != "" {
		if err := m.RegisterFooter(
			line.NewRow(4),
			text.NewRow(6, p.Footer, props.Text{Size: 8, Style: fontstyle.Italic, Align: align.Center, Color: grey}),
		); err != nil {
			return nil, err
		}
	}
	m.AddRows(layout(d)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func sectionRow(title string) core.Row {
	return text.NewRow(9, strings.ToUpper(title), props.Text{Top: 3, Size: 10, Style: fontstyle.Bold, Color: accent})
}

func fieldRow(label, value string) core.Row {
	return row.New(5.5).Add(
		text.NewCol(4, label, props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(8, value, props.Text{Size: 9}),
	)
}

func invoiceLayout(d templating.Dictionary) []core.Row {
	period := "du " + d[mapping.KeyArrival] + " au " + d[mapping.KeyDeparture]
	cell := props.Text{Size: 9}
	head := props.Text{Size: 9, Style: fontstyle.Bold}
	right := props.Text{Size: 9, Align: align.Right}
	headRight := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	return []core.Row{
		row.New(14).Add(
			text.NewCol(6, "FACTURE", props.Text{Size: 18, Style: fontstyle.Bold, Color: accent}),
			text.NewCol(6, "N° "+d[mapping.KeyInvoiceNumber]+"\nDate : "+d[mapping.KeyInvoiceDate], props.Text{Size: 9, Align: align.Right}),
		),
		row.New(22).Add(
			text.NewCol(6, strings.Join([]string{
				d[mapping.KeyIssuer],
				d[mapping.KeyIssuerAddress],
				"SIRET " + d[mapping.KeyIssuerSiret],
				"TVA " + d[mapping.KeyIssuerVAT],
				"Agrément " + d[mapping.KeyIssuerAgrement],
			}, "\n"), cell),
			text.NewCol(6, strings.Join([]string{
				d[mapping.KeyOperator],
				d[mapping.KeyOperatorAddress],
				d[mapping.KeyOperatorContact],
			}, "\n"), props.Text{Size: 9, Align: align.Right}),
		),
		line.NewRow(4),
		sectionRow("Hébergement"),
		fieldRow("Usager", d[mapping.KeyGuest]),
		fieldRow("Hôtel", d[mapping.KeyHotel]),
		fieldRow("Adresse", d[mapping.KeyHotelAddress]),
		fieldRow("Réservation", d[mapping.KeyReservationNumber]),
		sectionRow("Détail"),
		row.New(6).Add(
			text.NewCol(6, "Désignation", head),
			text.NewCol(2, "Nuits", headRight),
			text.NewCol(2, "Prix unitaire", headRight),
			text.NewCol(2, "Montant", headRight),
		),
		line.NewRow(2),
		row.New(8).Add(
			text.NewCol(6, "Nuitées "+period, cell),
			text.NewCol(2, d[mapping.KeyNights], right),
			text.NewCol(2, d[mapping.KeyNightlyPrice], right),
			text.NewCol(2, d[mapping.KeyTotal], right),
		),
		line.NewRow(4),
		totalRow("Total HT", d[mapping.KeyAmountExclTax], false),
		totalRow("TVA "+d[mapping.KeyVATRate], d[mapping.KeyVATAmount], false),
		totalRow("Total TTC", d[mapping.KeyTotal], true),
		sectionRow("Règlement"),
		fieldRow("IBAN", d[mapping.KeyIBAN]),
		fieldRow("BIC", d[mapping.KeyBIC]),
		fieldRow("Conditions", d[mapping.KeyPaymentTerms]),
	}
}

func totalRow(label, amount string, strong bool) core.Row {
	style := fontstyle.Normal
	if strong {
		style = fontstyle.Bold
	}
	return row.New(6).Add(
		text.NewCol(8, "", props.Text{}),
		text.NewCol(2, label, props.Text{Size: 9, Style: style, Align: align.Right}),
		text.NewCol(2, amount, props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}

func voucherLayout(d templating.Dictionary) []core.Row {
	reference := "RES-" + d[mapping.KeyReservationNumber] + " " + d[mapping.KeyGuest]
	return []core.Row{
		row.New(30).Add(
			text.NewCol(9, "BON DE CONFIRMATION\n"+d[mapping.KeyHotel], props.Text{Size: 16, Style: fontstyle.Bold, Color: accent}),
			code.NewQrCol(3, reference, props.Rect{Center: true, Percent: 90}),
		),
		text.NewRow(10, "Bon de confirmation pour "+d[mapping.KeyGuest]+" à l'hôtel "+d[mapping.KeyHotel], props.Text{Size: 10}),
		sectionRow("Réservation"),
		fieldRow("Numéro", d[mapping.KeyReservationNumber]),
		fieldRow("Arrivée", d[mapping.KeyArrival]),
		fieldRow("Départ", d[mapping.KeyDeparture]),
		fieldRow("Nombre de nuits", d[mapping.KeyNights]),
		fieldRow("Prix par nuit", d[mapping.KeyNightlyPrice]),
		fieldRow("Total", d[mapping.KeyTotal]),
		sectionRow("Hébergement"),
		fieldRow("Adresse", d[mapping.KeyHotelAddress]),
		fieldRow("Téléphone", d[mapping.KeyHotelPhone]),
		fieldRow("Chambre", strings.TrimSpace(d[mapping.KeyRoom]+" "+d[mapping.KeyRoomType])),
		sectionRow("Occupants"),
		fieldRow("Situation familiale", d[mapping.KeyFamilyStatus]),
		fieldRow("Adultes", d[mapping.KeyAdults]),
		fieldRow("Enfants", d[mapping.KeyChildren]),
		fieldRow("Occupants", d[mapping.KeyOccupants]),
		sectionRow("Prescripteur"),
		fieldRow("Organisme", d[mapping.KeyOperator]),
		fieldRow("Référent", d[mapping.KeyPrescriber]),
		fieldRow("Agrément", d[mapping.KeyOperatorAgrement]),
		line.NewRow(6),
		text.NewRow(6, "Fait le "+d[mapping.KeyDateDuJour], props.Text{Size: 9, Align: align.Right}),
	}
}
