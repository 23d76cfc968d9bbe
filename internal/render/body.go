package render

import (
	"io"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"
)

const (
	marginLeft   = 20.0
	marginTop    = 25.0
	marginRight  = 20.0
	marginBottom = 25.0
	headerY      = 10.0
	footerY      = -15.0
	fieldLabelW  = 55.0
	fontFamily   = "Helvetica"
)

var headingSizes = []float64{18, 13, 11}

// page is everything a layout engine needs to draw one document.
type page struct {
	Title   string
	Size    Dimensions
	Header  string
	Footer  string
	Blocks  []Block
	Created time.Time
}

// writeBodyPDF draws resolved blocks with gofpdf. Header and footer sit at
// fixed offsets outside the margins of the content area.
func writeBodyPDF(w io.Writer, p page) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: p.Size.Width, Ht: p.Size.Height},
	})
	pdf.SetCreationDate(p.Created)
	pdf.SetTitle(p.Title, true)
	pdf.SetCreator("go-hebergement", true)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		if p.Header != "" {
			pdf.SetY(headerY)
			pdf.SetFont(fontFamily, "I", 8)
			pdf.SetTextColor(110, 110, 110)
			pdf.CellFormat(0, 5, tr(p.Header), "B", 0, "C", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.SetY(marginTop)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(footerY)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(110, 110, 110)
		if p.Footer != "" {
			pdf.CellFormat(0, 5, tr(p.Footer), "T", 1, "C", false, 0, "")
		}
		pdf.CellFormat(0, 4, tr(pageLabel(pdf.PageNo())), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	for _, b := range p.Blocks {
		drawBlock(pdf, tr, b)
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func drawBlock(pdf *gofpdf.Fpdf, tr func(string) string, b Block) {
	switch b.Kind {
	case BlockHeading:
		level := min(max(b.Level, 1), len(headingSizes))
		size := headingSizes[level-1]
		if level > 1 {
			pdf.Ln(3)
		}
		pdf.SetFont(fontFamily, "B", size)
		pdf.MultiCell(0, size*0.5, tr(b.Text), "", "L", false)
		if level > 1 {
			x, y := pdf.GetX(), pdf.GetY()
			pageW, _ := pdf.GetPageSize()
			pdf.SetDrawColor(160, 160, 160)
			pdf.Line(x, y, pageW-marginRight, y)
			pdf.SetDrawColor(0, 0, 0)
		}
		pdf.Ln(2)
	case BlockField:
		if b.Label == "" {
			pdf.SetFont(fontFamily, "", 10)
			pdf.MultiCell(0, 5.5, tr("• "+b.Text), "", "L", false)
			return
		}
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(fieldLabelW, 5.5, tr(b.Label), "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(0, 5.5, tr(b.Text), "", "L", false)
	case BlockParagraph:
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(0, 5, tr(b.Text), "", "J", false)
		pdf.Ln(2)
	case BlockBlank:
		pdf.Ln(6)
	}
}

func pageLabel(n int) string {
	return "Page " + strconv.Itoa(n)
}
