package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMarginLeft  = 10.0
	pdfMarginTop   = 15.0
	pdfMarginRight = 10.0
	pdfHeaderRowH  = 8.0
	pdfBodyRowH    = 7.0
)

// PDFExporter renders a Dataset as a landscape A4 table. The header row repeats on
// every page and each page carries a "Page n/N" footer.
type PDFExporter struct {
	Orientation string
}

// NewPDFExporter constructs a landscape exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{Orientation: "L"}
}

// Render creates the document. An empty title omits the heading.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	orientation := e.Orientation
	if orientation == "" {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(false, pdfMarginTop)
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(data, pageW-pdfMarginLeft-pdfMarginRight)
	bottom := pageH - pdfMarginTop

	pdf.AddPage()
	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(220, 228, 240)
		for i, h := range data.Headers {
			pdf.CellFormat(widths[i], pdfHeaderRowH, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	header()

	row := func(values map[string]string, fill bool) {
		if pdf.GetY()+pdfBodyRowH > bottom {
			pdf.AddPage()
			header()
		}
		pdf.SetFillColor(245, 245, 245)
		for i, h := range data.Headers {
			pdf.CellFormat(widths[i], pdfBodyRowH, values[h], "1", 0, "", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	for i, values := range data.Rows {
		row(values, i%2 == 1)
	}
	if len(data.Footer) > 0 {
		pdf.SetFont("Arial", "B", 9)
		row(data.Footer, false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(data Dataset, total float64) []float64 {
	weights := make([]float64, len(data.Headers))
	sum := 0.0
	for i, h := range data.Headers {
		w, ok := data.Weights[h]
		if !ok || w <= 0 {
			w = 1
		}
		weights[i] = w
		sum += w
	}
	for i := range weights {
		weights[i] = total * weights[i] / sum
	}
	return weights
}
