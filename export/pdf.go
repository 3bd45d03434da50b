package export

import (
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/robinvdvleuten/finreport/report"
)

// PDFExporter writes the document layout of BuildDocument as an A4 PDF.
type PDFExporter struct{}

func (PDFExporter) Format() Format { return FormatPDF }

func (PDFExporter) Export(w io.Writer, r *report.GeneratedReport) error {
	doc, err := BuildDocument(r)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.SetModificationDate(r.GeneratedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented descriptions survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range doc.Subtitle {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}

	for _, section := range doc.Sections {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(section.Title), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		for _, line := range section.Lines {
			if section.Bulleted {
				line = "• " + line
			}
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
	}

	return pdf.Output(w)
}
