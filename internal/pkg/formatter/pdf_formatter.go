package formatter

import (
	"bytes"
	"os"

	"github.com/futig/app-builder/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the gofpdf family name of the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Runtime layout copies fonts next to the binary; source layout is used by `go run`.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func resolveFontPath() string {
	for _, path := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(record *entity.SavedRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Core fonts only cover cp1252, so text is translated when the TTF is absent.
	fontName := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		tr = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, tr(baseTitle+": "+record.AppName))
	pdf.Ln(12)

	pdf.SetFont(fontName, "", 10)
	pdf.Cell(0, 6, tr(savedAt(record)))
	pdf.Ln(10)

	pdf.SetFont(fontName, "", 12)
	_, lineHeight := pdf.GetFontSize()
	pdf.MultiCell(0, lineHeight*1.5, tr(record.Description), "", "", false)

	for _, s := range sections(record) {
		pdf.Ln(4)
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, 8, tr(s.Title))
		pdf.Ln(9)

		pdf.SetFont(fontName, "", 12)
		if len(s.Items) == 0 {
			pdf.MultiCell(0, lineHeight*1.5, tr("none"), "", "", false)
			continue
		}
		for _, item := range s.Items {
			pdf.MultiCell(0, lineHeight*1.5, tr("- "+item), "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
