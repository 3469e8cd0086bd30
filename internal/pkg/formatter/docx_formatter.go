package formatter

import (
	"bytes"

	"github.com/futig/app-builder/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(record *entity.SavedRecord) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(baseTitle + ": " + record.AppName)

	doc.AddParagraph().AddRun().AddText(savedAt(record))
	doc.AddParagraph().AddRun().AddText(record.Description)

	for _, s := range sections(record) {
		heading := doc.AddParagraph()
		heading.SetStyle("Heading2")
		heading.AddRun().AddText(s.Title)

		if len(s.Items) == 0 {
			doc.AddParagraph().AddRun().AddText("none")
			continue
		}
		for _, item := range s.Items {
			doc.AddParagraph().AddRun().AddText("• " + item)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
