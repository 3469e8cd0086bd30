package formatter

import (
	"fmt"

	"github.com/futig/app-builder/internal/entity"
)

const baseTitle = "App requirements"

// Formatter renders a saved app as a downloadable document.
type Formatter interface {
	Format(record *entity.SavedRecord) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidParameter, string(format))
	}
}

// section is one titled list of a rendered app.
type section struct {
	Title string
	Items []string
}

func sections(record *entity.SavedRecord) []section {
	return []section{
		{Title: "Entities", Items: record.Entities},
		{Title: "Roles", Items: record.Roles},
		{Title: "Features", Items: record.Features},
	}
}

func savedAt(record *entity.SavedRecord) string {
	return "Saved " + record.CreatedAt.UTC().Format("2006-01-02 15:04 MST")
}
