package entity

type ParseRequirementsRequest struct {
	Description *string `json:"description"`
}

type CustomizeUIRequest struct {
	Instruction *string        `json:"instruction"`
	CurrentUI   map[string]any `json:"currentUI,omitempty"`
}

type CustomizeUIResponse struct {
	StyleOverrides StyleOverrideSet `json:"styleOverrides"`
}

type SaveAppResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatDOCX     ExportFormat = "docx"
	FormatPDF      ExportFormat = "pdf"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// ExportedFile is a saved app rendered in one of the export formats.
type ExportedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
