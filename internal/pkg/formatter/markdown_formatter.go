package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/app-builder/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(record *entity.SavedRecord) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s: %s\n\n", baseTitle, record.AppName)
	fmt.Fprintf(&buf, "_%s_\n\n", savedAt(record))
	fmt.Fprintf(&buf, "%s\n", record.Description)

	for _, s := range sections(record) {
		fmt.Fprintf(&buf, "\n## %s\n\n", s.Title)
		if len(s.Items) == 0 {
			buf.WriteString("_none_\n")
			continue
		}
		for _, item := range s.Items {
			fmt.Fprintf(&buf, "- %s\n", item)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
