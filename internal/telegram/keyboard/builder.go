package keyboard

import (
	"github.com/futig/app-builder/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// AppKeyboard is attached to a displayed app. Export buttons are only offered for saved apps.
func (b *Builder) AppKeyboard(saved bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 2)

	if saved {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Markdown", EncodeCallback(ActionExport, string(entity.FormatMarkdown))),
			tgbotapi.NewInlineKeyboardButtonData("📄 PDF", EncodeCallback(ActionExport, string(entity.FormatPDF))),
			tgbotapi.NewInlineKeyboardButtonData("📃 DOCX", EncodeCallback(ActionExport, string(entity.FormatDOCX))),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", EncodeCallback(ActionReset, "")),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
