package render

import (
	"fmt"
	"strings"

	"github.com/futig/app-builder/internal/entity"
)

const (
	MsgWelcome = `👋 Hi! I turn a plain description into a mock app.

Just tell me what you want to build, for example:
"I want an app to manage student courses and grades"`

	MsgHelp = `🤖 Commands:

/start - Show the welcome message
/help - Show this help
/style <instruction> - Restyle the current app, e.g. /style make the buttons green
/reset - Start over
/apps - Show the latest saved apps

Any other text is treated as a new app description.`

	MsgReset          = "🔄 Started over. Describe the app you want to build."
	MsgStyleUsage     = "Usage: /style <instruction>, e.g. /style make the buttons green"
	MsgNoApps         = "No apps have been saved yet."
	MsgNotSaved       = "❌ This app was not saved, so it cannot be exported."
	MsgUnknownCommand = "❌ Unknown command. Use /help"
	MsgExportFailed   = "❌ Could not prepare the file"
	ErrGeneric        = "❌ Something went wrong. Try again or use /reset"
	ErrInvalidData    = "❌ Invalid button data"
	ErrRateLimited    = "⚠️ Too many requests. Please wait a little."
)

// MaxListedApps is the number of saved apps shown by /apps.
const MaxListedApps = 5

// FormatAppsList renders the newest saved apps.
func FormatAppsList(records []*entity.SavedRecord) string {
	if len(records) == 0 {
		return MsgNoApps
	}

	var sb strings.Builder
	sb.WriteString("🗂 Latest saved apps:\n")
	for i, record := range records {
		if i == MaxListedApps {
			break
		}
		fmt.Fprintf(&sb, "\n%d. %s (%s)\n   Entities: %s\n",
			i+1,
			record.AppName,
			record.CreatedAt.UTC().Format("2006-01-02 15:04"),
			joinOrNone(record.Entities),
		)
	}
	if len(records) > MaxListedApps {
		fmt.Fprintf(&sb, "\n…and %d more", len(records)-MaxListedApps)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
