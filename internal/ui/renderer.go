package ui

import (
	"embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/futig/app-builder/internal/entity"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templatesFS embed.FS

const pageTemplate = "page.html"

// cssValuePattern accepts colors, lengths and simple functions like rgb(); anything that
// could close the declaration or open a new rule is rejected.
var cssValuePattern = regexp.MustCompile(`^[#a-zA-Z0-9.,%()\s-]{1,64}$`)

var forbiddenCSSFunctions = []string{"url(", "expression(", "var(", "attr("}

// Renderer turns a session snapshot into the mock app page.
type Renderer struct {
	catalog *FieldCatalog
	page    *pongo2.Template
	policy  *bluemonday.Policy
}

func NewRenderer(catalog *FieldCatalog) (*Renderer, error) {
	if catalog == nil {
		catalog = DefaultFieldCatalog()
	}

	set := pongo2.NewSet("ui", pongo2.NewFSLoader(templatesFS))
	page, err := set.FromFile("templates/" + pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageTemplate, err)
	}

	return &Renderer{
		catalog: catalog,
		page:    page,
		policy:  bluemonday.StrictPolicy(),
	}, nil
}

type fieldView struct {
	Label       string
	Name        string
	Placeholder string
}

type entityFormView struct {
	Name   string
	Fields []fieldView
}

type notificationView struct {
	Kind    string
	Message string
}

// Render produces the HTML page. activeRole selects the role tab; the first role is used
// when it is empty or unknown.
func (r *Renderer) Render(snap Snapshot, activeRole string) ([]byte, error) {
	ctx := pongo2.Context{
		"session_id":    snap.SessionID,
		"displaying":    snap.State == StateDisplaying && snap.App != nil,
		"busy":          snap.Busy,
		"saved_id":      snap.SavedID,
		"style":         r.styleView(snap.Style),
		"notifications": notificationViews(snap.Notifications),
	}

	if snap.App != nil {
		ctx["app"] = snap.App
		ctx["forms"] = r.entityForms(snap.App.Entities)
		ctx["active_role"] = pickRole(snap.App.Roles, activeRole)
	}

	out, err := r.page.ExecuteBytes(ctx)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", pageTemplate, err)
	}
	return out, nil
}

// RenderText produces a plain-text rendition of the session for chat front-ends.
func (r *Renderer) RenderText(snap Snapshot) string {
	var sb strings.Builder

	for _, n := range snap.Notifications {
		if n.Kind == NotificationError {
			sb.WriteString("⚠️ ")
		} else {
			sb.WriteString("✅ ")
		}
		sb.WriteString(n.Message)
		sb.WriteString("\n")
	}

	if snap.State != StateDisplaying || snap.App == nil {
		if sb.Len() == 0 {
			sb.WriteString("Describe the app you want to build.")
		}
		return strings.TrimRight(sb.String(), "\n")
	}

	if sb.Len() > 0 {
		sb.WriteString("\n")
	}

	app := snap.App
	fmt.Fprintf(&sb, "📱 %s\n", app.AppName)
	writeTextList(&sb, "Entities", app.Entities)
	writeTextList(&sb, "Roles", app.Roles)
	writeTextList(&sb, "Features", app.Features)

	if len(app.Entities) > 0 {
		sb.WriteString("\nForms:\n")
		for _, form := range r.entityForms(app.Entities) {
			labels := make([]string, 0, len(form.Fields))
			for _, f := range form.Fields {
				labels = append(labels, f.Label)
			}
			fmt.Fprintf(&sb, "• %s: %s\n", form.Name, strings.Join(labels, ", "))
		}
	}

	sb.WriteString("\nStyle:\n")
	for _, key := range entity.StyleKeys {
		fmt.Fprintf(&sb, "• %s: %s\n", key, snap.Style[key])
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (r *Renderer) entityForms(entities []string) []entityFormView {
	forms := make([]entityFormView, 0, len(entities))
	for _, name := range entities {
		fields := r.catalog.Fields(name)
		views := make([]fieldView, 0, len(fields))
		for _, field := range fields {
			views = append(views, fieldView{
				Label:       field,
				Name:        strings.ToLower(strings.ReplaceAll(field, " ", "_")),
				Placeholder: "Enter " + strings.ToLower(field),
			})
		}
		forms = append(forms, entityFormView{Name: name, Fields: views})
	}
	return forms
}

// styleView returns every style key with a value that is safe to emit into a style attribute.
func (r *Renderer) styleView(style entity.StyleOverrideSet) map[string]string {
	defaults := entity.DefaultStyle()
	view := make(map[string]string, len(entity.StyleKeys))
	for _, key := range entity.StyleKeys {
		value, ok := style[key]
		if !ok {
			value = defaults[key]
		}
		view[string(key)] = r.cssValue(value, defaults[key])
	}
	return view
}

func (r *Renderer) cssValue(value, fallback string) string {
	clean := strings.TrimSpace(r.policy.Sanitize(value))
	if clean != strings.TrimSpace(value) || !cssValuePattern.MatchString(clean) {
		return fallback
	}

	lower := strings.ToLower(clean)
	for _, fn := range forbiddenCSSFunctions {
		if strings.Contains(lower, fn) {
			return fallback
		}
	}
	return clean
}

func notificationViews(notifications []Notification) []notificationView {
	views := make([]notificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, notificationView{Kind: string(n.Kind), Message: n.Message})
	}
	return views
}

func pickRole(roles []string, active string) string {
	for _, role := range roles {
		if role == active {
			return role
		}
	}
	if len(roles) > 0 {
		return roles[0]
	}
	return ""
}

func writeTextList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(sb, "%s: none\n", title)
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", title, strings.Join(items, ", "))
}
