package ui

import (
	"strings"

	"github.com/futig/app-builder/internal/config"
)

// FieldRule maps every entity whose lower-cased name contains Fragment to Fields.
type FieldRule struct {
	Fragment string
	Fields   []string
}

// FieldCatalog decides which input fields a generated entity form shows.
type FieldCatalog struct {
	Rules   []FieldRule
	Default []string
}

// DefaultFieldCatalog returns the built-in catalog.
func DefaultFieldCatalog() *FieldCatalog {
	return &FieldCatalog{
		Rules: []FieldRule{
			{Fragment: "student", Fields: []string{"Name", "Email", "Age"}},
			{Fragment: "course", Fields: []string{"Title", "Code", "Credits"}},
			{Fragment: "grade", Fields: []string{"Student", "Course", "Score"}},
			{Fragment: "teacher", Fields: []string{"Name", "Subject", "Email"}},
			{Fragment: "admin", Fields: []string{"Name", "Role", "Permissions"}},
			{Fragment: "pet", Fields: []string{"Name", "Species", "Age"}},
			{Fragment: "order", Fields: []string{"Number", "Date", "Total"}},
			{Fragment: "product", Fields: []string{"Name", "Price", "Stock"}},
			{Fragment: "customer", Fields: []string{"Name", "Email", "Phone"}},
			{Fragment: "employee", Fields: []string{"Name", "Position", "Email"}},
			{Fragment: "task", Fields: []string{"Title", "Due Date", "Status"}},
			{Fragment: "event", Fields: []string{"Title", "Date", "Location"}},
			{Fragment: "book", Fields: []string{"Title", "Author", "ISBN"}},
			{Fragment: "patient", Fields: []string{"Name", "Date of Birth", "Phone"}},
			{Fragment: "appointment", Fields: []string{"Patient", "Date", "Time"}},
		},
		Default: []string{"Name", "Email", "Age"},
	}
}

// FieldCatalogFromConfig converts a catalog loaded from file; nil yields the built-in one.
func FieldCatalogFromConfig(file *config.FieldCatalogFile) *FieldCatalog {
	if file == nil {
		return DefaultFieldCatalog()
	}

	catalog := &FieldCatalog{
		Rules:   make([]FieldRule, 0, len(file.Rules)),
		Default: append([]string(nil), file.Default...),
	}
	for _, rule := range file.Rules {
		catalog.Rules = append(catalog.Rules, FieldRule{
			Fragment: strings.ToLower(strings.TrimSpace(rule.Fragment)),
			Fields:   append([]string(nil), rule.Fields...),
		})
	}
	return catalog
}

// Fields returns the fields of the first rule matching entityName, in rule order,
// or the default fields when nothing matches.
func (c *FieldCatalog) Fields(entityName string) []string {
	name := strings.ToLower(entityName)
	for _, rule := range c.Rules {
		if rule.Fragment != "" && strings.Contains(name, rule.Fragment) {
			return rule.Fields
		}
	}
	return c.Default
}
