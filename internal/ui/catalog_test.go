package ui_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futig/app-builder/internal/config"
	"github.com/futig/app-builder/internal/ui"
)

var _ = Describe("FieldCatalog", func() {
	catalog := ui.DefaultFieldCatalog()

	DescribeTable("picks fields by lower-cased substring",
		func(entityName string, want []string) {
			Expect(catalog.Fields(entityName)).To(Equal(want))
		},
		Entry("exact match", "Student", []string{"Name", "Email", "Age"}),
		Entry("teacher", "Teacher", []string{"Name", "Subject", "Email"}),
		Entry("plural and mixed case", "COURSES", []string{"Title", "Code", "Credits"}),
		Entry("compound name", "GradeBook", []string{"Student", "Course", "Score"}),
		Entry("first matching rule wins", "StudentCourse", []string{"Name", "Email", "Age"}),
		Entry("no match falls back", "Widget", []string{"Name", "Email", "Age"}),
	)

	It("builds a catalog from a loaded file", func() {
		file := &config.FieldCatalogFile{Default: []string{"Label"}}
		file.Rules = append(file.Rules, struct {
			Fragment string   `json:"fragment"`
			Fields   []string `json:"fields"`
		}{Fragment: " Car ", Fields: []string{"Make", "Model"}})

		custom := ui.FieldCatalogFromConfig(file)

		Expect(custom.Fields("SportsCar")).To(Equal([]string{"Make", "Model"}))
		Expect(custom.Fields("Student")).To(Equal([]string{"Label"}))
	})

	It("uses the built-in catalog when no file is loaded", func() {
		Expect(ui.FieldCatalogFromConfig(nil).Fields("Pet")).To(Equal([]string{"Name", "Species", "Age"}))
	})
})
