package app_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/pkg/formatter"
	"github.com/futig/app-builder/internal/pkg/prompt"
	"github.com/futig/app-builder/internal/pkg/validator"
	"github.com/futig/app-builder/internal/usecase/app"
)

const courseManagerJSON = `{"appName":"Course Manager","entities":["Student","Course","Grade"],"roles":["Teacher","Student"],"features":["Enroll","Grade"]}`

var _ = Describe("AppUsecase", func() {
	var (
		ctx     context.Context
		gateway *fakeGateway
		repo    *memoryRepo
		uc      *app.AppUsecase
	)

	BeforeEach(func() {
		ctx = context.Background()
		gateway = &fakeGateway{}
		repo = &memoryRepo{}
		uc = app.NewUsecase(repo, gateway, prompt.NewBuilder(), validator.NewValidator(), formatter.NewFactory(), zap.NewNop())
	})

	Describe("ParseRequirements", func() {
		It("extracts the description and keeps the input verbatim", func() {
			gateway.response = "Sure!\n" + courseManagerJSON + "\nAnything else?"
			input := "I want an app to manage student courses and grades"

			got, err := uc.ParseRequirements(ctx, input)

			Expect(err).NotTo(HaveOccurred())
			Expect(got.AppName).To(Equal("Course Manager"))
			Expect(got.Description).To(Equal(input))
			Expect(gateway.prompts).To(HaveLen(1))
			Expect(gateway.prompts[0]).To(ContainSubstring(input))
		})

		It("rejects a blank description without calling the model", func() {
			_, err := uc.ParseRequirements(ctx, "   ")

			Expect(errors.Is(err, entity.ErrValidation)).To(BeTrue())
			Expect(gateway.prompts).To(BeEmpty())
		})

		It("surfaces gateway failures", func() {
			gateway.err = &entity.GatewayError{Backend: entity.BackendLocal, Err: errors.New("timeout")}

			_, err := uc.ParseRequirements(ctx, "a pet shop")
			Expect(errors.Is(err, entity.ErrModelGateway)).To(BeTrue())
		})

		It("surfaces unusable model output", func() {
			gateway.response = `{"appName":"X","entities":"Student","roles":[],"features":[]}`

			_, err := uc.ParseRequirements(ctx, "a pet shop")
			Expect(errors.Is(err, entity.ErrIncompleteResult)).To(BeTrue())
		})
	})

	Describe("CustomizeUI", func() {
		It("returns only the recognized overrides", func() {
			gateway.response = `{"buttonColor":"#2ecc71","shadow":"none"}`

			got, err := uc.CustomizeUI(ctx, "green buttons", entity.DefaultStyle())

			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(entity.StyleOverrideSet{entity.StyleButtonColor: "#2ecc71"}))
		})

		It("rejects a blank instruction", func() {
			_, err := uc.CustomizeUI(ctx, "", nil)
			Expect(errors.Is(err, entity.ErrValidation)).To(BeTrue())
		})

		It("reports text without an object as a parse error", func() {
			gateway.response = "I would rather not."

			_, err := uc.CustomizeUI(ctx, "dark", nil)
			Expect(errors.Is(err, entity.ErrParse)).To(BeTrue())
		})
	})

	Describe("SaveApp and reads", func() {
		var desc *entity.AppDescription

		BeforeEach(func() {
			desc = &entity.AppDescription{
				AppName:     "Course Manager",
				Description: "manage courses",
				Entities:    []string{"Course"},
				Roles:       []string{"Teacher"},
				Features:    []string{},
			}
		})

		It("saves a valid app and lists it", func() {
			id, err := uc.SaveApp(ctx, desc)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).NotTo(BeEmpty())

			records, err := uc.LoadApps(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].AppName).To(Equal("Course Manager"))
		})

		It("rejects an app missing a list", func() {
			desc.Features = nil

			_, err := uc.SaveApp(ctx, desc)
			Expect(errors.Is(err, entity.ErrValidation)).To(BeTrue())
			Expect(repo.records).To(BeEmpty())
		})

		It("surfaces store failures", func() {
			repo.saveErr = entity.ErrPersistence

			_, err := uc.SaveApp(ctx, desc)
			Expect(errors.Is(err, entity.ErrPersistence)).To(BeTrue())
		})

		It("reports unknown ids", func() {
			_, err := uc.GetApp(ctx, "missing")
			Expect(errors.Is(err, entity.ErrAppNotFound)).To(BeTrue())
		})
	})

	Describe("ExportApp", func() {
		It("renders a saved app with a slugged filename", func() {
			id, err := uc.SaveApp(ctx, &entity.AppDescription{
				AppName:     "Course Manager!",
				Description: "manage courses",
				Entities:    []string{"Course"},
				Roles:       []string{},
				Features:    []string{},
			})
			Expect(err).NotTo(HaveOccurred())

			file, err := uc.ExportApp(ctx, id, entity.FormatMarkdown)

			Expect(err).NotTo(HaveOccurred())
			Expect(file.Filename).To(Equal("course-manager.md"))
			Expect(file.ContentType).To(HavePrefix("text/markdown"))
			Expect(string(file.Data)).To(ContainSubstring("# App requirements: Course Manager!"))
		})

		It("rejects an unknown format before touching the store", func() {
			_, err := uc.ExportApp(ctx, "missing", entity.ExportFormat("xlsx"))
			Expect(errors.Is(err, entity.ErrInvalidParameter)).To(BeTrue())
		})

		It("reports unknown ids", func() {
			_, err := uc.ExportApp(ctx, "missing", entity.FormatMarkdown)
			Expect(errors.Is(err, entity.ErrAppNotFound)).To(BeTrue())
		})
	})
})
