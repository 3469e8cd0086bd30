package llm_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/futig/app-builder/internal/config"
	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/integration/llm"
	"github.com/futig/app-builder/internal/pkg/extractor"
	"github.com/futig/app-builder/internal/pkg/prompt"
)

var _ = Describe("MockGateway", func() {
	var (
		gw      *llm.MockGateway
		prompts *prompt.Builder
	)

	BeforeEach(func() {
		gw = llm.NewMockGateway("", "")
		prompts = prompt.NewBuilder()
	})

	It("defaults to the local backend in raw mode", func() {
		Expect(gw.Backend()).To(Equal(entity.BackendLocal))
		Expect(gw.ResponseFormat()).To(Equal(entity.FormatRaw))
	})

	It("answers a requirements prompt with an extractable description", func() {
		text, err := gw.Complete(context.Background(), prompts.ExtractRequirements("a school app"))
		Expect(err).NotTo(HaveOccurred())

		app, err := extractor.ParseAppDescription(text, gw.ResponseFormat())
		Expect(err).NotTo(HaveOccurred())
		Expect(app.AppName).To(Equal("Course Manager"))
		Expect(app.Entities).To(ContainElement("Student"))
	})

	DescribeTable("answers a style prompt by instruction keywords",
		func(instruction string, want entity.StyleOverrideSet) {
			p, err := prompts.CustomizeUI(instruction, entity.DefaultStyle())
			Expect(err).NotTo(HaveOccurred())

			text, err := gw.Complete(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())

			set, err := extractor.ParseStyleOverrides(text, gw.ResponseFormat())
			Expect(err).NotTo(HaveOccurred())
			Expect(set).To(Equal(want))
		},
		Entry("dark with green buttons", "make it dark with green buttons", entity.StyleOverrideSet{
			entity.StyleFormBackground: "#111111",
			entity.StyleButtonColor:    "#2ecc71",
		}),
		Entry("bigger and rounder", "bigger text and round corners", entity.StyleOverrideSet{
			entity.StyleFontSize:     "20px",
			entity.StyleBorderRadius: "24px",
		}),
		Entry("nothing recognizable", "make it feel friendlier", entity.StyleOverrideSet{}),
	)

	It("fails on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := gw.Complete(ctx, "anything")
		Expect(errors.Is(err, entity.ErrModelGateway)).To(BeTrue())
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})

var _ = Describe("NewGateway", func() {
	It("returns the mock gateway when mocks are enabled", func() {
		gw, err := llm.NewGateway(context.Background(), config.LLMConfig{Backend: entity.BackendCloud}, true, zap.NewNop())

		Expect(err).NotTo(HaveOccurred())
		Expect(gw).To(BeAssignableToTypeOf(&llm.MockGateway{}))
		Expect(gw.Backend()).To(Equal(entity.BackendCloud))
	})

	It("builds the local gateway", func() {
		gw, err := llm.NewGateway(context.Background(), config.LLMConfig{
			Backend: entity.BackendLocal,
			Local:   config.LocalBackendConfig{Url: "http://localhost:1234/v1", Model: "m", ResponseFormat: entity.FormatRaw},
		}, false, zap.NewNop())

		Expect(err).NotTo(HaveOccurred())
		Expect(gw).To(BeAssignableToTypeOf(&llm.LocalGateway{}))
	})

	It("rejects an unknown backend", func() {
		_, err := llm.NewGateway(context.Background(), config.LLMConfig{Backend: "azure"}, false, zap.NewNop())
		Expect(err).To(HaveOccurred())
	})
})
