package prompt_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/pkg/prompt"
)

var _ = Describe("Builder", func() {
	var b *prompt.Builder

	BeforeEach(func() {
		b = prompt.NewBuilder()
	})

	It("embeds the description and names every required key", func() {
		p, err := b.Build(prompt.TaskExtractRequirements, "An app for a pet shop", nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(ContainSubstring("An app for a pet shop"))
		for _, key := range []string{`"appName"`, `"entities"`, `"roles"`, `"features"`} {
			Expect(p).To(ContainSubstring(key))
		}
		Expect(p).To(ContainSubstring("at most 5"))
	})

	It("embeds the instruction, the current style and the allowed keys", func() {
		p, err := b.Build(prompt.TaskCustomizeUI, "make buttons green", entity.DefaultStyle())

		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(ContainSubstring("make buttons green"))
		Expect(p).To(ContainSubstring(`"#4facfe"`))
		Expect(p).To(ContainSubstring(`["formBackground","buttonColor","fontSize","borderRadius"]`))
	})

	It("accepts a nil current style", func() {
		p, err := b.CustomizeUI("dark theme", nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(ContainSubstring("{}"))
	})

	It("rejects an unknown task", func() {
		_, err := b.Build(prompt.Task("summarize"), "x", nil)
		Expect(err).To(HaveOccurred())
	})
})
