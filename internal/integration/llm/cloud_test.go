package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futig/app-builder/internal/config"
	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/integration/llm"
)

var _ = Describe("CloudGateway", func() {
	var (
		server      *httptest.Server
		status      int
		body        string
		gotPath     string
		gotRequest  map[string]any
		cloudConfig config.CloudBackendConfig
	)

	BeforeEach(func() {
		status = http.StatusOK
		gotRequest = nil

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotRequest)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, body)
		}))
		DeferCleanup(server.Close)

		cloudConfig = config.CloudBackendConfig{
			APIKey:         "test-key",
			Url:            server.URL,
			Model:          "gemini-2.0-flash",
			ResponseFormat: entity.FormatStrictJSON,
		}
	})

	It("joins the text parts of the first candidate", func() {
		body = `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"appName\":"},{"text":"\"X\"}"}]}}]}`

		gw, err := llm.NewCloudGateway(context.Background(), cloudConfig)
		Expect(err).NotTo(HaveOccurred())

		text, err := gw.Complete(context.Background(), "describe")

		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal(`{"appName":"X"}`))
		Expect(gotPath).To(ContainSubstring("gemini-2.0-flash:generateContent"))
		Expect(gotRequest).To(HaveKeyWithValue("generationConfig",
			HaveKeyWithValue("responseMimeType", "application/json")))
		Expect(gw.Backend()).To(Equal(entity.BackendCloud))
	})

	It("reports a response without candidates", func() {
		body = `{"candidates":[]}`

		gw, err := llm.NewCloudGateway(context.Background(), cloudConfig)
		Expect(err).NotTo(HaveOccurred())

		_, err = gw.Complete(context.Background(), "describe")

		var gwErr *entity.GatewayError
		Expect(errors.As(err, &gwErr)).To(BeTrue())
		Expect(gwErr.Backend).To(Equal(entity.BackendCloud))
	})

	It("reports a non-success status as a gateway error", func() {
		status = http.StatusBadRequest
		body = `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`

		gw, err := llm.NewCloudGateway(context.Background(), cloudConfig)
		Expect(err).NotTo(HaveOccurred())

		_, err = gw.Complete(context.Background(), "describe")

		Expect(errors.Is(err, entity.ErrModelGateway)).To(BeTrue())
	})
})
