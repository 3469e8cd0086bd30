package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/futig/app-builder/internal/api"
	appapi "github.com/futig/app-builder/internal/api/app"
	webapi "github.com/futig/app-builder/internal/api/web"
	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/integration/llm"
	"github.com/futig/app-builder/internal/pkg/formatter"
	"github.com/futig/app-builder/internal/pkg/prompt"
	"github.com/futig/app-builder/internal/pkg/validator"
	"github.com/futig/app-builder/internal/ui"
	"github.com/futig/app-builder/internal/usecase/app"
)

type emptyRepo struct{}

func (emptyRepo) Save(context.Context, entity.AppDescription) (string, error) { return "id-1", nil }

func (emptyRepo) LoadAll(context.Context) ([]*entity.SavedRecord, error) { return nil, nil }

func (emptyRepo) Get(context.Context, string) (*entity.SavedRecord, error) {
	return nil, entity.ErrAppNotFound
}

var _ = Describe("SetupRouter", func() {
	var router http.Handler

	BeforeEach(func() {
		uc := app.NewUsecase(emptyRepo{}, llm.NewMockGateway(entity.BackendLocal, entity.FormatRaw),
			prompt.NewBuilder(), validator.NewValidator(), formatter.NewFactory(), zap.NewNop())
		renderer, err := ui.NewRenderer(nil)
		Expect(err).NotTo(HaveOccurred())

		router = api.SetupRouter(
			appapi.NewHandler(uc),
			webapi.NewHandler(ui.NewSessionStore(uc, time.Minute), renderer, time.Minute),
			zap.NewNop(),
		)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("reports health", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/health", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"status":"healthy"}`))
	})

	It("answers CORS preflight requests", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/parse-requirements", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		w := serve(req)

		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
	})

	It("serves the OpenAPI document", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/docs/swagger.yaml", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("/api/parse-requirements"))
	})

	It("runs the mock pipeline end to end", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/parse-requirements",
			strings.NewReader(`{"description":"I want an app to manage student courses and grades"}`))
		req.Header.Set("Content-Type", "application/json")

		w := serve(req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"appName":"Course Manager"`))
	})

	It("returns 404 for unknown saved apps", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/api/apps/unknown", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
