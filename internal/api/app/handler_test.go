package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appapi "github.com/futig/app-builder/internal/api/app"
	"github.com/futig/app-builder/internal/entity"
)

var _ = Describe("Handler", func() {
	var (
		router *chi.Mux
		uc     *mockAppUsecase
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]any {
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	BeforeEach(func() {
		uc = &mockAppUsecase{}
		router = chi.NewRouter()
		appapi.RegisterRoutes(router, appapi.NewHandler(uc))
	})

	Describe("POST /api/parse-requirements", func() {
		It("returns the extracted description", func() {
			uc.parseFn = func(_ context.Context, description string) (*entity.AppDescription, error) {
				return &entity.AppDescription{
					AppName:     "Course Manager",
					Entities:    []string{"Student", "Course", "Grade"},
					Roles:       []string{"Teacher"},
					Features:    []string{"Enroll"},
					Description: description,
				}, nil
			}

			w := do(http.MethodPost, "/api/parse-requirements", `{"description":"I want an app to manage student courses and grades"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["appName"]).To(Equal("Course Manager"))
			Expect(resp["description"]).To(Equal("I want an app to manage student courses and grades"))
			Expect(resp["entities"]).To(HaveLen(3))
		})

		It("returns 400 when the description is missing", func() {
			w := do(http.MethodPost, "/api/parse-requirements", `{}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Description is required and must be a string"))
		})

		It("returns 400 when the description is not a string", func() {
			w := do(http.MethodPost, "/api/parse-requirements", `{"description":42}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 on malformed JSON", func() {
			w := do(http.MethodPost, "/api/parse-requirements", `{"description":`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Invalid JSON body"))
		})

		It("returns 400 for validation errors", func() {
			uc.parseFn = func(context.Context, string) (*entity.AppDescription, error) {
				return nil, &entity.ValidationError{Field: "description", Reason: "must be a non-empty string"}
			}

			w := do(http.MethodPost, "/api/parse-requirements", `{"description":""}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 500 with the backend mode and no model text on unusable output", func() {
			uc.parseFn = func(context.Context, string) (*entity.AppDescription, error) {
				return nil, fmt.Errorf("%w: secret model text", entity.ErrParse)
			}

			w := do(http.MethodPost, "/api/parse-requirements", `{"description":"a pet shop"}`)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			resp := decode(w)
			Expect(resp["mode"]).To(Equal("local"))
			Expect(resp["details"]).To(Equal("model returned unusable content"))
			Expect(w.Body.String()).NotTo(ContainSubstring("secret model text"))
		})

		It("returns 500 on gateway failures", func() {
			uc.parseFn = func(context.Context, string) (*entity.AppDescription, error) {
				return nil, &entity.GatewayError{Backend: entity.BackendLocal, Err: errors.New("dial tcp: refused")}
			}

			w := do(http.MethodPost, "/api/parse-requirements", `{"description":"a pet shop"}`)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)["details"]).To(Equal("model service request failed"))
		})
	})

	Describe("POST /api/customize-ui", func() {
		It("passes the filtered current style and returns the overrides", func() {
			var gotCurrent entity.StyleOverrideSet
			uc.customizeFn = func(_ context.Context, _ string, current entity.StyleOverrideSet) (entity.StyleOverrideSet, error) {
				gotCurrent = current
				return entity.StyleOverrideSet{entity.StyleButtonColor: "#2ecc71"}, nil
			}

			w := do(http.MethodPost, "/api/customize-ui",
				`{"instruction":"green buttons","currentUI":{"fontSize":"16px","shadow":"none"}}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotCurrent).To(Equal(entity.StyleOverrideSet{entity.StyleFontSize: "16px"}))
			Expect(decode(w)["styleOverrides"]).To(Equal(map[string]any{"buttonColor": "#2ecc71"}))
		})

		It("returns 400 when the instruction is missing", func() {
			w := do(http.MethodPost, "/api/customize-ui", `{"currentUI":{}}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Instruction is required and must be a string"))
		})
	})

	Describe("POST /api/save-app", func() {
		It("returns 201 with the new id", func() {
			uc.saveFn = func(context.Context, *entity.AppDescription) (string, error) {
				return "6f1c1f9e-8a52-4c4a-9d0e-5b3b3f0b2d11", nil
			}

			w := do(http.MethodPost, "/api/save-app",
				`{"appName":"X","entities":[],"roles":[],"features":[],"description":"d"}`)

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decode(w)
			Expect(resp["message"]).To(Equal("App saved successfully"))
			Expect(resp["id"]).To(Equal("6f1c1f9e-8a52-4c4a-9d0e-5b3b3f0b2d11"))
		})

		It("returns 500 when the store fails", func() {
			uc.saveFn = func(context.Context, *entity.AppDescription) (string, error) {
				return "", fmt.Errorf("save app: %w", entity.ErrPersistence)
			}

			w := do(http.MethodPost, "/api/save-app",
				`{"appName":"X","entities":[],"roles":[],"features":[],"description":"d"}`)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)["details"]).To(Equal("record store request failed"))
		})
	})

	Describe("GET /api/load-apps", func() {
		It("returns all saved records", func() {
			uc.loadFn = func(context.Context) ([]*entity.SavedRecord, error) {
				return []*entity.SavedRecord{
					{ID: "a", AppDescription: entity.AppDescription{AppName: "A"}, CreatedAt: time.Now()},
					{ID: "b", AppDescription: entity.AppDescription{AppName: "B"}, CreatedAt: time.Now()},
				}, nil
			}

			w := do(http.MethodGet, "/api/load-apps", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var records []map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &records)).To(Succeed())
			Expect(records).To(HaveLen(2))
			Expect(records[0]["id"]).To(Equal("a"))
			Expect(records[0]["appName"]).To(Equal("A"))
		})
	})

	Describe("GET /api/apps/{id}", func() {
		It("returns 404 for an unknown id", func() {
			uc.getFn = func(context.Context, string) (*entity.SavedRecord, error) {
				return nil, entity.ErrAppNotFound
			}

			w := do(http.MethodGet, "/api/apps/missing", "")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decode(w)["error"]).To(Equal("App not found"))
		})
	})

	Describe("GET /api/apps/{id}/export", func() {
		It("defaults to markdown and sends an attachment", func() {
			var gotFormat entity.ExportFormat
			uc.exportFn = func(_ context.Context, id string, format entity.ExportFormat) (*entity.ExportedFile, error) {
				gotFormat = format
				return &entity.ExportedFile{
					Filename:    "course-manager.md",
					ContentType: "text/markdown; charset=utf-8",
					Data:        []byte("# App requirements: Course Manager\n"),
				}, nil
			}

			w := do(http.MethodGet, "/api/apps/abc/export", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotFormat).To(Equal(entity.FormatMarkdown))
			Expect(w.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="course-manager.md"`))
			Expect(w.Body.String()).To(HavePrefix("# App requirements"))
		})

		It("rejects an unknown format", func() {
			w := do(http.MethodGet, "/api/apps/abc/export?format=xlsx", "")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
