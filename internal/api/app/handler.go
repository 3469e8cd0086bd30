package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/pkg/logger"
	"github.com/futig/app-builder/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodySize = 1 << 20

const (
	detailsUnusableContent = "model returned unusable content"
	detailsGatewayFailure  = "model service request failed"
	detailsStoreFailure    = "record store request failed"
)

type Handler struct {
	usecase AppUsecase
}

func NewHandler(usecase AppUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// ParseRequirements handles POST /api/parse-requirements
func (h *Handler) ParseRequirements(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ParseRequirements")

	var req entity.ParseRequirementsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	if req.Description == nil {
		h.respondError(ctx, w, http.StatusBadRequest, "Description is required and must be a string", nil)
		return
	}

	app, err := h.usecase.ParseRequirements(ctx, *req.Description)
	if err != nil {
		h.handleUsecaseError(ctx, w, "Failed to parse requirements", err)
		return
	}

	response.Success(w, app)
}

// CustomizeUI handles POST /api/customize-ui
func (h *Handler) CustomizeUI(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CustomizeUI")

	var req entity.CustomizeUIRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	if req.Instruction == nil {
		h.respondError(ctx, w, http.StatusBadRequest, "Instruction is required and must be a string", nil)
		return
	}

	current := entity.FilterStyleOverrides(req.CurrentUI)

	overrides, err := h.usecase.CustomizeUI(ctx, *req.Instruction, current)
	if err != nil {
		h.handleUsecaseError(ctx, w, "Failed to customize UI", err)
		return
	}

	response.Success(w, entity.CustomizeUIResponse{StyleOverrides: overrides})
}

// SaveApp handles POST /api/save-app
func (h *Handler) SaveApp(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SaveApp")

	var app entity.AppDescription
	if err := decodeJSON(w, r, &app); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	id, err := h.usecase.SaveApp(ctx, &app)
	if err != nil {
		h.handleUsecaseError(ctx, w, "Failed to save app", err)
		return
	}

	response.Created(w, entity.SaveAppResponse{
		Message: "App saved successfully",
		ID:      id,
	})
}

// LoadApps handles GET /api/load-apps
func (h *Handler) LoadApps(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "LoadApps")

	records, err := h.usecase.LoadApps(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, "Failed to load apps", err)
		return
	}

	response.Success(w, records)
}

// GetApp handles GET /api/apps/{id}
func (h *Handler) GetApp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "GetApp"), zap.String("app_id", id))

	record, err := h.usecase.GetApp(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, "Failed to get app", err)
		return
	}

	response.Success(w, record)
}

// ExportApp handles GET /api/apps/{id}/export?format=markdown|pdf|docx
func (h *Handler) ExportApp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "ExportApp"), zap.String("app_id", id))

	format := entity.FormatMarkdown
	if raw := r.URL.Query().Get("format"); raw != "" {
		format = entity.ExportFormat(raw)
	}
	if !format.IsValid() {
		h.respondError(ctx, w, http.StatusBadRequest, "format must be one of: markdown, pdf, docx", nil)
		return
	}

	file, err := h.usecase.ExportApp(ctx, id, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, "Failed to export app", err)
		return
	}

	response.File(w, file.ContentType, file.Filename, file.Data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Warn(ctx, message, zap.Int("status", status), zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Int("status", status))
	}
	response.Error(w, status, message)
}

// handleUsecaseError maps pipeline errors to responses. Model output never reaches the client.
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, message string, err error) {
	var validationErr *entity.ValidationError
	mode := string(h.usecase.Backend())

	switch {
	case errors.As(err, &validationErr):
		h.respondError(ctx, w, http.StatusBadRequest, validationErr.Error(), nil)
	case errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, entity.ErrAppNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "App not found", nil)
	case errors.Is(err, entity.ErrParse), errors.Is(err, entity.ErrIncompleteResult):
		ctxzap.Error(ctx, message, zap.Error(err))
		response.ErrorWithDetails(w, http.StatusInternalServerError, message, detailsUnusableContent, mode)
	case errors.Is(err, entity.ErrModelGateway):
		ctxzap.Error(ctx, message, zap.Error(err))
		response.ErrorWithDetails(w, http.StatusInternalServerError, message, detailsGatewayFailure, mode)
	case errors.Is(err, entity.ErrPersistence):
		ctxzap.Error(ctx, message, zap.Error(err))
		response.ErrorWithDetails(w, http.StatusInternalServerError, message, detailsStoreFailure, mode)
	default:
		ctxzap.Error(ctx, message, zap.Error(err))
		response.ErrorWithDetails(w, http.StatusInternalServerError, message, "", mode)
	}
}
