package web

import (
	"net/http"
	"time"

	"github.com/futig/app-builder/internal/pkg/logger"
	"github.com/futig/app-builder/internal/ui"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const sessionCookie = "ui_session"

type Handler struct {
	sessions   SessionStore
	renderer   Renderer
	sessionTTL time.Duration
}

func NewHandler(sessions SessionStore, renderer Renderer, sessionTTL time.Duration) *Handler {
	return &Handler{
		sessions:   sessions,
		renderer:   renderer,
		sessionTTL: sessionTTL,
	}
}

// Page handles GET /
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	ctx := logger.AddFields(logger.WithAction(r.Context(), "RenderPage"), zap.String("session_id", session.ID()))

	page, err := h.renderer.Render(session.Snapshot(), r.URL.Query().Get("role"))
	if err != nil {
		ctxzap.Error(ctx, "failed to render page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

// Describe handles POST /ui/describe
func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	ctx := logger.AddFields(logger.WithAction(r.Context(), "SubmitDescription"), zap.String("session_id", session.ID()))

	if err := session.SubmitDescription(ctx, r.PostFormValue("description")); err != nil {
		ctxzap.Debug(ctx, "description rejected", zap.Error(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Style handles POST /ui/style
func (h *Handler) Style(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	ctx := logger.AddFields(logger.WithAction(r.Context(), "SubmitStyleInstruction"), zap.String("session_id", session.ID()))

	if err := session.SubmitStyleInstruction(ctx, r.PostFormValue("instruction")); err != nil {
		ctxzap.Debug(ctx, "style instruction rejected", zap.Error(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Reset handles POST /ui/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	session.Reset()

	ctxzap.Debug(r.Context(), "session reset", zap.String("session_id", session.ID()))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// session returns the caller's session, starting a new one when the cookie is missing or expired.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *ui.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if session, ok := h.sessions.Get(cookie.Value); ok {
			return session
		}
	}

	session := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID(),
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session
}
