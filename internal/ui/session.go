package ui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/futig/app-builder/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Pipeline is the part of the app use case a UI session drives.
type Pipeline interface {
	ParseRequirements(ctx context.Context, description string) (*entity.AppDescription, error)
	CustomizeUI(ctx context.Context, instruction string, current entity.StyleOverrideSet) (entity.StyleOverrideSet, error)
	SaveApp(ctx context.Context, app *entity.AppDescription) (string, error)
}

type State string

const (
	StateIdle       State = "idle"
	StateDisplaying State = "displaying"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a one-shot message shown to the user on the next render.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// Snapshot is a copy of the session state taken for rendering.
type Snapshot struct {
	SessionID     string
	State         State
	App           *entity.AppDescription
	SavedID       string
	Style         entity.StyleOverrideSet
	Notifications []Notification
	Busy          bool
}

// Session is the state machine behind one user's mock UI.
// At most one pipeline request runs per session; the others fail with entity.ErrBusy.
type Session struct {
	id       string
	pipeline Pipeline

	mu            sync.Mutex
	state         State
	app           *entity.AppDescription
	savedID       string
	style         entity.StyleOverrideSet
	notifications []Notification
	busy          bool
	// generation changes on Reset so that results of requests started earlier are dropped.
	generation uint64
}

func NewSession(id string, pipeline Pipeline) *Session {
	return &Session{
		id:       id,
		pipeline: pipeline,
		state:    StateIdle,
		style:    entity.DefaultStyle(),
	}
}

func (s *Session) ID() string {
	return s.id
}

// SubmitDescription extracts requirements from description and displays them.
// On success the style is reset to the default and the app is saved best-effort:
// a failed save is reported but the result stays displayed.
// On failure the previous state is kept and exactly one error notification is queued.
func (s *Session) SubmitDescription(ctx context.Context, description string) error {
	if strings.TrimSpace(description) == "" {
		err := &entity.ValidationError{Field: "description", Reason: "must be a non-empty string"}
		s.notify(NotificationError, "Please describe the app you want to build.")
		return err
	}

	gen, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end(gen)

	app, err := s.pipeline.ParseRequirements(ctx, description)
	if err != nil {
		ctxzap.Warn(ctx, "description submission failed", zap.String("session_id", s.id), zap.Error(err))
		s.notifyIfCurrent(gen, NotificationError, userMessage(err))
		return err
	}

	if !s.display(gen, app) {
		return nil
	}

	id, saveErr := s.pipeline.SaveApp(ctx, app)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return nil
	}
	if saveErr != nil {
		ctxzap.Warn(ctx, "app displayed but not saved", zap.String("session_id", s.id), zap.Error(saveErr))
		s.push(NotificationError, "Your app was generated but could not be saved.")
		return nil
	}
	s.savedID = id
	s.push(NotificationSuccess, "App generated and saved.")

	return nil
}

// SubmitStyleInstruction asks for style overrides and merges them into the current style.
// It is only allowed while an app is displayed.
func (s *Session) SubmitStyleInstruction(ctx context.Context, instruction string) error {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	if state != StateDisplaying {
		s.notify(NotificationError, "Generate an app before customizing its style.")
		return entity.ErrInvalidState
	}

	if strings.TrimSpace(instruction) == "" {
		s.notify(NotificationError, "Please describe the style change.")
		return &entity.ValidationError{Field: "instruction", Reason: "must be a non-empty string"}
	}

	gen, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end(gen)

	s.mu.Lock()
	current := s.style.Clone()
	s.mu.Unlock()

	overrides, err := s.pipeline.CustomizeUI(ctx, instruction, current)
	if err != nil {
		ctxzap.Warn(ctx, "style instruction failed", zap.String("session_id", s.id), zap.Error(err))
		s.notifyIfCurrent(gen, NotificationError, userMessage(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return nil
	}
	if len(overrides) == 0 {
		s.push(NotificationSuccess, "No style changes were applied.")
		return nil
	}
	s.style = s.style.Merge(overrides)
	s.push(NotificationSuccess, "Style updated.")

	return nil
}

// Reset returns the session to Idle with the default style. A request in flight is
// allowed to finish but its result is discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = StateIdle
	s.app = nil
	s.savedID = ""
	s.style = entity.DefaultStyle()
	s.notifications = nil
	s.busy = false
}

// Snapshot copies the session state and consumes pending notifications.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:     s.id,
		State:         s.state,
		SavedID:       s.savedID,
		Style:         s.style.Clone(),
		Notifications: s.notifications,
		Busy:          s.busy,
	}
	if s.app != nil {
		app := *s.app
		app.Entities = append([]string(nil), s.app.Entities...)
		app.Roles = append([]string(nil), s.app.Roles...)
		app.Features = append([]string(nil), s.app.Features...)
		snap.App = &app
	}
	s.notifications = nil

	return snap
}

func (s *Session) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		s.push(NotificationError, "Please wait for the current request to finish.")
		return 0, entity.ErrBusy
	}
	s.busy = true
	return s.generation, nil
}

func (s *Session) end(gen uint64) {
	s.mu.Lock()
	if s.generation == gen {
		s.busy = false
	}
	s.mu.Unlock()
}

func (s *Session) display(gen uint64, app *entity.AppDescription) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return false
	}
	s.state = StateDisplaying
	s.app = app
	s.savedID = ""
	s.style = entity.DefaultStyle()
	return true
}

func (s *Session) notify(kind NotificationKind, message string) {
	s.mu.Lock()
	s.push(kind, message)
	s.mu.Unlock()
}

func (s *Session) notifyIfCurrent(gen uint64, kind NotificationKind, message string) {
	s.mu.Lock()
	if s.generation == gen {
		s.push(kind, message)
	}
	s.mu.Unlock()
}

// push must be called with mu held.
func (s *Session) push(kind NotificationKind, message string) {
	s.notifications = append(s.notifications, Notification{Kind: kind, Message: message})
}

func userMessage(err error) string {
	var validationErr *entity.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return "Invalid input: " + validationErr.Error()
	case errors.Is(err, entity.ErrModelGateway):
		return "The model service is unavailable. Please try again."
	case errors.Is(err, entity.ErrParse), errors.Is(err, entity.ErrIncompleteResult):
		return "The model returned an unusable answer. Please try again."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The request was cancelled."
	default:
		return "Something went wrong. Please try again."
	}
}
