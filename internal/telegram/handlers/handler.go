package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/pkg/logger"
	"github.com/futig/app-builder/internal/telegram/keyboard"
	"github.com/futig/app-builder/internal/telegram/render"
	"github.com/futig/app-builder/internal/ui"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Message is a normalized Telegram message or button press
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	Command      string
	CommandArgs  string
	CallbackData string
	CallbackID   string
}

// Handler drives one ui.Session per chat
type Handler struct {
	sessions SessionStore
	renderer TextRenderer
	appUC    AppUsecase
	keyboard *keyboard.Builder
	sender   *MessageSender
}

func NewHandler(
	sessions SessionStore,
	renderer TextRenderer,
	appUC AppUsecase,
	kb *keyboard.Builder,
	sender *MessageSender,
) *Handler {
	return &Handler{
		sessions: sessions,
		renderer: renderer,
		appUC:    appUC,
		keyboard: kb,
		sender:   sender,
	}
}

// SessionKey is the UI session identifier of a chat.
func SessionKey(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

// HandleMessage routes commands and treats any other text as an app description
func (h *Handler) HandleMessage(ctx context.Context, msg *Message) error {
	ctx = logger.AddFields(ctx, zap.Int64("chat_id", msg.ChatID), zap.Int64("user_id", msg.UserID))

	if msg.Command != "" {
		return h.handleCommand(ctx, msg)
	}

	return h.describe(ctx, msg.ChatID, msg.Text)
}

// HandleCallback processes inline button presses
func (h *Handler) HandleCallback(ctx context.Context, msg *Message) error {
	ctx = logger.AddFields(ctx, zap.Int64("chat_id", msg.ChatID), zap.Int64("user_id", msg.UserID))

	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		ctxzap.Warn(ctx, "invalid callback data", zap.Error(err))
		h.sender.AnswerCallback(msg.CallbackID, render.ErrInvalidData)
		return nil
	}
	h.sender.AnswerCallback(msg.CallbackID, "")

	switch data.Action {
	case keyboard.ActionReset:
		return h.reset(ctx, msg.ChatID)
	case keyboard.ActionExport:
		return h.export(ctx, msg.ChatID, entity.ExportFormat(data.Value))
	default:
		ctxzap.Warn(ctx, "unknown callback action", zap.String("action", data.Action))
		return h.sender.Send(msg.ChatID, render.ErrInvalidData, nil)
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *Message) error {
	ctxzap.Info(ctx, "command received", zap.String("command", msg.Command))

	switch msg.Command {
	case "start":
		return h.sender.Send(msg.ChatID, render.MsgWelcome, nil)
	case "help":
		return h.sender.Send(msg.ChatID, render.MsgHelp, nil)
	case "style":
		return h.style(ctx, msg.ChatID, msg.CommandArgs)
	case "reset":
		return h.reset(ctx, msg.ChatID)
	case "apps":
		return h.listApps(ctx, msg.ChatID)
	default:
		return h.sender.Send(msg.ChatID, render.MsgUnknownCommand, nil)
	}
}

func (h *Handler) describe(ctx context.Context, chatID int64, text string) error {
	session := h.sessions.GetOrCreate(SessionKey(chatID))
	ctx = logger.WithAction(ctx, "SubmitDescription")

	h.sender.Typing(chatID)
	if err := session.SubmitDescription(ctx, text); err != nil {
		ctxzap.Debug(ctx, "description rejected", zap.Error(err))
	}

	return h.reply(chatID, session)
}

func (h *Handler) style(ctx context.Context, chatID int64, instruction string) error {
	if strings.TrimSpace(instruction) == "" {
		return h.sender.Send(chatID, render.MsgStyleUsage, nil)
	}

	session := h.sessions.GetOrCreate(SessionKey(chatID))
	ctx = logger.WithAction(ctx, "SubmitStyleInstruction")

	h.sender.Typing(chatID)
	if err := session.SubmitStyleInstruction(ctx, instruction); err != nil {
		ctxzap.Debug(ctx, "style instruction rejected", zap.Error(err))
	}

	return h.reply(chatID, session)
}

func (h *Handler) reset(ctx context.Context, chatID int64) error {
	h.sessions.GetOrCreate(SessionKey(chatID)).Reset()
	ctxzap.Debug(ctx, "session reset")

	return h.sender.Send(chatID, render.MsgReset, nil)
}

func (h *Handler) listApps(ctx context.Context, chatID int64) error {
	records, err := h.appUC.LoadApps(ctx)
	if err != nil {
		ctxzap.Error(ctx, "failed to load apps", zap.Error(err))
		return h.sender.Send(chatID, render.ErrGeneric, nil)
	}

	return h.sender.Send(chatID, render.FormatAppsList(records), nil)
}

func (h *Handler) export(ctx context.Context, chatID int64, format entity.ExportFormat) error {
	if !format.IsValid() {
		return h.sender.Send(chatID, render.ErrInvalidData, nil)
	}

	snap := h.sessions.GetOrCreate(SessionKey(chatID)).Snapshot()
	if snap.SavedID == "" {
		return h.sender.Send(chatID, render.MsgNotSaved, nil)
	}

	ctx = logger.AddFields(logger.WithAction(ctx, "ExportApp"),
		zap.String("app_id", snap.SavedID),
		zap.String("format", string(format)),
	)

	file, err := h.appUC.ExportApp(ctx, snap.SavedID, format)
	if err != nil {
		ctxzap.Error(ctx, "failed to export app", zap.Error(err))
		if errors.Is(err, entity.ErrAppNotFound) {
			return h.sender.Send(chatID, render.MsgNotSaved, nil)
		}
		return h.sender.Send(chatID, render.MsgExportFailed, nil)
	}

	return h.sender.SendDocument(chatID, file.Filename, file.Data)
}

// reply sends the rendered session, with app buttons while an app is displayed.
func (h *Handler) reply(chatID int64, session *ui.Session) error {
	snap := session.Snapshot()
	text := h.renderer.RenderText(snap)

	if snap.State != ui.StateDisplaying {
		return h.sender.Send(chatID, text, nil)
	}
	return h.sender.Send(chatID, text, h.keyboard.AppKeyboard(snap.SavedID != ""))
}
