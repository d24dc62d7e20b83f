package telegram

import (
	"context"
	"log/slog"
	"strings"

	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

var _ ports.Messenger = (*Messenger)(nil)

// Messenger implements ports.Messenger over a Bot API client.
type Messenger struct {
	api    *tgbotapi.BotAPI
	logger *slog.Logger
}

func NewMessenger(api *tgbotapi.BotAPI, logger *slog.Logger) *Messenger {
	return &Messenger{
		api:    api,
		logger: logger.With("component", "telegram_messenger"),
	}
}

// Send delivers a text message with an optional inline keyboard.
func (m *Messenger) Send(ctx context.Context, msg ports.OutgoingMessage) (ports.MessageRef, error) {
	if err := ctx.Err(); err != nil {
		return ports.MessageRef{}, errs.NewDeliveryError(msg.ChatID, err)
	}

	cfg := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	if len(msg.Keyboard) > 0 {
		cfg.ReplyMarkup = InlineKeyboard(msg.Keyboard)
	}

	sent, err := m.api.Send(cfg)
	if err != nil {
		m.logger.WarnContext(ctx, "send failed", "chat_id", msg.ChatID, "error", err)
		return ports.MessageRef{}, errs.NewDeliveryError(msg.ChatID, err)
	}

	return ports.MessageRef{ChatID: sent.Chat.ID, MessageID: sent.MessageID}, nil
}

// Edit replaces the text and keyboard of a delivered message. An edit that
// changes nothing is not an error.
func (m *Messenger) Edit(ctx context.Context, ref ports.MessageRef, text string, keyboard ports.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return errs.NewDeliveryError(ref.ChatID, err)
	}

	var cfg tgbotapi.EditMessageTextConfig
	if len(keyboard) > 0 {
		cfg = tgbotapi.NewEditMessageTextAndMarkup(ref.ChatID, ref.MessageID, text, InlineKeyboard(keyboard))
	} else {
		cfg = tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, text)
	}

	if _, err := m.api.RequestWithContext(ctx, cfg); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		m.logger.WarnContext(ctx, "edit failed", "chat_id", ref.ChatID, "message_id", ref.MessageID, "error", err)
		return errs.NewDeliveryError(ref.ChatID, err)
	}
	return nil
}

// Acknowledge answers a callback query so the client stops its spinner.
// text is shown as a toast when not empty.
func (m *Messenger) Acknowledge(ctx context.Context, queryID, text string) {
	if _, err := m.api.RequestWithContext(ctx, tgbotapi.NewCallback(queryID, text)); err != nil {
		m.logger.DebugContext(ctx, "callback answer failed", "query_id", queryID, "error", err)
	}
}

// InlineKeyboard converts a port keyboard to Bot API markup.
func InlineKeyboard(keyboard ports.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Action))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
