// Package telegram delivers outbound chat messages through the Telegram Bot API.
package telegram

import (
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// NewBotAPI authorizes the bot and removes any webhook so long polling can
// receive updates. Pending updates are kept.
func NewBotAPI(token string, debug bool, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is empty")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}
	api.Debug = debug

	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		logger.Warn("failed to delete webhook", "error", err)
	}

	logger.Info("telegram bot authorized", "username", api.Self.UserName)
	return api, nil
}
