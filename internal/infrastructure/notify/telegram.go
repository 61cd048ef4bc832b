// Package notify доставляет готовые отчёты во внешние каналы.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"holoscope/internal/domain/port"
)

// TelegramConfig параметры бота
type TelegramConfig struct {
	Token    string
	ChatID   int64
	Endpoint string // шаблон адреса API, по умолчанию tgbotapi.APIEndpoint
}

// TelegramNotifier отправляет PDF документом в чат
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

// NewTelegramNotifier авторизует бота (запрос getMe)
func NewTelegramNotifier(cfg TelegramConfig, logger *slog.Logger) (*TelegramNotifier, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}
	if cfg.ChatID == 0 {
		return nil, errors.New("telegram chat id is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	log := logger.With("component", "telegram")
	log.Info("Authorized on account", "account", api.Self.UserName)

	return &TelegramNotifier{api: api, chatID: cfg.ChatID, log: log}, nil
}

// Deliver отправляет файл с подписью
func (n *TelegramNotifier) Deliver(ctx context.Context, path, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := tgbotapi.NewDocument(n.chatID, tgbotapi.FilePath(path))
	doc.Caption = caption

	msg, err := n.api.Send(doc)
	if err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	n.log.Info("Document sent", "chat", n.chatID, "message", msg.MessageID, "path", path)
	return nil
}

var _ port.ReportNotifier = (*TelegramNotifier)(nil)
