package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// UpdateSource источник обновлений длинного опроса.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poll получает обновления длинным опросом и передаёт их в шлюз до отмены контекста.
func Poll(ctx context.Context, src UpdateSource, gw *Gateway, logger *zap.Logger) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	cfg.AllowedUpdates = []string{"message", "callback_query"}

	updates := src.GetUpdatesChan(cfg)
	defer src.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			if err := gw.Submit(ctx, u); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, ErrStopped) {
					return nil
				}
				logger.Error("submit update error", zap.Error(err), zap.Int("updateID", u.UpdateID))
			}
		}
	}
}
