package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/makburgers-bot/internal/model"
	"github.com/mmeshcher/makburgers-bot/internal/order"
)

// ErrAdminNotConfigured возвращается, если идентификатор администратора не задан.
var ErrAdminNotConfigured = errors.New("admin id is not configured")

// AdminNotifier отправляет тикеты заказов администратору.
type AdminNotifier struct {
	api     BotAPI
	adminID int64
	logger  *zap.Logger
}

// NewAdminNotifier создаёт отправителя тикетов для указанного администратора.
func NewAdminNotifier(api BotAPI, adminID int64, logger *zap.Logger) *AdminNotifier {
	return &AdminNotifier{api: api, adminID: adminID, logger: logger}
}

// NotifyOrder отправляет тикет и, для доставки, геопозицию. Ошибка означает, что тикет не доставлен.
func (n *AdminNotifier) NotifyOrder(ctx context.Context, t model.OrderTicket) error {
	if n.adminID == 0 {
		return ErrAdminNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.adminID, order.RenderTicket(t))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send ticket %s: %w", t.ID, err)
	}

	if t.Delivery == model.DeliveryCourier && t.Location != nil {
		// Координаты уже есть в тексте тикета, поэтому ошибка отправки точки не повторяется.
		loc := tgbotapi.NewLocation(n.adminID, t.Location.Latitude, t.Location.Longitude)
		if _, err := n.api.Send(loc); err != nil {
			n.logger.Warn("send ticket location error", zap.Error(err), zap.String("ticket", t.ID))
		}
	}

	return nil
}
