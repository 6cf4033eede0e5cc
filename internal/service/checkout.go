package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/makburgers-bot/internal/chat"
	"github.com/mmeshcher/makburgers-bot/internal/metrics"
	"github.com/mmeshcher/makburgers-bot/internal/model"
	"github.com/mmeshcher/makburgers-bot/internal/order"
)

// submit отправляет тикет администратору. Корзина очищается только если тикет доставлен
// или поставлен в очередь на повторную отправку.
func (s *Service) submit(ctx context.Context, profile model.UserProfile, sess *model.Session, method model.DeliveryMethod, loc *model.Coordinates) chat.Response {
	ticket := s.engine.ToAdminPayload(s.newID(), profile, sess.Cart, method, loc, s.now())

	if err := s.deliver(ctx, ticket); err != nil {
		s.logger.Error("order not delivered", zap.Error(err),
			zap.String("ticket", ticket.ID), zap.Int64("userID", profile.ID))
		return chat.Response{Notice: noticeOrderError, Replies: []chat.Reply{{Text: textOrderFailed}}}
	}

	s.metrics.IncOrder(string(method))
	s.logger.Info("order submitted", zap.String("ticket", ticket.ID),
		zap.Int64("userID", profile.ID), zap.Int64("total", ticket.Total), zap.String("delivery", string(method)))

	summary, total := s.engine.Summarize(sess.Cart)
	s.engine.Clear(sess.Cart)
	sess.Reset()

	accepted := fmt.Sprintf(textOrderAccepted, summary, order.FormatAmount(total), method.Label())
	return respond(
		chat.Reply{Text: accepted, Markdown: true, Edit: true},
		mainMenu(),
	)
}

func (s *Service) deliver(ctx context.Context, t model.OrderTicket) error {
	err := s.notifier.NotifyOrder(ctx, t)
	if err == nil {
		return nil
	}

	s.metrics.IncNotifyFailure(metrics.StageDirect)
	s.logger.Warn("admin notification failed, queueing ticket", zap.Error(err), zap.String("ticket", t.ID))

	if s.queue == nil {
		return fmt.Errorf("notify admin: %w", err)
	}
	if qerr := s.queue.Push(ctx, t); qerr != nil {
		return fmt.Errorf("notify admin: %w; queue ticket: %w", err, qerr)
	}
	s.metrics.IncQueued()
	return nil
}
