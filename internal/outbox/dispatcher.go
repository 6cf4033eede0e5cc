package outbox

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/makburgers-bot/internal/metrics"
	"github.com/mmeshcher/makburgers-bot/internal/model"
)

const (
	defaultInterval  = 30 * time.Second
	defaultBatchSize = 20
)

// Notifier отправляет тикет заказа администратору.
type Notifier interface {
	NotifyOrder(ctx context.Context, t model.OrderTicket) error
}

// Dispatcher периодически повторяет отправку тикетов из очереди.
type Dispatcher struct {
	queue     Queue
	notifier  Notifier
	logger    *zap.Logger
	metrics   *metrics.BotMetrics
	interval  time.Duration
	batchSize int
}

// NewDispatcher создаёт обработчик очереди с указанным интервалом опроса.
func NewDispatcher(q Queue, n Notifier, logger *zap.Logger, m *metrics.BotMetrics, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Dispatcher{
		queue:     q,
		notifier:  n,
		logger:    logger,
		metrics:   m,
		interval:  interval,
		batchSize: defaultBatchSize,
	}
}

// Run обрабатывает очередь до отмены контекста.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.Flush(ctx)
		}
	}
}

// Flush отправляет до batchSize тикетов и возвращает число доставленных.
// При первой ошибке отправки тикет возвращается в начало очереди, обработка пачки прекращается.
func (d *Dispatcher) Flush(ctx context.Context) int {
	delivered := 0
	for i := 0; i < d.batchSize; i++ {
		t, err := d.queue.Pop(ctx)
		if err != nil {
			if !errors.Is(err, ErrEmpty) {
				d.logger.Error("outbox pop error", zap.Error(err))
			}
			return delivered
		}

		if err := d.notifier.NotifyOrder(ctx, t); err != nil {
			d.metrics.IncNotifyFailure(metrics.StageRetry)
			d.logger.Warn("outbox retry failed", zap.Error(err), zap.String("ticket", t.ID))
			if err := d.queue.Requeue(ctx, t); err != nil {
				d.logger.Error("outbox requeue error, ticket dropped", zap.Error(err),
					zap.String("ticket", t.ID), zap.Int64("userID", t.UserID), zap.Int64("total", t.Total))
			}
			return delivered
		}

		delivered++
		d.logger.Info("outbox ticket delivered", zap.String("ticket", t.ID), zap.Int64("userID", t.UserID))
	}
	return delivered
}
