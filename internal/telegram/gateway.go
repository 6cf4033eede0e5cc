package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/makburgers-bot/internal/chat"
)

const queueSize = 64

// ErrStopped возвращается при отправке обновления в остановленный шлюз.
var ErrStopped = errors.New("gateway stopped")

// Handler обрабатывает событие пользователя.
type Handler interface {
	Handle(ctx context.Context, userID int64, ev chat.Event) chat.Response
}

// Gateway распределяет обновления по воркерам по идентификатору пользователя:
// обновления одного пользователя обрабатываются одним воркером в порядке поступления.
type Gateway struct {
	handler Handler
	sender  *Sender
	logger  *zap.Logger
	queues  []chan Inbound
	done    chan struct{}
}

// NewGateway создаёт шлюз с указанным числом воркеров.
func NewGateway(h Handler, sender *Sender, logger *zap.Logger, workers int) *Gateway {
	if workers < 1 {
		workers = 1
	}
	queues := make([]chan Inbound, workers)
	for i := range queues {
		queues[i] = make(chan Inbound, queueSize)
	}
	return &Gateway{
		handler: h,
		sender:  sender,
		logger:  logger,
		queues:  queues,
		done:    make(chan struct{}),
	}
}

// Submit разбирает обновление и ставит его в очередь воркера пользователя.
func (g *Gateway) Submit(ctx context.Context, u tgbotapi.Update) error {
	in, ok := Decode(u)
	if !ok {
		g.logger.Debug("update skipped", zap.Int("updateID", u.UpdateID))
		return nil
	}

	select {
	case <-g.done:
		return ErrStopped
	default:
	}

	q := g.queues[shard(in.UserID, len(g.queues))]
	select {
	case q <- in:
		return nil
	case <-g.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run запускает воркеры и ждёт отмены контекста.
func (g *Gateway) Run(ctx context.Context) error {
	defer close(g.done)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, q := range g.queues {
		eg.Go(func() error {
			g.work(egCtx, q)
			return nil
		})
	}
	return eg.Wait()
}

func (g *Gateway) work(ctx context.Context, q <-chan Inbound) {
	for {
		select {
		case <-ctx.Done():
			return
		case in := <-q:
			g.process(ctx, in)
		}
	}
}

func (g *Gateway) process(ctx context.Context, in Inbound) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("panic while handling update", zap.Any("panic", r), zap.Int64("userID", in.UserID))
		}
	}()

	resp := g.handler.Handle(ctx, in.UserID, in.Event)
	if err := g.sender.Deliver(ctx, in, resp); err != nil {
		g.logger.Error("deliver response error", zap.Error(err), zap.Int64("userID", in.UserID))
	}
}

func shard(userID int64, n int) int {
	return int(uint64(userID) % uint64(n))
}
