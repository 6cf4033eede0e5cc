// Package outbox хранит тикеты заказов, которые не удалось доставить администратору, и повторяет их отправку.
package outbox

import (
	"context"
	"errors"
	"sync"

	"github.com/mmeshcher/makburgers-bot/internal/model"
)

// ErrEmpty возвращается при чтении из пустой очереди.
var ErrEmpty = errors.New("outbox is empty")

// Queue очередь тикетов в порядке FIFO.
type Queue interface {
	// Push добавляет тикет в конец очереди.
	Push(ctx context.Context, t model.OrderTicket) error
	// Requeue возвращает тикет в начало очереди.
	Requeue(ctx context.Context, t model.OrderTicket) error
	// Pop извлекает тикет из начала очереди или возвращает ErrEmpty.
	Pop(ctx context.Context) (model.OrderTicket, error)
	Len(ctx context.Context) (int64, error)
}

// MemoryQueue очередь в памяти процесса.
type MemoryQueue struct {
	mu    sync.Mutex
	items []model.OrderTicket
}

// NewMemoryQueue создаёт пустую очередь в памяти.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

// Push добавляет тикет в конец очереди.
func (q *MemoryQueue) Push(_ context.Context, t model.OrderTicket) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, t)
	return nil
}

// Requeue возвращает тикет в начало очереди.
func (q *MemoryQueue) Requeue(_ context.Context, t model.OrderTicket) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append([]model.OrderTicket{t}, q.items...)
	return nil
}

// Pop извлекает тикет из начала очереди.
func (q *MemoryQueue) Pop(_ context.Context) (model.OrderTicket, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return model.OrderTicket{}, ErrEmpty
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, nil
}

// Len возвращает длину очереди.
func (q *MemoryQueue) Len(_ context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.items)), nil
}
