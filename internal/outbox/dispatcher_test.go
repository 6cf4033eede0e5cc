package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/makburgers-bot/internal/metrics"
	"github.com/mmeshcher/makburgers-bot/internal/model"
)

type stubNotifier struct {
	failAfter int
	sent      []string
}

func (n *stubNotifier) NotifyOrder(ctx context.Context, t model.OrderTicket) error {
	if n.failAfter >= 0 && len(n.sent) >= n.failAfter {
		return errors.New("telegram unavailable")
	}
	n.sent = append(n.sent, t.ID)
	return nil
}

func fill(t *testing.T, q Queue, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, q.Push(context.Background(), model.OrderTicket{ID: id}))
	}
}

func TestDispatcherFlushDeliversAll(t *testing.T) {
	q := NewMemoryQueue()
	fill(t, q, "a", "b", "c")
	n := &stubNotifier{failAfter: -1}

	d := NewDispatcher(q, n, zap.NewNop(), nil, time.Second)
	assert.Equal(t, 3, d.Flush(context.Background()))
	assert.Equal(t, []string{"a", "b", "c"}, n.sent)

	left, _ := q.Len(context.Background())
	assert.Zero(t, left)
}

func TestDispatcherStopsOnFailure(t *testing.T) {
	q := NewMemoryQueue()
	fill(t, q, "a", "b", "c")
	n := &stubNotifier{failAfter: 1}

	reg := prometheus.NewRegistry()
	m := metrics.NewBotMetrics(reg)

	d := NewDispatcher(q, n, zap.NewNop(), m, time.Second)
	assert.Equal(t, 1, d.Flush(context.Background()))
	assert.Equal(t, []string{"a"}, n.sent)

	next, err := q.Pop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", next.ID, "failed ticket must stay at the head")

	families, err := reg.Gather()
	require.NoError(t, err)
	var retries float64
	for _, f := range families {
		if f.GetName() != "bot_notify_failures_total" {
			continue
		}
		for _, mt := range f.GetMetric() {
			retries += mt.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), retries)
}

func TestDispatcherBatchLimit(t *testing.T) {
	q := NewMemoryQueue()
	for i := 0; i < defaultBatchSize+5; i++ {
		fill(t, q, "t")
	}

	d := NewDispatcher(q, &stubNotifier{failAfter: -1}, zap.NewNop(), nil, time.Second)
	assert.Equal(t, defaultBatchSize, d.Flush(context.Background()))

	left, _ := q.Len(context.Background())
	assert.Equal(t, int64(5), left)
}

func TestDispatcherRunStopsOnCancel(t *testing.T) {
	q := NewMemoryQueue()
	fill(t, q, "a")
	n := &stubNotifier{failAfter: -1}
	d := NewDispatcher(q, n, zap.NewNop(), nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool {
		left, _ := q.Len(context.Background())
		return left == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
