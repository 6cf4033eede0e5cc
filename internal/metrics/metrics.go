// Package metrics содержит счётчики Prometheus бота заказов.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Стадии отправки тикета администратору.
const (
	StageDirect = "direct"
	StageRetry  = "retry"
)

// BotMetrics собирает счётчики событий, заказов и ошибок доставки. Нулевой указатель допустим.
type BotMetrics struct {
	events         *prometheus.CounterVec
	orders         *prometheus.CounterVec
	notifyFailures *prometheus.CounterVec
	queued         prometheus.Counter
}

// NewBotMetrics регистрирует метрики бота в указанном реестре.
func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	if reg == nil {
		return &BotMetrics{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_events_total",
		Help: "Inbound chat events by kind.",
	}, []string{"kind"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_orders_total",
		Help: "Submitted orders by delivery method.",
	}, []string{"delivery"})
	notifyFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_notify_failures_total",
		Help: "Failed admin notifications by stage.",
	}, []string{"stage"})
	queued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_orders_queued_total",
		Help: "Orders moved to the outbox after a failed admin notification.",
	})
	reg.MustRegister(events, orders, notifyFailures, queued)
	return &BotMetrics{
		events:         events,
		orders:         orders,
		notifyFailures: notifyFailures,
		queued:         queued,
	}
}

// IncEvent увеличивает счётчик входящих событий.
func (m *BotMetrics) IncEvent(kind string) {
	if m == nil || m.events == nil {
		return
	}
	m.events.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncOrder увеличивает счётчик оформленных заказов.
func (m *BotMetrics) IncOrder(delivery string) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(delivery)).Inc()
}

// IncNotifyFailure увеличивает счётчик неудачных уведомлений администратора.
func (m *BotMetrics) IncNotifyFailure(stage string) {
	if m == nil || m.notifyFailures == nil {
		return
	}
	m.notifyFailures.WithLabelValues(normalizeLabel(stage)).Inc()
}

// IncQueued увеличивает счётчик заказов, поставленных в очередь повторной отправки.
func (m *BotMetrics) IncQueued() {
	if m == nil || m.queued == nil {
		return
	}
	m.queued.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
