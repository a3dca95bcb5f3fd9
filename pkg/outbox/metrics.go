package outbox

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	enqueueTotal    *prometheus.CounterVec
	dispatchTotal   *prometheus.CounterVec
	dispatchLatency *prometheus.HistogramVec
	deadTotal       *prometheus.CounterVec
	pending         *prometheus.GaugeVec
	locked          *prometheus.GaugeVec
	relayLeader     *prometheus.GaugeVec
}

var (
	metricsOnce sync.Once
	metricsInst *metrics
)

func getMetrics() *metrics {
	metricsOnce.Do(func() {
		metricsInst = &metrics{
			enqueueTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "outbox_enqueue_total",
				Help: "Messages enqueued into the outbox.",
			}, []string{"table", "topic"}),
			dispatchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "outbox_dispatch_total",
				Help: "Dispatch attempts by result.",
			}, []string{"table", "topic", "result"}),
			dispatchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "outbox_dispatch_latency_seconds",
				Help:    "Dispatch latency by result.",
				Buckets: prometheus.DefBuckets,
			}, []string{"table", "topic", "result"}),
			deadTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "outbox_dead_total",
				Help: "Messages exceeding max attempts.",
			}, []string{"table", "topic"}),
			pending: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Name: "outbox_pending",
				Help: "Unpublished messages in the outbox.",
			}, []string{"table"}),
			locked: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Name: "outbox_locked",
				Help: "Claimed but unacknowledged messages.",
			}, []string{"table"}),
			relayLeader: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Name: "outbox_relay_leader",
				Help: "Whether this instance holds the relay leader lock.",
			}, []string{"table"}),
		}
	})
	return metricsInst
}
