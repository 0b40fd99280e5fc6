// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	GamesStarted    prometheus.Counter
	GamesCompleted  prometheus.Counter
	DurableSaves    prometheus.Counter
	FallbackWrites  prometheus.Counter
	SaveFailures    prometheus.Counter
	SaveLatency     prometheus.Histogram
	ActiveChannels  prometheus.Gauge
	SessionMisses   prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games for which a session start was attempted",
		}),
		GamesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_completed_total",
			Help:      "Games that reached the end-game protocol",
		}),
		DurableSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "durable_saves_total",
			Help:      "Successful game_results inserts via the primary commit",
		}),
		FallbackWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_writes_total",
			Help:      "Game results saved through the direct fallback path",
		}),
		SaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_failures_total",
			Help:      "Completed games whose result could not be persisted at all",
		}),
		SaveLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_latency_seconds",
			Help:      "End-game persistence latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		ActiveChannels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_play_channels",
			Help:      "Open websocket play channels",
		}),
		SessionMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_misses_total",
			Help:      "End-game calls that found no ephemeral session",
		}),
	}

	prometheus.MustRegister(
		m.GamesStarted,
		m.GamesCompleted,
		m.DurableSaves,
		m.FallbackWrites,
		m.SaveFailures,
		m.SaveLatency,
		m.ActiveChannels,
		m.SessionMisses,
	)

	return m
}

type Monitor struct {
	metrics   *Metrics
	startTime time.Time
}

func NewMonitor(namespace string) *Monitor {
	m := &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))
	return m
}

func (m *Monitor) Metrics() *Metrics {
	return m.metrics
}

// Handler serves the prometheus scrape endpoint.
func (m *Monitor) Handler() http.Handler {
	return promhttp.Handler()
}
