// Package telemetry exposes simulation metrics and a journal of simulation
// events for headless runs and the SSH server.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

// Metrics records per-tick simulation metrics. Label values are bounded:
// event types and player slots only.
//
// The stage, enemy, lives and score gauges describe a single session. When
// several sessions share one Metrics they would overwrite each other, so
// shared instances are built WithoutSessionGauges and keep only counters and
// the tick histogram.
type Metrics struct {
	tickDuration prometheus.Histogram
	ticks        prometheus.Counter
	events       *prometheus.CounterVec
	stage        prometheus.Gauge
	remaining    prometheus.Gauge
	lives        *prometheus.GaugeVec
	score        *prometheus.GaugeVec
	gameOvers    prometheus.Counter

	sessionGauges bool
}

// Option configures Metrics.
type Option func(*Metrics)

// WithoutSessionGauges drops the per-session gauges. Use it when many
// sessions report to the same registry.
func WithoutSessionGauges() Option {
	return func(m *Metrics) {
		m.sessionGauges = false
	}
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer, opts ...Option) *Metrics {
	m := &Metrics{sessionGauges: true}
	for _, opt := range opts {
		opt(m)
	}

	f := promauto.With(reg)
	m.tickDuration = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "tanks_tick_duration_seconds",
		Help:    "Time spent in one simulation tick",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.02},
	})
	m.ticks = f.NewCounter(prometheus.CounterOpts{
		Name: "tanks_ticks_total",
		Help: "Simulation ticks executed",
	})
	m.events = f.NewCounterVec(prometheus.CounterOpts{
		Name: "tanks_events_total",
		Help: "Simulation events by type",
	}, []string{"type"})
	m.gameOvers = f.NewCounter(prometheus.CounterOpts{
		Name: "tanks_game_over_total",
		Help: "Sessions that reached game over",
	})

	if m.sessionGauges {
		m.stage = f.NewGauge(prometheus.GaugeOpts{
			Name: "tanks_stage",
			Help: "Current stage number",
		})
		m.remaining = f.NewGauge(prometheus.GaugeOpts{
			Name: "tanks_enemies_remaining",
			Help: "Enemies still to spawn in the current stage",
		})
		m.lives = f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tanks_player_lives",
			Help: "Remaining lives per player slot",
		}, []string{"slot"})
		m.score = f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tanks_player_score",
			Help: "Score per player slot",
		}, []string{"slot"})
	}

	// Pre-create every series so they show up before the first event.
	for _, t := range tanks.EventTypes() {
		m.events.WithLabelValues(t.String())
	}
	return m
}

// ObserveTick implements tanks.Observer.
func (m *Metrics) ObserveTick(elapsed time.Duration, events []tanks.Event, state tanks.SessionState) {
	m.tickDuration.Observe(elapsed.Seconds())
	m.ticks.Inc()
	for _, ev := range events {
		m.events.WithLabelValues(ev.Type.String()).Inc()
		if ev.Type == tanks.EventGameOver {
			m.gameOvers.Inc()
		}
	}

	if !m.sessionGauges {
		return
	}
	m.stage.Set(float64(state.Stage))
	m.remaining.Set(float64(state.RemainingToSpawn))
	for _, slot := range state.Slots {
		m.lives.WithLabelValues(slot.ID.String()).Set(float64(slot.Lives))
		m.score.WithLabelValues(slot.ID.String()).Set(float64(slot.Score))
	}
}

// Observers fans one tick out to several observers in order.
type Observers []tanks.Observer

// ObserveTick implements tanks.Observer.
func (o Observers) ObserveTick(elapsed time.Duration, events []tanks.Event, state tanks.SessionState) {
	for _, obs := range o {
		if obs != nil {
			obs.ObserveTick(elapsed, events, state)
		}
	}
}
