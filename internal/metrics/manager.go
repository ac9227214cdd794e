package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterRateLimited        prometheus.Counter
	CounterLedgerAppends      *prometheus.CounterVec
	CounterUnlocks            *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge
	GaugeStreak     *prometheus.GaugeVec

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("maxout", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("maxout", "test", reg), reg
}

// SetupPrometheus returns a registry carrying the Go runtime and process
// collectors.
func SetupPrometheus() *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promRegistry
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimited := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited",
		Help:      "The total number of requests rejected by the rate limiter",
	})
	counterLedgerAppends := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "ledger_appends",
		Help:      "Number of records written per ledger",
	}, []string{"ledger"})
	counterUnlocks := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "achievement_unlocks",
		Help:      "Number of achievement unlocks",
	}, []string{"achievement"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of open connections",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeStreak := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "streak_days",
		Help:      "Latest streak reported by a ledger write",
	}, []string{"ledger"})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.00001, 0.0001, 0.0005, 0.001, 0.005,
				0.01, 0.05, 0.1, 0.5, 1, 5,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		CounterRateLimited:        counterRateLimited,
		CounterLedgerAppends:      counterLedgerAppends,
		CounterUnlocks:            counterUnlocks,
		GaugeRequests:             gaugeRequests,
		GaugeLifeSignal:           gaugeLifeSignal,
		GaugeStreak:               gaugeStreak,
		HistRequestDuration:       histReqDuration,
	}
}

// ObserveOutcome records a ledger write and the unlocks it triggered. A nil
// manager records nothing.
func (m *Manager) ObserveOutcome(ledger string, recorded bool, unlocked []string) {
	if m == nil || !recorded {
		return
	}
	m.CounterLedgerAppends.WithLabelValues(ledger).Inc()
	for _, id := range unlocked {
		m.CounterUnlocks.WithLabelValues(id).Inc()
	}
}

// ObserveStreak sets the streak gauge of ledger. Call it only with a streak
// the write actually recomputed.
func (m *Manager) ObserveStreak(ledger string, days int) {
	if m == nil {
		return
	}
	m.GaugeStreak.WithLabelValues(ledger).Set(float64(days))
}

const (
	LedgerWeight    = "weight"
	LedgerNutrition = "nutrition"
	LedgerWorkout   = "workout"
	LedgerStrength  = "strength"
)
