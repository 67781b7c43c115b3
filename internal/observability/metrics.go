package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "junction"

// Purge reasons used as the "reason" label.
const (
	ReasonDisconnect = "disconnect"
	ReasonExpired    = "expired"
	ReasonShutdown   = "shutdown"
)

// Metrics holds the junction's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registrations prometheus.Counter
	sent          prometheus.Counter
	read          prometheus.Counter
	purges        *prometheus.CounterVec
	sweeps        prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "peers",
			Name:      "registrations_total",
			Help:      "Sessions that joined the junction.",
		}),
		sent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "sent_total",
			Help:      "Messages queued into a peer inbox.",
		}),
		read: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "read_total",
			Help:      "Messages drained by their addressee.",
		}),
		purges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "peers",
				Name:      "purges_total",
				Help:      "Peer records purged, by reason.",
			},
			[]string{"reason"},
		),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "runs_total",
			Help:      "Idle-session sweep passes.",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
	reg.MustRegister(m.registrations, m.sent, m.read, m.purges, m.sweeps, m.httpRequests, m.httpDuration)
	return m
}

// RegisterActivePeers exposes count as the active peers gauge.
func RegisterActivePeers(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "peers",
			Name:      "active",
			Help:      "Currently registered peers.",
		},
		func() float64 { return float64(count()) },
	))
}

func (m *Metrics) RecordRegistration() {
	if m == nil {
		return
	}
	m.registrations.Inc()
}

func (m *Metrics) RecordSent() {
	if m == nil {
		return
	}
	m.sent.Inc()
}

func (m *Metrics) RecordRead(n int) {
	if m == nil {
		return
	}
	m.read.Add(float64(n))
}

func (m *Metrics) RecordPurge(reason string) {
	if m == nil {
		return
	}
	m.purges.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordSweep() {
	if m == nil {
		return
	}
	m.sweeps.Inc()
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusLabel := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	m.httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}
