package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ledger service. Services hold
// a possibly-nil *Metrics; unit tests pass nil to skip registration.
type Metrics struct {
	MatchesCreated       prometheus.Counter
	MatchTransitions     *prometheus.CounterVec
	RecipientsRegistered prometheus.Counter
	HospitalsAdded       prometheus.Counter
	CouriersAdded        prometheus.Counter
	TransportsCreated    prometheus.Counter
	TransportUpdates     prometheus.Counter
	OwnerTransfers       prometheus.Counter
	RejectedOperations   *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		MatchesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "organledger_matches_created_total",
			Help: "Total number of match proposals created",
		}),
		MatchTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "organledger_match_transitions_total",
			Help: "Match status transitions by target status",
		}, []string{"status"}),
		RecipientsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "organledger_recipients_registered_total",
			Help: "Total number of recipients registered",
		}),
		HospitalsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "organledger_hospitals_added_total",
			Help: "Total number of hospital directory entries added",
		}),
		CouriersAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "organledger_couriers_added_total",
			Help: "Total number of couriers added",
		}),
		TransportsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "organledger_transports_created_total",
			Help: "Total number of transport assignments created",
		}),
		TransportUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "organledger_transport_status_updates_total",
			Help: "Total number of transport status updates applied",
		}),
		OwnerTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "organledger_owner_transfers_total",
			Help: "Total number of contract ownership transfers",
		}),
		RejectedOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "organledger_rejected_operations_total",
			Help: "Operations rejected before commit, by failure code",
		}, []string{"code"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "organledger_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "status"}),
	}
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(route, status string, start time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
}

// IncRejected records a rejected operation by its numeric taxonomy code.
func (m *Metrics) IncRejected(code string) {
	if m == nil {
		return
	}
	m.RejectedOperations.WithLabelValues(code).Inc()
}
