package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Entry lifecycle events counted by LedgerMetrics.
const (
	EventCreated   = "created"
	EventUpdated   = "updated"
	EventPosted    = "posted"
	EventCancelled = "cancelled"
	EventReversed  = "reversed"
	EventDeleted   = "deleted"
)

// LedgerMetrics records journal entry lifecycle events and report latency.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	entryEvents    *prometheus.CounterVec
	postConflicts  prometheus.Counter
	reportDuration *prometheus.HistogramVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	entryEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_journal_entry_events_total",
		Help: "Journal entry lifecycle transitions.",
	}, []string{"event"})
	postConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_journal_entry_state_conflicts_total",
		Help: "Status transitions rejected because the entry was no longer in the expected state.",
	})
	reportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_report_duration_seconds",
		Help:    "Time spent computing financial reports.",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})
	reg.MustRegister(entryEvents, postConflicts, reportDuration)
	return &LedgerMetrics{
		entryEvents:    entryEvents,
		postConflicts:  postConflicts,
		reportDuration: reportDuration,
	}
}

// IncEntryEvent counts one lifecycle event.
func (m *LedgerMetrics) IncEntryEvent(event string) {
	if m == nil || m.entryEvents == nil {
		return
	}
	m.entryEvents.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncStateConflict counts a rejected conditional status transition.
func (m *LedgerMetrics) IncStateConflict() {
	if m == nil || m.postConflicts == nil {
		return
	}
	m.postConflicts.Inc()
}

// ObserveReport records how long the named report took.
func (m *LedgerMetrics) ObserveReport(report string, duration time.Duration) {
	if m == nil || m.reportDuration == nil {
		return
	}
	m.reportDuration.WithLabelValues(normalizeLabel(report)).Observe(duration.Seconds())
}

// HTTPMetrics records request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "HTTP requests handled, by route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// ObserveRequest records one handled request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
