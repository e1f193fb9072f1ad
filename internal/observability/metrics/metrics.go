package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the lead intake pipeline.
// All methods are safe on a nil receiver so handlers can run unmetered.
type IntakeMetrics struct {
	submissionsTotal *prometheus.CounterVec
	emailTotal       *prometheus.CounterVec
	duration         prometheus.Histogram
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lead_intake",
			Name:      "submissions_total",
			Help:      "Lead submissions by outcome",
		}, []string{"outcome"}),
		emailTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lead_intake",
			Name:      "email_total",
			Help:      "Notification email attempts by status",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lead_intake",
			Name:      "duration_seconds",
			Help:      "Latency of lead submission handling",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.emailTotal, m.duration)
	return m
}

// ObserveSubmission records one submission with the given outcome
// (accepted, invalid, rate_limited, rejected, persist_error, error).
func (m *IntakeMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveEmail records one notification attempt (sent or failed).
func (m *IntakeMetrics) ObserveEmail(status string) {
	if m == nil {
		return
	}
	m.emailTotal.WithLabelValues(status).Inc()
}

// ObserveDuration records how long a submission took end to end.
func (m *IntakeMetrics) ObserveDuration(seconds float64) {
	if m == nil {
		return
	}
	m.duration.Observe(seconds)
}
