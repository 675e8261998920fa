// Package metrics exposes Prometheus collectors for the progress reporter.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Connect results used as label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Reporter owns the collectors updated by a reporting client. A nil *Reporter
// is valid and records nothing.
type Reporter struct {
	connects     *prometheus.CounterVec
	recordsSent  prometheus.Counter
	sendFailures prometheus.Counter
	bytesWritten prometheus.Counter
	sendDuration prometheus.Histogram
}

// NewReporter registers the reporter collectors against reg, or the default
// registerer when reg is nil.
func NewReporter(reg prometheus.Registerer) (*Reporter, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Reporter{
		connects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progress_reporter_connects_total",
			Help: "Connection attempts to the monitor partitioned by result.",
		}, []string{"result"}),
		recordsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "progress_reporter_records_sent_total",
			Help: "Progress records written in full.",
		}),
		sendFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "progress_reporter_send_failures_total",
			Help: "Progress records that failed or were written short.",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "progress_reporter_bytes_written_total",
			Help: "Bytes written to the monitor, including short writes.",
		}),
		sendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "progress_reporter_send_duration_seconds",
			Help:    "Time spent writing a single record.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
	for _, collector := range []prometheus.Collector{
		r.connects,
		r.recordsSent,
		r.sendFailures,
		r.bytesWritten,
		r.sendDuration,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register reporter collector: %w", err)
		}
	}
	return r, nil
}

// ObserveConnect counts one connection attempt.
func (r *Reporter) ObserveConnect(err error) {
	if r == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	r.connects.WithLabelValues(result).Inc()
}

// ObserveSend records the outcome of one write.
func (r *Reporter) ObserveSend(written int, duration time.Duration, err error) {
	if r == nil {
		return
	}
	if written > 0 {
		r.bytesWritten.Add(float64(written))
	}
	r.sendDuration.Observe(duration.Seconds())
	if err != nil {
		r.sendFailures.Inc()
		return
	}
	r.recordsSent.Inc()
}
