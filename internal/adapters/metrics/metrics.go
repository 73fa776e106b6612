package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder collects API request metrics for one CLI invocation.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ ports.RequestObserver = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fc",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests sent.",
			},
			[]string{"method", "resource", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fc",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Duration of API requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"method", "resource"},
		),
	}
	r.registry.MustRegister(r.requests, r.duration)

	return r
}

func (r *Recorder) ObserveRequest(method string, resource string, outcome string, elapsed time.Duration) {
	r.requests.WithLabelValues(method, resource, outcome).Inc()
	r.duration.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// WriteText dumps every collected family in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("write metric %s: %w", family.GetName(), err)
		}
	}

	return nil
}
