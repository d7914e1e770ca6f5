// Package metrics exposes prometheus instruments for lifecycle and query
// operations. A process-wide recorder with a noop default keeps call sites
// unconditional.
package metrics

import (
	"errors"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Recorder interface {
	RecordLifecycleOp(op string)
	RecordLifecycleError(op string)
	RecordQuery(metric string)
}

type recorder struct {
	lifecycleOps    *prometheus.CounterVec
	lifecycleErrors *prometheus.CounterVec
	queries         *prometheus.CounterVec
}

type noopRecorder struct{}

func (noopRecorder) RecordLifecycleOp(string)    {}
func (noopRecorder) RecordLifecycleError(string) {}
func (noopRecorder) RecordQuery(string)          {}

var (
	activeRecorder Recorder = noopRecorder{}
	recorderMu     sync.RWMutex
)

func setRecorder(rec Recorder) {
	if rec == nil {
		return
	}
	recorderMu.Lock()
	activeRecorder = rec
	recorderMu.Unlock()
}

func RecordLifecycleOp(op string) {
	recorderMu.RLock()
	rec := activeRecorder
	recorderMu.RUnlock()
	rec.RecordLifecycleOp(op)
}

func RecordLifecycleError(op string) {
	recorderMu.RLock()
	rec := activeRecorder
	recorderMu.RUnlock()
	rec.RecordLifecycleError(op)
}

func RecordQuery(metric string) {
	recorderMu.RLock()
	rec := activeRecorder
	recorderMu.RUnlock()
	rec.RecordQuery(metric)
}

func newRecorder(reg prometheus.Registerer) (*recorder, error) {
	r := &recorder{
		lifecycleOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insight_lifecycle_operations_total",
			Help: "Committed account lifecycle operations by kind.",
		}, []string{"op"}),
		lifecycleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insight_lifecycle_errors_total",
			Help: "Rejected account lifecycle operations by kind.",
		}, []string{"op"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "insight_queries_total",
			Help: "Analytics queries served by metric name.",
		}, []string{"metric"}),
	}

	for _, c := range []prometheus.Collector{r.lifecycleOps, r.lifecycleErrors, r.queries} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return nil, err
		}
	}

	return r, nil
}

func (r *recorder) RecordLifecycleOp(op string) {
	r.lifecycleOps.WithLabelValues(normalizeLabel(op)).Inc()
}

func (r *recorder) RecordLifecycleError(op string) {
	r.lifecycleErrors.WithLabelValues(normalizeLabel(op)).Inc()
}

func (r *recorder) RecordQuery(metric string) {
	r.queries.WithLabelValues(normalizeLabel(metric)).Inc()
}

func normalizeLabel(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "unknown"
	}
	return value
}
