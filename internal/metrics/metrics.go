package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

// Error kinds recorded by ScoringErrors.
const (
	KindConfiguration  = "configuration"
	KindUnknownContext = "unknown_context"
	KindNonFinite      = "non_finite"
	KindOther          = "other"
)

// Collectors groups the service's Prometheus instruments.
type Collectors struct {
	Evaluations   *prometheus.CounterVec
	Exports       prometheus.Counter
	ScoringErrors *prometheus.CounterVec
}

// New creates the collectors and registers them, plus a gauge reporting
// activeSessions, on reg.
func New(reg prometheus.Registerer, activeSessions func() float64) (*Collectors, error) {
	c := &Collectors{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "procure",
			Name:      "evaluations_total",
			Help:      "Decision matrix evaluations by strategic context.",
		}, []string{"context"}),
		Exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "procure",
			Name:      "exports_total",
			Help:      "CSV exports served.",
		}),
		ScoringErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "procure",
			Name:      "scoring_errors_total",
			Help:      "Scoring failures by kind.",
		}, []string{"kind"}),
	}

	collectors := []prometheus.Collector{c.Evaluations, c.Exports, c.ScoringErrors}
	if activeSessions != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "procure",
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		}, activeSessions))
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveEvaluation counts a successful evaluation under context.
func (c *Collectors) ObserveEvaluation(context string) {
	if c == nil {
		return
	}
	c.Evaluations.WithLabelValues(context).Inc()
}

// ObserveExport counts a served CSV export.
func (c *Collectors) ObserveExport() {
	if c == nil {
		return
	}
	c.Exports.Inc()
}

// ObserveError classifies err and counts it.
func (c *Collectors) ObserveError(err error) {
	if c == nil || err == nil {
		return
	}
	c.ScoringErrors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind maps a scoring error to its metric label.
func ErrorKind(err error) string {
	var cfgErr *scoring.ConfigurationError
	var ctxErr *scoring.UnknownContextError
	var nfErr *scoring.NonFiniteScoreError
	switch {
	case errors.As(err, &cfgErr):
		return KindConfiguration
	case errors.As(err, &ctxErr):
		return KindUnknownContext
	case errors.As(err, &nfErr):
		return KindNonFinite
	default:
		return KindOther
	}
}
