package observability

import (
	"context"
	"errors"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "treeoracle"

// Metrics holds the Prometheus collectors fed by generation hooks.
type Metrics struct {
	// Expansions counts nonterminal rewrites. Labels: grammar, symbol
	Expansions *prometheus.CounterVec
	// Samples counts completed samples. Labels: grammar
	Samples *prometheus.CounterVec
	// Errors counts failed generations or scorings. Labels: grammar, kind
	Errors *prometheus.CounterVec
	// TreeSize observes node counts of generated trees. Labels: grammar
	TreeSize *prometheus.HistogramVec
	// TreeDepth observes depths of generated trees. Labels: grammar
	TreeDepth *prometheus.HistogramVec
	// Score observes scorer outputs. Labels: grammar
	Score *prometheus.HistogramVec
	// Duration observes generate+score latency in seconds. Labels: grammar
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg registers nothing, which is useful in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Expansions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "expansions_total",
			Help:      "Total nonterminal expansions",
		}, []string{"grammar", "symbol"}),
		Samples: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "samples_total",
			Help:      "Total samples generated and scored",
		}, []string{"grammar"}),
		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "errors_total",
			Help:      "Total generation or scoring failures by kind",
		}, []string{"grammar", "kind"}),
		TreeSize: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "tree_size_nodes",
			Help:      "Node count of generated trees",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
		}, []string{"grammar"}),
		TreeDepth: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "tree_depth",
			Help:      "Depth of generated trees",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"grammar"}),
		Score: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "score",
			Help:      "Distribution of sample scores",
			Buckets:   []float64{-20, -10, -5, -2, 0, 0.1, 0.25, 0.5, 0.75, 0.9, 1, 2, 5, 10, 20},
		}, []string{"grammar"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "sample_duration_seconds",
			Help:      "Time to generate and score one sample",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"grammar"}),
	}
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnExpand: func(ctx context.Context, e *domain.ExpandEvent) {
			m.Expansions.WithLabelValues(e.Grammar, string(e.Symbol)).Inc()
		},
		OnSample: func(ctx context.Context, e *domain.SampleEvent) {
			m.Samples.WithLabelValues(e.Grammar).Inc()
			m.TreeSize.WithLabelValues(e.Grammar).Observe(float64(e.Size))
			m.TreeDepth.WithLabelValues(e.Grammar).Observe(float64(e.Depth))
			m.Score.WithLabelValues(e.Grammar).Observe(e.Score)
			m.Duration.WithLabelValues(e.Grammar).Observe(e.Duration.Seconds())
		},
		OnError: func(ctx context.Context, e *domain.ErrorEvent) {
			m.Errors.WithLabelValues(e.Grammar, ErrorKind(e.Err)).Inc()
		},
	}
}

// ErrorKind maps an error to a short, bounded metric label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrGrammarLookup):
		return "lookup"
	case errors.Is(err, domain.ErrGrammarConfig):
		return "config"
	case errors.Is(err, domain.ErrGrammarNontermination):
		return "nontermination"
	case errors.Is(err, domain.ErrUnknownLabel):
		return "unknown_label"
	case errors.Is(err, domain.ErrInvalidBasePair):
		return "base_pair"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
