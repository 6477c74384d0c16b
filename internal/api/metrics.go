package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tkutschbach/RST-Tace/internal/parser"
	"github.com/tkutschbach/RST-Tace/internal/pipeline"
	"github.com/tkutschbach/RST-Tace/internal/rsttree"
)

// Metrics holds the Prometheus collectors of one server. Each server owns
// its registry so that several can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	// documents counts parsed annotation documents.
	// Labels: result (ok, invalid, error)
	documents *prometheus.CounterVec

	// relations observes the number of relations per parsed tree.
	relations prometheus.Histogram

	// comparisons counts completed annotation comparisons.
	comparisons prometheus.Counter

	// requestDuration measures request latency.
	// Labels: route (chi route pattern), status
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		documents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rsttace",
			Name:      "documents_parsed_total",
			Help:      "Annotation documents parsed, by result",
		}, []string{"result"}),
		relations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rsttace",
			Name:      "document_relations",
			Help:      "Binary and multi-nuclear relations per parsed document",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 250, 500},
		}),
		comparisons: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rsttace",
			Name:      "comparisons_total",
			Help:      "Completed comparisons of two annotations",
		}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rsttace",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument records request latency per route pattern.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.requestDuration.WithLabelValues(route, strconv.Itoa(sw.status)).Observe(time.Since(start).Seconds())
	})
}

// meteredSource counts every document read through it.
type meteredSource struct {
	pipeline.Source
	m *Metrics
}

func (s meteredSource) Read() (*rsttree.Tree, error) {
	tree, err := s.Source.Read()
	switch {
	case err == nil:
		s.m.documents.WithLabelValues("ok").Inc()
		s.m.relations.Observe(float64(len(tree.Binary) + len(tree.Groups)))
	case errors.Is(err, parser.ErrInvalidFile):
		s.m.documents.WithLabelValues("invalid").Inc()
	default:
		s.m.documents.WithLabelValues("error").Inc()
	}
	return tree, err
}
