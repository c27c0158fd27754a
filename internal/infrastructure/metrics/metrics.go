package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the service counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	countsRecorded prometheus.Counter
	imports        *prometheus.CounterVec
	importedRows   prometheus.Counter
	cacheLookups   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		countsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bicocont",
			Name:      "counts_recorded_total",
			Help:      "Physical counts saved.",
		}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bicocont",
			Name:      "material_imports_total",
			Help:      "Material table imports by outcome.",
		}, []string{"outcome"}),
		importedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bicocont",
			Name:      "material_imported_rows_total",
			Help:      "Material rows written by successful imports.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bicocont",
			Name:      "materials_cache_lookups_total",
			Help:      "Materials cache reads by result.",
		}, []string{"result"}),
		gatherer: reg,
	}
	reg.MustRegister(
		m.countsRecorded, m.imports, m.importedRows, m.cacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) CountRecorded() {
	if m == nil {
		return
	}
	m.countsRecorded.Inc()
}

// Import records an import attempt; outcome is "ok", "parse_error" or "store_error".
func (m *Metrics) Import(outcome string, rows int) {
	if m == nil {
		return
	}
	m.imports.WithLabelValues(outcome).Inc()
	if rows > 0 {
		m.importedRows.Add(float64(rows))
	}
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
