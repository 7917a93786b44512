package aggregation

import (
	"github.com/aevon-lab/costroll/internal/ingestion"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the pipeline's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	files          *prometheus.CounterVec
	fileDuration   prometheus.Histogram
	rowsRead       prometheus.Counter
	rowsSkipped    *prometheus.CounterVec
	triples        prometheus.Counter
	objectTypes    *prometheus.CounterVec
	rowsWritten    prometheus.Counter
	persistElapsed prometheus.Histogram
	runs           *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "costroll",
				Name:      "files_ingested_total",
				Help:      "Input files ingested, by status.",
			},
			[]string{"status"},
		),
		fileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "costroll",
				Name:      "file_ingest_duration_seconds",
				Help:      "Time spent reading one input file.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),
		rowsRead: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "costroll",
				Name:      "rows_read_total",
				Help:      "CSV records read from input files.",
			},
		),
		rowsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "costroll",
				Name:      "rows_skipped_total",
				Help:      "CSV records that contributed no cost, by reason.",
			},
			[]string{"reason"},
		),
		triples: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "costroll",
				Name:      "triples_aggregated_total",
				Help:      "Object cost triples folded into the aggregate table.",
			},
		),
		objectTypes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "costroll",
				Name:      "object_types_persisted_total",
				Help:      "Per object type transactions, by outcome.",
			},
			[]string{"object_type", "status"},
		),
		rowsWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "costroll",
				Name:      "result_rows_written_total",
				Help:      "Rows committed to the results table.",
			},
		),
		persistElapsed: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "costroll",
				Name:      "persist_duration_seconds",
				Help:      "Time spent writing one run's totals.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "costroll",
				Name:      "runs_total",
				Help:      "Pipeline runs, by final phase.",
			},
			[]string{"phase"},
		),
	}

	reg.MustRegister(
		m.files,
		m.fileDuration,
		m.rowsRead,
		m.rowsSkipped,
		m.triples,
		m.objectTypes,
		m.rowsWritten,
		m.persistElapsed,
		m.runs,
	)
	return m
}

func (m *Metrics) observeFile(res ingestion.FileResult) {
	if m == nil {
		return
	}
	status := "processed"
	if res.Failed() {
		status = "failed"
	}
	m.files.WithLabelValues(status).Inc()
	m.fileDuration.Observe(res.Elapsed.Seconds())
	m.rowsRead.Add(float64(res.Rows))
	m.triples.Add(float64(res.Triples))
	for reason, n := range res.Skipped {
		m.rowsSkipped.WithLabelValues(string(reason)).Add(float64(n))
	}
}

func (m *Metrics) observePersist(res PersistResult) {
	if m == nil {
		return
	}
	for _, outcome := range res.Outcomes {
		status := "committed"
		if outcome.Err != nil {
			status = "failed"
		}
		m.objectTypes.WithLabelValues(outcome.Type.String(), status).Inc()
	}
	m.rowsWritten.Add(float64(res.RowsWritten))
	m.persistElapsed.Observe(res.Elapsed.Seconds())
}

func (m *Metrics) observeRun(phase Phase) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(string(phase)).Inc()
}
