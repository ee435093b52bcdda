package etl

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts pipeline runs and row outcomes on a private registry.
type Metrics struct {
	reg  *prometheus.Registry
	rows *prometheus.CounterVec
	runs *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	rows := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "complaints_etl_rows_total",
			Help: "Rows handled by the complaint pipeline, partitioned by job and outcome kind.",
		},
		[]string{"job", "kind"},
	)
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "complaints_etl_runs_total",
			Help: "Pipeline runs, partitioned by job and status.",
		},
		[]string{"job", "status"},
	)
	reg.MustRegister(rows, runs)

	return &Metrics{reg: reg, rows: rows, runs: runs}
}

// Registry exposes the collectors for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// ObserveRun records the outcome of one run. Inserted rows are reported as
// kind "inserted", skipped rows under their skip reason.
func (m *Metrics) ObserveRun(job string, res Result, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.runs.WithLabelValues(job, status).Inc()

	if res.Inserted > 0 {
		m.rows.WithLabelValues(job, "inserted").Add(float64(res.Inserted))
	}
	for kind, n := range res.Reasons {
		if n > 0 {
			m.rows.WithLabelValues(job, kind).Add(float64(n))
		}
	}
}
