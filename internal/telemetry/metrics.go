package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики core-подсистемы. Экспортируются через /metrics (promhttp).
var (
	// SelectionsTotal — сколько раз был выбран runner.
	SelectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mensa_runner_selections_total",
		Help: "Total weighted-random runner selections performed",
	})

	// ResetRunsTotal — сколько раз отработал reset job (по сайтам суммарно).
	ResetRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mensa_reset_runs_total",
		Help: "Total reset job executions",
	})

	// ResetStepFailures — ошибки шагов reset job'а, по имени шага.
	ResetStepFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mensa_reset_step_failures_total",
		Help: "Total failed reset job steps",
	}, []string{"step"})
)
