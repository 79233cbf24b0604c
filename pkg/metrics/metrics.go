// Package metrics registers the application's prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ExpensesCreated counts successfully created expenses.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expenses_created_total",
		Help: "Number of expenses created with their splits.",
	})

	// Rollbacks counts multi-record writes that failed partway and were
	// compensated.
	Rollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writecoord_rollbacks_total",
		Help: "Number of coordinated writes rolled back after a step failure.",
	}, []string{"operation"})

	// CompensationFailures counts compensating actions that themselves
	// failed, leaving a possibly inconsistent record behind. Alert on this.
	CompensationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "writecoord_compensation_failures_total",
		Help: "Number of compensating deletes that failed during rollback.",
	}, []string{"operation"})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
