// Package writecoord coordinates multi-record writes against a store that
// has no multi-record transaction primitive.
//
// An operation is a list of steps executed in order: the parent record first,
// then its children. If a step fails, the compensations of every completed
// step run in reverse order (best effort) and the caller gets the original
// failure. A crash between a partial write and its compensation can still
// leave an orphaned record; compensation failures are logged and counted so
// that window is at least visible.
package writecoord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tripcrew/tripcrew/pkg/metrics"
)

// Step is one write in a coordinated operation.
type Step struct {
	// Name identifies the step in logs and errors.
	Name string

	// Run performs the write.
	Run func(ctx context.Context) error

	// Compensate undoes the write during rollback. Nil when there is
	// nothing to undo.
	Compensate func(ctx context.Context) error
}

// Coordinator runs coordinated write operations.
type Coordinator struct {
	log *slog.Logger
}

// New creates a coordinator. A nil logger falls back to slog.Default.
func New(log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{log: log}
}

// Execute runs the steps in order. On failure it compensates every completed
// step in reverse order and returns the failing step's error. Compensation
// errors are never returned: the caller acts on the original failure, and a
// failed compensation is an operational problem, not a caller one.
func (c *Coordinator) Execute(ctx context.Context, operation string, steps ...Step) error {
	for i, step := range steps {
		if err := step.Run(ctx); err != nil {
			c.rollback(ctx, operation, step.Name, steps[:i])
			return fmt.Errorf("%s: %s: %w", operation, step.Name, err)
		}
	}
	return nil
}

func (c *Coordinator) rollback(ctx context.Context, operation, failed string, completed []Step) {
	if len(completed) == 0 {
		// The parent write itself failed: nothing was persisted.
		return
	}

	metrics.Rollbacks.WithLabelValues(operation).Inc()
	c.log.Warn("rolling back coordinated write",
		"operation", operation,
		"failed_step", failed,
		"completed_steps", len(completed))

	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			metrics.CompensationFailures.WithLabelValues(operation).Inc()
			c.log.Error("compensation failed, record may be orphaned",
				"operation", operation,
				"step", step.Name,
				"error", err)
		}
	}
}
