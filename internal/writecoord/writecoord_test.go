package writecoord

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCoordinator() *Coordinator {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExecuteRunsStepsInOrder(t *testing.T) {
	var trace []string
	step := func(name string) Step {
		return Step{
			Name: name,
			Run: func(context.Context) error {
				trace = append(trace, name)
				return nil
			},
			Compensate: func(context.Context) error {
				trace = append(trace, "undo "+name)
				return nil
			},
		}
	}

	err := testCoordinator().Execute(context.Background(), "test.create",
		step("parent"), step("child-1"), step("child-2"))

	require.NoError(t, err)
	assert.Equal(t, []string{"parent", "child-1", "child-2"}, trace)
}

func TestExecuteParentFailureHasNoSideEffects(t *testing.T) {
	boom := errors.New("insert failed")
	compensated := false

	err := testCoordinator().Execute(context.Background(), "test.create", Step{
		Name: "parent",
		Run:  func(context.Context) error { return boom },
		Compensate: func(context.Context) error {
			compensated = true
			return nil
		},
	})

	require.ErrorIs(t, err, boom)
	assert.False(t, compensated, "a step that never ran must not be compensated")
}

func TestExecuteChildFailureCompensatesInReverse(t *testing.T) {
	boom := errors.New("child-3 failed")
	var trace []string
	ok := func(name string) Step {
		return Step{
			Name: name,
			Run:  func(context.Context) error { return nil },
			Compensate: func(context.Context) error {
				trace = append(trace, "undo "+name)
				return nil
			},
		}
	}

	err := testCoordinator().Execute(context.Background(), "test.create",
		ok("parent"), ok("child-1"), ok("child-2"),
		Step{Name: "child-3", Run: func(context.Context) error { return boom }})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"undo child-2", "undo child-1", "undo parent"}, trace)
}

func TestExecuteCompensationFailureKeepsOriginalError(t *testing.T) {
	boom := errors.New("child failed")
	var parentUndone bool

	err := testCoordinator().Execute(context.Background(), "test.create",
		Step{
			Name: "parent",
			Run:  func(context.Context) error { return nil },
			Compensate: func(context.Context) error {
				parentUndone = true
				return nil
			},
		},
		Step{
			Name:       "child-1",
			Run:        func(context.Context) error { return nil },
			Compensate: func(context.Context) error { return errors.New("delete failed") },
		},
		Step{Name: "child-2", Run: func(context.Context) error { return boom }},
	)

	// The caller sees the step failure, not the rollback failure, and the
	// rollback keeps going past the broken compensation.
	require.ErrorIs(t, err, boom)
	assert.True(t, parentUndone)
}

func TestExecuteNilCompensateSkipped(t *testing.T) {
	boom := errors.New("nope")

	err := testCoordinator().Execute(context.Background(), "test.create",
		Step{Name: "parent", Run: func(context.Context) error { return nil }},
		Step{Name: "child", Run: func(context.Context) error { return boom }},
	)

	require.ErrorIs(t, err, boom)
}

func TestExecuteErrorNamesOperationAndStep(t *testing.T) {
	err := testCoordinator().Execute(context.Background(), "expense.create",
		Step{Name: "insert splits", Run: func(context.Context) error { return errors.New("boom") }})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expense.create")
	assert.Contains(t, err.Error(), "insert splits")
}
