package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestSaga_AllStepsSucceed(t *testing.T) {
	var order []string

	s := New("test", nopLogger{}).
		AddStep(Step{
			Name: "first",
			Run: func(ctx context.Context) error {
				order = append(order, "first")
				return nil
			},
			Compensate: func(ctx context.Context) error {
				order = append(order, "undo-first")
				return nil
			},
		}).
		AddStep(Step{
			Name: "second",
			Run: func(ctx context.Context) error {
				order = append(order, "second")
				return nil
			},
		})

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSaga_FailureCompensatesCompletedSteps(t *testing.T) {
	var order []string
	boom := errors.New("boom")

	s := New("test", nopLogger{}).
		AddStep(Step{
			Name: "create",
			Run: func(ctx context.Context) error {
				order = append(order, "create")
				return nil
			},
			Compensate: func(ctx context.Context) error {
				order = append(order, "undo-create")
				return nil
			},
		}).
		AddStep(Step{
			Name: "consume",
			Run: func(ctx context.Context) error {
				order = append(order, "consume")
				return nil
			},
			Compensate: func(ctx context.Context) error {
				order = append(order, "undo-consume")
				return nil
			},
		}).
		AddStep(Step{
			Name: "deduct",
			Run: func(ctx context.Context) error {
				return boom
			},
		})

	err := s.Execute(context.Background())
	require.ErrorIs(t, err, boom)

	// Компенсации в обратном порядке, упавший шаг не компенсируется
	assert.Equal(t, []string{"create", "consume", "undo-consume", "undo-create"}, order)
}

func TestSaga_CompensationFailureDoesNotStopRollback(t *testing.T) {
	var order []string
	boom := errors.New("boom")

	s := New("test", nopLogger{}).
		AddStep(Step{
			Name: "a",
			Run:  func(ctx context.Context) error { order = append(order, "a"); return nil },
			Compensate: func(ctx context.Context) error {
				order = append(order, "undo-a")
				return nil
			},
		}).
		AddStep(Step{
			Name: "b",
			Run:  func(ctx context.Context) error { order = append(order, "b"); return nil },
			Compensate: func(ctx context.Context) error {
				return errors.New("compensation broken")
			},
		}).
		AddStep(Step{
			Name: "c",
			Run:  func(ctx context.Context) error { return boom },
		})

	err := s.Execute(context.Background())
	require.ErrorIs(t, err, boom)

	// Сбой компенсации "b" не мешает откату "a"
	assert.Equal(t, []string{"a", "b", "undo-a"}, order)
}

func TestSaga_FirstStepFails(t *testing.T) {
	boom := errors.New("boom")
	compensated := false

	s := New("test", nopLogger{}).
		AddStep(Step{
			Name: "only",
			Run:  func(ctx context.Context) error { return boom },
			Compensate: func(ctx context.Context) error {
				compensated = true
				return nil
			},
		})

	err := s.Execute(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, compensated)
}
