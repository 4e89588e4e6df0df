package operations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepStateLifecycle(t *testing.T) {
	state := NewStepState(StepIDLoad, StepNameLoad)
	assert.Equal(t, StepStatusPending, state.Status)
	assert.Equal(t, time.Duration(0), state.Duration())

	state.Start()
	assert.Equal(t, StepStatusActive, state.Status)
	require.NotNil(t, state.StartTime)

	state.UpdateProgress(40, "halfway there")

	view := state.View()
	assert.Equal(t, 40.0, view.Progress)
	assert.Equal(t, "halfway there", view.Message)

	state.Complete()
	assert.Equal(t, StepStatusCompleted, state.Status)
	assert.Equal(t, 100.0, state.Progress)
	require.NotNil(t, state.EndTime)
	assert.GreaterOrEqual(t, state.Duration(), time.Duration(0))
}

func TestStepStateFail(t *testing.T) {
	state := NewStepState(StepIDExport, StepNameExport)
	state.Start()
	state.Fail(assert.AnError)

	assert.Equal(t, StepStatusFailed, state.Status)
	assert.Equal(t, assert.AnError.Error(), state.Error)
	require.NotNil(t, state.EndTime)
}

func TestStateProgressCallback(t *testing.T) {
	var gotStep string
	var gotProgress float64

	state := &State{
		Progress: func(stepID string, progress float64, message string) {
			gotStep = stepID
			gotProgress = progress
		},
	}
	state.reportProgress(StepIDClean, 55, "cleaning")

	assert.Equal(t, StepIDClean, gotStep)
	assert.Equal(t, 55.0, gotProgress)

	// Nil callback must be safe.
	empty := &State{}
	empty.reportProgress(StepIDClean, 10, "noop")
}

func TestOperationDuration(t *testing.T) {
	op := &Operation{}
	assert.Equal(t, time.Duration(0), op.Duration())

	start := time.Now().Add(-2 * time.Second)
	end := start.Add(time.Second)
	op.StartTime = start
	op.EndTime = &end
	assert.Equal(t, time.Second, op.Duration())
}
