package operations

import (
	"time"
)

// Pipeline step identifiers
const (
	StepIDLoad      = "load"
	StepIDClean     = "clean"
	StepIDAggregate = "aggregate"
	StepIDExport    = "export"
)

// Pipeline step names
const (
	StepNameLoad      = "Snapshot Load"
	StepNameClean     = "Data Cleaning"
	StepNameAggregate = "Aggregation"
	StepNameExport    = "Export"
)

// WebSocket event types emitted while a run executes
const (
	EventTypeOperationStatus   = "operation:status"
	EventTypeOperationProgress = "operation:progress"
	EventTypeOperationComplete = "operation:complete"
	EventTypeOperationError    = "operation:error"
)

// OperationStatusValue is the lifecycle status of a whole run.
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
)

// OperationRequest describes one requested pipeline run. Empty paths fall
// back to the configured defaults.
type OperationRequest struct {
	RawFile       string `json:"raw_file,omitempty" validate:"omitempty,filepath"`
	OutDir        string `json:"out_dir,omitempty" validate:"omitempty,dirpath"`
	WriteDataJS   bool   `json:"write_data_js"`
	WriteWorkbook bool   `json:"write_workbook"`
}

// Operation is the observable state of one pipeline run.
type Operation struct {
	ID        string                `json:"id"`
	Status    OperationStatusValue  `json:"status"`
	StartTime time.Time             `json:"start_time"`
	EndTime   *time.Time            `json:"end_time,omitempty"`
	Steps     map[string]*StepState `json:"steps"`
	Error     string                `json:"error,omitempty"`
}

// Duration returns how long the run took, or has taken so far.
func (o *Operation) Duration() time.Duration {
	if o.StartTime.IsZero() {
		return 0
	}
	if o.EndTime != nil {
		return o.EndTime.Sub(o.StartTime)
	}
	return time.Since(o.StartTime)
}

// OperationView is a point-in-time copy of an operation, safe to serialize
// while the run keeps mutating the original.
type OperationView struct {
	ID        string                  `json:"id"`
	Status    OperationStatusValue    `json:"status"`
	StartTime time.Time               `json:"start_time"`
	EndTime   *time.Time              `json:"end_time,omitempty"`
	Steps     map[string]StepSnapshot `json:"steps"`
	Error     string                  `json:"error,omitempty"`
}

// ProgressUpdate is one progress event from a running step.
type ProgressUpdate struct {
	OperationID string  `json:"operation_id"`
	StepID      string  `json:"step_id"`
	Progress    float64 `json:"progress"`
	Message     string  `json:"message"`
}
