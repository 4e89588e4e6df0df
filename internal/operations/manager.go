package operations

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chipphillips/federal-employment-analysis/internal/dataprocessing"
	apierrors "github.com/chipphillips/federal-employment-analysis/internal/errors"
	"github.com/chipphillips/federal-employment-analysis/internal/infrastructure"
	"github.com/chipphillips/federal-employment-analysis/internal/metrics"
)

// Broadcaster pushes operation lifecycle events to connected clients.
// The WebSocket hub implements it; a nil broadcaster disables push updates.
type Broadcaster interface {
	BroadcastUpdate(eventType, operationID, step string, payload interface{})
}

// ManagerConfig holds the run parameters the manager applies to every
// operation unless the request overrides them.
type ManagerConfig struct {
	RawFile       string
	OutDir        string
	TopAgencies   int
	Timeout       time.Duration
	WriteDataJS   bool
	WriteWorkbook bool
}

// Manager owns pipeline runs: it builds the step list, executes runs
// sequentially, tracks their state, and broadcasts progress. One run at a
// time; the pipeline rewrites shared output files, so concurrent runs would
// corrupt each other.
type Manager struct {
	mu          sync.RWMutex
	operations  map[string]*Operation
	running     bool
	config      ManagerConfig
	broadcaster Broadcaster
	logger      *slog.Logger
}

// NewManager creates an operation manager.
func NewManager(config ManagerConfig, broadcaster Broadcaster, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Minute
	}
	return &Manager{
		operations:  make(map[string]*Operation),
		config:      config,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Start begins a new pipeline run in the background and returns its
// observable state. ErrOperationRunning is returned while another run is
// still in flight.
func (m *Manager) Start(req OperationRequest) (*Operation, error) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil, apierrors.ErrOperationRunning
	}
	m.running = true

	op := &Operation{
		ID:        uuid.New().String(),
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
	}
	m.operations[op.ID] = op
	m.mu.Unlock()

	go m.execute(op, req)

	return op, nil
}

// Run executes a pipeline run synchronously. The CLI entry point uses it;
// the HTTP layer goes through Start.
func (m *Manager) Run(ctx context.Context, req OperationRequest) (*Operation, error) {
	op, err := m.Start(req)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return op, ctx.Err()
		case <-ticker.C:
			m.mu.RLock()
			done := op.Status == OperationStatusCompleted || op.Status == OperationStatusFailed
			m.mu.RUnlock()
			if done {
				if op.Status == OperationStatusFailed {
					return op, apierrors.ErrPipelineExecution(errors.New(op.Error))
				}
				return op, nil
			}
		}
	}
}

// Get returns the operation with the given ID.
func (m *Manager) Get(id string) (*Operation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	op, ok := m.operations[id]
	return op, ok
}

// Snapshot returns a serializable copy of the operation with the given ID.
func (m *Manager) Snapshot(id string) (OperationView, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	op, ok := m.operations[id]
	if !ok {
		return OperationView{}, false
	}
	return m.viewLocked(op), true
}

// Snapshots returns serializable copies of every operation, newest first.
func (m *Manager) Snapshots() []OperationView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]OperationView, 0, len(m.operations))
	for _, op := range m.operations {
		out = append(out, m.viewLocked(op))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out
}

func (m *Manager) viewLocked(op *Operation) OperationView {
	view := OperationView{
		ID:        op.ID,
		Status:    op.Status,
		StartTime: op.StartTime,
		EndTime:   op.EndTime,
		Steps:     make(map[string]StepSnapshot, len(op.Steps)),
		Error:     op.Error,
	}
	for id, step := range op.Steps {
		view.Steps[id] = step.View()
	}
	return view
}

// List returns all known operations, newest first.
func (m *Manager) List() []*Operation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Operation, 0, len(m.operations))
	for _, op := range m.operations {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out
}

func (m *Manager) execute(op *Operation, req OperationRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), m.config.Timeout)
	defer cancel()
	ctx = infrastructure.WithTraceID(ctx, op.ID)

	logger := m.logger.With(slog.String("operation_id", op.ID))
	started := time.Now()

	state := m.buildState(op, req)
	steps := []Step{
		NewLoadStep(logger),
		NewCleanStep(logger),
		NewAggregateStep(logger, dataprocessing.SummarizerConfig{TopAgencies: state.TopAgencies}),
		NewExportStep(logger),
	}

	m.mu.Lock()
	for _, step := range steps {
		op.Steps[step.ID()] = NewStepState(step.ID(), step.Name())
	}
	op.Status = OperationStatusRunning
	m.mu.Unlock()

	m.broadcast(EventTypeOperationStatus, op.ID, "", map[string]interface{}{
		"status": OperationStatusRunning,
	})

	logger.InfoContext(ctx, "pipeline run started",
		slog.String("raw_file", state.RawFile),
		slog.String("out_dir", state.OutDir))

	for _, step := range steps {
		if err := m.runStep(ctx, op, step, state, logger); err != nil {
			m.finish(op, err)
			metrics.RecordPipelineRun("failed", time.Since(started))
			return
		}
	}

	metrics.RecordPipelineRun("completed", time.Since(started))
	metrics.AddRowsProcessed(state.CleanReport.CleanRows)
	m.finish(op, nil)
}

func (m *Manager) buildState(op *Operation, req OperationRequest) *State {
	state := &State{
		RawFile:       m.config.RawFile,
		OutDir:        m.config.OutDir,
		WriteDataJS:   m.config.WriteDataJS || req.WriteDataJS,
		WriteWorkbook: m.config.WriteWorkbook || req.WriteWorkbook,
		TopAgencies:   m.config.TopAgencies,
	}
	if req.RawFile != "" {
		state.RawFile = req.RawFile
	}
	if req.OutDir != "" {
		state.OutDir = req.OutDir
	}

	state.Progress = func(stepID string, progress float64, message string) {
		m.mu.RLock()
		stepState := op.Steps[stepID]
		m.mu.RUnlock()
		if stepState != nil {
			stepState.UpdateProgress(progress, message)
		}
		m.broadcast(EventTypeOperationProgress, op.ID, stepID, ProgressUpdate{
			OperationID: op.ID,
			StepID:      stepID,
			Progress:    progress,
			Message:     message,
		})
	}

	return state
}

func (m *Manager) runStep(ctx context.Context, op *Operation, step Step, state *State, logger *slog.Logger) error {
	stepState := op.Steps[step.ID()]
	stepState.Start()

	logger.InfoContext(ctx, "step started", slog.String("step", step.ID()))

	if err := step.Execute(ctx, state); err != nil {
		stepState.Fail(err)
		logger.ErrorContext(ctx, "step failed",
			slog.String("step", step.ID()),
			slog.String("error", err.Error()))
		m.broadcast(EventTypeOperationError, op.ID, step.ID(), map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	stepState.Complete()
	logger.InfoContext(ctx, "step completed",
		slog.String("step", step.ID()),
		slog.Duration("duration", stepState.Duration()))
	return nil
}

func (m *Manager) finish(op *Operation, err error) {
	m.mu.Lock()
	now := time.Now()
	op.EndTime = &now
	if err != nil {
		op.Status = OperationStatusFailed
		op.Error = err.Error()
	} else {
		op.Status = OperationStatusCompleted
	}
	m.running = false
	m.mu.Unlock()

	if err != nil {
		m.broadcast(EventTypeOperationError, op.ID, "", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	m.broadcast(EventTypeOperationComplete, op.ID, "", map[string]interface{}{
		"duration": op.Duration().String(),
	})
}

func (m *Manager) broadcast(eventType, operationID, step string, payload interface{}) {
	if m.broadcaster == nil {
		return
	}
	m.broadcaster.BroadcastUpdate(eventType, operationID, step, payload)
}
