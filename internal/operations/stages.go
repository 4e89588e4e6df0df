package operations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chipphillips/federal-employment-analysis/internal/dataprocessing"
	"github.com/chipphillips/federal-employment-analysis/internal/exporter"
)

// LoadStep reads the raw snapshot file into memory.
type LoadStep struct {
	logger *slog.Logger
}

// NewLoadStep creates the snapshot load step.
func NewLoadStep(logger *slog.Logger) *LoadStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadStep{logger: logger}
}

func (s *LoadStep) ID() string   { return StepIDLoad }
func (s *LoadStep) Name() string { return StepNameLoad }

func (s *LoadStep) Execute(ctx context.Context, state *State) error {
	state.reportProgress(StepIDLoad, 10, fmt.Sprintf("Reading %s", state.RawFile))

	snapshot, err := dataprocessing.ParseFile(ctx, state.RawFile, s.logger)
	if err != nil {
		return fmt.Errorf("snapshot load failed: %w", err)
	}

	state.Snapshot = snapshot
	state.reportProgress(StepIDLoad, 100, fmt.Sprintf("Loaded %d rows", len(snapshot.Rows)))
	return nil
}

// CleanStep coerces raw rows into typed employment records.
type CleanStep struct {
	cleaner *dataprocessing.Cleaner
	logger  *slog.Logger
}

// NewCleanStep creates the cleaning step.
func NewCleanStep(logger *slog.Logger) *CleanStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanStep{
		cleaner: dataprocessing.NewCleaner(logger),
		logger:  logger,
	}
}

func (s *CleanStep) ID() string   { return StepIDClean }
func (s *CleanStep) Name() string { return StepNameClean }

func (s *CleanStep) Execute(ctx context.Context, state *State) error {
	if state.Snapshot == nil {
		return fmt.Errorf("cleaning requires a loaded snapshot")
	}

	state.reportProgress(StepIDClean, 10, "Coercing rows to typed records")

	records, report, err := s.cleaner.Clean(ctx, state.Snapshot)
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}

	state.Records = records
	state.CleanReport = report
	state.reportProgress(StepIDClean, 100,
		fmt.Sprintf("Cleaned %d rows, dropped %d", report.CleanRows, report.DroppedRows))
	return nil
}

// AggregateStep builds every summary table from the cleaned records.
type AggregateStep struct {
	summarizer *dataprocessing.Summarizer
	logger     *slog.Logger
}

// NewAggregateStep creates the aggregation step.
func NewAggregateStep(logger *slog.Logger, config dataprocessing.SummarizerConfig) *AggregateStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &AggregateStep{
		summarizer: dataprocessing.NewSummarizer(logger, config),
		logger:     logger,
	}
}

func (s *AggregateStep) ID() string   { return StepIDAggregate }
func (s *AggregateStep) Name() string { return StepNameAggregate }

func (s *AggregateStep) Execute(ctx context.Context, state *State) error {
	if len(state.Records) == 0 {
		return fmt.Errorf("aggregation requires cleaned records")
	}

	state.reportProgress(StepIDAggregate, 10, "Building summary tables")

	set, err := s.summarizer.Build(ctx, state.Records)
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}

	state.Summaries = set
	state.reportProgress(StepIDAggregate, 100,
		fmt.Sprintf("Summarized %d agencies across %d states",
			set.Overall.TotalAgencies, set.Overall.TotalStates))
	return nil
}

// ExportStep writes the summary CSVs, overall statistics, and the optional
// dashboard bundle and workbook.
type ExportStep struct {
	logger *slog.Logger
}

// NewExportStep creates the export step.
func NewExportStep(logger *slog.Logger) *ExportStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportStep{logger: logger}
}

func (s *ExportStep) ID() string   { return StepIDExport }
func (s *ExportStep) Name() string { return StepNameExport }

func (s *ExportStep) Execute(ctx context.Context, state *State) error {
	if state.Summaries == nil {
		return fmt.Errorf("export requires built summaries")
	}

	summaries := exporter.NewSummaryExporter(state.OutDir, s.logger)
	jsonOut := exporter.NewJSONExporter(state.OutDir, state.TopAgencies, s.logger)

	state.reportProgress(StepIDExport, 10, "Writing summary CSVs")
	if err := summaries.WriteAll(ctx, state.Summaries); err != nil {
		return fmt.Errorf("summary export failed: %w", err)
	}

	state.reportProgress(StepIDExport, 50, "Writing overall statistics")
	if err := jsonOut.WriteOverallStats(ctx, state.Summaries.Overall); err != nil {
		return fmt.Errorf("overall statistics export failed: %w", err)
	}

	if state.WriteDataJS {
		state.reportProgress(StepIDExport, 70, "Writing dashboard data bundle")
		if err := jsonOut.WriteDataJS(ctx, state.Summaries); err != nil {
			return fmt.Errorf("dashboard bundle export failed: %w", err)
		}
	}

	if state.WriteWorkbook {
		state.reportProgress(StepIDExport, 85, "Writing summary workbook")
		excel := exporter.NewExcelExporter(state.OutDir, s.logger)
		if err := excel.WriteWorkbook(ctx, state.Summaries); err != nil {
			return fmt.Errorf("workbook export failed: %w", err)
		}
	}

	state.reportProgress(StepIDExport, 100, "Export complete")
	return nil
}
