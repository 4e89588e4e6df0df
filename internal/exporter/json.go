package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chipphillips/federal-employment-analysis/internal/errors"
	"github.com/chipphillips/federal-employment-analysis/pkg/contracts/domain"
)

// JSONExporter writes the overall statistics file and the embeddable
// dashboard data bundle.
type JSONExporter struct {
	outDir      string
	topAgencies int
	logger      *slog.Logger
}

// NewJSONExporter creates an exporter writing into outDir. topAgencies
// bounds the dashboard's default agency list; the full list is embedded
// alongside it.
func NewJSONExporter(outDir string, topAgencies int, logger *slog.Logger) *JSONExporter {
	if logger == nil {
		logger = slog.Default()
	}
	if topAgencies <= 0 {
		topAgencies = 50
	}
	return &JSONExporter{outDir: outDir, topAgencies: topAgencies, logger: logger}
}

// WriteOverallStats writes overall_stats.json.
func (e *JSONExporter) WriteOverallStats(ctx context.Context, stats domain.OverallStats) error {
	path := filepath.Join(e.outDir, FileOverallStats)

	e.logger.InfoContext(ctx, "writing overall statistics",
		slog.String("path", path),
		slog.Int64("total_employees", stats.TotalEmployees))

	if err := os.MkdirAll(e.outDir, 0755); err != nil {
		return errors.NewStorageError("failed to create directory for JSON output", err)
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode overall statistics: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewStorageError("failed to write overall statistics file", err)
	}

	return nil
}

// dashboardData is the payload embedded into data.js for client-side render.
type dashboardData struct {
	Overall         domain.OverallStats          `json:"overall"`
	Agencies        []domain.AgencySummary       `json:"agencies"`
	AllAgencies     []domain.AgencySummary       `json:"allAgencies"`
	States          []domain.StateSummary        `json:"states"`
	PayDistribution []domain.CategorySummary     `json:"payDistribution"`
	Education       []domain.CategorySummary     `json:"education"`
	Appointments    []domain.AppointmentSummary  `json:"appointments"`
	AgeBrackets     []domain.CategorySummary     `json:"ageBrackets"`
	Stem            []domain.CategorySummary     `json:"stem"`
	Supervisory     []domain.CategorySummary     `json:"supervisory"`
}

// WriteDataJS writes data.js: a single `const DASHBOARD_DATA = ...;`
// statement the static dashboard loads with a script tag, so it renders
// without any backend at all.
func (e *JSONExporter) WriteDataJS(ctx context.Context, set *domain.SummarySet) error {
	path := filepath.Join(e.outDir, FileDataJS)

	top := set.Agencies
	if len(top) > e.topAgencies {
		top = top[:e.topAgencies]
	}

	data := dashboardData{
		Overall:         set.Overall,
		Agencies:        top,
		AllAgencies:     set.Agencies,
		States:          set.States,
		PayDistribution: collapsePayBands(set.PayBands),
		Education:       set.Education,
		Appointments:    set.Appointments,
		AgeBrackets:     set.AgeBrackets,
		Stem:            set.Stem,
		Supervisory:     set.Supervisory,
	}

	e.logger.InfoContext(ctx, "writing dashboard data bundle",
		slog.String("path", path),
		slog.Int("agencies", len(data.AllAgencies)),
		slog.Int("states", len(data.States)))

	if err := os.MkdirAll(e.outDir, 0755); err != nil {
		return errors.NewStorageError("failed to create directory for dashboard data", err)
	}

	var buf bytes.Buffer
	buf.WriteString("const DASHBOARD_DATA = ")
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode dashboard data: %w", err)
	}
	// Encode appends a newline; the statement terminator replaces it.
	buf.Truncate(buf.Len() - 1)
	buf.WriteString(";\n")

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.NewStorageError("failed to write dashboard data file", err)
	}

	return nil
}

// collapsePayBands folds the per-agency distribution down to one row per
// band, the shape the dashboard's distribution chart consumes. Band scale
// order is preserved from the input.
func collapsePayBands(rows []domain.PayDistribution) []domain.CategorySummary {
	totals := make(map[string]int64)
	var order []string
	for _, row := range rows {
		if _, seen := totals[row.PayBand]; !seen {
			order = append(order, row.PayBand)
		}
		totals[row.PayBand] += row.Employees
	}

	out := make([]domain.CategorySummary, 0, len(order))
	for _, band := range order {
		out = append(out, domain.CategorySummary{
			Category:  band,
			Employees: totals[band],
		})
	}
	return out
}
