package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/chipphillips/federal-employment-analysis/pkg/contracts/domain"
)

// ExcelExporter writes the whole summary set into a single workbook, one
// sheet per table, for analysts who want the data in Excel directly.
type ExcelExporter struct {
	outDir string
	logger *slog.Logger
}

// NewExcelExporter creates an exporter writing into outDir.
func NewExcelExporter(outDir string, logger *slog.Logger) *ExcelExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelExporter{outDir: outDir, logger: logger}
}

// WriteWorkbook writes workforce_summary.xlsx with one sheet per summary.
func (e *ExcelExporter) WriteWorkbook(ctx context.Context, set *domain.SummarySet) error {
	path := filepath.Join(e.outDir, FileWorkbook)
	tables := buildTables(set)

	e.logger.InfoContext(ctx, "writing summary workbook",
		slog.String("path", path),
		slog.Int("sheet_count", len(tables)))

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		if i == 0 {
			// Reuse the default sheet rather than leaving it empty.
			if err := f.SetSheetName("Sheet1", table.Sheet); err != nil {
				return fmt.Errorf("failed to rename default sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(table.Sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", table.Sheet, err)
			}
		}

		if err := writeSheet(f, table); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func writeSheet(f *excelize.File, table summaryTable) error {
	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(table.Sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row on sheet %s: %w", table.Sheet, err)
	}

	for r, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(table.Sheet, cell, typedRow(row)); err != nil {
			return fmt.Errorf("failed to write row %d on sheet %s: %w", r+2, table.Sheet, err)
		}
	}

	return nil
}

// typedRow converts CSV string cells back to numbers where they parse, so
// the workbook carries numeric cells instead of text-that-looks-numeric.
func typedRow(row []string) *[]interface{} {
	out := make([]interface{}, len(row))
	for i, cell := range row {
		if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
			out[i] = n
			continue
		}
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			out[i] = v
			continue
		}
		out[i] = cell
	}
	return &out
}
