package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chipphillips/federal-employment-analysis/internal/errors"
	"github.com/chipphillips/federal-employment-analysis/pkg/contracts/domain"
)

// Delimiter is the field separator of the published snapshot files.
const Delimiter = '|'

// requiredColumns must be present in the header for a file to be processable.
var requiredColumns = []string{
	domain.ColAgency,
	domain.ColCount,
	domain.ColBasicPay,
	domain.ColDutyState,
	domain.ColSnapshot,
}

// ColumnMap maps a column name to its position in the parsed rows.
type ColumnMap map[string]int

// Get returns the trimmed cell for the named column, or "" when the column
// is absent or the row is short.
func (m ColumnMap) Get(row []string, column string) string {
	idx, ok := m[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Snapshot holds one raw snapshot file split into header and data rows.
// Rows are untyped; Cleaner owns all coercion.
type Snapshot struct {
	Path    string
	Columns ColumnMap
	Rows    [][]string
}

// ParseFile reads a pipe-delimited workforce snapshot and splits it into a
// header column map and raw rows. Column positions are resolved by header
// name, so files with reordered columns parse identically.
func ParseFile(ctx context.Context, path string, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = Delimiter
	reader.LazyQuotes = true
	// Rows occasionally carry trailing empty fields; length is validated
	// per column lookup instead.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParseError(1, "", "failed to read header row", err)
	}
	if len(header) > 0 {
		// Exported snapshots sometimes carry a UTF-8 BOM.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns := make(ColumnMap, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewParseError(1, strings.Join(missing, ", "),
			"snapshot header missing required columns", nil)
	}

	logger.InfoContext(ctx, "parsing snapshot file",
		slog.String("path", path),
		slog.Int("columns", len(columns)))

	snapshot := &Snapshot{
		Path:    path,
		Columns: columns,
	}

	for line := 2; ; line++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A mangled row is data loss, not a fatal condition.
			logger.WarnContext(ctx, "skipping malformed row",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}

		snapshot.Rows = append(snapshot.Rows, row)
	}

	logger.InfoContext(ctx, "snapshot parsed",
		slog.String("path", path),
		slog.Int("rows", len(snapshot.Rows)))

	return snapshot, nil
}
