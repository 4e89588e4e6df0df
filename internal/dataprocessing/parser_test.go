package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshotFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFile(t *testing.T) {
	t.Run("parses header and rows", func(t *testing.T) {
		path := writeSnapshotFile(t,
			"agency|count|annualized_adjusted_basic_pay|duty_station_state|snapshot_yyyymm\n"+
				"DEPARTMENT OF THE TREASURY|12|98000|MARYLAND|202503\n"+
				"DEPARTMENT OF JUSTICE|7|REDACTED|VIRGINIA|202503\n")

		snapshot, err := ParseFile(context.Background(), path, nil)
		require.NoError(t, err)

		assert.Len(t, snapshot.Rows, 2)
		assert.Equal(t, "DEPARTMENT OF THE TREASURY", snapshot.Columns.Get(snapshot.Rows[0], "agency"))
		assert.Equal(t, "REDACTED", snapshot.Columns.Get(snapshot.Rows[1], "annualized_adjusted_basic_pay"))
	})

	t.Run("header names are case insensitive", func(t *testing.T) {
		path := writeSnapshotFile(t,
			"AGENCY|Count|Annualized_Adjusted_Basic_Pay|duty_station_state|SNAPSHOT_YYYYMM\n"+
				"GSA|3|55000|TEXAS|202503\n")

		snapshot, err := ParseFile(context.Background(), path, nil)
		require.NoError(t, err)
		assert.Equal(t, "GSA", snapshot.Columns.Get(snapshot.Rows[0], "agency"))
	})

	t.Run("column order does not matter", func(t *testing.T) {
		path := writeSnapshotFile(t,
			"snapshot_yyyymm|duty_station_state|annualized_adjusted_basic_pay|count|agency\n"+
				"202503|OHIO|61000|5|NASA\n")

		snapshot, err := ParseFile(context.Background(), path, nil)
		require.NoError(t, err)
		assert.Equal(t, "NASA", snapshot.Columns.Get(snapshot.Rows[0], "agency"))
		assert.Equal(t, "5", snapshot.Columns.Get(snapshot.Rows[0], "count"))
	})

	t.Run("BOM-prefixed header parses", func(t *testing.T) {
		path := writeSnapshotFile(t,
			"\ufeffagency|count|annualized_adjusted_basic_pay|duty_station_state|snapshot_yyyymm\n"+
				"GSA|3|55000|TEXAS|202503\n")

		snapshot, err := ParseFile(context.Background(), path, nil)
		require.NoError(t, err)
		assert.Equal(t, "GSA", snapshot.Columns.Get(snapshot.Rows[0], "agency"))
	})

	t.Run("missing required columns fail", func(t *testing.T) {
		path := writeSnapshotFile(t,
			"agency|count\nGSA|3\n")

		_, err := ParseFile(context.Background(), path, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required columns")
		assert.Contains(t, err.Error(), "annualized_adjusted_basic_pay")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := ParseFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), nil)
		require.Error(t, err)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		path := writeSnapshotFile(t,
			"agency|count|annualized_adjusted_basic_pay|duty_station_state|snapshot_yyyymm\n"+
				"GSA|3|55000|TEXAS|202503\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ParseFile(ctx, path, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestColumnMapGet(t *testing.T) {
	cols := ColumnMap{"agency": 0, "count": 1, "grade": 5}

	row := []string{"  GSA  ", "3"}
	assert.Equal(t, "GSA", cols.Get(row, "agency"), "cells are trimmed")
	assert.Equal(t, "", cols.Get(row, "grade"), "short rows return empty")
	assert.Equal(t, "", cols.Get(row, "unknown"), "unknown columns return empty")
}
