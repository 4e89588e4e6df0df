package exporter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	exp := NewExcelExporter(dir, nil)

	require.NoError(t, exp.WriteWorkbook(context.Background(), testSummarySet()))

	f, err := excelize.OpenFile(filepath.Join(dir, FileWorkbook))
	require.NoError(t, err)
	defer f.Close()

	t.Run("one sheet per summary table", func(t *testing.T) {
		sheets := f.GetSheetList()
		assert.Len(t, sheets, 10)
		assert.Contains(t, sheets, "Agencies")
		assert.Contains(t, sheets, "Pay Distribution")
		assert.NotContains(t, sheets, "Sheet1")
	})

	t.Run("header and data rows", func(t *testing.T) {
		rows, err := f.GetRows("Agencies")
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(rows), 3)

		assert.Equal(t, "agency", rows[0][0])
		assert.Equal(t, "TREASURY", rows[1][0])
	})

	t.Run("numeric cells round-trip as numbers", func(t *testing.T) {
		value, err := f.GetCellValue("Agencies", "C2")
		require.NoError(t, err)
		assert.Equal(t, "154", value)
	})
}

func TestTypedRow(t *testing.T) {
	out := *typedRow([]string{"TREASURY", "154", "90000.00"})
	assert.Equal(t, "TREASURY", out[0])
	assert.Equal(t, int64(154), out[1])
	assert.Equal(t, 90000.00, out[2])
}
