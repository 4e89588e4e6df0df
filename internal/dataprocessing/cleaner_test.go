package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipphillips/federal-employment-analysis/pkg/contracts/domain"
)

func testSnapshot(rows [][]string) *Snapshot {
	return &Snapshot{
		Path: "test.csv",
		Columns: ColumnMap{
			domain.ColAgency:       0,
			domain.ColCount:        1,
			domain.ColBasicPay:     2,
			domain.ColGrade:        3,
			domain.ColServiceYears: 4,
			domain.ColDutyState:    5,
			domain.ColSnapshot:     6,
		},
		Rows: rows,
	}
}

func TestCleanerClean(t *testing.T) {
	cleaner := NewCleaner(nil)

	t.Run("typed fields and report", func(t *testing.T) {
		snapshot := testSnapshot([][]string{
			{"TREASURY", "12", "98000.50", "12", "8.2", "MARYLAND", "202503"},
			{"JUSTICE", "7", "REDACTED", "", "0.5", "VIRGINIA", "202503"},
			{"GSA", "abc", "55000", "9", "3", "TEXAS", "202503"},
		})

		records, report, err := cleaner.Clean(context.Background(), snapshot)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, 3, report.InputRows)
		assert.Equal(t, 2, report.CleanRows)
		assert.Equal(t, 1, report.DroppedRows, "unparseable count drops the row")
		assert.Equal(t, 1, report.RedactedPay)
		assert.Equal(t, int64(19), report.TotalWeight)

		first := records[0]
		assert.Equal(t, "TREASURY", first.Agency)
		assert.Equal(t, int64(12), first.Count)
		assert.True(t, first.PayValid)
		assert.InDelta(t, 98000.50, first.Pay, 0.001)
		assert.False(t, first.Redacted)
		assert.Equal(t, 202503, first.Snapshot)

		second := records[1]
		assert.False(t, second.PayValid)
		assert.True(t, second.Redacted)
		assert.False(t, second.GradeValid)
	})

	t.Run("negative count drops the row", func(t *testing.T) {
		snapshot := testSnapshot([][]string{
			{"GSA", "-1", "55000", "9", "3", "TEXAS", "202503"},
		})

		records, report, err := cleaner.Clean(context.Background(), snapshot)
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 1, report.DroppedRows)
	})

	t.Run("thousands separators null out", func(t *testing.T) {
		snapshot := testSnapshot([][]string{
			{"GSA", "1", "1,234,567", "9", "3", "TEXAS", "202503"},
		})

		records, report, err := cleaner.Clean(context.Background(), snapshot)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.False(t, records[0].PayValid)
		assert.False(t, records[0].Redacted)
		assert.Equal(t, "Redacted", records[0].PayBand)
		assert.Equal(t, 1, report.NullPay)
	})
}

func TestParsePay(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantPay      float64
		wantValid    bool
		wantRedacted bool
	}{
		{"numeric", "98000", 98000, true, false},
		{"redacted sentinel", "REDACTED", 0, false, true},
		{"redacted lowercase", "redacted", 0, false, true},
		{"empty", "", 0, false, false},
		{"garbage", "N/A", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pay, valid, redacted := parsePay(tt.raw)
			assert.Equal(t, tt.wantValid, valid)
			assert.Equal(t, tt.wantRedacted, redacted)
			if tt.wantValid {
				assert.InDelta(t, tt.wantPay, pay, 0.001)
			}
		})
	}
}

func TestCategorizeTenure(t *testing.T) {
	tests := []struct {
		years float64
		valid bool
		want  string
	}{
		{0, false, "Unknown"},
		{0.5, true, "< 1 year"},
		{1, true, "1-5 years"},
		{4.9, true, "1-5 years"},
		{5, true, "5-10 years"},
		{10, true, "10-20 years"},
		{20, true, "20-30 years"},
		{30, true, "30+ years"},
		{42, true, "30+ years"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizeTenure(tt.years, tt.valid),
			"years=%v valid=%v", tt.years, tt.valid)
	}
}

func TestCategorizePay(t *testing.T) {
	tests := []struct {
		pay   float64
		valid bool
		want  string
	}{
		{0, false, "Redacted"},
		{30000, true, "Under $50K"},
		{50000, true, "$50K-$75K"},
		{74999, true, "$50K-$75K"},
		{99000, true, "$75K-$100K"},
		{110000, true, "$100K-$125K"},
		{130000, true, "$125K-$150K"},
		{175000, true, "$150K-$200K"},
		{200000, true, "$200K+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizePay(tt.pay, tt.valid),
			"pay=%v valid=%v", tt.pay, tt.valid)
	}
}

func TestPayBandCoverage(t *testing.T) {
	// Every band the cleaner can assign appears in the display order list.
	for _, band := range []string{
		categorizePay(0, false),
		categorizePay(10000, true),
		categorizePay(60000, true),
		categorizePay(80000, true),
		categorizePay(110000, true),
		categorizePay(130000, true),
		categorizePay(160000, true),
		categorizePay(250000, true),
	} {
		assert.Contains(t, domain.PayBands, band)
	}
}
