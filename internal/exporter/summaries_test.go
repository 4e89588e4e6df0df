package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipphillips/federal-employment-analysis/pkg/contracts/domain"
)

func testSummarySet() *domain.SummarySet {
	return &domain.SummarySet{
		Agencies: []domain.AgencySummary{
			{Agency: "TREASURY", AgencyCode: "TR", Employees: 154, AvgPay: 90000,
				MedianPay: 90000, StdPay: 20000, AvgTenure: 8.5, MedianTenure: 8.5,
				AvgGrade: 11.4, RedactedCells: 0},
			{Agency: "NASA", AgencyCode: "NN", Employees: 25, AvgPay: 120000,
				MedianPay: 120000, AvgTenure: 6, MedianTenure: 6, AvgGrade: 12.2},
		},
		States: []domain.StateSummary{
			{State: "MARYLAND", StateAbbrev: "MD", Employees: 154, AvgPay: 90000,
				MedianPay: 90000, AvgTenure: 8.5},
		},
		Occupations: []domain.OccupationSummary{
			{OccupationalGroup: "PROFESSIONAL", OccupationalSeries: "ENGINEERING",
				StemOccupation: "STEM OCCUPATIONS", Employees: 25, AvgPay: 120000,
				MedianPay: 120000, AvgTenure: 6, AvgGrade: 12.2},
		},
		Demographics: []domain.DemographicsSummary{
			{AgeBracket: "35-39", EducationLevel: "BACHELORS",
				TenureCategory: "5-10 years", Employees: 179, AvgPay: 95000},
		},
		PayBands: []domain.PayDistribution{
			{PayBand: "$75K-$100K", Agency: "TREASURY", Employees: 154},
			{PayBand: "$100K-$125K", Agency: "NASA", Employees: 25},
		},
		Appointments: []domain.AppointmentSummary{
			{AppointmentType: "COMPETITIVE SERVICE", Agency: "TREASURY",
				Employees: 154, AvgPay: 90000, AvgTenure: 8.5},
		},
		Education:   []domain.CategorySummary{{Category: "BACHELORS", Employees: 179, AvgPay: 95000, AvgTenure: 8}},
		AgeBrackets: []domain.CategorySummary{{Category: "35-39", Employees: 179, AvgPay: 95000, AvgTenure: 8}},
		Stem:        []domain.CategorySummary{{Category: "STEM OCCUPATIONS", Employees: 25, AvgPay: 120000, AvgTenure: 6}},
		Supervisory: []domain.CategorySummary{{Category: "NON-SUPERVISOR", Employees: 179, AvgPay: 95000, AvgTenure: 8}},
		Overall: domain.OverallStats{
			TotalEmployees: 179, TotalAgencies: 2, TotalStates: 1,
			AvgSalary: 95000, MedianSalary: 95000, AvgTenure: 8,
			PctRedacted: 0, PctStem: 13.97, Snapshot: 202503,
		},
	}
}

func TestSummaryExporterWriteAll(t *testing.T) {
	dir := t.TempDir()
	exp := NewSummaryExporter(dir, nil)

	require.NoError(t, exp.WriteAll(context.Background(), testSummarySet()))

	t.Run("every summary file is written", func(t *testing.T) {
		for _, fileName := range SummaryFiles {
			_, err := os.Stat(filepath.Join(dir, fileName))
			assert.NoError(t, err, fileName)
		}
	})

	t.Run("files carry a UTF-8 BOM", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, FileAgencySummary))
		require.NoError(t, err)
		assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	})

	t.Run("agency summary content", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, FileAgencySummary))
		require.NoError(t, err)
		content := string(data[3:])

		assert.Contains(t, content,
			"agency,agency_code,employees,avg_pay,median_pay,std_pay,avg_tenure,median_tenure,avg_grade,redacted_cells\n")
		assert.Contains(t, content, "TREASURY,TR,154,90000.00,90000.00,20000.00,8.50,8.50,11.40,0\n")
	})

	t.Run("education and supervisory carry no tenure column", func(t *testing.T) {
		for _, fileName := range []string{FileEducationSummary, FileSupervisorySummary} {
			data, err := os.ReadFile(filepath.Join(dir, fileName))
			require.NoError(t, err)
			assert.NotContains(t, string(data), "avg_tenure", fileName)
		}

		data, err := os.ReadFile(filepath.Join(dir, FileEducationSummary))
		require.NoError(t, err)
		assert.Contains(t, string(data), "education_level,employees,avg_pay\n")
		assert.Contains(t, string(data), "BACHELORS,179,95000.00\n")
	})

	t.Run("age and stem keep the tenure column", func(t *testing.T) {
		for _, fileName := range []string{FileAgeSummary, FileStemSummary} {
			data, err := os.ReadFile(filepath.Join(dir, fileName))
			require.NoError(t, err)
			assert.Contains(t, string(data), ",employees,avg_pay,avg_tenure\n", fileName)
		}
	})

	t.Run("floats always carry two decimals", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, FileStateSummary))
		require.NoError(t, err)
		assert.Contains(t, string(data), "MARYLAND,MD,154,90000.00,90000.00,8.50")
	})
}

func TestSummaryExporterIdempotent(t *testing.T) {
	dir := t.TempDir()
	exp := NewSummaryExporter(dir, nil)
	set := testSummarySet()

	require.NoError(t, exp.WriteAll(context.Background(), set))

	first := map[string][]byte{}
	for _, fileName := range SummaryFiles {
		data, err := os.ReadFile(filepath.Join(dir, fileName))
		require.NoError(t, err)
		first[fileName] = data
	}

	require.NoError(t, exp.WriteAll(context.Background(), set))

	for _, fileName := range SummaryFiles {
		data, err := os.ReadFile(filepath.Join(dir, fileName))
		require.NoError(t, err)
		assert.Equal(t, first[fileName], data,
			"%s must be byte-identical across re-runs", fileName)
	}
}

func TestCSVWriterCreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewCSVWriter(dir, nil)

	err := w.WriteSimpleCSV("test.csv", []string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "test.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "a,b\n1,2\n")
}
