package exporter

import (
	"context"
	"log/slog"

	"github.com/chipphillips/federal-employment-analysis/pkg/contracts/domain"
)

// Summary file names produced by one pipeline run.
const (
	FileAgencySummary       = "agency_summary.csv"
	FileStateSummary        = "state_summary.csv"
	FileOccupationSummary   = "occupation_summary.csv"
	FileDemographicsSummary = "demographics_summary.csv"
	FilePayDistribution     = "pay_distribution.csv"
	FileAppointmentSummary  = "appointment_summary.csv"
	FileEducationSummary    = "education_summary.csv"
	FileAgeSummary          = "age_summary.csv"
	FileStemSummary         = "stem_summary.csv"
	FileSupervisorySummary  = "supervisory_summary.csv"
	FileOverallStats        = "overall_stats.json"
	FileDataJS              = "data.js"
	FileWorkbook            = "workforce_summary.xlsx"
)

// SummaryFiles lists every CSV summary by file name. The HTTP layer uses
// this as its download allowlist.
var SummaryFiles = []string{
	FileAgencySummary,
	FileStateSummary,
	FileOccupationSummary,
	FileDemographicsSummary,
	FilePayDistribution,
	FileAppointmentSummary,
	FileEducationSummary,
	FileAgeSummary,
	FileStemSummary,
	FileSupervisorySummary,
}

// summaryTable is one CSV summary flattened to headers and rows.
type summaryTable struct {
	FileName string
	Sheet    string
	Headers  []string
	Rows     [][]string
}

// SummaryExporter writes the full summary set as one CSV per view.
type SummaryExporter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewSummaryExporter creates an exporter writing into outDir.
func NewSummaryExporter(outDir string, logger *slog.Logger) *SummaryExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryExporter{
		csv:    NewCSVWriter(outDir, logger),
		logger: logger,
	}
}

// WriteAll writes every CSV summary table.
func (e *SummaryExporter) WriteAll(ctx context.Context, set *domain.SummarySet) error {
	tables := buildTables(set)

	e.logger.InfoContext(ctx, "exporting summary tables",
		slog.Int("table_count", len(tables)))

	for _, table := range tables {
		if err := e.csv.WriteSimpleCSV(table.FileName, table.Headers, table.Rows); err != nil {
			return err
		}
	}

	return nil
}

// buildTables flattens the summary set into CSV-ready tables.
func buildTables(set *domain.SummarySet) []summaryTable {
	agencies := summaryTable{
		FileName: FileAgencySummary,
		Sheet:    "Agencies",
		Headers: []string{"agency", "agency_code", "employees", "avg_pay", "median_pay",
			"std_pay", "avg_tenure", "median_tenure", "avg_grade", "redacted_cells"},
	}
	for _, row := range set.Agencies {
		agencies.Rows = append(agencies.Rows, []string{
			row.Agency, row.AgencyCode, formatInt(row.Employees),
			formatFloat(row.AvgPay), formatFloat(row.MedianPay), formatFloat(row.StdPay),
			formatFloat(row.AvgTenure), formatFloat(row.MedianTenure),
			formatFloat(row.AvgGrade), formatInt(row.RedactedCells),
		})
	}

	states := summaryTable{
		FileName: FileStateSummary,
		Sheet:    "States",
		Headers: []string{"duty_station_state", "duty_station_state_abbreviation",
			"employees", "avg_pay", "median_pay", "avg_tenure"},
	}
	for _, row := range set.States {
		states.Rows = append(states.Rows, []string{
			row.State, row.StateAbbrev, formatInt(row.Employees),
			formatFloat(row.AvgPay), formatFloat(row.MedianPay), formatFloat(row.AvgTenure),
		})
	}

	occupations := summaryTable{
		FileName: FileOccupationSummary,
		Sheet:    "Occupations",
		Headers: []string{"occupational_group", "occupational_series", "stem_occupation",
			"employees", "avg_pay", "median_pay", "avg_tenure", "avg_grade"},
	}
	for _, row := range set.Occupations {
		occupations.Rows = append(occupations.Rows, []string{
			row.OccupationalGroup, row.OccupationalSeries, row.StemOccupation,
			formatInt(row.Employees), formatFloat(row.AvgPay), formatFloat(row.MedianPay),
			formatFloat(row.AvgTenure), formatFloat(row.AvgGrade),
		})
	}

	demographics := summaryTable{
		FileName: FileDemographicsSummary,
		Sheet:    "Demographics",
		Headers: []string{"age_bracket", "education_level", "tenure_category",
			"employee_count", "avg_pay"},
	}
	for _, row := range set.Demographics {
		demographics.Rows = append(demographics.Rows, []string{
			row.AgeBracket, row.EducationLevel, row.TenureCategory,
			formatInt(row.Employees), formatFloat(row.AvgPay),
		})
	}

	payBands := summaryTable{
		FileName: FilePayDistribution,
		Sheet:    "Pay Distribution",
		Headers:  []string{"pay_band", "agency", "employees"},
	}
	for _, row := range set.PayBands {
		payBands.Rows = append(payBands.Rows, []string{
			row.PayBand, row.Agency, formatInt(row.Employees),
		})
	}

	appointments := summaryTable{
		FileName: FileAppointmentSummary,
		Sheet:    "Appointments",
		Headers:  []string{"appointment_type", "agency", "employee_count", "avg_pay", "avg_tenure"},
	}
	for _, row := range set.Appointments {
		appointments.Rows = append(appointments.Rows, []string{
			row.AppointmentType, row.Agency, formatInt(row.Employees),
			formatFloat(row.AvgPay), formatFloat(row.AvgTenure),
		})
	}

	// Education and supervisory views report employees and pay only.
	education := categoryTable(FileEducationSummary, "Education", "education_level", set.Education, false)
	ages := categoryTable(FileAgeSummary, "Age Brackets", "age_bracket", set.AgeBrackets, true)
	stem := categoryTable(FileStemSummary, "STEM", "stem_occupation", set.Stem, true)
	supervisory := categoryTable(FileSupervisorySummary, "Supervisory", "supervisory_status", set.Supervisory, false)

	return []summaryTable{
		agencies, states, occupations, demographics, payBands,
		appointments, education, ages, stem, supervisory,
	}
}

func categoryTable(fileName, sheet, keyHeader string, rows []domain.CategorySummary, withTenure bool) summaryTable {
	table := summaryTable{
		FileName: fileName,
		Sheet:    sheet,
		Headers:  []string{keyHeader, "employees", "avg_pay"},
	}
	if withTenure {
		table.Headers = append(table.Headers, "avg_tenure")
	}
	for _, row := range rows {
		cells := []string{row.Category, formatInt(row.Employees), formatFloat(row.AvgPay)}
		if withTenure {
			cells = append(cells, formatFloat(row.AvgTenure))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}
