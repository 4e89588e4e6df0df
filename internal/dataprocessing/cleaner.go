package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chipphillips/federal-employment-analysis/pkg/contracts/domain"
)

// CleanReport summarizes one cleaning pass over a snapshot.
type CleanReport struct {
	InputRows    int   `json:"input_rows"`
	CleanRows    int   `json:"clean_rows"`
	DroppedRows  int   `json:"dropped_rows"`
	RedactedPay  int   `json:"redacted_pay"`
	NullPay      int   `json:"null_pay"`
	NullGrade    int   `json:"null_grade"`
	NullTenure   int   `json:"null_tenure"`
	TotalWeight  int64 `json:"total_weight"`
}

// Cleaner converts raw snapshot rows into typed employment records.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner with the given logger.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean transforms every row of the snapshot into an EmploymentRecord.
// Malformed numeric fields null out; a malformed count weight drops the row
// entirely since every aggregate depends on it. Dropping is never fatal.
func (c *Cleaner) Clean(ctx context.Context, snapshot *Snapshot) ([]domain.EmploymentRecord, CleanReport, error) {
	report := CleanReport{InputRows: len(snapshot.Rows)}
	records := make([]domain.EmploymentRecord, 0, len(snapshot.Rows))

	cols := snapshot.Columns
	for i, row := range snapshot.Rows {
		count, err := strconv.ParseInt(cols.Get(row, domain.ColCount), 10, 64)
		if err != nil || count < 0 {
			report.DroppedRows++
			c.logger.DebugContext(ctx, "dropping row with unusable count",
				slog.Int("row", i+2),
				slog.String("count", cols.Get(row, domain.ColCount)))
			continue
		}

		rec := domain.EmploymentRecord{
			AgeBracket:             cols.Get(row, domain.ColAgeBracket),
			Agency:                 cols.Get(row, domain.ColAgency),
			AgencyCode:             cols.Get(row, domain.ColAgencyCode),
			AgencySubelement:       cols.Get(row, domain.ColAgencySubelement),
			AgencySubelementCode:   cols.Get(row, domain.ColAgencySubelementCode),
			AppointmentType:        cols.Get(row, domain.ColAppointmentType),
			AppointmentTypeCode:    cols.Get(row, domain.ColAppointmentTypeCode),
			Count:                  count,
			DutyCountry:            cols.Get(row, domain.ColDutyCountry),
			DutyCountryCode:        cols.Get(row, domain.ColDutyCountryCode),
			DutyState:              cols.Get(row, domain.ColDutyState),
			DutyStateAbbrev:        cols.Get(row, domain.ColDutyStateAbbrev),
			DutyStateCode:          cols.Get(row, domain.ColDutyStateCode),
			EducationLevel:         cols.Get(row, domain.ColEducationLevel),
			EducationLevelCode:     cols.Get(row, domain.ColEducationLevelCode),
			OccupationalGroup:      cols.Get(row, domain.ColOccupationalGroup),
			OccupationalGroupCode:  cols.Get(row, domain.ColOccupationalGroupCode),
			OccupationalSeries:     cols.Get(row, domain.ColOccupationalSeries),
			OccupationalSeriesCode: cols.Get(row, domain.ColOccupationalSeriesCode),
			PayPlan:                cols.Get(row, domain.ColPayPlan),
			PayPlanCode:            cols.Get(row, domain.ColPayPlanCode),
			StemOccupation:         cols.Get(row, domain.ColStemOccupation),
			StemOccupationType:     cols.Get(row, domain.ColStemOccupationType),
			SupervisoryStatus:      cols.Get(row, domain.ColSupervisoryStatus),
			SupervisoryStatusCode:  cols.Get(row, domain.ColSupervisoryStatusCode),
			WorkSchedule:           cols.Get(row, domain.ColWorkSchedule),
			WorkScheduleCode:       cols.Get(row, domain.ColWorkScheduleCode),
			GradeRaw:               cols.Get(row, domain.ColGrade),
		}

		if snap, err := strconv.Atoi(cols.Get(row, domain.ColSnapshot)); err == nil {
			rec.Snapshot = snap
		}

		rec.Pay, rec.PayValid, rec.Redacted = parsePay(cols.Get(row, domain.ColBasicPay))
		if rec.Redacted {
			report.RedactedPay++
		}
		if !rec.PayValid {
			report.NullPay++
		}

		rec.Grade, rec.GradeValid = parseNumeric(rec.GradeRaw)
		if !rec.GradeValid {
			report.NullGrade++
		}

		rec.ServiceYears, rec.ServiceYearsValid = parseNumeric(cols.Get(row, domain.ColServiceYears))
		if !rec.ServiceYearsValid {
			report.NullTenure++
		}

		rec.TenureCategory = categorizeTenure(rec.ServiceYears, rec.ServiceYearsValid)
		rec.PayBand = categorizePay(rec.Pay, rec.PayValid)

		report.TotalWeight += count
		records = append(records, rec)
	}

	report.CleanRows = len(records)

	c.logger.InfoContext(ctx, "snapshot cleaned",
		slog.Int("input_rows", report.InputRows),
		slog.Int("clean_rows", report.CleanRows),
		slog.Int("dropped_rows", report.DroppedRows),
		slog.Int("redacted_pay", report.RedactedPay),
		slog.Int64("total_weight", report.TotalWeight))

	return records, report, nil
}

// parsePay coerces the pay column to a number. The REDACTED sentinel and any
// other non-numeric value both leave the pay unset; only the sentinel is
// flagged as redacted.
func parsePay(raw string) (pay float64, valid, redacted bool) {
	if strings.EqualFold(raw, domain.RedactedSentinel) {
		return 0, false, true
	}
	pay, valid = parseNumeric(raw)
	return pay, valid, false
}

// parseNumeric coerces a cell to float64 with error-to-null semantics.
// Anything that is not a plain number, thousands separators included,
// nulls out.
func parseNumeric(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// categorizeTenure buckets length of service into the dashboard tenure bands.
func categorizeTenure(years float64, valid bool) string {
	switch {
	case !valid:
		return "Unknown"
	case years < 1:
		return "< 1 year"
	case years < 5:
		return "1-5 years"
	case years < 10:
		return "5-10 years"
	case years < 20:
		return "10-20 years"
	case years < 30:
		return "20-30 years"
	default:
		return "30+ years"
	}
}

// categorizePay buckets annualized pay into the dashboard pay bands.
// Missing pay of any cause lands in the Redacted band.
func categorizePay(pay float64, valid bool) string {
	switch {
	case !valid:
		return "Redacted"
	case pay < 50000:
		return "Under $50K"
	case pay < 75000:
		return "$50K-$75K"
	case pay < 100000:
		return "$75K-$100K"
	case pay < 125000:
		return "$100K-$125K"
	case pay < 150000:
		return "$125K-$150K"
	case pay < 200000:
		return "$150K-$200K"
	default:
		return "$200K+"
	}
}
