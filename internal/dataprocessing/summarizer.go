package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/chipphillips/federal-employment-analysis/pkg/contracts/domain"
)

// StemOccupationValue is the category value marking STEM job series.
const StemOccupationValue = "STEM OCCUPATIONS"

// SummarizerConfig holds configuration options for the Summarizer.
type SummarizerConfig struct {
	TopAgencies int // Size of the dashboard's top-agency slice
}

// DefaultSummarizerConfig returns the configuration used by the pipeline
// unless overridden.
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{TopAgencies: 50}
}

// Summarizer is the single source of truth for the group-by aggregation
// pass. Every summary table the exporters and the dashboard consume is
// produced here, fully sorted, so repeated runs over the same input yield
// identical output.
type Summarizer struct {
	logger      *slog.Logger
	topAgencies int
}

// NewSummarizer creates a summarizer with the given configuration.
func NewSummarizer(logger *slog.Logger, config SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TopAgencies <= 0 {
		config.TopAgencies = 50
	}
	return &Summarizer{
		logger:      logger,
		topAgencies: config.TopAgencies,
	}
}

// TopAgencies returns the configured dashboard top-agency slice size.
func (s *Summarizer) TopAgencies() int {
	return s.topAgencies
}

// groupAcc accumulates one group's aggregates. Employee counts are weighted
// by the cell count; pay, tenure, and grade statistics are cell-level over
// non-null values, so redacted pay never contributes to a numeric aggregate.
type groupAcc struct {
	employees int64
	redacted  int64
	pay       sample
	tenure    sample
	grade     sample
}

func (a *groupAcc) observe(rec *domain.EmploymentRecord) {
	a.employees += rec.Count
	if rec.Redacted {
		a.redacted++
	}
	if rec.PayValid {
		a.pay.add(rec.Pay)
	}
	if rec.ServiceYearsValid {
		a.tenure.add(rec.ServiceYears)
	}
	if rec.GradeValid {
		a.grade.add(rec.Grade)
	}
}

// Build computes every summary table from the cleaned records. The ten
// tables are independent, so they are computed concurrently.
func (s *Summarizer) Build(ctx context.Context, records []domain.EmploymentRecord) (*domain.SummarySet, error) {
	s.logger.InfoContext(ctx, "building summary tables",
		slog.Int("record_count", len(records)))

	set := &domain.SummarySet{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { set.Agencies = s.buildAgencies(records); return ctx.Err() })
	g.Go(func() error { set.States = s.buildStates(records); return ctx.Err() })
	g.Go(func() error { set.Occupations = s.buildOccupations(records); return ctx.Err() })
	g.Go(func() error { set.Demographics = s.buildDemographics(records); return ctx.Err() })
	g.Go(func() error { set.PayBands = s.buildPayDistribution(records); return ctx.Err() })
	g.Go(func() error { set.Appointments = s.buildAppointments(records); return ctx.Err() })
	g.Go(func() error {
		set.Education = s.buildCategory(records, func(r *domain.EmploymentRecord) string { return r.EducationLevel })
		sort.SliceStable(set.Education, func(i, j int) bool {
			return set.Education[i].AvgPay > set.Education[j].AvgPay
		})
		return ctx.Err()
	})
	g.Go(func() error {
		set.AgeBrackets = s.buildCategory(records, func(r *domain.EmploymentRecord) string { return r.AgeBracket })
		sort.SliceStable(set.AgeBrackets, func(i, j int) bool {
			return orderIndex(domain.AgeBrackets, set.AgeBrackets[i].Category) <
				orderIndex(domain.AgeBrackets, set.AgeBrackets[j].Category)
		})
		return ctx.Err()
	})
	g.Go(func() error {
		set.Stem = s.buildCategory(records, func(r *domain.EmploymentRecord) string { return r.StemOccupation })
		return ctx.Err()
	})
	g.Go(func() error {
		set.Supervisory = s.buildCategory(records, func(r *domain.EmploymentRecord) string { return r.SupervisoryStatus })
		sort.SliceStable(set.Supervisory, func(i, j int) bool {
			if set.Supervisory[i].Employees != set.Supervisory[j].Employees {
				return set.Supervisory[i].Employees > set.Supervisory[j].Employees
			}
			return set.Supervisory[i].Category < set.Supervisory[j].Category
		})
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	set.Overall = s.buildOverall(records, set)

	s.logger.InfoContext(ctx, "summary tables built",
		slog.Int("agencies", len(set.Agencies)),
		slog.Int("states", len(set.States)),
		slog.Int("occupations", len(set.Occupations)),
		slog.Int64("total_employees", set.Overall.TotalEmployees))

	return set, nil
}

func (s *Summarizer) buildAgencies(records []domain.EmploymentRecord) []domain.AgencySummary {
	type key struct{ agency, code string }
	groups := make(map[key]*groupAcc)

	for i := range records {
		k := key{records[i].Agency, records[i].AgencyCode}
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{}
			groups[k] = acc
		}
		acc.observe(&records[i])
	}

	out := make([]domain.AgencySummary, 0, len(groups))
	for k, acc := range groups {
		if acc.employees == 0 {
			continue
		}
		out = append(out, domain.AgencySummary{
			Agency:        k.agency,
			AgencyCode:    k.code,
			Employees:     acc.employees,
			AvgPay:        round2(acc.pay.mean()),
			MedianPay:     round2(acc.pay.median()),
			StdPay:        round2(acc.pay.stddev()),
			AvgTenure:     round2(acc.tenure.mean()),
			MedianTenure:  round2(acc.tenure.median()),
			AvgGrade:      round2(acc.grade.mean()),
			RedactedCells: acc.redacted,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Employees != out[j].Employees {
			return out[i].Employees > out[j].Employees
		}
		return out[i].Agency < out[j].Agency
	})
	return out
}

func (s *Summarizer) buildStates(records []domain.EmploymentRecord) []domain.StateSummary {
	type key struct{ state, abbrev string }
	groups := make(map[key]*groupAcc)

	for i := range records {
		// The REDACTED duty station row is a privacy bucket, not a state.
		if strings.EqualFold(records[i].DutyState, domain.RedactedSentinel) {
			continue
		}
		k := key{records[i].DutyState, records[i].DutyStateAbbrev}
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{}
			groups[k] = acc
		}
		acc.observe(&records[i])
	}

	out := make([]domain.StateSummary, 0, len(groups))
	for k, acc := range groups {
		if acc.employees == 0 {
			continue
		}
		out = append(out, domain.StateSummary{
			State:       k.state,
			StateAbbrev: k.abbrev,
			Employees:   acc.employees,
			AvgPay:      round2(acc.pay.mean()),
			MedianPay:   round2(acc.pay.median()),
			AvgTenure:   round2(acc.tenure.mean()),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Employees != out[j].Employees {
			return out[i].Employees > out[j].Employees
		}
		return out[i].State < out[j].State
	})
	return out
}

func (s *Summarizer) buildOccupations(records []domain.EmploymentRecord) []domain.OccupationSummary {
	type key struct{ group, series, stem string }
	groups := make(map[key]*groupAcc)

	for i := range records {
		k := key{records[i].OccupationalGroup, records[i].OccupationalSeries, records[i].StemOccupation}
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{}
			groups[k] = acc
		}
		acc.observe(&records[i])
	}

	out := make([]domain.OccupationSummary, 0, len(groups))
	for k, acc := range groups {
		if acc.employees == 0 {
			continue
		}
		out = append(out, domain.OccupationSummary{
			OccupationalGroup:  k.group,
			OccupationalSeries: k.series,
			StemOccupation:     k.stem,
			Employees:          acc.employees,
			AvgPay:             round2(acc.pay.mean()),
			MedianPay:          round2(acc.pay.median()),
			AvgTenure:          round2(acc.tenure.mean()),
			AvgGrade:           round2(acc.grade.mean()),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].OccupationalGroup != out[j].OccupationalGroup {
			return out[i].OccupationalGroup < out[j].OccupationalGroup
		}
		if out[i].OccupationalSeries != out[j].OccupationalSeries {
			return out[i].OccupationalSeries < out[j].OccupationalSeries
		}
		return out[i].StemOccupation < out[j].StemOccupation
	})
	return out
}

func (s *Summarizer) buildDemographics(records []domain.EmploymentRecord) []domain.DemographicsSummary {
	type key struct{ age, edu, tenure string }
	groups := make(map[key]*groupAcc)

	for i := range records {
		k := key{records[i].AgeBracket, records[i].EducationLevel, records[i].TenureCategory}
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{}
			groups[k] = acc
		}
		acc.observe(&records[i])
	}

	out := make([]domain.DemographicsSummary, 0, len(groups))
	for k, acc := range groups {
		if acc.employees == 0 {
			continue
		}
		out = append(out, domain.DemographicsSummary{
			AgeBracket:     k.age,
			EducationLevel: k.edu,
			TenureCategory: k.tenure,
			Employees:      acc.employees,
			AvgPay:         round2(acc.pay.mean()),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		ai := orderIndex(domain.AgeBrackets, out[i].AgeBracket)
		aj := orderIndex(domain.AgeBrackets, out[j].AgeBracket)
		if ai != aj {
			return ai < aj
		}
		if out[i].EducationLevel != out[j].EducationLevel {
			return out[i].EducationLevel < out[j].EducationLevel
		}
		return orderIndex(domain.TenureCategories, out[i].TenureCategory) <
			orderIndex(domain.TenureCategories, out[j].TenureCategory)
	})
	return out
}

func (s *Summarizer) buildPayDistribution(records []domain.EmploymentRecord) []domain.PayDistribution {
	type key struct{ band, agency string }
	groups := make(map[key]int64)

	for i := range records {
		k := key{records[i].PayBand, records[i].Agency}
		groups[k] += records[i].Count
	}

	out := make([]domain.PayDistribution, 0, len(groups))
	for k, employees := range groups {
		if employees == 0 {
			continue
		}
		out = append(out, domain.PayDistribution{
			PayBand:   k.band,
			Agency:    k.agency,
			Employees: employees,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		bi := orderIndex(domain.PayBands, out[i].PayBand)
		bj := orderIndex(domain.PayBands, out[j].PayBand)
		if bi != bj {
			return bi < bj
		}
		return out[i].Agency < out[j].Agency
	})
	return out
}

func (s *Summarizer) buildAppointments(records []domain.EmploymentRecord) []domain.AppointmentSummary {
	type key struct{ appointment, agency string }
	groups := make(map[key]*groupAcc)

	for i := range records {
		k := key{records[i].AppointmentType, records[i].Agency}
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{}
			groups[k] = acc
		}
		acc.observe(&records[i])
	}

	out := make([]domain.AppointmentSummary, 0, len(groups))
	for k, acc := range groups {
		if acc.employees == 0 {
			continue
		}
		out = append(out, domain.AppointmentSummary{
			AppointmentType: k.appointment,
			Agency:          k.agency,
			Employees:       acc.employees,
			AvgPay:          round2(acc.pay.mean()),
			AvgTenure:       round2(acc.tenure.mean()),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Employees != out[j].Employees {
			return out[i].Employees > out[j].Employees
		}
		if out[i].AppointmentType != out[j].AppointmentType {
			return out[i].AppointmentType < out[j].AppointmentType
		}
		return out[i].Agency < out[j].Agency
	})
	return out
}

// buildCategory aggregates a single categorical dimension. The caller owns
// any ordering beyond the default category sort.
func (s *Summarizer) buildCategory(records []domain.EmploymentRecord, dim func(*domain.EmploymentRecord) string) []domain.CategorySummary {
	groups := make(map[string]*groupAcc)

	for i := range records {
		k := dim(&records[i])
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{}
			groups[k] = acc
		}
		acc.observe(&records[i])
	}

	out := make([]domain.CategorySummary, 0, len(groups))
	for k, acc := range groups {
		if acc.employees == 0 {
			continue
		}
		out = append(out, domain.CategorySummary{
			Category:  k,
			Employees: acc.employees,
			AvgPay:    round2(acc.pay.mean()),
			AvgTenure: round2(acc.tenure.mean()),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func (s *Summarizer) buildOverall(records []domain.EmploymentRecord, set *domain.SummarySet) domain.OverallStats {
	var total groupAcc
	var stemEmployees int64
	snapshot := 0

	for i := range records {
		total.observe(&records[i])
		if records[i].StemOccupation == StemOccupationValue {
			stemEmployees += records[i].Count
		}
		if snapshot == 0 && records[i].Snapshot != 0 {
			snapshot = records[i].Snapshot
		}
	}

	// Distinct agency names; an agency listed under several codes counts once.
	agencyNames := make(map[string]struct{}, len(set.Agencies))
	for _, a := range set.Agencies {
		agencyNames[a.Agency] = struct{}{}
	}

	stats := domain.OverallStats{
		TotalEmployees: total.employees,
		TotalAgencies:  len(agencyNames),
		TotalStates:    len(set.States),
		AvgSalary:      round2(total.pay.mean()),
		MedianSalary:   round2(total.pay.median()),
		AvgTenure:      round2(total.tenure.mean()),
		Snapshot:       snapshot,
	}

	if len(records) > 0 {
		stats.PctRedacted = round2(float64(total.redacted) / float64(len(records)) * 100)
	}
	if total.employees > 0 {
		stats.PctStem = round2(float64(stemEmployees) / float64(total.employees) * 100)
	}

	return stats
}

// orderIndex returns the position of value in order, or len(order) for
// values outside the known set so they sort last but deterministically.
func orderIndex(order []string, value string) int {
	for i, v := range order {
		if v == value {
			return i
		}
	}
	return len(order)
}
