package domain

// AgencySummary is one row of the per-agency summary table.
type AgencySummary struct {
	Agency        string  `json:"agency" csv:"agency"`
	AgencyCode    string  `json:"agency_code" csv:"agency_code"`
	Employees     int64   `json:"employees" csv:"employees"`
	AvgPay        float64 `json:"avg_pay" csv:"avg_pay"`
	MedianPay     float64 `json:"median_pay" csv:"median_pay"`
	StdPay        float64 `json:"std_pay" csv:"std_pay"`
	AvgTenure     float64 `json:"avg_tenure" csv:"avg_tenure"`
	MedianTenure  float64 `json:"median_tenure" csv:"median_tenure"`
	AvgGrade      float64 `json:"avg_grade" csv:"avg_grade"`
	RedactedCells int64   `json:"redacted_cells" csv:"redacted_cells"`
}

// StateSummary is one row of the per-duty-station-state summary table.
type StateSummary struct {
	State       string  `json:"duty_station_state" csv:"duty_station_state"`
	StateAbbrev string  `json:"duty_station_state_abbreviation" csv:"duty_station_state_abbreviation"`
	Employees   int64   `json:"employees" csv:"employees"`
	AvgPay      float64 `json:"avg_pay" csv:"avg_pay"`
	MedianPay   float64 `json:"median_pay" csv:"median_pay"`
	AvgTenure   float64 `json:"avg_tenure" csv:"avg_tenure"`
}

// OccupationSummary is one row of the occupation summary table.
type OccupationSummary struct {
	OccupationalGroup  string  `json:"occupational_group" csv:"occupational_group"`
	OccupationalSeries string  `json:"occupational_series" csv:"occupational_series"`
	StemOccupation     string  `json:"stem_occupation" csv:"stem_occupation"`
	Employees          int64   `json:"employees" csv:"employees"`
	AvgPay             float64 `json:"avg_pay" csv:"avg_pay"`
	MedianPay          float64 `json:"median_pay" csv:"median_pay"`
	AvgTenure          float64 `json:"avg_tenure" csv:"avg_tenure"`
	AvgGrade           float64 `json:"avg_grade" csv:"avg_grade"`
}

// DemographicsSummary is one row of the demographics summary table.
type DemographicsSummary struct {
	AgeBracket     string  `json:"age_bracket" csv:"age_bracket"`
	EducationLevel string  `json:"education_level" csv:"education_level"`
	TenureCategory string  `json:"tenure_category" csv:"tenure_category"`
	Employees      int64   `json:"employees" csv:"employee_count"`
	AvgPay         float64 `json:"avg_pay" csv:"avg_pay"`
}

// PayDistribution is one row of the pay band distribution table.
type PayDistribution struct {
	PayBand   string `json:"pay_band" csv:"pay_band"`
	Agency    string `json:"agency" csv:"agency"`
	Employees int64  `json:"employees" csv:"employees"`
}

// AppointmentSummary is one row of the appointment type summary table.
type AppointmentSummary struct {
	AppointmentType string  `json:"appointment_type" csv:"appointment_type"`
	Agency          string  `json:"agency" csv:"agency"`
	Employees       int64   `json:"employees" csv:"employee_count"`
	AvgPay          float64 `json:"avg_pay" csv:"avg_pay"`
	AvgTenure       float64 `json:"avg_tenure" csv:"avg_tenure"`
}

// CategorySummary is a single-dimension summary row used for the education,
// age bracket, STEM, and supervisory status views.
type CategorySummary struct {
	Category  string  `json:"category" csv:"category"`
	Employees int64   `json:"employees" csv:"employees"`
	AvgPay    float64 `json:"avg_pay" csv:"avg_pay"`
	AvgTenure float64 `json:"avg_tenure" csv:"avg_tenure"`
}

// OverallStats holds the headline numbers for the whole snapshot.
type OverallStats struct {
	TotalEmployees int64   `json:"total_employees"`
	TotalAgencies  int     `json:"total_agencies"`
	TotalStates    int     `json:"total_states"`
	AvgSalary      float64 `json:"avg_salary"`
	MedianSalary   float64 `json:"median_salary"`
	AvgTenure      float64 `json:"avg_tenure"`
	PctRedacted    float64 `json:"pct_redacted"`
	PctStem        float64 `json:"pct_stem"`
	Snapshot       int     `json:"snapshot_yyyymm"`
}

// SummarySet bundles every table produced by one aggregation pass.
type SummarySet struct {
	Agencies     []AgencySummary       `json:"agencies"`
	States       []StateSummary        `json:"states"`
	Occupations  []OccupationSummary   `json:"occupations"`
	Demographics []DemographicsSummary `json:"demographics"`
	PayBands     []PayDistribution     `json:"pay_distribution"`
	Appointments []AppointmentSummary  `json:"appointments"`
	Education    []CategorySummary     `json:"education"`
	AgeBrackets  []CategorySummary     `json:"age_brackets"`
	Stem         []CategorySummary     `json:"stem"`
	Supervisory  []CategorySummary     `json:"supervisory"`
	Overall      OverallStats          `json:"overall"`
}
