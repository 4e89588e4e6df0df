package domain

// RedactedSentinel is the marker OPM substitutes for sensitive pay and
// location values in the published snapshot.
const RedactedSentinel = "REDACTED"

// Column names of the raw pipe-delimited snapshot file. The parser maps
// columns by header name, so file column order does not matter.
const (
	ColAgeBracket             = "age_bracket"
	ColAgency                 = "agency"
	ColAgencyCode             = "agency_code"
	ColAgencySubelement       = "agency_subelement"
	ColAgencySubelementCode   = "agency_subelement_code"
	ColBasicPay               = "annualized_adjusted_basic_pay"
	ColAppointmentType        = "appointment_type"
	ColAppointmentTypeCode    = "appointment_type_code"
	ColCount                  = "count"
	ColDutyCountry            = "duty_station_country"
	ColDutyCountryCode        = "duty_station_country_code"
	ColDutyState              = "duty_station_state"
	ColDutyStateAbbrev        = "duty_station_state_abbreviation"
	ColDutyStateCode          = "duty_station_state_code"
	ColEducationLevel         = "education_level"
	ColEducationLevelCode     = "education_level_code"
	ColGrade                  = "grade"
	ColServiceYears           = "length_of_service_years"
	ColOccupationalGroup      = "occupational_group"
	ColOccupationalGroupCode  = "occupational_group_code"
	ColOccupationalSeries     = "occupational_series"
	ColOccupationalSeriesCode = "occupational_series_code"
	ColPayPlan                = "pay_plan"
	ColPayPlanCode            = "pay_plan_code"
	ColSnapshot               = "snapshot_yyyymm"
	ColStemOccupation         = "stem_occupation"
	ColStemOccupationType     = "stem_occupation_type"
	ColSupervisoryStatus      = "supervisory_status"
	ColSupervisoryStatusCode  = "supervisory_status_code"
	ColWorkSchedule           = "work_schedule"
	ColWorkScheduleCode       = "work_schedule_code"
)

// EmploymentRecord is one cleaned cell of the workforce snapshot. Each row of
// the raw file describes a group of employees sharing the same attribute
// combination; Count carries the group size.
type EmploymentRecord struct {
	AgeBracket             string `json:"age_bracket"`
	Agency                 string `json:"agency"`
	AgencyCode             string `json:"agency_code"`
	AgencySubelement       string `json:"agency_subelement"`
	AgencySubelementCode   string `json:"agency_subelement_code"`
	AppointmentType        string `json:"appointment_type"`
	AppointmentTypeCode    string `json:"appointment_type_code"`
	Count                  int64  `json:"count"`
	DutyCountry            string `json:"duty_station_country"`
	DutyCountryCode        string `json:"duty_station_country_code"`
	DutyState              string `json:"duty_station_state"`
	DutyStateAbbrev        string `json:"duty_station_state_abbreviation"`
	DutyStateCode          string `json:"duty_station_state_code"`
	EducationLevel         string `json:"education_level"`
	EducationLevelCode     string `json:"education_level_code"`
	OccupationalGroup      string `json:"occupational_group"`
	OccupationalGroupCode  string `json:"occupational_group_code"`
	OccupationalSeries     string `json:"occupational_series"`
	OccupationalSeriesCode string `json:"occupational_series_code"`
	PayPlan                string `json:"pay_plan"`
	PayPlanCode            string `json:"pay_plan_code"`
	Snapshot               int    `json:"snapshot_yyyymm"`
	StemOccupation         string `json:"stem_occupation"`
	StemOccupationType     string `json:"stem_occupation_type"`
	SupervisoryStatus      string `json:"supervisory_status"`
	SupervisoryStatusCode  string `json:"supervisory_status_code"`
	WorkSchedule           string `json:"work_schedule"`
	WorkScheduleCode       string `json:"work_schedule_code"`

	// Pay is the annualized adjusted basic pay. Redacted or otherwise
	// non-numeric pay leaves PayValid false; Redacted distinguishes the
	// privacy sentinel from plain parse failures.
	Pay      float64 `json:"pay,omitempty"`
	PayValid bool    `json:"pay_valid"`
	Redacted bool    `json:"redacted"`

	// Grade as a number where the pay plan uses numeric grades.
	Grade      float64 `json:"grade,omitempty"`
	GradeValid bool    `json:"grade_valid"`
	GradeRaw   string  `json:"grade_raw"`

	// ServiceYears is length of service; not every cell reports one.
	ServiceYears      float64 `json:"service_years,omitempty"`
	ServiceYearsValid bool    `json:"service_years_valid"`

	// Derived categoricals.
	TenureCategory string `json:"tenure_category"`
	PayBand        string `json:"pay_band"`
}

// TenureCategories lists the derived tenure buckets in display order.
var TenureCategories = []string{
	"< 1 year",
	"1-5 years",
	"5-10 years",
	"10-20 years",
	"20-30 years",
	"30+ years",
	"Unknown",
}

// PayBands lists the derived pay bands in ascending scale order. "Redacted"
// collects every cell without a usable numeric pay.
var PayBands = []string{
	"Under $50K",
	"$50K-$75K",
	"$75K-$100K",
	"$100K-$125K",
	"$125K-$150K",
	"$150K-$200K",
	"$200K+",
	"Redacted",
}

// AgeBrackets lists the published age brackets in ascending order.
var AgeBrackets = []string{
	"LESS THAN 20",
	"20-24",
	"25-29",
	"30-34",
	"35-39",
	"40-44",
	"45-49",
	"50-54",
	"55-59",
	"60-64",
	"65 OR MORE",
}
