package schema

// Canonical field names for the employee snapshot. All pipeline stages key
// records by these constants; the raw CSV headers are translated on parse
// via EmployeeHeaderMap.
const (
	FieldEmployeeNumber     = "employee_number"
	FieldAge                = "age"
	FieldGender             = "gender"
	FieldMaritalStatus      = "marital_status"
	FieldDepartment         = "department"
	FieldJobRole            = "job_role"
	FieldBusinessTravel     = "business_travel"
	FieldDistanceFromHome   = "distance_from_home"
	FieldYearsAtCompany     = "years_at_company"
	FieldTotalWorkingYears  = "total_working_years"
	FieldNumCompaniesWorked = "num_companies_worked"
	FieldOverTime           = "over_time"
	FieldMonthlyIncome      = "monthly_income"
	FieldEducation          = "education"
	FieldJobSatisfaction    = "job_satisfaction"
	FieldWorkLifeBalance    = "work_life_balance"
	FieldJobInvolvement     = "job_involvement"
	FieldAttrition          = "attrition"

	// Derived after load; never present in the raw source.
	FieldTenureCategory = "tenure_category"
	FieldSalaryCategory = "salary_category"
)

// EmployeeHeaderMap translates the raw export's column names to canonical
// field names.
var EmployeeHeaderMap = map[string]string{
	"EmployeeNumber":     FieldEmployeeNumber,
	"Age":                FieldAge,
	"Gender":             FieldGender,
	"MaritalStatus":      FieldMaritalStatus,
	"Department":         FieldDepartment,
	"JobRole":            FieldJobRole,
	"BusinessTravel":     FieldBusinessTravel,
	"DistanceFromHome":   FieldDistanceFromHome,
	"YearsAtCompany":     FieldYearsAtCompany,
	"TotalWorkingYears":  FieldTotalWorkingYears,
	"NumCompaniesWorked": FieldNumCompaniesWorked,
	"OverTime":           FieldOverTime,
	"MonthlyIncome":      FieldMonthlyIncome,
	"Education":          FieldEducation,
	"JobSatisfaction":    FieldJobSatisfaction,
	"WorkLifeBalance":    FieldWorkLifeBalance,
	"JobInvolvement":     FieldJobInvolvement,
	"Attrition":          FieldAttrition,
}

// EmployeeContract is the contract enforced at load time. The attrition and
// over_time fields arrive as free text ("Yes"/"No") and are typed as text
// here; normalization rewrites them to 0/1 afterwards.
func EmployeeContract() Contract {
	return Contract{
		Name:      "employees",
		HeaderMap: EmployeeHeaderMap,
		Fields: []Field{
			{Name: FieldAge, Type: "int", Required: true, Positive: true},
			{Name: FieldGender, Type: "text"},
			{Name: FieldMaritalStatus, Type: "text"},
			{Name: FieldDepartment, Type: "text"},
			{Name: FieldJobRole, Type: "text"},
			{Name: FieldBusinessTravel, Type: "text", Required: true},
			{Name: FieldDistanceFromHome, Type: "int", Required: true, NonNegative: true},
			{Name: FieldYearsAtCompany, Type: "int", NonNegative: true},
			{Name: FieldTotalWorkingYears, Type: "int", Nullable: true, NonNegative: true},
			{Name: FieldNumCompaniesWorked, Type: "int", Nullable: true, NonNegative: true},
			{Name: FieldOverTime, Type: "text"},
			{Name: FieldMonthlyIncome, Type: "real", Positive: true},
			{Name: FieldEducation, Type: "int", Min: 1, Max: 5},
			{Name: FieldJobSatisfaction, Type: "int", Min: 1, Max: 4},
			{Name: FieldWorkLifeBalance, Type: "int", Min: 1, Max: 4},
			{Name: FieldJobInvolvement, Type: "int", Min: 1, Max: 4},
			{Name: FieldAttrition, Type: "text", Required: true},
		},
	}
}
