package storage

import (
	"context"
	"fmt"

	"attrition/internal/aggregate"
	"attrition/internal/schema"
	"attrition/pkg/records"
)

// DefaultTablePrefix prefixes the per-dimension result tables.
const DefaultTablePrefix = "attrition_by_"

// employeesTable holds the cleaned canonical record set.
const employeesTable = "employees"

// employeeColumns is the persisted column order: identity first, contract
// fields in declaration order, derived categories last.
var employeeColumns = append(append(
	[]string{schema.FieldEmployeeNumber},
	schema.EmployeeContract().FieldNames()...),
	schema.FieldTenureCategory, schema.FieldSalaryCategory,
)

// employeesDDL uses type names valid in both SQLite and Postgres. The
// yes/no fields are INTEGER because they are persisted post-normalization.
var employeesDDL = fmt.Sprintf(`CREATE TABLE %s (
	%s INTEGER PRIMARY KEY,
	%s INTEGER NOT NULL,
	%s TEXT,
	%s TEXT,
	%s TEXT,
	%s TEXT,
	%s TEXT NOT NULL,
	%s INTEGER NOT NULL,
	%s INTEGER,
	%s INTEGER,
	%s INTEGER,
	%s INTEGER,
	%s REAL,
	%s INTEGER,
	%s INTEGER,
	%s INTEGER,
	%s INTEGER,
	%s INTEGER NOT NULL,
	%s TEXT,
	%s TEXT
)`,
	employeesTable,
	schema.FieldEmployeeNumber,
	schema.FieldAge,
	schema.FieldGender,
	schema.FieldMaritalStatus,
	schema.FieldDepartment,
	schema.FieldJobRole,
	schema.FieldBusinessTravel,
	schema.FieldDistanceFromHome,
	schema.FieldYearsAtCompany,
	schema.FieldTotalWorkingYears,
	schema.FieldNumCompaniesWorked,
	schema.FieldOverTime,
	schema.FieldMonthlyIncome,
	schema.FieldEducation,
	schema.FieldJobSatisfaction,
	schema.FieldWorkLifeBalance,
	schema.FieldJobInvolvement,
	schema.FieldAttrition,
	schema.FieldTenureCategory,
	schema.FieldSalaryCategory,
)

var resultColumns = []string{"group_key", "total_employees", "attrition_count", "attrition_rate"}

// WriteEmployees replaces the employees table with the cleaned record set.
func WriteEmployees(ctx context.Context, repo Repository, recs []records.Record) (int64, error) {
	if err := repo.Exec(ctx, "DROP TABLE IF EXISTS "+employeesTable); err != nil {
		return 0, err
	}
	if err := repo.Exec(ctx, employeesDDL); err != nil {
		return 0, err
	}

	rows := make([][]any, len(recs))
	for i, rec := range recs {
		row := make([]any, len(employeeColumns))
		for j, col := range employeeColumns {
			row[j] = rec[col]
		}
		rows[i] = row
	}
	n, err := repo.CopyFrom(ctx, employeesTable, employeeColumns, rows)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", employeesTable, err)
	}
	return n, nil
}

// WriteAggregates replaces one result table per dimension. Tables are named
// prefix + dimension name, e.g. "attrition_by_department". Rows keep their
// computed order; the dashboard reads them back sorted by rate anyway.
func WriteAggregates(ctx context.Context, repo Repository, prefix string, results []aggregate.Result) error {
	if prefix == "" {
		prefix = DefaultTablePrefix
	}
	for _, res := range results {
		table := prefix + res.Dimension.Name
		if err := repo.Exec(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return err
		}
		ddl := fmt.Sprintf(
			"CREATE TABLE %s (group_key TEXT NOT NULL, total_employees INTEGER NOT NULL, attrition_count INTEGER NOT NULL, attrition_rate REAL NOT NULL)",
			table,
		)
		if err := repo.Exec(ctx, ddl); err != nil {
			return err
		}

		rows := make([][]any, len(res.Rows))
		for i, r := range res.Rows {
			rows[i] = []any{r.GroupKey, r.TotalEmployees, r.AttritionCount, r.AttritionRate.InexactFloat64()}
		}
		if _, err := repo.CopyFrom(ctx, table, resultColumns, rows); err != nil {
			return fmt.Errorf("write %s: %w", table, err)
		}
	}
	return nil
}
