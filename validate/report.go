package validate

import (
	"encoding/json"
)

// ColumnErrorCount summarizes how often one check failed in one column.
type ColumnErrorCount struct {
	Column string `json:"column"`
	Check  string `json:"check"`
	Count  int    `json:"count"`
}

// RowErrors groups the violations attached to one row.
type RowErrors struct {
	Row    int         `json:"row"`
	Errors []Violation `json:"errors"`
}

// Report is a structured rendering of a violation collection, suitable for
// display or JSON serialization: frame-level schema errors, per-column check
// counts, and per-row violation groups.
type Report struct {
	Schema       string             `json:"schema"`
	SchemaErrors []Violation        `json:"schema_errors"`
	ColumnErrors []ColumnErrorCount `json:"column_errors"`
	DataErrors   []RowErrors        `json:"data_errors"`
}

// BuildReport renders a violation collection as a Report.
func BuildReport(e *Errors) Report {
	report := Report{Schema: e.Schema}

	counts := map[[2]string]int{}
	var countOrder [][2]string
	rows := map[int][]Violation{}

	for _, v := range e.Violations {
		if v.Row < 0 {
			report.SchemaErrors = append(report.SchemaErrors, v)
			continue
		}
		key := [2]string{v.Column, v.Check}
		if counts[key] == 0 {
			countOrder = append(countOrder, key)
		}
		counts[key]++
		rows[v.Row] = append(rows[v.Row], v)
	}

	for _, key := range countOrder {
		report.ColumnErrors = append(report.ColumnErrors, ColumnErrorCount{
			Column: key[0],
			Check:  key[1],
			Count:  counts[key],
		})
	}
	for _, row := range e.Rows() {
		if violations, ok := rows[row]; ok {
			report.DataErrors = append(report.DataErrors, RowErrors{Row: row, Errors: violations})
		}
	}
	return report
}

// JSON renders the report as indented JSON.
func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
