package validate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleErrors() *Errors {
	return &Errors{
		Schema: "member",
		Violations: []Violation{
			{Row: -1, Column: "id", Check: CheckColumnMissing},
			{Row: 0, Column: "state", Check: CheckIsin, Value: "TX"},
			{Row: 2, Column: "state", Check: CheckIsin, Value: "WA"},
			{Row: 2, Column: "age", Check: CheckDtype, Value: "old"},
		},
	}
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(sampleErrors())
	require.Equal(t, "member", report.Schema)

	require.Len(t, report.SchemaErrors, 1)
	require.Equal(t, CheckColumnMissing, report.SchemaErrors[0].Check)

	require.Equal(t, []ColumnErrorCount{
		{Column: "state", Check: CheckIsin, Count: 2},
		{Column: "age", Check: CheckDtype, Count: 1},
	}, report.ColumnErrors)

	require.Len(t, report.DataErrors, 2)
	require.Equal(t, 0, report.DataErrors[0].Row)
	require.Len(t, report.DataErrors[0].Errors, 1)
	require.Equal(t, 2, report.DataErrors[1].Row)
	require.Len(t, report.DataErrors[1].Errors, 2)
}

func TestReportJSON(t *testing.T) {
	raw, err := BuildReport(sampleErrors()).JSON()
	require.Nil(t, err)

	var decoded map[string]any
	require.Nil(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "member", decoded["schema"])
}

func TestErrorsRows(t *testing.T) {
	errs := sampleErrors()
	require.Equal(t, []int{0, 2}, errs.Rows())
	require.Len(t, errs.CellViolations(), 3)
	require.False(t, errs.Empty())
}

func TestErrorsUnwrap(t *testing.T) {
	errs := sampleErrors()
	target := Violation{Row: 0, Column: "state", Check: CheckIsin, Value: "TX"}
	require.True(t, errors.Is(errs, target))
}

func TestErrorsMessageListsViolations(t *testing.T) {
	msg := sampleErrors().Error()
	require.Contains(t, msg, `schema "member"`)
	require.Contains(t, msg, "4 errors occurred")
}
