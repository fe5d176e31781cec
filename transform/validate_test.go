package transform

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	terrors "github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/schema"
	"github.com/go-tabular/tabular/validate"
)

func memberSchema(t *testing.T) *validate.Schema {
	t.Helper()
	return buildSchema(t, &schema.Spec{
		Name: "member",
		Fields: []schema.FieldSpec{
			{Index: 1, Name: "id", Dtype: "int", Required: true},
			{Index: 2, Name: "state", Dtype: "category", Symbols: []string{"CA", "NY"}, Nullable: true},
			{Index: 3, Name: "tier", Dtype: "string", Nullable: true, Default: "basic"},
		},
	})
}

func TestValidateRaiseAborts(t *testing.T) {
	s := memberSchema(t)
	v := NewValidate(s, Raise)

	x := stringFrame([][]string{
		{"id", "state"},
		{"bad", "CA"},
	})

	err := v.Fit(context.Background(), x)
	require.NotNil(t, err)

	errs, ok := err.(*validate.Errors)
	require.True(t, ok)
	require.Len(t, errs.CellViolations(), 1)
}

func TestValidateDropsViolatingRows(t *testing.T) {
	s := memberSchema(t)
	v := NewValidate(s, func(*validate.Errors) error { return nil })

	x := stringFrame([][]string{
		{"id", "state", "tier"},
		{"1", "CA", "gold"},
		{"bad", "CA", "gold"},
		{"3", "TX", "gold"},
		{"4", "NY", "gold"},
	})

	require.Nil(t, v.Fit(context.Background(), x))
	require.NotNil(t, v.Errors())

	y, err := v.Transform(context.Background(), x)
	require.Nil(t, err)
	require.Equal(t, 2, y.Nrow())
	require.Equal(t, []string{"1", "4"}, y.Col("id").Records())
}

func TestValidateInsertsDefaultColumns(t *testing.T) {
	s := memberSchema(t)
	v := NewValidate(s, func(*validate.Errors) error { return nil })

	x := stringFrame([][]string{
		{"id", "state"},
		{"1", "CA"},
	})

	require.Nil(t, v.Fit(context.Background(), x))
	y, err := v.Transform(context.Background(), x)
	require.Nil(t, err)
	require.Equal(t, []string{"id", "state", "tier"}, y.Names())
	require.Equal(t, []string{"basic"}, y.Col("tier").Records())
}

func TestValidateRequiredColumnCannotBeRepaired(t *testing.T) {
	s := memberSchema(t)
	v := NewValidate(s, func(*validate.Errors) error { return nil })

	x := stringFrame([][]string{
		{"state", "tier"},
		{"CA", "gold"},
	})

	require.Nil(t, v.Fit(context.Background(), x))
	_, err := v.Transform(context.Background(), x)
	require.NotNil(t, err)

	var missing terrors.MissingColumnError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "id", missing.Name)
}

func TestValidateDropsUndeclaredColumns(t *testing.T) {
	s := memberSchema(t)
	v := NewValidate(s, func(*validate.Errors) error { return nil })

	x := stringFrame([][]string{
		{"id", "state", "tier", "mystery"},
		{"1", "CA", "gold", "zzz"},
	})

	require.Nil(t, v.Fit(context.Background(), x))
	y, err := v.Transform(context.Background(), x)
	require.Nil(t, err)
	require.Equal(t, []string{"id", "state", "tier"}, y.Names())
}

func TestValidateConformingFramePassesThrough(t *testing.T) {
	s := memberSchema(t)
	v := NewValidate(s, Raise)

	x := stringFrame([][]string{
		{"id", "state", "tier"},
		{"1", "CA", "gold"},
	})

	require.Nil(t, v.Fit(context.Background(), x))
	require.Nil(t, v.Errors())

	y, err := v.Transform(context.Background(), x)
	require.Nil(t, err)
	require.Equal(t, 1, y.Nrow())
}

func TestLogReportSuppressesAndLogs(t *testing.T) {
	s := memberSchema(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	v := NewValidate(s, LogReport(logger))

	x := stringFrame([][]string{
		{"id"},
		{"bad"},
	})

	require.Nil(t, v.Fit(context.Background(), x))
	require.Contains(t, buf.String(), "schema validation failed")
	require.Contains(t, buf.String(), "member")
}
