package transform

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	terrors "github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/validate"
)

// ErrorHandler decides what happens to a violation collection: returning the
// collection (or any error) aborts the pipeline; returning nil suppresses it
// and lets the Validate transform repair the frame instead.
type ErrorHandler func(errs *validate.Errors) error

// Raise propagates the violation collection as the step error.
func Raise(errs *validate.Errors) error {
	return errs
}

// LogReport logs the structured violation report through logger and
// suppresses the error, letting validation drop the offending rows.
func LogReport(logger *slog.Logger) ErrorHandler {
	return func(errs *validate.Errors) error {
		report, err := validate.BuildReport(errs).JSON()
		if err != nil {
			report = []byte("{}")
		}
		logger.Error("schema validation failed",
			slog.String("schema", errs.Schema),
			slog.Int("violations", len(errs.Violations)),
			slog.Any("report", json.RawMessage(report)),
		)
		return nil
	}
}

// Validate checks a frame against a validation Schema, collecting every
// violation, and hands the collection to its ErrorHandler. When the handler
// suppresses the error, Transform repairs the frame: rows with violations
// are dropped, undeclared columns are removed, declared-but-absent optional
// columns are inserted with their defaults, and columns are put in schema
// order. This transform filters rows by design.
type Validate struct {
	Schema  *validate.Schema
	Handler ErrorHandler

	errs *validate.Errors
}

// NewValidate returns a Validate transform. A nil handler logs violations
// through slog.Default and continues.
func NewValidate(s *validate.Schema, handler ErrorHandler) *Validate {
	if handler == nil {
		handler = LogReport(slog.Default())
	}
	return &Validate{Schema: s, Handler: handler}
}

// Fit validates x and caches the violation collection for Transform. The
// configured ErrorHandler decides whether violations abort the pipeline.
func (t *Validate) Fit(_ context.Context, x dataframe.DataFrame) error {
	t.errs = t.Schema.Validate(x)
	if t.errs != nil {
		return t.Handler(t.errs)
	}
	return nil
}

// Errors returns the violation collection of the last Fit, or nil when the
// frame conformed.
func (t *Validate) Errors() *validate.Errors {
	return t.errs
}

// Transform repairs x according to the violations cached by Fit.
func (t *Validate) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	y := x

	// Drop rows carrying violations.
	if t.errs != nil {
		bad := map[int]bool{}
		for _, row := range t.errs.Rows() {
			bad[row] = true
		}
		if len(bad) > 0 {
			keep := make([]int, 0, y.Nrow())
			for row := 0; row < y.Nrow(); row++ {
				if !bad[row] {
					keep = append(keep, row)
				}
			}
			y = y.Subset(keep)
			if y.Err != nil {
				return dataframe.DataFrame{}, y.Err
			}
		}
	}

	// Insert declared-but-absent columns with their defaults.
	present := map[string]bool{}
	for _, name := range y.Names() {
		present[name] = true
	}
	for i := range t.Schema.Columns {
		col := &t.Schema.Columns[i]
		if present[col.Name] {
			continue
		}
		// A required column cannot be repaired with defaults.
		if col.Required {
			return dataframe.DataFrame{}, terrors.MissingColumnError{Name: col.Name}
		}
		y = y.Mutate(defaultSeries(col, y.Nrow()))
		if y.Err != nil {
			return dataframe.DataFrame{}, y.Err
		}
	}

	// Keep only declared columns, in schema order.
	y = y.Select(t.Schema.Names())
	return y, y.Err
}

func defaultSeries(col *validate.Column, n int) series.Series {
	value := col.Default
	if value == "" {
		value = "NaN"
	}
	values := make([]string, n)
	for i := range values {
		values[i] = value
	}
	return series.New(values, col.Kind.GotaType(), col.Name)
}
