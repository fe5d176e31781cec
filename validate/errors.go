package validate

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// Check names used in Violations.
const (
	// CheckColumnMissing flags a declared column absent from the frame.
	CheckColumnMissing = "column-missing"
	// CheckColumnUndeclared flags a frame column the schema does not declare.
	CheckColumnUndeclared = "column-undeclared"
	// CheckDtype flags a cell that does not parse as the declared kind.
	CheckDtype = "dtype"
	// CheckNullable flags a missing cell in a non-nullable column.
	CheckNullable = "nullable"
	// CheckIsin flags a cell outside a closed set of accepted values.
	CheckIsin = "isin"
	// CheckSize flags an oversized string cell.
	CheckSize = "size"
	// CheckDateFormat flags a cell that does not parse with the column layout.
	CheckDateFormat = "date-format"
	// CheckInRange flags a numeric cell outside configured bounds.
	CheckInRange = "in-range"
	// CheckMatches flags a cell that does not match a configured pattern.
	CheckMatches = "matches"
	// CheckUnique flags a row that repeats a constrained key.
	CheckUnique = "unique"
)

// Violation is a single validation failure. Row is -1 for frame-level
// failures (missing or undeclared columns).
type Violation struct {
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
	Check  string `json:"check"`
	Value  string `json:"value,omitempty"`
}

// Error returns a textual representation of this Violation
func (v Violation) Error() string {
	if v.Row < 0 {
		return fmt.Sprintf("column %q failed check %q", v.Column, v.Check)
	}
	return fmt.Sprintf("row %d column %q failed check %q (value %q)", v.Row, v.Column, v.Check, v.Value)
}

// Errors is the aggregated, ordered collection of all violations found while
// validating one frame against one schema. Validation never stops at the
// first failure; every violation is collected here.
type Errors struct {
	Schema     string
	Violations []Violation
}

// Error formats the collection as a multierror list.
func (e *Errors) Error() string {
	agg := &multierror.Error{}
	for _, v := range e.Violations {
		agg = multierror.Append(agg, v)
	}
	return fmt.Sprintf("schema %q: %s", e.Schema, agg.Error())
}

// Unwrap exposes the individual violations to errors.Is / errors.As.
func (e *Errors) Unwrap() []error {
	out := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v
	}
	return out
}

func (e *Errors) add(v Violation) {
	e.Violations = append(e.Violations, v)
}

// Empty reports whether no violations were collected.
func (e *Errors) Empty() bool {
	return len(e.Violations) == 0
}

// CellViolations returns the violations attached to individual rows.
func (e *Errors) CellViolations() []Violation {
	var out []Violation
	for _, v := range e.Violations {
		if v.Row >= 0 {
			out = append(out, v)
		}
	}
	return out
}

// Rows returns the sorted, de-duplicated indexes of rows with violations.
func (e *Errors) Rows() []int {
	seen := map[int]bool{}
	for _, v := range e.Violations {
		if v.Row >= 0 {
			seen[v.Row] = true
		}
	}
	rows := make([]int, 0, len(seen))
	for row := range seen {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// ConstraintViolations returns the violations raised by dataset constraints.
func (e *Errors) ConstraintViolations() []Violation {
	var out []Violation
	for _, v := range e.Violations {
		if v.Check == CheckUnique {
			out = append(out, v)
		}
	}
	return out
}

// MissingColumns returns declared columns absent from the frame.
func (e *Errors) MissingColumns() []string {
	return e.columns(CheckColumnMissing)
}

// UndeclaredColumns returns frame columns the schema does not declare.
func (e *Errors) UndeclaredColumns() []string {
	return e.columns(CheckColumnUndeclared)
}

func (e *Errors) columns(check string) []string {
	var out []string
	for _, v := range e.Violations {
		if v.Check == check {
			out = append(out, v.Column)
		}
	}
	return out
}
