// Package validate holds the executable validation schema built from a
// parsed schema Spec, and the aggregated error collection produced by
// validating a frame against it. Validation collects every violation rather
// than stopping at the first.
package validate

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-gota/gota/dataframe"

	"github.com/go-tabular/tabular/schema"
)

// Column is the validation-side representation of one declared field.
type Column struct {
	Name      string
	Title     string
	Aliases   []string
	Kind      schema.Kind
	Nullable  bool
	Required  bool
	Protected bool
	Default   string
	Symbols   []string // accepted values of a category column
	Size      int      // maximum string length, 0 = unbounded
	Truncate  bool     // trim oversized strings instead of failing them
	Layout    string   // date layout for date/datetime columns
	Symbol    string   // currency symbol stripped before parsing
	Precision int      // maximum digits after the decimal point, 0 = unbounded

	checks []cellCheck
}

// Matches reports whether header names the column, by canonical name, title
// or alias, case-insensitively.
func (c *Column) Matches(header string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == strings.ToLower(c.Name) || (c.Title != "" && h == strings.ToLower(c.Title)) {
		return true
	}
	for _, alias := range c.Aliases {
		if h == strings.ToLower(alias) {
			return true
		}
	}
	return false
}

// Constraint is a dataset-level rule over a set of columns.
type Constraint struct {
	Name    string
	Type    string
	Columns []string
}

// Schema is the executable validation schema: ordered columns plus dataset
// constraints. Build constructs one from a schema.Spec; equivalent Specs
// always yield equivalent Schemas.
type Schema struct {
	Name        string
	Columns     []Column
	Constraints []Constraint
	Metadata    map[string]any
}

// Column returns the declared column with the given canonical name.
func (s *Schema) Column(name string) (*Column, bool) {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i], true
		}
	}
	return nil, false
}

// Resolve returns the column a source header refers to.
func (s *Schema) Resolve(header string) (*Column, bool) {
	for i := range s.Columns {
		if s.Columns[i].Matches(header) {
			return &s.Columns[i], true
		}
	}
	return nil, false
}

// Names returns the canonical column names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i := range s.Columns {
		names[i] = s.Columns[i].Name
	}
	return names
}

// Protected returns the names of columns marked as protected attributes.
func (s *Schema) Protected() []string {
	var out []string
	for i := range s.Columns {
		if s.Columns[i].Protected {
			out = append(out, s.Columns[i].Name)
		}
	}
	return out
}

// Validate checks every cell, column and constraint of x against the schema
// and returns the full violation collection, or nil when x conforms.
func (s *Schema) Validate(x dataframe.DataFrame) *Errors {
	errs := &Errors{Schema: s.Name}

	present := map[string]bool{}
	for _, name := range x.Names() {
		present[name] = true
		if _, ok := s.Column(name); !ok {
			errs.add(Violation{Row: -1, Column: name, Check: CheckColumnUndeclared})
		}
	}
	for i := range s.Columns {
		col := &s.Columns[i]
		if !present[col.Name] {
			if col.Required {
				errs.add(Violation{Row: -1, Column: col.Name, Check: CheckColumnMissing})
			}
			continue
		}
		s.validateColumn(col, x, errs)
	}
	s.validateConstraints(x, present, errs)

	if errs.Empty() {
		return nil
	}
	return errs
}

func (s *Schema) validateColumn(col *Column, x dataframe.DataFrame, errs *Errors) {
	series := x.Col(col.Name)
	for row := 0; row < series.Len(); row++ {
		elem := series.Elem(row)
		value := strings.TrimSpace(elem.String())
		if elem.IsNA() || value == "" || value == "NaN" {
			if !col.Nullable {
				errs.add(Violation{Row: row, Column: col.Name, Check: CheckNullable})
			}
			continue
		}
		if check, ok := col.checkCell(value); !ok {
			errs.add(Violation{Row: row, Column: col.Name, Check: check, Value: value})
			continue
		}
		for _, chk := range col.checks {
			if !chk.fn(value) {
				errs.add(Violation{Row: row, Column: col.Name, Check: chk.name, Value: value})
			}
		}
	}
}

func (s *Schema) validateConstraints(x dataframe.DataFrame, present map[string]bool, errs *Errors) {
	for _, constraint := range s.Constraints {
		if constraint.Type != schema.ConstraintUnique && constraint.Type != schema.ConstraintPrimaryKey {
			continue
		}
		columns := make([][]string, 0, len(constraint.Columns))
		for _, name := range constraint.Columns {
			if !present[name] {
				columns = nil
				break
			}
			columns = append(columns, x.Col(name).Records())
		}
		if columns == nil {
			continue
		}
		label := strings.Join(constraint.Columns, ",")
		seen := map[string]bool{}
		for row := 0; row < x.Nrow(); row++ {
			parts := make([]string, len(columns))
			for i, records := range columns {
				parts[i] = records[row]
			}
			key := strings.Join(parts, "\x1f")
			if seen[key] {
				errs.add(Violation{Row: row, Column: label, Check: CheckUnique, Value: strings.Join(parts, ",")})
			}
			seen[key] = true
		}
	}
}

// checkCell validates a single non-missing cell value against the column
// kind, returning the failed check name when the value does not conform.
func (c *Column) checkCell(value string) (string, bool) {
	switch c.Kind {
	case schema.Bool:
		if !parseableBool(value) {
			return CheckDtype, false
		}
	case schema.Int:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return CheckDtype, false
		}
	case schema.Uint:
		if _, err := strconv.ParseUint(value, 10, 64); err != nil {
			return CheckDtype, false
		}
	case schema.Float, schema.Decimal:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return CheckDtype, false
		}
		if c.Kind == schema.Decimal && c.Precision > 0 && decimalDigits(value) > c.Precision {
			return CheckDtype, false
		}
	case schema.Currency:
		if _, err := strconv.ParseFloat(CleanCurrency(value, c.Symbol), 64); err != nil {
			return CheckDtype, false
		}
	case schema.String:
		if c.Size > 0 && !c.Truncate && len(value) > c.Size {
			return CheckSize, false
		}
	case schema.SSN:
		if !allDigits(strings.NewReplacer("-", "", " ", "").Replace(value)) {
			return CheckDtype, false
		}
	case schema.ZipCode:
		digits := strings.ReplaceAll(value, "-", "")
		if !allDigits(digits) || len(digits) > 9 {
			return CheckDtype, false
		}
	case schema.Category:
		for _, symbol := range c.Symbols {
			if value == symbol {
				return "", true
			}
		}
		return CheckIsin, false
	case schema.Date, schema.Datetime:
		if _, err := time.Parse(c.Layout, value); err != nil {
			return CheckDateFormat, false
		}
	}
	return "", true
}

// Truthy, falsey and unknown literal spellings accepted for boolean cells,
// compared after upper-casing.
var (
	TruthyLiterals  = []string{"TRUE", "T", "YES", "Y", "1"}
	FalseyLiterals  = []string{"FALSE", "F", "NO", "N", "0"}
	UnknownLiterals = []string{"NA", "N/A", "NULL", "NONE", "(BLANK)", "U", "UNKNOWN"}
)

func parseableBool(value string) bool {
	v := strings.ToUpper(strings.TrimSpace(value))
	for _, lit := range TruthyLiterals {
		if v == lit {
			return true
		}
	}
	for _, lit := range FalseyLiterals {
		if v == lit {
			return true
		}
	}
	return false
}

// CleanCurrency strips the currency symbol, whitespace and thousands
// separators from a monetary string.
func CleanCurrency(value, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	v := strings.TrimSpace(value)
	v = strings.TrimPrefix(v, symbol)
	v = strings.ReplaceAll(v, ",", "")
	return strings.TrimSpace(v)
}

func allDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func decimalDigits(value string) int {
	if i := strings.IndexByte(value, '.'); i >= 0 {
		return len(value) - i - 1
	}
	return 0
}
