package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gota/gota/series"

	terrors "github.com/go-tabular/tabular/errors"
)

// Kind identifies the storage and coercion family of a field.
type Kind int

// The set of field kinds a schema document can declare.
const (
	Bool Kind = iota
	Int
	Uint
	Float
	Decimal
	Currency
	String
	SSN
	ZipCode
	Category
	Date
	Datetime
	Object
)

// kindNames maps cleaned dtype aliases to kinds. Aliases are cleaned by
// lowercasing and stripping trailing width digits, so "Int64", "int32" and
// "int" all resolve to Int.
var kindNames = map[string]Kind{
	"bool":     Bool,
	"boolean":  Bool,
	"int":      Int,
	"uint":     Uint,
	"float":    Float,
	"decimal":  Decimal,
	"currency": Currency,
	"string":   String,
	"str":      String,
	"ssn":      SSN,
	"zipcode":  ZipCode,
	"category": Category,
	"enum":     Category,
	"date":     Date,
	"datetime": Datetime,
	"object":   Object,
}

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case Decimal:
		return "decimal"
	case Currency:
		return "currency"
	case String:
		return "string"
	case SSN:
		return "ssn"
	case ZipCode:
		return "zipcode"
	case Category:
		return "category"
	case Date:
		return "date"
	case Datetime:
		return "datetime"
	default:
		return "object"
	}
}

// GotaType returns the series storage type a coerced column of this kind uses.
func (k Kind) GotaType() series.Type {
	switch k {
	case Bool:
		return series.Bool
	case Int, Uint:
		return series.Int
	case Float, Decimal, Currency:
		return series.Float
	default:
		// Dates, categories and free-form values stay string-typed; gota has
		// no richer storage for them.
		return series.String
	}
}

// Numeric reports whether values of this kind parse as numbers.
func (k Kind) Numeric() bool {
	switch k {
	case Int, Uint, Float, Decimal, Currency:
		return true
	}
	return false
}

// CleanDtype normalizes a dtype alias for kind lookup: trims whitespace,
// strips trailing width digits and lowercases ("Int64" -> "int").
func CleanDtype(dtype string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(dtype), "0123456789"))
}

// KindOf resolves a dtype alias to its Kind. An unrecognized alias yields an
// UnknownDtypeError.
func KindOf(dtype string) (Kind, error) {
	k, ok := kindNames[CleanDtype(dtype)]
	if !ok {
		return Object, terrors.UnknownDtypeError{Dtype: dtype}
	}
	return k, nil
}

// Default layouts for date and datetime fields, in Go reference-time form.
const (
	DefaultDateLayout     = "2006-01-02"
	DefaultDatetimeLayout = "2006-01-02 15:04:05"
)

// Canonical field names are lowercase identifiers, so renamed frames always
// carry lowercased column names.
var reFieldName = regexp.MustCompile(`^[a-z_][0-9a-z_]*$`)

// maxFieldNameLength bounds field names to what common relational targets
// accept as identifiers.
const maxFieldNameLength = 63

// FieldSpec is one field definition parsed from a schema document: a row of
// the "fields" worksheet, or one entry of the "fields" list in the YAML
// encoding. A FieldSpec is immutable after load.
type FieldSpec struct {
	// Index is the sort-order key of the field within its schema.
	Index int `mapstructure:"index" yaml:"index"`
	// Name is the canonical (target) field name.
	Name string `mapstructure:"name" yaml:"name"`
	// Title is the source field name, typically the Title Cased header found
	// in incoming files.
	Title string `mapstructure:"title" yaml:"title"`
	// Aliases are additional source spellings that rename to Name.
	Aliases []string `mapstructure:"aliases" yaml:"aliases,omitempty"`
	// Doc is a plain-text description of the field.
	Doc string `mapstructure:"doc" yaml:"doc,omitempty"`
	// Dtype is the declared dtype alias, resolvable through KindOf.
	Dtype string `mapstructure:"dtype" yaml:"dtype"`
	// Default is the value assigned to missing cells, encoded as text.
	Default string `mapstructure:"default" yaml:"default,omitempty"`

	// Required marks a field that must be present in the frame.
	Required bool `mapstructure:"required" yaml:"required,omitempty"`
	// Nullable marks a field whose cells may be missing.
	Nullable bool `mapstructure:"nullable" yaml:"nullable,omitempty"`
	// Protect marks a sensitive field whose values must be irreversibly
	// transformed before the frame leaves the pipeline.
	Protect bool `mapstructure:"protect" yaml:"protect,omitempty"`
	// Exclude marks filler fields that are dropped from validation schemas.
	Exclude bool `mapstructure:"exclude" yaml:"exclude,omitempty"`

	// Start, End and Length describe the character span of the value within
	// a fixed-width line. Parsing of fixed-width files is the reader's
	// concern; the span is carried verbatim.
	Start  int `mapstructure:"start" yaml:"start,omitempty"`
	End    int `mapstructure:"end" yaml:"end,omitempty"`
	Length int `mapstructure:"length" yaml:"length,omitempty"`

	// Datefmt is the Go reference-time layout for Date and Datetime fields.
	Datefmt string `mapstructure:"datefmt" yaml:"datefmt,omitempty"`
	// Symbols is the closed set of values a Category field accepts.
	Symbols []string `mapstructure:"symbols" yaml:"symbols,omitempty"`
	// Size is the maximum number of characters a String field accepts.
	Size int `mapstructure:"size" yaml:"size,omitempty"`
	// Truncate trims oversized String values instead of failing them.
	Truncate bool `mapstructure:"truncate" yaml:"truncate,omitempty"`
	// Scale and Precision bound Decimal fields.
	Scale     int `mapstructure:"scale" yaml:"scale,omitempty"`
	Precision int `mapstructure:"precision" yaml:"precision,omitempty"`
	// Symbol is the currency symbol stripped from Currency values.
	Symbol string `mapstructure:"symbol" yaml:"symbol,omitempty"`
}

// Kind resolves the declared dtype alias.
func (f *FieldSpec) Kind() (Kind, error) {
	k, err := KindOf(f.Dtype)
	if err != nil {
		return Object, terrors.UnknownDtypeError{Field: f.Name, Dtype: f.Dtype}
	}
	return k, nil
}

// Layout returns the date layout for the field, falling back to the default
// layout of its kind.
func (f *FieldSpec) Layout() string {
	if f.Datefmt != "" {
		return f.Datefmt
	}
	if k, err := f.Kind(); err == nil && k == Datetime {
		return DefaultDatetimeLayout
	}
	return DefaultDateLayout
}

// Matches reports whether header names the field, by canonical name, title
// or alias. Matching is case-insensitive and ignores surrounding whitespace.
func (f *FieldSpec) Matches(header string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == strings.ToLower(f.Name) || (f.Title != "" && h == strings.ToLower(f.Title)) {
		return true
	}
	for _, alias := range f.Aliases {
		if h == strings.ToLower(strings.TrimSpace(alias)) {
			return true
		}
	}
	return false
}

// normalize strips alias and symbol entries and drops empty ones.
func (f *FieldSpec) normalize() {
	f.Aliases = cleanList(f.Aliases)
	f.Symbols = cleanList(f.Symbols)
}

// validate checks the structural rules every field must satisfy.
func (f *FieldSpec) validate() error {
	if f.Name == "" {
		return fmt.Errorf("field at index %d has no name", f.Index)
	}
	if !reFieldName.MatchString(f.Name) || len(f.Name) > maxFieldNameLength {
		return fmt.Errorf("field name %q is not a valid identifier", f.Name)
	}
	if _, err := f.Kind(); err != nil {
		return err
	}
	// Upper-cased dtype aliases ("Int64", "Float64") denote nullable storage
	// in the source convention; the flag must agree.
	if f.Dtype != "" && f.Dtype[0] >= 'A' && f.Dtype[0] <= 'Z' && !f.Nullable {
		return fmt.Errorf("field %q declares nullable dtype %q but nullable=false", f.Name, f.Dtype)
	}
	return nil
}

func cleanList(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
