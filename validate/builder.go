package validate

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-tabular/tabular/schema"
)

// cellCheck is a compiled per-column check executed on non-missing cells.
type cellCheck struct {
	name string
	fn   func(value string) bool
}

// Build deterministically converts a parsed schema Spec into an executable
// validation Schema. Fields marked exclude are dropped; everything else maps
// one-to-one, so equal Specs always yield equivalent Schemas.
func Build(spec *schema.Spec) (*Schema, error) {
	out := &Schema{
		Name:     spec.QualifiedName(),
		Metadata: spec.Metadata,
	}
	for i := range spec.Fields {
		f := &spec.Fields[i]
		if f.Exclude {
			continue
		}
		col, err := buildColumn(f)
		if err != nil {
			return nil, err
		}
		out.Columns = append(out.Columns, *col)
	}
	for _, check := range spec.Checks {
		col, ok := out.Column(check.Field)
		if !ok {
			return nil, fmt.Errorf("check %q references unknown field %q", check.Name, check.Field)
		}
		compiled, err := compileCheck(check)
		if err != nil {
			return nil, err
		}
		col.checks = append(col.checks, compiled)
	}
	for _, constraint := range spec.Constraints {
		if constraint.Type == schema.ConstraintIndex {
			continue
		}
		out.Constraints = append(out.Constraints, Constraint{
			Name:    constraint.Name,
			Type:    constraint.Type,
			Columns: constraint.Fields,
		})
	}
	return out, nil
}

func buildColumn(f *schema.FieldSpec) (*Column, error) {
	kind, err := f.Kind()
	if err != nil {
		return nil, err
	}
	return &Column{
		Name:      f.Name,
		Title:     f.Title,
		Aliases:   f.Aliases,
		Kind:      kind,
		Nullable:  f.Nullable,
		Required:  f.Required,
		Protected: f.Protect,
		Default:   f.Default,
		Symbols:   f.Symbols,
		Size:      f.Size,
		Truncate:  f.Truncate,
		Layout:    f.Layout(),
		Symbol:    f.Symbol,
		Precision: f.Precision,
	}, nil
}

func compileCheck(check schema.Check) (cellCheck, error) {
	switch check.Name {
	case CheckInRange:
		min, okMin := toFloat(check.Kwargs["min"])
		max, okMax := toFloat(check.Kwargs["max"])
		if !okMin && !okMax {
			return cellCheck{}, fmt.Errorf("check %q on field %q has neither min nor max", check.Name, check.Field)
		}
		return cellCheck{name: CheckInRange, fn: func(value string) bool {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return false
			}
			if okMin && v < min {
				return false
			}
			if okMax && v > max {
				return false
			}
			return true
		}}, nil

	case CheckIsin:
		values, ok := check.Kwargs["values"].([]any)
		if !ok {
			return cellCheck{}, fmt.Errorf("check %q on field %q needs a values list", check.Name, check.Field)
		}
		accepted := make(map[string]bool, len(values))
		for _, v := range values {
			accepted[fmt.Sprint(v)] = true
		}
		return cellCheck{name: CheckIsin, fn: func(value string) bool {
			return accepted[value]
		}}, nil

	case CheckMatches:
		pattern, ok := check.Kwargs["pattern"].(string)
		if !ok {
			return cellCheck{}, fmt.Errorf("check %q on field %q needs a pattern", check.Name, check.Field)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return cellCheck{}, fmt.Errorf("check %q on field %q: %w", check.Name, check.Field, err)
		}
		return cellCheck{name: CheckMatches, fn: re.MatchString}, nil

	default:
		return cellCheck{}, fmt.Errorf("unknown check %q on field %q", check.Name, check.Field)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
