package transform

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/schema"
	"github.com/go-tabular/tabular/validate"
)

// Identity returns the frame it receives, unchanged. Useful as a default
// step in abstract pipelines.
type Identity struct{ tabular.NopFit }

// Transform returns x unchanged.
func (Identity) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	return x, nil
}

// CleanStrings trims surrounding whitespace from every string-typed column.
type CleanStrings struct{ tabular.NopFit }

// Transform trims string cells. Row count is preserved.
func (CleanStrings) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	y := x
	for _, name := range x.Names() {
		if x.Col(name).Type() != series.String {
			continue
		}
		y = mapColumn(y, name, strings.TrimSpace)
	}
	return y, y.Err
}

// CleanBooleans normalizes literal boolean spellings (TRUE/T/YES/Y,
// FALSE/F/NO/N, and unknown markers such as NA or (BLANK)) on columns the
// schema declares boolean. Columns are matched by canonical name, title or
// alias, so the cleaner works before and after renaming.
type CleanBooleans struct {
	tabular.NopFit
	Schema *validate.Schema
}

// Transform rewrites boolean literals to "true"/"false" and unknown markers
// to missing cells. Row count is preserved.
func (t CleanBooleans) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	y := x
	for _, name := range matchColumns(x, t.Schema, schema.Bool) {
		y = mapColumn(y, name, cleanBool)
	}
	return y, y.Err
}

func cleanBool(value string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	for _, lit := range validate.TruthyLiterals {
		if v == lit {
			return "true"
		}
	}
	for _, lit := range validate.FalseyLiterals {
		if v == lit {
			return "false"
		}
	}
	// Unknown markers and anything unparseable become missing cells.
	return "NaN"
}

// CleanNumbers strips whitespace, thousands separators, surplus leading
// zeroes and stray trailing sign/point characters from columns the schema
// declares numeric. Currency columns additionally lose their currency
// symbol. Empty cells become zero on non-nullable columns.
type CleanNumbers struct {
	tabular.NopFit
	Schema *validate.Schema
}

// Transform normalizes numeric text. Row count is preserved.
func (t CleanNumbers) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	y := x
	kinds := []schema.Kind{schema.Int, schema.Uint, schema.Float, schema.Decimal, schema.Currency}
	for _, kind := range kinds {
		for _, name := range matchColumns(x, t.Schema, kind) {
			col, _ := t.Schema.Resolve(name)
			if y.Col(name).Type() != series.String {
				continue
			}
			y = mapColumn(y, name, func(value string) string {
				if kind == schema.Currency {
					value = validate.CleanCurrency(value, col.Symbol)
				}
				return cleanNumber(value, col.Nullable)
			})
		}
	}
	return y, y.Err
}

func cleanNumber(value string, nullable bool) string {
	v := strings.TrimSpace(value)
	if v == "" || v == "NaN" {
		if nullable {
			return ""
		}
		return "0"
	}
	v = strings.ReplaceAll(v, ",", "")
	negative := strings.HasPrefix(v, "-")
	v = strings.TrimPrefix(v, "-")
	v = strings.TrimLeft(v, "0")
	v = strings.TrimRight(v, "-.")
	if v == "" {
		if nullable {
			return ""
		}
		return "0"
	}
	if strings.HasPrefix(v, ".") {
		v = "0" + v
	}
	if negative {
		v = "-" + v
	}
	return v
}

// SetConst assigns constant-valued columns, adding or replacing each named
// column with the given value on every row.
type SetConst struct {
	tabular.NopFit
	Constants map[string]any
}

// Transform assigns the constant columns. Row count is preserved.
func (t SetConst) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	names := make([]string, 0, len(t.Constants))
	for name := range t.Constants {
		names = append(names, name)
	}
	sort.Strings(names)

	y := x
	for _, name := range names {
		y = y.Mutate(constantSeries(name, t.Constants[name], x.Nrow()))
	}
	return y, y.Err
}

func constantSeries(name string, value any, n int) series.Series {
	switch v := value.(type) {
	case bool:
		values := make([]bool, n)
		for i := range values {
			values[i] = v
		}
		return series.New(values, series.Bool, name)
	case int:
		values := make([]int, n)
		for i := range values {
			values[i] = v
		}
		return series.New(values, series.Int, name)
	case float64:
		values := make([]float64, n)
		for i := range values {
			values[i] = v
		}
		return series.New(values, series.Float, name)
	default:
		values := make([]string, n)
		for i := range values {
			values[i] = fmt.Sprint(value)
		}
		return series.New(values, series.String, name)
	}
}

// mapColumn rewrites one column through fn, leaving missing cells missing.
func mapColumn(x dataframe.DataFrame, name string, fn func(string) string) dataframe.DataFrame {
	col := x.Col(name)
	records := col.Records()
	for i := range records {
		if col.Elem(i).IsNA() {
			records[i] = "NaN"
			continue
		}
		records[i] = fn(records[i])
	}
	return x.Mutate(series.New(records, col.Type(), name))
}

// matchColumns returns the frame columns that resolve to a schema column of
// the given kind, in frame order.
func matchColumns(x dataframe.DataFrame, s *validate.Schema, kind schema.Kind) []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, name := range x.Names() {
		if col, ok := s.Resolve(name); ok && col.Kind == kind {
			out = append(out, name)
		}
	}
	return out
}
