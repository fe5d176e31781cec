package transform

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/schema"
	"github.com/go-tabular/tabular/validate"
)

// defaultCategoryThreshold is the distinct-value ratio below which a column
// is coerced through a per-distinct-value lookup instead of cell by cell.
const defaultCategoryThreshold = 0.5

// OptimizeMemory downcasts column storage to the type the schema declares:
// string-held booleans become bool columns, integers become int columns,
// floats and monetary values become float columns. Low-cardinality columns
// are converted through a lookup of their distinct values, measured with
// xxhash digests, so each distinct value is parsed once.
type OptimizeMemory struct {
	tabular.NopFit
	Schema *validate.Schema
	// CategoryThreshold overrides the distinct-value ratio gating the
	// lookup fast path. Zero means the default of 0.5.
	CategoryThreshold float64
}

// Transform downcasts the declared columns of x. Row count is preserved.
func (t OptimizeMemory) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	threshold := t.CategoryThreshold
	if threshold <= 0 {
		threshold = defaultCategoryThreshold
	}

	y := x
	for _, name := range y.Names() {
		col, ok := t.Schema.Resolve(name)
		if !ok {
			continue
		}
		target := col.Kind.GotaType()
		current := y.Col(name)
		if current.Type() == target {
			continue
		}

		records := current.Records()
		convert := cellConverter(col)
		if distinctRatio(records) < threshold {
			convert = lookupConverter(records, convert)
		}
		for i := range records {
			if current.Elem(i).IsNA() {
				records[i] = "NaN"
				continue
			}
			records[i] = convert(records[i])
		}
		y = y.Mutate(series.New(records, target, name))
	}
	return y, y.Err
}

// cellConverter normalizes one raw cell into text the target series type
// parses.
func cellConverter(col *validate.Column) func(string) string {
	switch col.Kind {
	case schema.Bool:
		return cleanBool
	case schema.Currency:
		return func(value string) string {
			return validate.CleanCurrency(value, col.Symbol)
		}
	case schema.Int, schema.Uint, schema.Float, schema.Decimal:
		nullable := col.Nullable
		return func(value string) string {
			return cleanNumber(value, nullable)
		}
	default:
		return func(value string) string { return value }
	}
}

// lookupConverter memoizes convert over the distinct values of records.
func lookupConverter(records []string, convert func(string) string) func(string) string {
	memo := make(map[string]string)
	for _, value := range records {
		if _, ok := memo[value]; !ok {
			memo[value] = convert(value)
		}
	}
	return func(value string) string { return memo[value] }
}

// distinctRatio measures the share of distinct values in records using
// xxhash digests, without retaining the values themselves.
func distinctRatio(records []string) float64 {
	if len(records) == 0 {
		return 1
	}
	seen := make(map[uint64]struct{}, len(records))
	for _, value := range records {
		seen[xxhash.Sum64String(value)] = struct{}{}
	}
	return float64(len(seen)) / float64(len(records))
}
