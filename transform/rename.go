package transform

import (
	"context"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/go-tabular/tabular"
	terrors "github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/validate"
)

// RenameColumns lowercases incoming column names and renames schema aliases
// and titles back to their canonical field names. With a nil schema it is a
// pure lowercasing rename. A rename that would merge two distinct columns is
// an error, never a silent drop.
type RenameColumns struct {
	tabular.NopFit
	Schema *validate.Schema
}

// Transform renames the columns of x. Row count is preserved.
func (t RenameColumns) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	names := x.Names()
	renamed := make([]string, len(names))
	sources := make(map[string]string, len(names))

	for i, name := range names {
		target := strings.ToLower(strings.TrimSpace(name))
		if t.Schema != nil {
			if col, ok := t.Schema.Resolve(name); ok {
				target = col.Name
			}
		}
		if _, dup := sources[target]; dup {
			return dataframe.DataFrame{}, terrors.ColumnCollisionError{From: name, To: target}
		}
		sources[target] = name
		renamed[i] = target
	}

	y := x.Copy()
	if err := y.SetNames(renamed...); err != nil {
		return dataframe.DataFrame{}, err
	}
	return y, nil
}
