// Package read loads flat data files into gota frames. Readers are
// schema-aware but never coerce: every column is read as text and handed to
// the transform pipeline for cleaning, typing and validation. Large inputs
// are consumed through a sequential chunk iterator.
package read

import (
	"log/slog"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/go-tabular/tabular/schema"
)

// Conf configures the readers in this package.
type Conf struct {
	// Spec supplies column names for headerless files and gjson paths for
	// JSON Lines input.
	Spec *schema.Spec
	// Delimiter separates columns in delimited files. Defaults to ','.
	Delimiter rune
	// Comment marks ignored lines in delimited files. Defaults to none.
	Comment rune
	// NoHeader marks files whose first line is data, not column names.
	NoHeader bool
	// NilValues are the spellings of missing cells. Defaults to
	// "", "NA", "N/A" and "NULL".
	NilValues []string
	// ChunkSize is the maximum number of rows per chunk. Defaults to 1024.
	ChunkSize int
	// Sheet names the worksheet to read from workbooks. Defaults to the
	// first sheet.
	Sheet string
	// Logger receives per-chunk statistics. Defaults to slog.Default.
	Logger *slog.Logger
}

func withDefaults(conf *Conf) *Conf {
	out := Conf{}
	if conf != nil {
		out = *conf
	}
	if out.Delimiter == 0 {
		out.Delimiter = ','
	}
	if out.NilValues == nil {
		out.NilValues = []string{"", "NA", "N/A", "NULL"}
	}
	if out.ChunkSize == 0 {
		out.ChunkSize = 1024
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// loadOptions builds the gota load options for an all-string, schema-named
// read of a record grid.
func (c *Conf) loadOptions() []dataframe.LoadOption {
	opts := []dataframe.LoadOption{
		dataframe.HasHeader(!c.NoHeader),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(c.NilValues),
	}
	if c.NoHeader && c.Spec != nil {
		opts = append(opts, dataframe.Names(c.Spec.Names()...))
	}
	return opts
}

// Concat stacks frames row-wise, in order. Concatenating the per-chunk
// outputs of a pipeline yields the same frame as one whole-table run, absent
// cross-row constraints.
func Concat(frames ...dataframe.DataFrame) (dataframe.DataFrame, error) {
	if len(frames) == 0 {
		return dataframe.DataFrame{}, nil
	}
	out := frames[0]
	for _, frame := range frames[1:] {
		out = out.RBind(frame)
		if out.Err != nil {
			return dataframe.DataFrame{}, out.Err
		}
	}
	return out, nil
}
