package read

import (
	"encoding/csv"
	"io"

	"github.com/go-gota/gota/dataframe"
)

// CSV reads an entire delimited file into a frame. Every column is
// string-typed; cleaning and coercion are the pipeline's concern.
func CSV(r io.Reader, conf *Conf) (dataframe.DataFrame, error) {
	c := withDefaults(conf)
	opts := append(c.loadOptions(), dataframe.WithDelimiter(c.Delimiter))
	if c.Comment != 0 {
		opts = append(opts, dataframe.WithComments(c.Comment))
	}
	df := dataframe.ReadCSV(r, opts...)
	return df, df.Err
}

// newCSVReader builds the underlying reader shared by CSV chunking.
func newCSVReader(r io.Reader, c *Conf, fields int) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = c.Delimiter
	if c.Comment != 0 {
		reader.Comment = c.Comment
	}
	reader.FieldsPerRecord = fields
	return reader
}
