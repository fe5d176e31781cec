package read

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/tidwall/gjson"
)

// JSONL reads a JSON Lines file into a string-typed frame. Each line is one
// object; the configured Spec supplies the column set, with field names used
// as gjson paths so nested values are addressable as "a.b". Fields absent
// from a line read as missing.
func JSONL(r io.Reader, conf *Conf) (dataframe.DataFrame, error) {
	c := withDefaults(conf)
	if c.Spec == nil {
		return dataframe.DataFrame{}, fmt.Errorf("reading json lines needs a schema for column names")
	}
	names := c.Spec.Names()

	records := [][]string{names}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		if !gjson.Valid(text) {
			return dataframe.DataFrame{}, fmt.Errorf("line %d: invalid json", line)
		}
		obj := gjson.Parse(text)
		record := make([]string, len(names))
		for i, name := range names {
			value := obj.Get(name)
			if !value.Exists() || value.Type == gjson.Null {
				record[i] = "NaN"
				continue
			}
			record[i] = value.String()
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("scan json lines: %w", err)
	}

	// The names row above is the header regardless of NoHeader.
	opts := append(c.loadOptions(), dataframe.HasHeader(true))
	df := dataframe.LoadRecords(records, opts...)
	return df, df.Err
}
