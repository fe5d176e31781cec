// Package xlsx parses schema workbooks. A workbook carries a "metadata"
// sheet of key/value rows, a "fields" sheet with one field definition per
// row, and optional "constraints" and "checks" sheets. Alias, symbol and
// constraint-field cells hold comma-separated lists.
package xlsx

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/xuri/excelize/v2"

	"github.com/go-tabular/tabular/schema"
)

// ReaderConf configures an xlsx schema Reader.
type ReaderConf struct {
	MetadataSheet    string // The sheet holding name/namespace/metadata rows. Defaults to "metadata".
	FieldsSheet      string // The sheet holding field definitions. Defaults to "fields".
	ConstraintsSheet string // The optional sheet holding dataset constraints. Defaults to "constraints".
	ChecksSheet      string // The optional sheet holding per-field checks. Defaults to "checks".
}

// Reader parses schema Specs from Excel workbooks.
type Reader struct {
	conf *ReaderConf
}

// CreateReader returns a new xlsx schema Reader.
func CreateReader(conf *ReaderConf) *Reader {
	if conf == nil {
		conf = &ReaderConf{}
	}
	if conf.MetadataSheet == "" {
		conf.MetadataSheet = "metadata"
	}
	if conf.FieldsSheet == "" {
		conf.FieldsSheet = "fields"
	}
	if conf.ConstraintsSheet == "" {
		conf.ConstraintsSheet = "constraints"
	}
	if conf.ChecksSheet == "" {
		conf.ChecksSheet = "checks"
	}
	return &Reader{conf: conf}
}

// Read parses a schema workbook into a Spec.
func (r *Reader) Read(src io.Reader) (*schema.Spec, error) {
	book, err := excelize.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	spec := &schema.Spec{Metadata: map[string]any{}}
	if err := r.readMetadata(book, spec); err != nil {
		return nil, err
	}
	if err := r.readFields(book, spec); err != nil {
		return nil, err
	}
	if err := r.readConstraints(book, spec); err != nil {
		return nil, err
	}
	if err := r.readChecks(book, spec); err != nil {
		return nil, err
	}
	if err := spec.Normalize(); err != nil {
		return nil, err
	}
	return spec, nil
}

func (r *Reader) readMetadata(book *excelize.File, spec *schema.Spec) error {
	rows, err := book.GetRows(r.conf.MetadataSheet)
	if err != nil {
		return fmt.Errorf("sheet %q: %w", r.conf.MetadataSheet, err)
	}
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(row[0]))
		value := ""
		if len(row) > 1 {
			value = strings.TrimSpace(row[1])
		}
		switch key {
		case "name":
			spec.Name = value
		case "namespace":
			spec.Namespace = value
		default:
			spec.Metadata[key] = value
		}
	}
	return nil
}

func (r *Reader) readFields(book *excelize.File, spec *schema.Spec) error {
	rows, err := book.GetRows(r.conf.FieldsSheet)
	if err != nil {
		return fmt.Errorf("sheet %q: %w", r.conf.FieldsSheet, err)
	}
	for _, rec := range rowMaps(rows) {
		var field schema.FieldSpec
		if err := decodeRow(rec, &field); err != nil {
			return fmt.Errorf("sheet %q: %w", r.conf.FieldsSheet, err)
		}
		spec.Fields = append(spec.Fields, field)
	}
	return nil
}

func (r *Reader) readConstraints(book *excelize.File, spec *schema.Spec) error {
	rows, ok, err := optionalSheet(book, r.conf.ConstraintsSheet)
	if err != nil || !ok {
		return err
	}
	for _, rec := range rowMaps(rows) {
		var constraint schema.Constraint
		if err := decodeRow(rec, &constraint); err != nil {
			return fmt.Errorf("sheet %q: %w", r.conf.ConstraintsSheet, err)
		}
		spec.Constraints = append(spec.Constraints, constraint)
	}
	return nil
}

func (r *Reader) readChecks(book *excelize.File, spec *schema.Spec) error {
	rows, ok, err := optionalSheet(book, r.conf.ChecksSheet)
	if err != nil || !ok {
		return err
	}
	for _, rec := range rowMaps(rows) {
		// kwargs cells hold a JSON object.
		if raw, found := rec["kwargs"]; found {
			kwargs := map[string]any{}
			if err := json.Unmarshal([]byte(raw.(string)), &kwargs); err != nil {
				return fmt.Errorf("sheet %q: kwargs: %w", r.conf.ChecksSheet, err)
			}
			rec["kwargs"] = kwargs
		}
		var check schema.Check
		if err := decodeRow(rec, &check); err != nil {
			return fmt.Errorf("sheet %q: %w", r.conf.ChecksSheet, err)
		}
		spec.Checks = append(spec.Checks, check)
	}
	return nil
}

func optionalSheet(book *excelize.File, name string) ([][]string, bool, error) {
	index, err := book.GetSheetIndex(name)
	if err != nil || index < 0 {
		return nil, false, nil
	}
	rows, err := book.GetRows(name)
	if err != nil {
		return nil, false, fmt.Errorf("sheet %q: %w", name, err)
	}
	return rows, true, nil
}

// listColumns hold comma-separated values in a single cell.
var listColumns = map[string]bool{
	"aliases": true,
	"symbols": true,
	"fields":  true,
}

// rowMaps converts a header row plus data rows into one map per data row,
// keyed by the lowercased header. Empty cells are omitted so zero values and
// defaults apply during decoding.
func rowMaps(rows [][]string) []map[string]any {
	if len(rows) < 2 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var records []map[string]any
	for _, row := range rows[1:] {
		rec := make(map[string]any, len(header))
		for i, key := range header {
			if key == "" || i >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue
			}
			if listColumns[key] {
				rec[key] = splitList(value)
			} else {
				rec[key] = value
			}
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func decodeRow(rec map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(rec)
}
