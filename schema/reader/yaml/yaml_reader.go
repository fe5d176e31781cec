// Package yaml parses schema documents from their YAML encoding, which
// mirrors the workbook layout as one document: name, namespace, fields,
// constraints, checks and metadata keys.
package yaml

import (
	"io"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/go-tabular/tabular/schema"
)

// ReaderConf configures a yaml schema Reader.
type ReaderConf struct{}

// Reader parses schema Specs from YAML documents.
type Reader struct {
	conf *ReaderConf
}

// CreateReader returns a new yaml schema Reader.
func CreateReader(conf *ReaderConf) *Reader {
	if conf == nil {
		conf = &ReaderConf{}
	}
	return &Reader{conf: conf}
}

// Read parses a YAML schema document into a Spec.
func (r *Reader) Read(src io.Reader) (*schema.Spec, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	var spec schema.Spec
	if err := yamlv3.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if err := spec.Normalize(); err != nil {
		return nil, err
	}
	return &spec, nil
}
