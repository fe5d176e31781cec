// Package reader defines the interface schema document readers implement,
// and resolves readers from file suffixes. Concrete readers live in the xlsx
// and yaml subpackages.
package reader

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-tabular/tabular/schema"
	"github.com/go-tabular/tabular/schema/reader/xlsx"
	"github.com/go-tabular/tabular/schema/reader/yaml"
)

// Reader parses one schema document into a Spec.
type Reader interface {
	Read(src io.Reader) (*schema.Spec, error)
}

// ForSuffix returns the Reader responsible for documents with the given file
// suffix. The suffix may carry a leading dot.
func ForSuffix(suffix string) (Reader, error) {
	switch strings.TrimPrefix(strings.ToLower(suffix), ".") {
	case "xlsx", "xlsm":
		return xlsx.CreateReader(nil), nil
	case "yaml", "yml":
		return yaml.CreateReader(nil), nil
	default:
		return nil, fmt.Errorf("no schema reader registered for suffix %q", suffix)
	}
}
