// Package schema parses declarative table schemas from spreadsheet and YAML
// documents. A Spec describes the fields a flat file is expected to carry,
// together with per-field checks and dataset-level constraints; the validate
// package converts Specs into executable validation schemas.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gota/gota/series"
)

// Check is a named validation step attached to a single field. Kwargs carry
// fixed parameters for the check.
type Check struct {
	Name   string         `mapstructure:"name" yaml:"name"`
	Field  string         `mapstructure:"field" yaml:"field"`
	Mode   string         `mapstructure:"mode" yaml:"mode,omitempty"`
	Kwargs map[string]any `mapstructure:"kwargs" yaml:"kwargs,omitempty"`
}

// Constraint is a dataset-level rule evaluated after value validation, such
// as a unique or primary-key constraint over a set of fields.
type Constraint struct {
	Name   string   `mapstructure:"name" yaml:"name"`
	Type   string   `mapstructure:"type" yaml:"type"`
	Fields []string `mapstructure:"fields" yaml:"fields"`
}

// Constraint types understood by the validate package.
const (
	ConstraintUnique     = "unique"
	ConstraintPrimaryKey = "primary_key"
	ConstraintIndex      = "index"
)

// Spec is a parsed schema document: an ordered set of field definitions plus
// checks, constraints and free-form metadata. A Spec is immutable after load.
type Spec struct {
	Name        string         `yaml:"name"`
	Namespace   string         `yaml:"namespace,omitempty"`
	Fields      []FieldSpec    `yaml:"fields"`
	Checks      []Check        `yaml:"checks,omitempty"`
	Constraints []Constraint   `yaml:"constraints,omitempty"`
	Metadata    map[string]any `yaml:"metadata,omitempty"`
}

// Normalize sorts fields by index, cleans alias and symbol lists, and checks
// the structural rules of every field. Readers call Normalize before
// returning a Spec.
func (s *Spec) Normalize() error {
	if s.Name == "" {
		return fmt.Errorf("schema has no name")
	}
	sort.SliceStable(s.Fields, func(i, j int) bool {
		return s.Fields[i].Index < s.Fields[j].Index
	})
	seen := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		f.normalize()
		if err := f.validate(); err != nil {
			return err
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
	}
	for _, c := range s.Constraints {
		for _, field := range c.Fields {
			if !seen[field] {
				return fmt.Errorf("constraint %q references unknown field %q", c.Name, field)
			}
		}
	}
	return nil
}

// Names returns the canonical field names in schema order.
func (s *Spec) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the field definition with the given canonical name.
func (s *Spec) Field(name string) (*FieldSpec, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Resolve returns the field a source header refers to, matching canonical
// names, titles and aliases case-insensitively.
func (s *Spec) Resolve(header string) (*FieldSpec, bool) {
	for i := range s.Fields {
		if s.Fields[i].Matches(header) {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// SelectKinds returns the fields whose kind is in include, preserving schema
// order.
func (s *Spec) SelectKinds(include ...Kind) []FieldSpec {
	wanted := make(map[Kind]bool, len(include))
	for _, k := range include {
		wanted[k] = true
	}
	var out []FieldSpec
	for _, f := range s.Fields {
		if k, err := f.Kind(); err == nil && wanted[k] {
			out = append(out, f)
		}
	}
	return out
}

// ExcludeKinds returns the fields whose kind is not in exclude, preserving
// schema order.
func (s *Spec) ExcludeKinds(exclude ...Kind) []FieldSpec {
	unwanted := make(map[Kind]bool, len(exclude))
	for _, k := range exclude {
		unwanted[k] = true
	}
	var out []FieldSpec
	for _, f := range s.Fields {
		if k, err := f.Kind(); err == nil && !unwanted[k] {
			out = append(out, f)
		}
	}
	return out
}

// Types returns the gota storage types of the fields in schema order, for
// readers that build typed frames directly.
func (s *Spec) Types() []series.Type {
	types := make([]series.Type, len(s.Fields))
	for i := range s.Fields {
		types[i] = series.String
		if k, err := s.Fields[i].Kind(); err == nil {
			types[i] = k.GotaType()
		}
	}
	return types
}

// Protected returns the names of fields marked as protected attributes.
func (s *Spec) Protected() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Protect {
			out = append(out, f.Name)
		}
	}
	return out
}

// QualifiedName joins namespace and name for display and logging.
func (s *Spec) QualifiedName() string {
	if s.Namespace == "" {
		return s.Name
	}
	return strings.Join([]string{s.Namespace, s.Name}, ".")
}
