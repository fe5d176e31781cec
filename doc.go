// Package tabular contains the core contracts of a small library for
// composing column-level transformations over flat tabular data into ordered
// pipelines. This root package defines the Transform contract shared by all
// concrete transformations; implementations live in the transform package,
// schema parsing and registries in the schema package, and flat-file readers
// in the read package. Tables are represented throughout by
// github.com/go-gota/gota dataframes.
package tabular
