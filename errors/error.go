package errors

import (
	"fmt"
)

// KeyNotFoundError occurs when a registry key does not resolve to a stored schema
type KeyNotFoundError struct{ Key string }

// Error returns a textual representation of this KeyNotFoundError
func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("Schema key %q does not exist in registry", e.Key)
}

// SchemaParseError occurs when the content of a schema document is malformed
type SchemaParseError struct {
	Path string
	Err  error
}

// Error returns a textual representation of this SchemaParseError
func (e SchemaParseError) Error() string {
	return fmt.Sprintf("Schema document %q is malformed: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse failure
func (e SchemaParseError) Unwrap() error {
	return e.Err
}

// UnknownDtypeError occurs when a field declares a dtype alias with no registered kind
type UnknownDtypeError struct {
	Field string
	Dtype string
}

// Error returns a textual representation of this UnknownDtypeError
func (e UnknownDtypeError) Error() string {
	return fmt.Sprintf("Field %q declares unknown dtype %q", e.Field, e.Dtype)
}

// ColumnCollisionError occurs when renaming would merge two distinct columns
type ColumnCollisionError struct {
	From string
	To   string
}

// Error returns a textual representation of this ColumnCollisionError
func (e ColumnCollisionError) Error() string {
	return fmt.Sprintf("Renaming column %q to %q collides with an existing column", e.From, e.To)
}

// MissingColumnError occurs when a transform requires a column the frame does not contain
type MissingColumnError struct{ Name string }

// Error returns a textual representation of this MissingColumnError
func (e MissingColumnError) Error() string {
	return fmt.Sprintf("Frame does not contain column %q", e.Name)
}

// StepError wraps an error raised inside a named pipeline step
type StepError struct {
	Step string
	Err  error
}

// Error returns a textual representation of this StepError
func (e StepError) Error() string {
	return fmt.Sprintf("Pipeline step %q: %v", e.Step, e.Err)
}

// Unwrap returns the error raised by the step's Transform
func (e StepError) Unwrap() error {
	return e.Err
}
