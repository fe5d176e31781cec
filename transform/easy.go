package transform

import (
	"github.com/go-tabular/tabular/validate"
)

// EasyPreprocess is a pre-built Pipeline stringing together the simple
// cleaning transforms: strings, boolean literals, then numeric text, all
// driven by one schema.
func EasyPreprocess(s *validate.Schema) *Pipeline {
	return NewPipeline(
		Step{Name: "clean_strings", Transform: CleanStrings{}},
		Step{Name: "clean_booleans", Transform: CleanBooleans{Schema: s}},
		Step{Name: "clean_numbers", Transform: CleanNumbers{Schema: s}},
	)
}

// EasyValidateConf configures an EasyValidate pipeline.
type EasyValidateConf struct {
	Schema *validate.Schema
	// Handler controls whether validation failures abort the pipeline or
	// are logged while the offending rows are dropped. Nil logs through
	// slog.Default and continues.
	Handler ErrorHandler
	// Hash overrides the digest applied to protected columns. Nil means
	// SHA256.
	Hash Hasher
}

// EasyValidate is the standard five-step pipeline driven by one schema:
// preprocess, rename, optimize, validate, protect. It ends in either a
// validated frame with its protected columns irreversibly transformed, or a
// propagated violation collection.
func EasyValidate(conf *EasyValidateConf) *Pipeline {
	return NewPipeline(
		Step{Name: "preprocess", Transform: EasyPreprocess(conf.Schema)},
		Step{Name: "rename", Transform: RenameColumns{Schema: conf.Schema}},
		Step{Name: "optimize", Transform: OptimizeMemory{Schema: conf.Schema}},
		Step{Name: "validate", Transform: NewValidate(conf.Schema, conf.Handler)},
		Step{Name: "protect", Transform: HashProtected{Schema: conf.Schema, Hash: conf.Hash}},
	)
}
