// Package transform contains concrete table transformations and the
// Pipeline that composes them. Every transform consumes and produces gota
// dataframes and satisfies the root Transform contract; schema-driven
// transforms are configured with a validation Schema built by the validate
// package.
package transform

import (
	"context"

	"github.com/go-gota/gota/dataframe"

	"github.com/go-tabular/tabular"
	terrors "github.com/go-tabular/tabular/errors"
)

// Step is a named pipeline step. The name identifies the step in errors and
// logs; it plays no part in dispatch.
type Step struct {
	Name      string
	Transform tabular.Transform
}

// Pipeline applies an ordered sequence of named Transforms, threading the
// output frame of each step into the next. The step sequence is fixed once
// the pipeline runs; errors from any step abort the remaining steps.
//
// A Pipeline is itself a Transform, so pipelines nest as steps of larger
// pipelines.
type Pipeline struct {
	steps []Step
}

// NewPipeline returns a Pipeline over the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Add appends a named step and returns the pipeline for chaining.
func (p *Pipeline) Add(name string, t tabular.Transform) *Pipeline {
	p.steps = append(p.steps, Step{Name: name, Transform: t})
	return p
}

// Steps returns a copy of the step sequence.
func (p *Pipeline) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// Fit is a no-op; each step fits itself during FitTransform.
func (p *Pipeline) Fit(context.Context, dataframe.DataFrame) error {
	return nil
}

// Transform runs the pipeline eagerly.
func (p *Pipeline) Transform(ctx context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	return p.FitTransform(ctx, x)
}

type runConf struct {
	lazy bool
}

// Option configures one pipeline run.
type Option func(*runConf)

// Lazy permits deferred evaluation: the frame's accumulated error state is
// resolved once after the final step instead of after every step. It carries
// no optimization guarantee beyond deferring that resolution.
func Lazy(lazy bool) Option {
	return func(c *runConf) { c.lazy = lazy }
}

// FitTransform fits and applies every step in order. Step errors are wrapped
// as StepError and abort the run; there is no partial-pipeline recovery.
func (p *Pipeline) FitTransform(ctx context.Context, x dataframe.DataFrame, opts ...Option) (dataframe.DataFrame, error) {
	var conf runConf
	for _, opt := range opts {
		opt(&conf)
	}

	y := x
	for _, step := range p.steps {
		var err error
		y, err = tabular.FitTransform(ctx, step.Transform, y)
		if err != nil {
			return dataframe.DataFrame{}, terrors.StepError{Step: step.Name, Err: err}
		}
		if !conf.lazy && y.Err != nil {
			return dataframe.DataFrame{}, terrors.StepError{Step: step.Name, Err: y.Err}
		}
	}
	if y.Err != nil {
		return dataframe.DataFrame{}, y.Err
	}
	return y, nil
}
