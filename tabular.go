package tabular

import (
	"context"

	"github.com/go-gota/gota/dataframe"
)

// Transform is a single unit of table manipulation. Fit learns any state the
// transformation needs from a frame, and Transform maps one frame to another.
// A Transform must not mutate its input frame; filtering transforms document
// that they drop rows, all others preserve row identity.
type Transform interface {
	Fit(ctx context.Context, x dataframe.DataFrame) error
	Transform(ctx context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error)
}

// NopFit is an embeddable no-op Fit for stateless Transforms.
type NopFit struct{}

// Fit does nothing.
func (NopFit) Fit(context.Context, dataframe.DataFrame) error { return nil }

// FitTransform fits t on x and then transforms x with the fitted state.
func FitTransform(ctx context.Context, t Transform, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	if err := t.Fit(ctx, x); err != nil {
		return dataframe.DataFrame{}, err
	}
	return t.Transform(ctx, x)
}
