package tabular

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
)

type upper struct {
	NopFit
	column string
}

func (t upper) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	col := x.Col(t.column)
	records := col.Records()
	for i := range records {
		records[i] = records[i] + "!"
	}
	return x.Mutate(series.New(records, series.String, t.column)), nil
}

type fitFails struct{}

func (fitFails) Fit(context.Context, dataframe.DataFrame) error {
	return fmt.Errorf("refusing to fit")
}

func (fitFails) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	return x, nil
}

func TestFitTransform(t *testing.T) {
	x := dataframe.LoadRecords(
		[][]string{{"name"}, {"alice"}},
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)

	y, err := FitTransform(context.Background(), upper{column: "name"}, x)
	require.Nil(t, err)
	require.Equal(t, []string{"alice!"}, y.Col("name").Records())
}

func TestFitTransformStopsOnFitError(t *testing.T) {
	x := dataframe.LoadRecords(
		[][]string{{"name"}, {"alice"}},
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)

	_, err := FitTransform(context.Background(), fitFails{}, x)
	require.NotNil(t, err)
}
