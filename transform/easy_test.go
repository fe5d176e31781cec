package transform

import (
	"context"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"

	"github.com/go-tabular/tabular/schema"
	"github.com/go-tabular/tabular/validate"
)

func accountSpec() *schema.Spec {
	return &schema.Spec{
		Name:      "account",
		Namespace: "billing",
		Fields: []schema.FieldSpec{
			{Index: 1, Name: "id", Title: "Account ID", Dtype: "int", Required: true},
			{Index: 2, Name: "holder", Title: "Account Holder", Dtype: "string", Protect: true},
			{Index: 3, Name: "active", Title: "Active", Dtype: "bool", Nullable: true},
			{Index: 4, Name: "balance", Title: "Balance", Dtype: "currency", Nullable: true},
		},
	}
}

func TestEasyPreprocess(t *testing.T) {
	s := buildSchema(t, accountSpec())

	x := stringFrame([][]string{
		{"Active", "Balance"},
		{" YES ", " $1,500.00 "},
		{"n", "$.50"},
	})

	y, err := EasyPreprocess(s).FitTransform(context.Background(), x)
	require.Nil(t, err)
	require.Equal(t, []string{"true", "false"}, y.Col("Active").Records())
	require.Equal(t, []string{"1500.00", "0.50"}, y.Col("Balance").Records())
}

func TestEasyValidateEndToEnd(t *testing.T) {
	s := buildSchema(t, accountSpec())

	x := stringFrame([][]string{
		{"Account ID", "Account Holder", "Active", "Balance"},
		{" 1 ", "alice", "YES", "$1,200.50"},
		{"2", "bob", "no", " $99 "},
	})

	p := EasyValidate(&EasyValidateConf{Schema: s, Handler: Raise})
	y, err := p.FitTransform(context.Background(), x)
	require.Nil(t, err)

	// Renamed to canonical names, in schema order.
	require.Equal(t, []string{"id", "holder", "active", "balance"}, y.Names())

	// Optimized to declared storage types.
	require.Equal(t, series.Int, y.Col("id").Type())
	require.Equal(t, series.Bool, y.Col("active").Type())
	require.Equal(t, series.Float, y.Col("balance").Type())

	// Protected column is hashed.
	holders := y.Col("holder").Records()
	require.NotEqual(t, "alice", holders[0])
	require.Len(t, holders[0], 64)
}

func TestEasyValidateRaisesOnViolations(t *testing.T) {
	s := buildSchema(t, accountSpec())

	x := stringFrame([][]string{
		{"Account ID", "Account Holder"},
		{"not a number", "alice"},
	})

	p := EasyValidate(&EasyValidateConf{Schema: s, Handler: Raise})
	_, err := p.FitTransform(context.Background(), x)
	require.NotNil(t, err)

	var errs *validate.Errors
	require.ErrorAs(t, err, &errs)
	require.False(t, errs.Empty())
}

func TestEasyValidateDropsBadRows(t *testing.T) {
	s := buildSchema(t, accountSpec())

	x := stringFrame([][]string{
		{"Account ID", "Account Holder", "Active", "Balance"},
		{"1", "alice", "YES", "$10"},
		{"oops", "bob", "no", "$20"},
	})

	p := EasyValidate(&EasyValidateConf{
		Schema:  s,
		Handler: func(*validate.Errors) error { return nil },
	})
	y, err := p.FitTransform(context.Background(), x)
	require.Nil(t, err)
	require.Equal(t, 1, y.Nrow())
}
