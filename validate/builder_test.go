package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-tabular/tabular/schema"
)

func orderSpec() *schema.Spec {
	return &schema.Spec{
		Name:      "order",
		Namespace: "sales",
		Fields: []schema.FieldSpec{
			{Index: 1, Name: "id", Dtype: "uint", Required: true},
			{Index: 2, Name: "total", Dtype: "currency", Symbol: "$"},
			{Index: 3, Name: "status", Dtype: "category", Symbols: []string{"open", "closed"}},
			{Index: 4, Name: "notes", Dtype: "string", Nullable: true, Exclude: true},
		},
		Checks: []schema.Check{
			{Name: CheckInRange, Field: "total", Kwargs: map[string]any{"min": 0.0}},
		},
		Constraints: []schema.Constraint{
			{Name: "pk", Type: schema.ConstraintPrimaryKey, Fields: []string{"id"}},
			{Name: "idx", Type: schema.ConstraintIndex, Fields: []string{"status"}},
		},
	}
}

func TestBuild(t *testing.T) {
	spec := orderSpec()
	require.Nil(t, spec.Normalize())

	s, err := Build(spec)
	require.Nil(t, err)
	require.Equal(t, "sales.order", s.Name)
	require.Equal(t, []string{"id", "total", "status"}, s.Names())

	id, ok := s.Column("id")
	require.True(t, ok)
	require.Equal(t, schema.Uint, id.Kind)
	require.True(t, id.Required)

	total, ok := s.Column("total")
	require.True(t, ok)
	require.Equal(t, schema.Currency, total.Kind)
	require.Len(t, total.checks, 1)
	require.Equal(t, CheckInRange, total.checks[0].name)
}

func TestBuildDropsExcludedFields(t *testing.T) {
	spec := orderSpec()
	require.Nil(t, spec.Normalize())

	s, err := Build(spec)
	require.Nil(t, err)
	_, ok := s.Column("notes")
	require.False(t, ok)
}

func TestBuildSkipsIndexConstraints(t *testing.T) {
	spec := orderSpec()
	require.Nil(t, spec.Normalize())

	s, err := Build(spec)
	require.Nil(t, err)
	require.Len(t, s.Constraints, 1)
	require.Equal(t, schema.ConstraintPrimaryKey, s.Constraints[0].Type)
}

func TestBuildRejectsUnknownCheckField(t *testing.T) {
	spec := &schema.Spec{
		Name:   "bad",
		Fields: []schema.FieldSpec{{Index: 1, Name: "a", Dtype: "int"}},
		Checks: []schema.Check{{Name: CheckInRange, Field: "b", Kwargs: map[string]any{"min": 0.0}}},
	}
	_, err := Build(spec)
	require.NotNil(t, err)
}

func TestBuildRejectsUnknownCheckName(t *testing.T) {
	spec := &schema.Spec{
		Name:   "bad",
		Fields: []schema.FieldSpec{{Index: 1, Name: "a", Dtype: "int"}},
		Checks: []schema.Check{{Name: "sorcery", Field: "a"}},
	}
	_, err := Build(spec)
	require.NotNil(t, err)
}

func TestCompileInRange(t *testing.T) {
	check, err := compileCheck(schema.Check{
		Name:   CheckInRange,
		Field:  "n",
		Kwargs: map[string]any{"min": 1, "max": "10"},
	})
	require.Nil(t, err)
	require.True(t, check.fn("1"))
	require.True(t, check.fn("10"))
	require.False(t, check.fn("0"))
	require.False(t, check.fn("11"))
	require.False(t, check.fn("abc"))

	_, err = compileCheck(schema.Check{Name: CheckInRange, Field: "n"})
	require.NotNil(t, err)
}

func TestCompileIsin(t *testing.T) {
	check, err := compileCheck(schema.Check{
		Name:   CheckIsin,
		Field:  "state",
		Kwargs: map[string]any{"values": []any{"CA", "NY"}},
	})
	require.Nil(t, err)
	require.True(t, check.fn("CA"))
	require.False(t, check.fn("TX"))
}

func TestCompileMatches(t *testing.T) {
	check, err := compileCheck(schema.Check{
		Name:   CheckMatches,
		Field:  "code",
		Kwargs: map[string]any{"pattern": `^[A-Z]{3}$`},
	})
	require.Nil(t, err)
	require.True(t, check.fn("ABC"))
	require.False(t, check.fn("abc"))

	_, err = compileCheck(schema.Check{
		Name:   CheckMatches,
		Field:  "code",
		Kwargs: map[string]any{"pattern": `([`},
	})
	require.NotNil(t, err)
}
