package read

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLReadsObjects(t *testing.T) {
	in := `{"id": 1, "name": "alice", "age": 34}
{"id": 2, "name": "bob", "age": 41}`

	df, err := JSONL(strings.NewReader(in), &Conf{Spec: testSpec(t)})
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name", "age"}, df.Names())
	require.Equal(t, 2, df.Nrow())
	require.Equal(t, []string{"alice", "bob"}, df.Col("name").Records())
	require.Equal(t, []string{"1", "2"}, df.Col("id").Records())
}

func TestJSONLMissingFieldsReadAsMissing(t *testing.T) {
	in := `{"id": 1, "name": "alice"}`

	df, err := JSONL(strings.NewReader(in), &Conf{Spec: testSpec(t)})
	require.Nil(t, err)
	require.True(t, df.Col("age").Elem(0).IsNA())
}

func TestJSONLSkipsBlankLines(t *testing.T) {
	in := "{\"id\": 1, \"name\": \"alice\", \"age\": 34}\n\n{\"id\": 2, \"name\": \"bob\", \"age\": 41}\n"

	df, err := JSONL(strings.NewReader(in), &Conf{Spec: testSpec(t)})
	require.Nil(t, err)
	require.Equal(t, 2, df.Nrow())
}

func TestJSONLRejectsInvalidLines(t *testing.T) {
	in := "{\"id\": 1, \"name\": \"alice\", \"age\": 34}\nnot json\n"

	_, err := JSONL(strings.NewReader(in), &Conf{Spec: testSpec(t)})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestJSONLNeedsSpec(t *testing.T) {
	_, err := JSONL(strings.NewReader("{}"), nil)
	require.NotNil(t, err)
}
