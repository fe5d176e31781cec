package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	terrors "github.com/go-tabular/tabular/errors"
)

const memberYAML = `
name: member
namespace: crm
fields:
  - index: 1
    name: id
    dtype: int
    required: true
  - index: 2
    name: state
    dtype: category
    nullable: true
    symbols: [CA, NY]
`

func localFixture(t *testing.T) *Local {
	t.Helper()
	root := t.TempDir()

	require.Nil(t, os.MkdirAll(filepath.Join(root, "crm"), 0o755))
	require.Nil(t, os.WriteFile(filepath.Join(root, "crm", "member.yaml"), []byte(memberYAML), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignore me"), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(root, "crm", "~$member.yaml"), []byte("lock"), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(root, "broken.yaml"), []byte("fields: {oops"), 0o644))

	reg, err := CreateLocal(&LocalConf{Root: root, Suffix: "yaml"})
	require.Nil(t, err)
	return reg
}

func TestLocalExists(t *testing.T) {
	reg := localFixture(t)
	ctx := context.Background()

	ok, err := reg.Exists(ctx, "crm/member.yaml")
	require.Nil(t, err)
	require.True(t, ok)

	ok, err = reg.Exists(ctx, "crm/missing.yaml")
	require.Nil(t, err)
	require.False(t, ok)
}

func TestLocalKeys(t *testing.T) {
	reg := localFixture(t)

	keys, err := reg.Keys(context.Background())
	require.Nil(t, err)
	require.ElementsMatch(t, []string{"crm/member.yaml", "broken.yaml"}, keys)
}

func TestLocalGet(t *testing.T) {
	reg := localFixture(t)

	spec, err := reg.Get(context.Background(), "crm/member.yaml")
	require.Nil(t, err)
	require.Equal(t, "member", spec.Name)
	require.Equal(t, []string{"id", "state"}, spec.Names())
}

func TestLocalGetMissingKey(t *testing.T) {
	reg := localFixture(t)

	_, err := reg.Get(context.Background(), "crm/missing.yaml")
	require.NotNil(t, err)

	var notFound terrors.KeyNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "crm/missing.yaml", notFound.Key)
}

func TestLocalGetParseFailure(t *testing.T) {
	reg := localFixture(t)

	_, err := reg.Get(context.Background(), "broken.yaml")
	require.NotNil(t, err)

	var parseErr terrors.SchemaParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestLocalUnknownSuffix(t *testing.T) {
	_, err := CreateLocal(&LocalConf{Root: t.TempDir(), Suffix: "toml"})
	require.NotNil(t, err)
}
