package transform

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/validate"
)

// Hasher irreversibly transforms one protected value.
type Hasher func(value string) string

// SHA256 returns the hex SHA-256 digest hasher, the default for protected
// attributes.
func SHA256() Hasher {
	return func(value string) string {
		sum := sha256.Sum256([]byte(value))
		return hex.EncodeToString(sum[:])
	}
}

// XXHash returns a hasher over xxhash digests. Faster than SHA256 but not a
// cryptographic hash; suitable when protected values only need to stay
// joinable, not resist brute force.
func XXHash() Hasher {
	return func(value string) string {
		return fmt.Sprintf("%016x", xxhash.Sum64String(value))
	}
}

// HashProtected replaces the values of every schema-protected column present
// in the frame with their digests. Missing cells stay missing; all other
// columns pass through unchanged.
type HashProtected struct {
	tabular.NopFit
	Schema *validate.Schema
	// Hash overrides the digest function. Nil means SHA256.
	Hash Hasher
}

// Transform hashes the protected columns of x. Row count is preserved.
func (t HashProtected) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	hash := t.Hash
	if hash == nil {
		hash = SHA256()
	}
	return protect(x, t.Schema, hash)
}

// MaskProtected replaces the values of every schema-protected column with a
// run of '*' of equal length.
type MaskProtected struct {
	tabular.NopFit
	Schema *validate.Schema
}

// Transform masks the protected columns of x. Row count is preserved.
func (t MaskProtected) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	return protect(x, t.Schema, func(value string) string {
		return strings.Repeat("*", utf8.RuneCountInString(value))
	})
}

func protect(x dataframe.DataFrame, s *validate.Schema, fn Hasher) (dataframe.DataFrame, error) {
	present := map[string]bool{}
	for _, name := range x.Names() {
		present[name] = true
	}

	y := x
	for _, name := range s.Protected() {
		if !present[name] {
			continue
		}
		col := y.Col(name)
		records := col.Records()
		for i := range records {
			if col.Elem(i).IsNA() {
				records[i] = "NaN"
				continue
			}
			records[i] = fn(records[i])
		}
		y = y.Mutate(series.New(records, series.String, name))
	}
	return y, y.Err
}
