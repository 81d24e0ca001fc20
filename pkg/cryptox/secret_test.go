package cryptox

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	var gen SecretGenerator

	t.Run("rejects non-positive sizes", func(t *testing.T) {
		_, err := gen.Generate(0)
		require.Error(t, err)

		_, err = gen.Generate(-1)
		require.Error(t, err)
	})

	t.Run("output length is deterministic per size", func(t *testing.T) {
		for _, size := range []int{1, ClientIDSize, ClientSecretSize, 32} {
			want := base64.RawURLEncoding.EncodedLen(size)

			s, err := gen.Generate(size)
			require.NoError(t, err)
			require.Len(t, s, want, "size %d", size)
		}
	})

	t.Run("uses only the URL-safe alphabet", func(t *testing.T) {
		const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

		for range 50 {
			s, err := gen.Generate(ClientSecretSize)
			require.NoError(t, err)

			require.NotContains(t, s, "+")
			require.NotContains(t, s, "/")
			require.NotContains(t, s, "=")
			for _, c := range s {
				require.Contains(t, alphabet, string(c))
			}
		}
	})

	t.Run("independent invocations differ", func(t *testing.T) {
		a, err := gen.Generate(ClientSecretSize)
		require.NoError(t, err)

		b, err := gen.Generate(ClientSecretSize)
		require.NoError(t, err)

		require.NotEqual(t, a, b)
	})

	t.Run("honours an injected deterministic source", func(t *testing.T) {
		seed := bytes.Repeat([]byte{0xAB}, ClientIDSize)
		det := SecretGenerator{Rand: bytes.NewReader(seed)}

		s, err := det.Generate(ClientIDSize)
		require.NoError(t, err)
		require.Equal(t, base64.RawURLEncoding.EncodeToString(seed), s)
	})

	t.Run("fails when the source is exhausted", func(t *testing.T) {
		det := SecretGenerator{Rand: strings.NewReader("abc")}

		_, err := det.Generate(ClientSecretSize)
		require.Error(t, err)
	})
}
