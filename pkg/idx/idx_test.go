package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)
	require.Len(t, a.String(), 26)
}

func TestNewAtIsSortable(t *testing.T) {
	t.Parallel()

	early := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	late := NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Less(t, early.String(), late.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round trips a generated id", func(t *testing.T) {
		id := New()
		parsed, err := Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := Parse("   ")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := Parse("not-a-ulid")
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	id := NewAt(at)

	require.WithinDuration(t, at, id.Time(), time.Second)
	require.True(t, Zero.Time().IsZero())
}
