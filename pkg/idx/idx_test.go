package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewProducesValidIDs(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)

	_, err := Parse(a.String())
	require.NoError(t, err)
}

func TestIDsSortByTime(t *testing.T) {
	t.Parallel()

	earlier := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	later := NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Less(t, earlier.String(), later.String())
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "not-a-ulid", "0000"} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrInvalid)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)
	id := NewAt(at)

	// ULID time resolution is milliseconds.
	require.WithinDuration(t, at, id.Time(), time.Millisecond)
}
