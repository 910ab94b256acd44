package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUTC(t *testing.T) {
	want := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"zulu", "2025-01-01T09:00:00Z", want},
		{"explicit offset", "2025-01-01T09:00:00+00:00", want},
		{"doubled marker", "2025-01-01T09:00:00+00:00Z", want},
		{"lowercase zulu", "2025-01-01T09:00:00z", want},
		{"no zone", "2025-01-01T09:00:00", want},
		{"no seconds", "2025-01-01T09:00", want},
		{"space separated", "2025-01-01 09:00:00", want},
		{"fractional", "2025-01-01T09:00:00.250000Z", want.Add(250 * time.Millisecond)},
		{"other offset", "2025-01-01T11:00:00+02:00", want},
		{"surrounding spaces", "  2025-01-01T09:00:00Z ", want},
		{"date only", "2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseUTC(c.input)
			require.NoError(t, err)
			assert.True(t, c.want.Equal(got), "got %s want %s", got, c.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseUTCInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "2025-13-01T00:00:00Z", "01-01-2025"} {
		_, err := ParseUTC(input)
		assert.Error(t, err, input)
	}
}

func TestFormatUTCRoundTripsThroughParse(t *testing.T) {
	local := time.FixedZone("WIB", 7*3600)
	in := time.Date(2025, 3, 4, 16, 30, 15, 999, local)

	s := FormatUTC(in)
	assert.Equal(t, "2025-03-04T09:30:15Z", s)

	back, err := ParseUTC(s)
	require.NoError(t, err)
	assert.True(t, in.Truncate(time.Second).Equal(back))
}

func TestFormatPtr(t *testing.T) {
	assert.Nil(t, FormatPtr(nil))
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-01T00:00:00Z", *FormatPtr(&ts))
}

func TestDateHelpers(t *testing.T) {
	ts := time.Date(2025, 1, 1, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	assert.Equal(t, "2025-01-02", DateOf(ts))
	assert.True(t, SameDate(ts, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), StartOfDay(ts))

	// 2025-01-01 is a Wednesday.
	assert.Equal(t, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), StartOfWeek(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), StartOfWeek(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), StartOfWeek(time.Date(2025, 1, 5, 23, 0, 0, 0, time.UTC)))

	d, err := ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), d)
	_, err = ParseDate("28-02-2025")
	assert.Error(t, err)
}
