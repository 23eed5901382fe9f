package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal plain days", "2024-03-01", "2024-03-01", true},
		{"different days", "2024-03-01", "2024-03-02", false},
		{"datetime vs plain day", "2024-03-01T18:45:12Z", "2024-03-01", true},
		{"datetime with nanos", "2024-03-01T18:45:12.345Z", "2024-03-01", true},
		{"space-separated datetime", "2024-03-01 08:00:00", "2024-03-01", true},
		{"times on same day", "2024-03-01T01:00:00Z", "2024-03-01T23:59:59Z", true},
		{"unparseable left", "yesterday", "2024-03-01", false},
		{"unparseable both", "garbage", "garbage", false},
		{"empty", "", "2024-03-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameDay(tt.a, tt.b))
		})
	}
}

func TestDayTruncates(t *testing.T) {
	d, ok := Day("2024-03-01T18:45:12Z")
	require.True(t, ok)
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 1, d.Day())
}

func TestMonthRange(t *testing.T) {
	first, last, err := MonthRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", Format(first))
	assert.Equal(t, "2024-02-29", Format(last), "2024 is a leap year")

	first, last, err = MonthRange("2023-12")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-01", Format(first))
	assert.Equal(t, "2023-12-31", Format(last))
}

func TestMonthRangeInvalid(t *testing.T) {
	for _, in := range []string{"", "2024", "2024-13", "March 2024"} {
		_, _, err := MonthRange(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestInRange(t *testing.T) {
	first, last, err := MonthRange("2024-03")
	require.NoError(t, err)

	assert.True(t, InRange("2024-03-01", first, last))
	assert.True(t, InRange("2024-03-31T23:00:00Z", first, last))
	assert.False(t, InRange("2024-02-29", first, last))
	assert.False(t, InRange("2024-04-01", first, last))
	assert.False(t, InRange("not a date", first, last))
}
