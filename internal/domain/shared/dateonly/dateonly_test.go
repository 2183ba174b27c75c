package dateonly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesOverflow(t *testing.T) {
	d := New(2026, time.January, 32)
	assert.Equal(t, New(2026, time.February, 1), d)
}

func TestFromTimeUsesLocalCalendarDay(t *testing.T) {
	// 23:30 on the 14th in UTC+3 is still the 14th, even though the UTC
	// instant already belongs to the 14th's evening; the old time.Time-keyed
	// calendar shifted this to the 13th or 15th depending on the server zone.
	loc := time.FixedZone("UTC+3", 3*60*60)
	d := FromTime(time.Date(2026, time.June, 14, 23, 30, 0, 0, loc))
	assert.Equal(t, New(2026, time.June, 14), d)
}

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, New(2026, time.March, 9), d)
	assert.Equal(t, "2026-03-09", d.String())

	_, err = Parse("09/03/2026")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestOrdering(t *testing.T) {
	a := New(2026, time.May, 1)
	b := New(2026, time.May, 2)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.Equal(a))
}

func TestArithmetic(t *testing.T) {
	a := New(2026, time.February, 27)
	assert.Equal(t, New(2026, time.March, 1), a.AddDays(2))
	assert.Equal(t, a.AddDays(1), a.Next())
	assert.Equal(t, 2, a.DaysUntil(New(2026, time.March, 1)))
	assert.Equal(t, -2, New(2026, time.March, 1).DaysUntil(a))
}

func TestTextMarshalling(t *testing.T) {
	d := New(2026, time.December, 31)
	raw, err := d.MarshalText()
	require.NoError(t, err)

	var back Date
	require.NoError(t, back.UnmarshalText(raw))
	assert.Equal(t, d, back)
}
