package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/shared/dateonly"
)

func day(d int) dateonly.Date {
	return dateonly.New(2026, time.August, d)
}

func openDays(days ...int) []Record {
	records := make([]Record, 0, len(days))
	for _, d := range days {
		records = append(records, Record{Day: day(d), Available: true})
	}
	return records
}

func TestMissingRecordMeansUnavailable(t *testing.T) {
	// Regression pin: an unknown day must read as closed. Treating missing
	// calendar data as bookable produced real double-bookings.
	c := NewCalendar("lst-1", openDays(1, 2))

	assert.True(t, c.IsDateAvailable(day(1)))
	assert.False(t, c.IsDateAvailable(day(3)), "no record for the day")
	assert.False(t, c.IsDateAvailable(dateonly.New(2031, time.January, 1)))
}

func TestExplicitlyClosedDay(t *testing.T) {
	c := NewCalendar("lst-1", []Record{{Day: day(1), Available: false}})
	assert.False(t, c.IsDateAvailable(day(1)))
}

func TestRangeIsAllOrNothing(t *testing.T) {
	c := NewCalendar("lst-1", append(openDays(1, 2, 4), Record{Day: day(3), Available: false}))

	assert.True(t, c.IsRangeAvailable(day(1), day(3)), "nights 1 and 2")
	assert.False(t, c.IsRangeAvailable(day(1), day(4)), "night 3 is closed")
	assert.False(t, c.IsRangeAvailable(day(3), day(5)))
}

func TestRangeCheckoutDayNeedNotBeOpen(t *testing.T) {
	// [1, 3) occupies nights 1 and 2; the guest leaves on the 3rd.
	c := NewCalendar("lst-1", openDays(1, 2))
	assert.True(t, c.IsRangeAvailable(day(1), day(3)))
}

func TestSingleNightRange(t *testing.T) {
	c := NewCalendar("lst-1", openDays(5))
	assert.True(t, c.IsRangeAvailable(day(5), day(6)))
	assert.False(t, c.IsRangeAvailable(day(6), day(7)))
}

func TestInvertedAndZeroLengthRanges(t *testing.T) {
	c := NewCalendar("lst-1", openDays(1, 2, 3))

	assert.False(t, c.IsRangeAvailable(day(3), day(1)))
	assert.False(t, c.IsRangeAvailable(day(2), day(2)))
	assert.Zero(t, c.RangePriceCents(day(3), day(1), 4000))
	assert.Zero(t, c.RangePriceCents(day(2), day(2), 4000))
}

func TestRangePriceSumsOverrides(t *testing.T) {
	c := NewCalendar("lst-1", []Record{
		{Day: day(1), Available: true},
		{Day: day(2), Available: true, OverridePriceCents: 5000, HasOverridePrice: true},
		{Day: day(3), Available: true},
	})

	total := c.RangePriceCents(day(1), day(4), 4000)
	assert.Equal(t, int64(4000+5000+4000), total)
}

func TestRangePriceFallsBackToBaseForUnknownDays(t *testing.T) {
	c := NewCalendar("lst-1", nil)
	// Pricing does not gate on availability; the validator does.
	assert.Equal(t, int64(8000), c.RangePriceCents(day(1), day(3), 4000))
}

func TestFirstBlockedDay(t *testing.T) {
	c := NewCalendar("lst-1", append(openDays(1), Record{Day: day(2), Available: false}))

	blocked, found := c.FirstBlockedDay(day(1), day(4))
	require.True(t, found)
	assert.Equal(t, day(2), blocked)

	_, found = c.FirstBlockedDay(day(1), day(2))
	assert.False(t, found)
}

func TestBlockForBookingClosesNights(t *testing.T) {
	now := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	c := NewCalendar("lst-1", openDays(1, 2, 3))

	require.NoError(t, c.BlockForBooking(day(1), day(3), "bkg-1", now))
	assert.False(t, c.IsDateAvailable(day(1)))
	assert.False(t, c.IsDateAvailable(day(2)))
	assert.True(t, c.IsDateAvailable(day(3)), "checkout day stays open")

	names := eventNames(c)
	assert.Contains(t, names, "availability.nights_blocked")
}

func TestBlockForBookingRejectsOverlap(t *testing.T) {
	now := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	c := NewCalendar("lst-1", openDays(1, 2, 3))
	require.NoError(t, c.BlockForBooking(day(1), day(3), "bkg-1", now))

	err := c.BlockForBooking(day(2), day(4), "bkg-2", now)
	assert.ErrorIs(t, err, ErrNightUnavailable)
	assert.Contains(t, eventNames(c), "availability.overbooking_prevented")
}

func TestReleaseBookingReopensNights(t *testing.T) {
	now := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	c := NewCalendar("lst-1", openDays(1, 2))
	require.NoError(t, c.BlockForBooking(day(1), day(3), "bkg-1", now))

	c.ReleaseBooking(day(1), day(3), "bkg-1", now)
	assert.True(t, c.IsRangeAvailable(day(1), day(3)))
}

func TestReleasePreservesOverridePrice(t *testing.T) {
	now := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	c := NewCalendar("lst-1", []Record{
		{Day: day(1), Available: true, OverridePriceCents: 9000, HasOverridePrice: true},
	})
	require.NoError(t, c.BlockForBooking(day(1), day(2), "bkg-1", now))
	c.ReleaseBooking(day(1), day(2), "bkg-1", now)

	assert.Equal(t, int64(9000), c.RangePriceCents(day(1), day(2), 4000))
}

func TestRecordsSortedChronologically(t *testing.T) {
	c := NewCalendar("lst-1", []Record{
		{Day: day(3), Available: true},
		{Day: day(1), Available: true},
		{Day: day(2), Available: false},
	})
	records := c.Records()
	require.Len(t, records, 3)
	assert.Equal(t, day(1), records[0].Day)
	assert.Equal(t, day(2), records[1].Day)
	assert.Equal(t, day(3), records[2].Day)
}

func eventNames(c *Calendar) []string {
	var names []string
	for _, e := range c.PendingEvents() {
		names = append(names, e.EventName())
	}
	return names
}
