package availability

import (
	"context"
	"errors"
	"sort"
	"time"

	"staybook/internal/domain/shared/dateonly"
	"staybook/internal/domain/shared/events"
)

var (
	ErrCalendarNotFound = errors.New("availability: calendar not found")
	ErrNightUnavailable = errors.New("availability: one or more nights are unavailable")
)

// Record is one calendar day of one listing. Availability is an explicit
// flag: a day with no record at all is treated as unavailable, never as free.
type Record struct {
	Day                dateonly.Date
	Available          bool
	OverridePriceCents int64
	HasOverridePrice   bool
}

// Calendar is the per-listing day calendar. Hosts open and close days and
// set per-day price overrides; bookings close the nights they occupy.
type Calendar struct {
	ListingID string
	Version   int64
	days      map[dateonly.Date]Record
	events.EventRecorder
}

func NewCalendar(listingID string, records []Record) *Calendar {
	c := &Calendar{ListingID: listingID, days: make(map[dateonly.Date]Record, len(records))}
	for _, r := range records {
		c.days[r.Day] = r
	}
	return c
}

// Records returns the calendar days sorted chronologically.
func (c *Calendar) Records() []Record {
	out := make([]Record, 0, len(c.days))
	for _, r := range c.days {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// IsDateAvailable reports whether a single day can be booked. Fail-closed:
// an unknown day is unavailable. Treating unknown as available has caused
// real double-bookings before; do not invert this.
func (c *Calendar) IsDateAvailable(day dateonly.Date) bool {
	record, ok := c.days[day]
	if !ok {
		return false
	}
	return record.Available
}

// IsRangeAvailable checks a stay over [checkIn, checkOut). The checkout day
// itself is not occupied and does not need to be open. Inverted or
// zero-length ranges are invalid and read as unavailable.
func (c *Calendar) IsRangeAvailable(checkIn, checkOut dateonly.Date) bool {
	if !checkIn.Before(checkOut) {
		return false
	}
	for day := checkIn; day.Before(checkOut); day = day.Next() {
		if !c.IsDateAvailable(day) {
			return false
		}
	}
	return true
}

// FirstBlockedDay returns the earliest unavailable night in [checkIn,
// checkOut), if any, for error reporting in booking flows.
func (c *Calendar) FirstBlockedDay(checkIn, checkOut dateonly.Date) (dateonly.Date, bool) {
	if !checkIn.Before(checkOut) {
		return checkIn, true
	}
	for day := checkIn; day.Before(checkOut); day = day.Next() {
		if !c.IsDateAvailable(day) {
			return day, true
		}
	}
	return dateonly.Date{}, false
}

// RangePriceCents sums the per-night price over [checkIn, checkOut): the
// day's override when one is set, the listing base rate otherwise. This is
// the pre-fee subtotal; service and cleaning fees land on top elsewhere.
func (c *Calendar) RangePriceCents(checkIn, checkOut dateonly.Date, basePriceCents int64) int64 {
	if !checkIn.Before(checkOut) {
		return 0
	}
	var total int64
	for day := checkIn; day.Before(checkOut); day = day.Next() {
		if record, ok := c.days[day]; ok && record.HasOverridePrice {
			total += record.OverridePriceCents
			continue
		}
		total += basePriceCents
	}
	return total
}

// SetDay upserts a single day's availability and optional price override.
func (c *Calendar) SetDay(record Record, now time.Time) {
	c.days[record.Day] = record
	c.Record(CalendarDayUpdated{
		ListingID: c.ListingID,
		Day:       record.Day,
		Available: record.Available,
		At:        now.UTC(),
	})
}

// OpenRange marks every day in [from, to) available at the base rate.
func (c *Calendar) OpenRange(from, to dateonly.Date, now time.Time) {
	for day := from; day.Before(to); day = day.Next() {
		c.days[day] = Record{Day: day, Available: true}
	}
	c.Record(CalendarRangeOpened{ListingID: c.ListingID, From: from, To: to, At: now.UTC()})
}

// BlockForBooking closes the nights of [checkIn, checkOut) for a confirmed
// booking. Re-validates availability under the aggregate so a racing booking
// cannot close the same nights twice.
func (c *Calendar) BlockForBooking(checkIn, checkOut dateonly.Date, bookingID string, now time.Time) error {
	if !c.IsRangeAvailable(checkIn, checkOut) {
		c.Record(OverbookingPrevented{ListingID: c.ListingID, BookingID: bookingID, CheckIn: checkIn, CheckOut: checkOut, At: now.UTC()})
		return ErrNightUnavailable
	}
	for day := checkIn; day.Before(checkOut); day = day.Next() {
		record := c.days[day]
		record.Day = day
		record.Available = false
		c.days[day] = record
	}
	c.Record(NightsBlocked{ListingID: c.ListingID, BookingID: bookingID, CheckIn: checkIn, CheckOut: checkOut, At: now.UTC()})
	return nil
}

// ReleaseBooking reopens the nights of a cancelled booking.
func (c *Calendar) ReleaseBooking(checkIn, checkOut dateonly.Date, bookingID string, now time.Time) {
	for day := checkIn; day.Before(checkOut); day = day.Next() {
		record, ok := c.days[day]
		if !ok {
			record = Record{Day: day}
		}
		record.Available = true
		c.days[day] = record
	}
	c.Record(NightsReleased{ListingID: c.ListingID, BookingID: bookingID, CheckIn: checkIn, CheckOut: checkOut, At: now.UTC()})
}

// Repository loads and persists per-listing calendars.
type Repository interface {
	Calendar(ctx context.Context, listingID string) (*Calendar, error)
	Save(ctx context.Context, calendar *Calendar) error
}
