package availability

import (
	"time"

	"staybook/internal/domain/shared/dateonly"
)

type CalendarDayUpdated struct {
	ListingID string
	Day       dateonly.Date
	Available bool
	At        time.Time
}

func (e CalendarDayUpdated) EventName() string { return "availability.day_updated" }
func (e CalendarDayUpdated) AggregateID() string { return e.ListingID }
func (e CalendarDayUpdated) OccurredAt() time.Time { return e.At }

type CalendarRangeOpened struct {
	ListingID string
	From      dateonly.Date
	To        dateonly.Date
	At        time.Time
}

func (e CalendarRangeOpened) EventName() string { return "availability.range_opened" }
func (e CalendarRangeOpened) AggregateID() string { return e.ListingID }
func (e CalendarRangeOpened) OccurredAt() time.Time { return e.At }

type NightsBlocked struct {
	ListingID string
	BookingID string
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
	At        time.Time
}

func (e NightsBlocked) EventName() string { return "availability.nights_blocked" }
func (e NightsBlocked) AggregateID() string { return e.ListingID }
func (e NightsBlocked) OccurredAt() time.Time { return e.At }

type NightsReleased struct {
	ListingID string
	BookingID string
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
	At        time.Time
}

func (e NightsReleased) EventName() string { return "availability.nights_released" }
func (e NightsReleased) AggregateID() string { return e.ListingID }
func (e NightsReleased) OccurredAt() time.Time { return e.At }

type OverbookingPrevented struct {
	ListingID string
	BookingID string
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
	At        time.Time
}

func (e OverbookingPrevented) EventName() string { return "availability.overbooking_prevented" }
func (e OverbookingPrevented) AggregateID() string { return e.ListingID }
func (e OverbookingPrevented) OccurredAt() time.Time { return e.At }
