package booking

import (
	"time"

	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/dateonly"
	"staybook/internal/domain/shared/money"
)

type BookingRequested struct {
	BookingID BookingID
	ListingID listings.ListingID
	GuestID   string
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
	Guests    int
	Total     money.Money
	At        time.Time
}

func (e BookingRequested) EventName() string { return "booking.requested" }
func (e BookingRequested) AggregateID() string { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingConfirmed struct {
	BookingID BookingID
	ListingID listings.ListingID
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
	Total     money.Money
	At        time.Time
}

func (e BookingConfirmed) EventName() string { return "booking.confirmed" }
func (e BookingConfirmed) AggregateID() string { return string(e.BookingID) }
func (e BookingConfirmed) OccurredAt() time.Time { return e.At }

type BookingDeclined struct {
	BookingID BookingID
	Reason    string
	At        time.Time
}

func (e BookingDeclined) EventName() string { return "booking.declined" }
func (e BookingDeclined) AggregateID() string { return string(e.BookingID) }
func (e BookingDeclined) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID
	ListingID listings.ListingID
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
	Reason    string
	At        time.Time
}

func (e BookingCancelled) EventName() string { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }
