package booking

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/listings"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/dateonly"
	"staybook/internal/domain/shared/events"
)

var (
	ErrBookingNotFound = errors.New("booking: not found")
	ErrInvalidGuests   = errors.New("booking: guests count must be positive")
	ErrInvalidRange    = errors.New("booking: check-out must be after check-in")
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrGuestRequired   = errors.New("booking: guest id required")
)

type BookingID string

type BookingState string

const (
	StatePending   BookingState = "PENDING"
	StateConfirmed BookingState = "CONFIRMED"
	StateDeclined  BookingState = "DECLINED"
	StateCancelled BookingState = "CANCELLED"
)

type Booking struct {
	ID        BookingID
	ListingID listings.ListingID
	GuestID   string
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
	Guests    int
	Price     pricing.StayBreakdown
	State     BookingState
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
}

type CreateParams struct {
	ID        BookingID
	ListingID listings.ListingID
	GuestID   string
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
	Guests    int
	Price     pricing.StayBreakdown
	Now       time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if !params.CheckIn.Before(params.CheckOut) {
		return nil, ErrInvalidRange
	}
	if err := params.Price.RecalculateTotal(); err != nil {
		return nil, err
	}
	now := params.Now.UTC()
	b := &Booking{
		ID:        params.ID,
		ListingID: params.ListingID,
		GuestID:   params.GuestID,
		CheckIn:   params.CheckIn,
		CheckOut:  params.CheckOut,
		Guests:    params.Guests,
		Price:     params.Price.Copy(),
		State:     StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.Record(BookingRequested{
		BookingID: b.ID,
		ListingID: b.ListingID,
		GuestID:   b.GuestID,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		Guests:    b.Guests,
		Total:     b.Price.Total,
		At:        now,
	})
	return b, nil
}

func (b *Booking) Nights() int {
	return b.CheckIn.DaysUntil(b.CheckOut)
}

func (b *Booking) Confirm(now time.Time) error {
	if b.State != StatePending {
		return ErrInvalidState
	}
	b.State = StateConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, ListingID: b.ListingID, CheckIn: b.CheckIn, CheckOut: b.CheckOut, Total: b.Price.Total, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Decline(reason string, now time.Time) error {
	if b.State != StatePending {
		return ErrInvalidState
	}
	b.State = StateDeclined
	b.UpdatedAt = now.UTC()
	b.Record(BookingDeclined{BookingID: b.ID, Reason: reason, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	switch b.State {
	case StatePending, StateConfirmed:
	default:
		return ErrInvalidState
	}
	b.State = StateCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, ListingID: b.ListingID, CheckIn: b.CheckIn, CheckOut: b.CheckOut, Reason: reason, At: b.UpdatedAt})
	return nil
}
