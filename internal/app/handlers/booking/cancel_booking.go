package booking

import (
	"context"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	"staybook/internal/app/policies"
	domainavailability "staybook/internal/domain/availability"
	domainbooking "staybook/internal/domain/booking"
)

const cancelBookingKey = "booking.cancel"

// CancelBookingCommand cancels a pending or confirmed booking and reopens
// its nights.
type CancelBookingCommand struct {
	BookingID string
	Reason    string
}

func (c CancelBookingCommand) Key() string { return cancelBookingKey }

type CancelBookingHandler struct {
	Bookings  domainbooking.Repository
	Calendars domainavailability.Repository
	Publisher policies.EventPublisher
	Now       func() time.Time
}

func (h *CancelBookingHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (dto.BookingSummary, error) {
	b, err := h.Bookings.ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return dto.BookingSummary{}, err
	}
	now := h.now()
	if err := b.Cancel(cmd.Reason, now); err != nil {
		return dto.BookingSummary{}, err
	}
	if err := h.Bookings.Save(ctx, b); err != nil {
		return dto.BookingSummary{}, err
	}

	calendar, err := h.Calendars.Calendar(ctx, string(b.ListingID))
	if err == nil {
		calendar.ReleaseBooking(b.CheckIn, b.CheckOut, cmd.BookingID, now)
		if err := h.Calendars.Save(ctx, calendar); err != nil {
			return dto.BookingSummary{}, err
		}
		if h.Publisher != nil {
			_ = h.Publisher.Publish(ctx, calendar.PendingEvents())
			calendar.ClearEvents()
		}
	}

	if h.Publisher != nil {
		_ = h.Publisher.Publish(ctx, b.PendingEvents())
		b.ClearEvents()
	}
	return dto.MapBookingSummary(b), nil
}

func (h *CancelBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ commands.Handler[CancelBookingCommand, dto.BookingSummary] = (*CancelBookingHandler)(nil)
