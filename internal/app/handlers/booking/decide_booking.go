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

const (
	confirmBookingKey = "booking.confirm"
	declineBookingKey = "booking.decline"
)

// ConfirmBookingCommand is the host accepting a pending request. The nights
// are already blocked since the request, so only the state moves.
type ConfirmBookingCommand struct {
	BookingID string
}

func (c ConfirmBookingCommand) Key() string { return confirmBookingKey }

type ConfirmBookingHandler struct {
	Bookings  domainbooking.Repository
	Publisher policies.EventPublisher
	Now       func() time.Time
}

func (h *ConfirmBookingHandler) Handle(ctx context.Context, cmd ConfirmBookingCommand) (dto.BookingSummary, error) {
	b, err := h.Bookings.ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return dto.BookingSummary{}, err
	}
	if err := b.Confirm(h.now()); err != nil {
		return dto.BookingSummary{}, err
	}
	if err := h.Bookings.Save(ctx, b); err != nil {
		return dto.BookingSummary{}, err
	}
	if h.Publisher != nil {
		_ = h.Publisher.Publish(ctx, b.PendingEvents())
		b.ClearEvents()
	}
	return dto.MapBookingSummary(b), nil
}

func (h *ConfirmBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// DeclineBookingCommand is the host turning a pending request down; the
// blocked nights reopen.
type DeclineBookingCommand struct {
	BookingID string
	Reason    string
}

func (c DeclineBookingCommand) Key() string { return declineBookingKey }

type DeclineBookingHandler struct {
	Bookings  domainbooking.Repository
	Calendars domainavailability.Repository
	Publisher policies.EventPublisher
	Now       func() time.Time
}

func (h *DeclineBookingHandler) Handle(ctx context.Context, cmd DeclineBookingCommand) (dto.BookingSummary, error) {
	b, err := h.Bookings.ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return dto.BookingSummary{}, err
	}
	now := h.now()
	if err := b.Decline(cmd.Reason, now); err != nil {
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

func (h *DeclineBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var (
	_ commands.Handler[ConfirmBookingCommand, dto.BookingSummary] = (*ConfirmBookingHandler)(nil)
	_ commands.Handler[DeclineBookingCommand, dto.BookingSummary] = (*DeclineBookingHandler)(nil)
)
