package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	pricingapp "staybook/internal/app/handlers/pricing"
	"staybook/internal/app/policies"
	domainavailability "staybook/internal/domain/availability"
	domainbooking "staybook/internal/domain/booking"
	domainlistings "staybook/internal/domain/listings"
	domainpricing "staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/dateonly"
	"staybook/internal/domain/shared/events"
)

const requestBookingKey = "booking.request"

var (
	ErrDatesUnavailable = errors.New("booking: requested dates are not available")
	ErrListingInactive  = errors.New("booking: listing is not accepting bookings")
	ErrStayLength       = errors.New("booking: stay length outside the listing's limits")
)

// RequestBookingCommand creates a booking for concrete dates. The nights are
// validated fail-closed against the calendar and priced from it.
type RequestBookingCommand struct {
	ListingID string
	GuestID   string
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
	Guests    int
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

type RequestBookingHandler struct {
	Listings  domainlistings.Repository
	Calendars domainavailability.Repository
	Rules     domainpricing.RuleRepository
	Bookings  domainbooking.Repository
	Fees      policies.FeeSchedule
	Publisher policies.EventPublisher
	Now       func() time.Time
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (dto.BookingSummary, error) {
	listing, err := h.Listings.ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return dto.BookingSummary{}, err
	}
	if listing.State != domainlistings.ListingActive {
		return dto.BookingSummary{}, ErrListingInactive
	}

	nights := cmd.CheckIn.DaysUntil(cmd.CheckOut)
	if nights < 1 {
		return dto.BookingSummary{}, domainbooking.ErrInvalidRange
	}
	if (listing.MinNights > 0 && nights < listing.MinNights) || (listing.MaxNights > 0 && nights > listing.MaxNights) {
		return dto.BookingSummary{}, ErrStayLength
	}

	calendar, err := h.Calendars.Calendar(ctx, cmd.ListingID)
	if err != nil {
		if errors.Is(err, domainavailability.ErrCalendarNotFound) {
			// No calendar means no open nights; never assume available.
			return dto.BookingSummary{}, ErrDatesUnavailable
		}
		return dto.BookingSummary{}, err
	}
	if !calendar.IsRangeAvailable(cmd.CheckIn, cmd.CheckOut) {
		if blocked, found := calendar.FirstBlockedDay(cmd.CheckIn, cmd.CheckOut); found {
			return dto.BookingSummary{}, fmt.Errorf("%w: %s", ErrDatesUnavailable, blocked)
		}
		return dto.BookingSummary{}, ErrDatesUnavailable
	}

	rules, err := h.Rules.ByListing(ctx, cmd.ListingID)
	if err != nil {
		rules = nil
	}
	breakdown, err := pricingapp.BuildStayBreakdown(listing, calendar, rules, h.Fees, cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return dto.BookingSummary{}, err
	}

	now := h.now()
	created, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:        domainbooking.BookingID(uuid.NewString()),
		ListingID: listing.ID,
		GuestID:   cmd.GuestID,
		CheckIn:   cmd.CheckIn,
		CheckOut:  cmd.CheckOut,
		Guests:    cmd.Guests,
		Price:     breakdown,
		Now:       now,
	})
	if err != nil {
		return dto.BookingSummary{}, err
	}

	if err := calendar.BlockForBooking(cmd.CheckIn, cmd.CheckOut, string(created.ID), now); err != nil {
		return dto.BookingSummary{}, err
	}
	if err := h.Bookings.Save(ctx, created); err != nil {
		return dto.BookingSummary{}, err
	}
	if err := h.Calendars.Save(ctx, calendar); err != nil {
		return dto.BookingSummary{}, err
	}

	h.publish(ctx, created.PendingEvents(), calendar.PendingEvents())
	created.ClearEvents()
	calendar.ClearEvents()

	return dto.MapBookingSummary(created), nil
}

func (h *RequestBookingHandler) publish(ctx context.Context, batches ...[]events.DomainEvent) {
	if h.Publisher == nil {
		return
	}
	for _, batch := range batches {
		// Event delivery is best-effort here; the booking itself is already
		// durable.
		_ = h.Publisher.Publish(ctx, batch)
	}
}

func (h *RequestBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ commands.Handler[RequestBookingCommand, dto.BookingSummary] = (*RequestBookingHandler)(nil)
