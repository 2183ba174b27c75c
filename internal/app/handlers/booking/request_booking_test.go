package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/app/policies"
	domainavailability "staybook/internal/domain/availability"
	domainbooking "staybook/internal/domain/booking"
	domainlistings "staybook/internal/domain/listings"
	"staybook/internal/domain/shared/dateonly"
	"staybook/internal/infra/storage/memory"
)

var bookNow = time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)

type fixture struct {
	listings  *memory.ListingRepository
	rules     *memory.RuleRepository
	calendars *memory.CalendarRepository
	bookings  *memory.BookingRepository
	handler   *RequestBookingHandler
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	fx := fixture{
		listings:  memory.NewListingRepository(),
		rules:     memory.NewRuleRepository(),
		calendars: memory.NewCalendarRepository(),
		bookings:  memory.NewBookingRepository(),
	}
	fx.handler = &RequestBookingHandler{
		Listings:  fx.listings,
		Calendars: fx.calendars,
		Rules:     fx.rules,
		Bookings:  fx.bookings,
		Fees:      policies.StandardFees{ServiceFeePercent: 10, CleaningFeeCents: 2000},
		Publisher: policies.NoopPublisher{},
		Now:       func() time.Time { return bookNow },
	}
	return fx
}

func (fx fixture) seedListing(t *testing.T, minNights, maxNights int) {
	t.Helper()
	listing, err := domainlistings.NewListing(domainlistings.CreateListingParams{
		ID:               "lst-1",
		Host:             "host-1",
		Kind:             domainlistings.KindStay,
		Title:            "Garden cottage",
		Address:          domainlistings.Address{City: "Ghent", Country: "BE"},
		GuestsLimit:      4,
		MinNights:        minNights,
		MaxNights:        maxNights,
		NightlyRateCents: 10000,
		Currency:         "EUR",
		Now:              bookNow,
	})
	require.NoError(t, err)
	require.NoError(t, listing.Activate(bookNow))
	listing.ClearEvents()
	require.NoError(t, fx.listings.Save(context.Background(), listing))
}

func (fx fixture) openCalendar(t *testing.T, from, to dateonly.Date) {
	t.Helper()
	calendar := domainavailability.NewCalendar("lst-1", nil)
	calendar.OpenRange(from, to, bookNow)
	calendar.ClearEvents()
	require.NoError(t, fx.calendars.Save(context.Background(), calendar))
}

func oct(d int) dateonly.Date {
	return dateonly.New(2026, time.October, d)
}

func TestRequestBookingBlocksNights(t *testing.T) {
	fx := newFixture(t)
	fx.seedListing(t, 1, 30)
	fx.openCalendar(t, oct(1), oct(15))

	cmd := RequestBookingCommand{
		ListingID: "lst-1",
		GuestID:   "guest-1",
		CheckIn:   oct(3),
		CheckOut:  oct(6),
		Guests:    2,
	}
	summary, err := fx.handler.Handle(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, "PENDING", summary.Status)
	assert.Equal(t, 3, summary.Nights)
	// 30000 subtotal + 3000 service fee + 2000 cleaning fee.
	assert.Equal(t, int64(35000), summary.Total.Amount)

	calendar, err := fx.calendars.Calendar(context.Background(), "lst-1")
	require.NoError(t, err)
	assert.False(t, calendar.IsDateAvailable(oct(3)))
	assert.False(t, calendar.IsDateAvailable(oct(5)))
	// Checkout day stays open for the next guest.
	assert.True(t, calendar.IsDateAvailable(oct(6)))

	stored, err := fx.bookings.ByID(context.Background(), domainbooking.BookingID(summary.ID))
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatePending, stored.State)
}

func TestRequestBookingRejectsOverlap(t *testing.T) {
	fx := newFixture(t)
	fx.seedListing(t, 1, 30)
	fx.openCalendar(t, oct(1), oct(15))

	first := RequestBookingCommand{
		ListingID: "lst-1", GuestID: "guest-1",
		CheckIn: oct(3), CheckOut: oct(6), Guests: 2,
	}
	_, err := fx.handler.Handle(context.Background(), first)
	require.NoError(t, err)

	second := RequestBookingCommand{
		ListingID: "lst-1", GuestID: "guest-2",
		CheckIn: oct(5), CheckOut: oct(8), Guests: 1,
	}
	_, err = fx.handler.Handle(context.Background(), second)
	require.ErrorIs(t, err, ErrDatesUnavailable)
}

func TestRequestBookingFailsClosedWithoutCalendar(t *testing.T) {
	fx := newFixture(t)
	fx.seedListing(t, 1, 30)

	cmd := RequestBookingCommand{
		ListingID: "lst-1", GuestID: "guest-1",
		CheckIn: oct(3), CheckOut: oct(5), Guests: 2,
	}
	_, err := fx.handler.Handle(context.Background(), cmd)
	require.ErrorIs(t, err, ErrDatesUnavailable)
}

func TestRequestBookingEnforcesStayLength(t *testing.T) {
	fx := newFixture(t)
	fx.seedListing(t, 3, 7)
	fx.openCalendar(t, oct(1), oct(15))

	tooShort := RequestBookingCommand{
		ListingID: "lst-1", GuestID: "guest-1",
		CheckIn: oct(3), CheckOut: oct(5), Guests: 2,
	}
	_, err := fx.handler.Handle(context.Background(), tooShort)
	require.ErrorIs(t, err, ErrStayLength)

	tooLong := RequestBookingCommand{
		ListingID: "lst-1", GuestID: "guest-1",
		CheckIn: oct(1), CheckOut: oct(12), Guests: 2,
	}
	_, err = fx.handler.Handle(context.Background(), tooLong)
	require.ErrorIs(t, err, ErrStayLength)
}

func TestRequestBookingRejectsInactiveListing(t *testing.T) {
	fx := newFixture(t)
	listing, err := domainlistings.NewListing(domainlistings.CreateListingParams{
		ID:               "lst-1",
		Host:             "host-1",
		Kind:             domainlistings.KindStay,
		Title:            "Draft cottage",
		Address:          domainlistings.Address{City: "Ghent", Country: "BE"},
		GuestsLimit:      4,
		MaxNights:        30,
		NightlyRateCents: 10000,
		Currency:         "EUR",
		Now:              bookNow,
	})
	require.NoError(t, err)
	require.NoError(t, fx.listings.Save(context.Background(), listing))
	fx.openCalendar(t, oct(1), oct(15))

	cmd := RequestBookingCommand{
		ListingID: "lst-1", GuestID: "guest-1",
		CheckIn: oct(3), CheckOut: oct(5), Guests: 2,
	}
	_, err = fx.handler.Handle(context.Background(), cmd)
	require.ErrorIs(t, err, ErrListingInactive)
}

func TestCancelBookingReleasesNights(t *testing.T) {
	fx := newFixture(t)
	fx.seedListing(t, 1, 30)
	fx.openCalendar(t, oct(1), oct(15))

	summary, err := fx.handler.Handle(context.Background(), RequestBookingCommand{
		ListingID: "lst-1", GuestID: "guest-1",
		CheckIn: oct(3), CheckOut: oct(6), Guests: 2,
	})
	require.NoError(t, err)

	cancel := &CancelBookingHandler{
		Bookings:  fx.bookings,
		Calendars: fx.calendars,
		Publisher: policies.NoopPublisher{},
		Now:       func() time.Time { return bookNow.Add(time.Hour) },
	}
	cancelled, err := cancel.Handle(context.Background(), CancelBookingCommand{
		BookingID: summary.ID,
		Reason:    "plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	calendar, err := fx.calendars.Calendar(context.Background(), "lst-1")
	require.NoError(t, err)
	assert.True(t, calendar.IsRangeAvailable(oct(3), oct(6)))
}

func TestConfirmThenDeclineIsRejected(t *testing.T) {
	fx := newFixture(t)
	fx.seedListing(t, 1, 30)
	fx.openCalendar(t, oct(1), oct(15))

	summary, err := fx.handler.Handle(context.Background(), RequestBookingCommand{
		ListingID: "lst-1", GuestID: "guest-1",
		CheckIn: oct(3), CheckOut: oct(6), Guests: 2,
	})
	require.NoError(t, err)

	confirm := &ConfirmBookingHandler{
		Bookings:  fx.bookings,
		Publisher: policies.NoopPublisher{},
		Now:       func() time.Time { return bookNow.Add(time.Hour) },
	}
	confirmed, err := confirm.Handle(context.Background(), ConfirmBookingCommand{BookingID: summary.ID})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", confirmed.Status)

	// Confirmed nights stay blocked.
	calendar, err := fx.calendars.Calendar(context.Background(), "lst-1")
	require.NoError(t, err)
	assert.False(t, calendar.IsDateAvailable(oct(4)))

	decline := &DeclineBookingHandler{
		Bookings:  fx.bookings,
		Calendars: fx.calendars,
		Publisher: policies.NoopPublisher{},
		Now:       func() time.Time { return bookNow.Add(2 * time.Hour) },
	}
	_, err = decline.Handle(context.Background(), DeclineBookingCommand{BookingID: summary.ID})
	require.ErrorIs(t, err, domainbooking.ErrInvalidState)
}

func TestDeclineBookingReopensNights(t *testing.T) {
	fx := newFixture(t)
	fx.seedListing(t, 1, 30)
	fx.openCalendar(t, oct(1), oct(15))

	summary, err := fx.handler.Handle(context.Background(), RequestBookingCommand{
		ListingID: "lst-1", GuestID: "guest-1",
		CheckIn: oct(3), CheckOut: oct(6), Guests: 2,
	})
	require.NoError(t, err)

	decline := &DeclineBookingHandler{
		Bookings:  fx.bookings,
		Calendars: fx.calendars,
		Publisher: policies.NoopPublisher{},
		Now:       func() time.Time { return bookNow.Add(time.Hour) },
	}
	declined, err := decline.Handle(context.Background(), DeclineBookingCommand{
		BookingID: summary.ID,
		Reason:    "maintenance",
	})
	require.NoError(t, err)
	assert.Equal(t, "DECLINED", declined.Status)

	calendar, err := fx.calendars.Calendar(context.Background(), "lst-1")
	require.NoError(t, err)
	assert.True(t, calendar.IsRangeAvailable(oct(3), oct(6)))
}

func TestCancelBookingUnknownID(t *testing.T) {
	fx := newFixture(t)
	cancel := &CancelBookingHandler{Bookings: fx.bookings, Calendars: fx.calendars}
	_, err := cancel.Handle(context.Background(), CancelBookingCommand{BookingID: "missing"})
	require.ErrorIs(t, err, domainbooking.ErrBookingNotFound)
}
