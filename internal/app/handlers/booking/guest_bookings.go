package booking

import (
	"context"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	domainbooking "staybook/internal/domain/booking"
)

const guestBookingsKey = "booking.guest_list"

// ListGuestBookingsQuery returns a guest's bookings, newest first.
type ListGuestBookingsQuery struct {
	GuestID string
}

func (q ListGuestBookingsQuery) Key() string { return guestBookingsKey }

type ListGuestBookingsHandler struct {
	Bookings domainbooking.Repository
}

func (h *ListGuestBookingsHandler) Handle(ctx context.Context, q ListGuestBookingsQuery) (dto.BookingCollection, error) {
	items, err := h.Bookings.ListByGuest(ctx, q.GuestID)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	out := dto.BookingCollection{Items: make([]dto.BookingSummary, 0, len(items))}
	for _, b := range items {
		out.Items = append(out.Items, dto.MapBookingSummary(b))
	}
	return out, nil
}

var _ queries.Handler[ListGuestBookingsQuery, dto.BookingCollection] = (*ListGuestBookingsHandler)(nil)
