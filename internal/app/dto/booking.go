package dto

import (
	"time"

	domainbooking "staybook/internal/domain/booking"
	"staybook/internal/domain/shared/dateonly"
)

type BookingSummary struct {
	ID        string        `json:"id"`
	ListingID string        `json:"listing_id"`
	GuestID   string        `json:"guest_id"`
	CheckIn   dateonly.Date `json:"check_in"`
	CheckOut  dateonly.Date `json:"check_out"`
	Nights    int           `json:"nights"`
	Guests    int           `json:"guests"`
	Status    string        `json:"status"`
	Total     MoneyDTO      `json:"total"`
	CreatedAt time.Time     `json:"created_at"`
}

type BookingCollection struct {
	Items []BookingSummary `json:"items"`
}

func MapBookingSummary(b *domainbooking.Booking) BookingSummary {
	return BookingSummary{
		ID:        string(b.ID),
		ListingID: string(b.ListingID),
		GuestID:   b.GuestID,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		Nights:    b.Nights(),
		Guests:    b.Guests,
		Status:    string(b.State),
		Total:     MoneyDTO{Amount: b.Price.Total.Amount, Currency: b.Price.Total.Currency},
		CreatedAt: b.CreatedAt,
	}
}
