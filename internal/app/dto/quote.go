package dto

import (
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/dateonly"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type QuoteLine struct {
	Name   string   `json:"name"`
	Amount MoneyDTO `json:"amount"`
}

// StayQuote is the full checkout breakdown for concrete dates.
type StayQuote struct {
	ListingID     string        `json:"listing_id"`
	CheckIn       dateonly.Date `json:"check_in"`
	CheckOut      dateonly.Date `json:"check_out"`
	Nights        int           `json:"nights"`
	Currency      string        `json:"currency"`
	SubtotalCents int64         `json:"subtotal_cents"`
	Fees          []QuoteLine   `json:"fees,omitempty"`
	Discounts     []QuoteLine   `json:"discounts,omitempty"`
	Total         MoneyDTO      `json:"total"`
}

func MapStayQuote(listingID string, checkIn, checkOut dateonly.Date, breakdown pricing.StayBreakdown) StayQuote {
	quote := StayQuote{
		ListingID:     listingID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        breakdown.Nights,
		Currency:      breakdown.Currency,
		SubtotalCents: breakdown.SubtotalCents,
		Total:         MoneyDTO{Amount: breakdown.Total.Amount, Currency: breakdown.Total.Currency},
	}
	for _, fee := range breakdown.Fees {
		quote.Fees = append(quote.Fees, QuoteLine{Name: fee.Name, Amount: MoneyDTO{Amount: fee.Amount.Amount, Currency: fee.Amount.Currency}})
	}
	for _, discount := range breakdown.Discounts {
		quote.Discounts = append(quote.Discounts, QuoteLine{Name: discount.Name, Amount: MoneyDTO{Amount: discount.Amount.Amount, Currency: discount.Amount.Currency}})
	}
	return quote
}
