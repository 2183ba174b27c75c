package dto

import (
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/money"
)

// DisplayPrice is the card/booking-bar price shape. HeadlinePrice is floored
// to whole currency units; the cent fields keep full precision for fee rows.
type DisplayPrice struct {
	ListingID          string `json:"listing_id"`
	Currency           string `json:"currency"`
	PriceCents         int64  `json:"price_cents"`
	HeadlinePrice      int64  `json:"headline_price"`
	OriginalPriceCents int64  `json:"original_price_cents,omitempty"`
	DiscountPercent    int    `json:"discount_percentage,omitempty"`
	HasDiscount        bool   `json:"has_discount"`
	ShowFromLabel      bool   `json:"show_from_label"`
}

func MapDisplayPrice(listingID, currency string, result pricing.DisplayPriceResult) DisplayPrice {
	out := DisplayPrice{
		ListingID:     listingID,
		Currency:      currency,
		PriceCents:    result.DisplayPriceCents,
		HeadlinePrice: money.Money{Amount: result.DisplayPriceCents, Currency: currency}.HeadlineUnits(),
		HasDiscount:   result.HasDiscount,
		ShowFromLabel: result.ShowFromLabel,
	}
	if result.HasDiscount {
		out.OriginalPriceCents = result.OriginalPriceCents
		out.DiscountPercent = result.DiscountPercent
	}
	return out
}
