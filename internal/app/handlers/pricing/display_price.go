package pricing

import (
	"context"
	"time"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	domainlistings "staybook/internal/domain/listings"
	domainpricing "staybook/internal/domain/pricing"
)

const displayPriceKey = "pricing.display_price"

// GetDisplayPriceQuery resolves the price a single listing should show on
// cards and the booking bar.
type GetDisplayPriceQuery struct {
	ListingID string
}

func (q GetDisplayPriceQuery) Key() string { return displayPriceKey }

type GetDisplayPriceHandler struct {
	Listings domainlistings.Repository
	Rules    domainpricing.RuleRepository
	Now      func() time.Time
}

func (h *GetDisplayPriceHandler) Handle(ctx context.Context, q GetDisplayPriceQuery) (dto.DisplayPrice, error) {
	listing, err := h.Listings.ByID(ctx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.DisplayPrice{}, err
	}

	rules, err := h.Rules.ByListing(ctx, q.ListingID)
	if err != nil {
		// The resolver degrades gracefully without rules; a rules-store
		// hiccup must not blank out the price on a booking-critical path.
		rules = nil
	}

	result := domainpricing.ResolveDisplayPrice(listing.NightlyRateCents, rules, listing.RoomInfo(), h.now())
	return dto.MapDisplayPrice(q.ListingID, listing.Currency, result), nil
}

func (h *GetDisplayPriceHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ queries.Handler[GetDisplayPriceQuery, dto.DisplayPrice] = (*GetDisplayPriceHandler)(nil)
