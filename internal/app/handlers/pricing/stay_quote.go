package pricing

import (
	"context"
	"errors"
	"fmt"

	"staybook/internal/app/dto"
	"staybook/internal/app/policies"
	"staybook/internal/app/queries"
	domainavailability "staybook/internal/domain/availability"
	domainlistings "staybook/internal/domain/listings"
	domainpricing "staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/dateonly"
	"staybook/internal/domain/shared/money"
)

const stayQuoteKey = "pricing.stay_quote"

var ErrStayUnavailable = errors.New("pricing: requested dates are not available")

// GetStayQuoteQuery prices a concrete stay: per-night calendar subtotal,
// winning stay discount, and marketplace fees.
type GetStayQuoteQuery struct {
	ListingID string
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
}

func (q GetStayQuoteQuery) Key() string { return stayQuoteKey }

type GetStayQuoteHandler struct {
	Listings  domainlistings.Repository
	Rules     domainpricing.RuleRepository
	Calendars domainavailability.Repository
	Fees      policies.FeeSchedule
}

func (h *GetStayQuoteHandler) Handle(ctx context.Context, q GetStayQuoteQuery) (dto.StayQuote, error) {
	listing, err := h.Listings.ByID(ctx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.StayQuote{}, err
	}
	calendar, err := h.Calendars.Calendar(ctx, q.ListingID)
	if err != nil {
		return dto.StayQuote{}, err
	}
	if !calendar.IsRangeAvailable(q.CheckIn, q.CheckOut) {
		if blocked, found := calendar.FirstBlockedDay(q.CheckIn, q.CheckOut); found {
			return dto.StayQuote{}, fmt.Errorf("%w: %s", ErrStayUnavailable, blocked)
		}
		return dto.StayQuote{}, ErrStayUnavailable
	}

	rules, err := h.Rules.ByListing(ctx, q.ListingID)
	if err != nil {
		rules = nil
	}

	breakdown, err := BuildStayBreakdown(listing, calendar, rules, h.Fees, q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.StayQuote{}, err
	}
	return dto.MapStayQuote(q.ListingID, q.CheckIn, q.CheckOut, breakdown), nil
}

// BuildStayBreakdown assembles the checkout breakdown shared by the quote
// endpoint and the booking command: calendar-derived subtotal, stay-aware
// discount line, fee lines, recalculated total.
func BuildStayBreakdown(
	listing *domainlistings.Listing,
	calendar *domainavailability.Calendar,
	rules []domainpricing.PricingRule,
	fees policies.FeeSchedule,
	checkIn, checkOut dateonly.Date,
) (domainpricing.StayBreakdown, error) {
	nights := checkIn.DaysUntil(checkOut)
	subtotal := calendar.RangePriceCents(checkIn, checkOut, listing.NightlyRateCents)

	breakdown := domainpricing.StayBreakdown{
		Nights:        nights,
		SubtotalCents: subtotal,
		Currency:      listing.Currency,
	}

	resolved := domainpricing.ResolveStayDisplayPrice(listing.NightlyRateCents, rules, listing.RoomInfo(), checkIn, nights)
	if resolved.HasDiscount && resolved.OriginalPriceCents > 0 {
		// The winning rule discounts each night proportionally to what it
		// takes off the anchor rate.
		perNightOff := resolved.OriginalPriceCents - resolved.DisplayPriceCents
		breakdown.Discounts = append(breakdown.Discounts, domainpricing.Discount{
			Name:   "pricing_rule",
			Amount: money.Money{Amount: perNightOff * int64(nights), Currency: listing.Currency},
		})
	}
	if fees != nil {
		breakdown.Fees = fees.Fees(subtotal, nights, listing.Currency)
	}
	if err := breakdown.RecalculateTotal(); err != nil {
		return domainpricing.StayBreakdown{}, err
	}
	return breakdown, nil
}

var _ queries.Handler[GetStayQuoteQuery, dto.StayQuote] = (*GetStayQuoteHandler)(nil)
