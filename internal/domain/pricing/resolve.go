package pricing

import (
	"math"
	"time"

	"staybook/internal/domain/shared/dateonly"
)

// RoomPriceInfo describes the bookable sub-units of a hotel-type listing.
// When rooms exist the display anchor is the cheapest room, not the listing's
// own base rate, and the card shows a "from" qualifier.
type RoomPriceInfo struct {
	HasRooms         bool
	LowestPriceCents int64
	LowestKnown      bool
}

// DisplayPriceResult is what listing cards, search results and the booking
// bar render. Amounts are minor units; headline rounding to whole currency
// units is the caller's display concern.
type DisplayPriceResult struct {
	DisplayPriceCents  int64
	OriginalPriceCents int64
	DiscountPercent    int
	HasDiscount        bool
	ShowFromLabel      bool
}

// ResolveDisplayPrice determines the price a listing shows at browse time:
// the anchor (base rate, or lowest room rate for hotels with rooms) with the
// single winning pricing rule applied. It never fails; malformed inputs
// degrade to "no discount, show the anchor".
func ResolveDisplayPrice(basePriceCents int64, rules []PricingRule, rooms RoomPriceInfo, now time.Time) DisplayPriceResult {
	today := dateonly.FromTime(now)
	return resolve(basePriceCents, rules, rooms, func(r PricingRule) bool {
		return r.AppliesOn(today)
	})
}

// ResolveStayDisplayPrice is the booking-context variant: rules are matched
// against the chosen check-in day and stay length instead of "today", so
// stay-conditioned rules (weekly discounts) can win.
func ResolveStayDisplayPrice(basePriceCents int64, rules []PricingRule, rooms RoomPriceInfo, checkIn dateonly.Date, nights int) DisplayPriceResult {
	return resolve(basePriceCents, rules, rooms, func(r PricingRule) bool {
		return r.AppliesToStay(checkIn, nights)
	})
}

func resolve(basePriceCents int64, rules []PricingRule, rooms RoomPriceInfo, applies func(PricingRule) bool) DisplayPriceResult {
	anchor := basePriceCents
	fromLabel := false
	if rooms.HasRooms && rooms.LowestKnown {
		anchor = rooms.LowestPriceCents
		fromLabel = true
	}

	passThrough := DisplayPriceResult{DisplayPriceCents: anchor, ShowFromLabel: fromLabel}

	// A non-positive anchor means the listing has no meaningful rate yet;
	// applying rules to it would divide by zero in the percentage math.
	if anchor <= 0 {
		return passThrough
	}

	winner, ok := selectWinner(rules, applies)
	if !ok {
		return passThrough
	}

	discounted := applyAdjustment(anchor, winner)
	if discounted < 0 {
		return passThrough
	}
	if discounted >= anchor {
		// An override above the anchor still changes the shown price but is
		// not presented as a discount.
		passThrough.DisplayPriceCents = discounted
		return passThrough
	}

	return DisplayPriceResult{
		DisplayPriceCents:  discounted,
		OriginalPriceCents: anchor,
		DiscountPercent:    discountPercent(anchor, discounted),
		HasDiscount:        true,
		ShowFromLabel:      fromLabel,
	}
}

// selectWinner picks the single deterministic winner among applicable rules:
// highest priority, ties broken by most recent CreatedAt.
func selectWinner(rules []PricingRule, applies func(PricingRule) bool) (PricingRule, bool) {
	var winner PricingRule
	found := false
	for _, rule := range rules {
		if !applies(rule) {
			continue
		}
		if !found || beats(rule, winner) {
			winner = rule
			found = true
		}
	}
	return winner, found
}

func beats(candidate, current PricingRule) bool {
	if candidate.Priority != current.Priority {
		return candidate.Priority > current.Priority
	}
	return candidate.CreatedAt.After(current.CreatedAt)
}

func applyAdjustment(anchorCents int64, rule PricingRule) int64 {
	if rule.Kind == KindFlatOverride {
		return rule.OverridePriceCents
	}
	return int64(math.Round(float64(anchorCents) * (1 - rule.PercentOff/100)))
}

// discountPercent derives the badge percentage from the actual price ratio,
// so flat overrides and percentage rules produce a consistent badge.
func discountPercent(anchorCents, discountedCents int64) int {
	if anchorCents <= 0 {
		return 0
	}
	pct := int(math.Round((1 - float64(discountedCents)/float64(anchorCents)) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
