package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/shared/dateonly"
)

var browseNow = time.Date(2026, time.July, 10, 12, 0, 0, 0, time.UTC)

func percentRule(id string, pct float64, priority int, createdAt time.Time) PricingRule {
	return PricingRule{
		ID:         RuleID(id),
		ListingID:  "lst-1",
		Kind:       KindPercentageDiscount,
		Priority:   priority,
		Active:     true,
		PercentOff: pct,
		CreatedAt:  createdAt,
	}
}

func TestResolveNoRulesPassThrough(t *testing.T) {
	got := ResolveDisplayPrice(10000, nil, RoomPriceInfo{}, browseNow)
	assert.Equal(t, DisplayPriceResult{DisplayPriceCents: 10000}, got)
}

func TestResolveIsIdempotent(t *testing.T) {
	rules := []PricingRule{percentRule("r1", 20, 1, browseNow.Add(-time.Hour))}
	first := ResolveDisplayPrice(10000, rules, RoomPriceInfo{}, browseNow)
	second := ResolveDisplayPrice(10000, rules, RoomPriceInfo{}, browseNow)
	assert.Equal(t, first, second)
}

func TestResolvePercentageDiscount(t *testing.T) {
	rules := []PricingRule{percentRule("r1", 20, 1, browseNow.Add(-time.Hour))}
	got := ResolveDisplayPrice(10000, rules, RoomPriceInfo{}, browseNow)

	assert.Equal(t, int64(8000), got.DisplayPriceCents)
	assert.Equal(t, int64(10000), got.OriginalPriceCents)
	assert.Equal(t, 20, got.DiscountPercent)
	assert.True(t, got.HasDiscount)
	assert.False(t, got.ShowFromLabel)
}

func TestResolveOverrideDerivesPercentFromRatio(t *testing.T) {
	rules := []PricingRule{{
		ID:                 "r1",
		Kind:               KindFlatOverride,
		Active:             true,
		OverridePriceCents: 7500,
		CreatedAt:          browseNow.Add(-time.Hour),
	}}
	got := ResolveDisplayPrice(10000, rules, RoomPriceInfo{}, browseNow)

	assert.Equal(t, int64(7500), got.DisplayPriceCents)
	assert.Equal(t, 25, got.DiscountPercent, "badge must come from the price ratio, not rule config")
	assert.True(t, got.HasDiscount)
}

func TestResolvePriorityWinsRegardlessOfOrder(t *testing.T) {
	low := percentRule("low", 10, 5, browseNow.Add(-time.Hour))
	high := percentRule("high", 30, 10, browseNow.Add(-2*time.Hour))

	forward := ResolveDisplayPrice(10000, []PricingRule{low, high}, RoomPriceInfo{}, browseNow)
	backward := ResolveDisplayPrice(10000, []PricingRule{high, low}, RoomPriceInfo{}, browseNow)

	assert.Equal(t, int64(7000), forward.DisplayPriceCents)
	assert.Equal(t, forward, backward)
}

func TestResolveTieBreaksByNewestRule(t *testing.T) {
	older := percentRule("older", 10, 5, browseNow.Add(-48*time.Hour))
	newer := percentRule("newer", 15, 5, browseNow.Add(-time.Hour))

	got := ResolveDisplayPrice(10000, []PricingRule{older, newer}, RoomPriceInfo{}, browseNow)
	assert.Equal(t, int64(8500), got.DisplayPriceCents)
}

func TestResolveHotelAnchorsOnLowestRoom(t *testing.T) {
	rooms := RoomPriceInfo{HasRooms: true, LowestPriceCents: 6000, LowestKnown: true}
	got := ResolveDisplayPrice(10000, nil, rooms, browseNow)

	assert.Equal(t, int64(6000), got.DisplayPriceCents)
	assert.True(t, got.ShowFromLabel)
	assert.False(t, got.HasDiscount)
}

func TestResolveHotelDiscountAppliesToRoomAnchor(t *testing.T) {
	rooms := RoomPriceInfo{HasRooms: true, LowestPriceCents: 6000, LowestKnown: true}
	rules := []PricingRule{percentRule("r1", 50, 1, browseNow.Add(-time.Hour))}
	got := ResolveDisplayPrice(10000, rules, rooms, browseNow)

	assert.Equal(t, int64(3000), got.DisplayPriceCents)
	assert.Equal(t, int64(6000), got.OriginalPriceCents)
	assert.True(t, got.ShowFromLabel)
}

func TestResolveRoomsWithoutKnownPriceFallBackToBase(t *testing.T) {
	rooms := RoomPriceInfo{HasRooms: true}
	got := ResolveDisplayPrice(10000, nil, rooms, browseNow)

	assert.Equal(t, int64(10000), got.DisplayPriceCents)
	assert.False(t, got.ShowFromLabel)
}

func TestResolveIgnoresInactiveAndOutOfWindowRules(t *testing.T) {
	inactive := percentRule("off", 50, 10, browseNow.Add(-time.Hour))
	inactive.Active = false

	past := percentRule("past", 40, 9, browseNow.Add(-time.Hour))
	past.Kind = KindSeasonal
	past.Window = Window{
		From: dateonly.New(2026, time.January, 1),
		To:   dateonly.New(2026, time.January, 31),
	}

	live := percentRule("live", 10, 1, browseNow.Add(-time.Hour))

	got := ResolveDisplayPrice(10000, []PricingRule{inactive, past, live}, RoomPriceInfo{}, browseNow)
	assert.Equal(t, int64(9000), got.DisplayPriceCents)
}

func TestResolveMinStayRuleSkippedAtBrowseTime(t *testing.T) {
	weekly := percentRule("weekly", 25, 10, browseNow.Add(-time.Hour))
	weekly.Kind = KindWeekly
	weekly.MinStayNights = 7

	browse := ResolveDisplayPrice(10000, []PricingRule{weekly}, RoomPriceInfo{}, browseNow)
	assert.False(t, browse.HasDiscount, "no stay length is known on a listing card")

	checkIn := dateonly.New(2026, time.July, 20)
	short := ResolveStayDisplayPrice(10000, []PricingRule{weekly}, RoomPriceInfo{}, checkIn, 3)
	assert.False(t, short.HasDiscount)

	long := ResolveStayDisplayPrice(10000, []PricingRule{weekly}, RoomPriceInfo{}, checkIn, 7)
	assert.True(t, long.HasDiscount)
	assert.Equal(t, int64(7500), long.DisplayPriceCents)
}

func TestResolveWeekdayMaskedRule(t *testing.T) {
	rule := percentRule("weekend", 15, 1, browseNow.Add(-time.Hour))
	rule.Weekdays = MaskOf(time.Saturday, time.Sunday)

	saturday := dateonly.New(2026, time.July, 11)
	require.Equal(t, time.Saturday, saturday.Weekday())

	onSat := ResolveStayDisplayPrice(10000, []PricingRule{rule}, RoomPriceInfo{}, saturday, 2)
	assert.True(t, onSat.HasDiscount)

	monday := dateonly.New(2026, time.July, 13)
	onMon := ResolveStayDisplayPrice(10000, []PricingRule{rule}, RoomPriceInfo{}, monday, 2)
	assert.False(t, onMon.HasDiscount)
}

func TestResolveSamePriceIsNotADiscount(t *testing.T) {
	rules := []PricingRule{{
		ID:                 "noop",
		Kind:               KindFlatOverride,
		Active:             true,
		OverridePriceCents: 10000,
		CreatedAt:          browseNow,
	}}
	got := ResolveDisplayPrice(10000, rules, RoomPriceInfo{}, browseNow)

	assert.Equal(t, int64(10000), got.DisplayPriceCents)
	assert.False(t, got.HasDiscount)
	assert.Zero(t, got.OriginalPriceCents)
}

func TestResolveOverrideAboveAnchorShownWithoutBadge(t *testing.T) {
	rules := []PricingRule{{
		ID:                 "surge",
		Kind:               KindFlatOverride,
		Active:             true,
		OverridePriceCents: 12000,
		CreatedAt:          browseNow,
	}}
	got := ResolveDisplayPrice(10000, rules, RoomPriceInfo{}, browseNow)

	assert.Equal(t, int64(12000), got.DisplayPriceCents)
	assert.False(t, got.HasDiscount)
}

func TestResolveNonPositiveBasePassesThrough(t *testing.T) {
	rules := []PricingRule{percentRule("r1", 20, 1, browseNow)}

	zero := ResolveDisplayPrice(0, rules, RoomPriceInfo{}, browseNow)
	assert.Equal(t, DisplayPriceResult{}, zero)

	negative := ResolveDisplayPrice(-500, rules, RoomPriceInfo{}, browseNow)
	assert.Equal(t, int64(-500), negative.DisplayPriceCents)
	assert.False(t, negative.HasDiscount)
}

func TestRuleValidate(t *testing.T) {
	cases := []struct {
		name string
		rule PricingRule
		err  error
	}{
		{"valid percent", percentRule("a", 20, 1, browseNow), nil},
		{"valid override", PricingRule{Kind: KindFlatOverride, OverridePriceCents: 100}, nil},
		{"unknown kind", PricingRule{Kind: "mystery", PercentOff: 10}, ErrUnknownRuleKind},
		{"zero percent", PricingRule{Kind: KindSeasonal}, ErrRulePercent},
		{"percent above 100", PricingRule{Kind: KindLastMinute, PercentOff: 120}, ErrRulePercent},
		{"negative override", PricingRule{Kind: KindFlatOverride, OverridePriceCents: -1}, ErrRuleOverride},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
