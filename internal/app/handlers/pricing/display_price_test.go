package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainlistings "staybook/internal/domain/listings"
	domainpricing "staybook/internal/domain/pricing"
	"staybook/internal/infra/storage/memory"
)

func TestDisplayPriceForHotelAnchorsOnCheapestRoom(t *testing.T) {
	listings := memory.NewListingRepository()
	rules := memory.NewRuleRepository()
	listing, err := domainlistings.NewListing(domainlistings.CreateListingParams{
		ID:           "lst-hotel",
		Host:         "host-1",
		Kind:         domainlistings.KindStay,
		Title:        "Harbour hotel",
		PropertyType: domainlistings.PropertyHotel,
		Address:      domainlistings.Address{City: "Lisbon", Country: "PT"},
		GuestsLimit:  2,
		MaxNights:    14,
		Currency:     "EUR",
		Rooms: []domainlistings.Room{
			{ID: "r1", Name: "Standard", NightlyRateCents: 6000, Capacity: 2, Active: true},
			{ID: "r2", Name: "Suite", NightlyRateCents: 14000, Capacity: 4, Active: true},
		},
		Now: quoteNow,
	})
	require.NoError(t, err)
	require.NoError(t, listing.Activate(quoteNow))
	require.NoError(t, listings.Save(context.Background(), listing))

	handler := &GetDisplayPriceHandler{
		Listings: listings,
		Rules:    rules,
		Now:      func() time.Time { return quoteNow },
	}
	price, err := handler.Handle(context.Background(), GetDisplayPriceQuery{ListingID: "lst-hotel"})
	require.NoError(t, err)

	assert.Equal(t, int64(6000), price.PriceCents)
	assert.Equal(t, int64(60), price.HeadlinePrice)
	assert.True(t, price.ShowFromLabel)
	assert.False(t, price.HasDiscount)
}

func TestDisplayPriceAppliesWinningRule(t *testing.T) {
	listings := memory.NewListingRepository()
	rules := memory.NewRuleRepository()
	seedListing(t, listings, 10000)
	require.NoError(t, rules.Save(context.Background(), domainpricing.PricingRule{
		ID:         "rule-25",
		ListingID:  "lst-1",
		Kind:       domainpricing.KindSeasonal,
		Active:     true,
		PercentOff: 25,
		CreatedAt:  quoteNow,
	}))

	handler := &GetDisplayPriceHandler{
		Listings: listings,
		Rules:    rules,
		Now:      func() time.Time { return quoteNow },
	}
	price, err := handler.Handle(context.Background(), GetDisplayPriceQuery{ListingID: "lst-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(7500), price.PriceCents)
	assert.Equal(t, int64(10000), price.OriginalPriceCents)
	assert.Equal(t, 25, price.DiscountPercent)
	assert.True(t, price.HasDiscount)
}

func TestDisplayPriceUnknownListing(t *testing.T) {
	handler := &GetDisplayPriceHandler{
		Listings: memory.NewListingRepository(),
		Rules:    memory.NewRuleRepository(),
	}
	_, err := handler.Handle(context.Background(), GetDisplayPriceQuery{ListingID: "nope"})
	require.ErrorIs(t, err, domainlistings.ErrListingNotFound)
}
