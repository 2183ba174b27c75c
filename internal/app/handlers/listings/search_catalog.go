package listings

import (
	"context"
	"time"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	domainlistings "staybook/internal/domain/listings"
	domainpricing "staybook/internal/domain/pricing"
)

const searchCatalogKey = "listings.catalog"

// SearchCatalogQuery returns search-result cards with resolved display
// prices, the way the mobile search screen renders them.
type SearchCatalogQuery struct {
	Params domainlistings.SearchParams
}

func (q SearchCatalogQuery) Key() string { return searchCatalogKey }

type SearchCatalogHandler struct {
	Listings domainlistings.Repository
	Rules    domainpricing.RuleRepository
	Now      func() time.Time
}

func (h *SearchCatalogHandler) Handle(ctx context.Context, q SearchCatalogQuery) (dto.CatalogPage, error) {
	params := q.Params
	params.OnlyActive = true
	result, err := h.Listings.Search(ctx, params)
	if err != nil {
		return dto.CatalogPage{}, err
	}

	now := h.now()
	page := dto.CatalogPage{Total: result.Total, Items: make([]dto.CatalogCard, 0, len(result.Items))}
	for _, listing := range result.Items {
		rules, err := h.Rules.ByListing(ctx, string(listing.ID))
		if err != nil {
			rules = nil
		}
		resolved := domainpricing.ResolveDisplayPrice(listing.NightlyRateCents, rules, listing.RoomInfo(), now)
		price := dto.MapDisplayPrice(string(listing.ID), listing.Currency, resolved)
		page.Items = append(page.Items, dto.MapCatalogCard(listing, price))
	}
	return page, nil
}

func (h *SearchCatalogHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ queries.Handler[SearchCatalogQuery, dto.CatalogPage] = (*SearchCatalogHandler)(nil)
