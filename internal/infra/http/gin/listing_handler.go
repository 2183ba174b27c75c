package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	listingapp "staybook/internal/app/handlers/listings"
	"staybook/internal/app/queries"
	domainlistings "staybook/internal/domain/listings"
)

// ListingHandler wires catalog queries to HTTP.
type ListingHandler struct {
	Queries queries.Bus
}

// Catalog responds with search-result cards, display prices included.
func (h ListingHandler) Catalog(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	query := listingapp.SearchCatalogQuery{
		Params: domainlistings.SearchParams{
			City:          c.Query("city"),
			Country:       c.Query("country"),
			Kind:          domainlistings.Kind(c.Query("kind")),
			PropertyTypes: splitCSV(c.Query("property_types")),
			MinGuests:     parseInt(c.Query("min_guests")),
			PriceMinCents: parseInt64(c.Query("price_min_cents")),
			PriceMaxCents: parseInt64(c.Query("price_max_cents")),
			Sort:          domainlistings.SortOrder(c.Query("sort")),
			Limit:         parseInt(c.Query("limit")),
			Offset:        parseInt(c.Query("offset")),
		},
	}
	result, err := queries.Ask[listingapp.SearchCatalogQuery, dto.CatalogPage](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ListingHTTP = ListingHandler{}
