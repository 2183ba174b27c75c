package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	pricingapp "staybook/internal/app/handlers/pricing"
	"staybook/internal/app/queries"
)

// PricingHandler wires display-price and quote queries to HTTP.
type PricingHandler struct {
	Queries queries.Bus
}

func (h PricingHandler) DisplayPrice(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pricing handler unavailable"})
		return
	}
	listingID := c.Param("id")
	if listingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing id is required"})
		return
	}
	query := pricingapp.GetDisplayPriceQuery{ListingID: listingID}
	result, err := queries.Ask[pricingapp.GetDisplayPriceQuery, dto.DisplayPrice](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PricingHandler) Quote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pricing handler unavailable"})
		return
	}
	listingID := c.Param("id")
	checkIn, err := parseDay(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be YYYY-MM-DD"})
		return
	}
	checkOut, err := parseDay(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be YYYY-MM-DD"})
		return
	}
	query := pricingapp.GetStayQuoteQuery{
		ListingID: listingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	}
	result, err := queries.Ask[pricingapp.GetStayQuoteQuery, dto.StayQuote](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
