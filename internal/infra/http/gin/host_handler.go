package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	availabilityapp "staybook/internal/app/handlers/availability"
	pricingapp "staybook/internal/app/handlers/pricing"
	domainpricing "staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/dateonly"
)

// HostHandler wires host calendar and pricing-rule commands to HTTP.
type HostHandler struct {
	Commands commands.Bus
}

type calendarDayRequest struct {
	Date               dateonly.Date `json:"date"`
	Available          bool          `json:"available"`
	OverridePriceCents int64         `json:"override_price_cents"`
	HasOverridePrice   bool          `json:"has_override_price"`
}

type updateCalendarRequest struct {
	Days []calendarDayRequest `json:"days"`
}

func (h HostHandler) UpdateCalendar(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "host handler unavailable"})
		return
	}
	listingID := c.Param("id")
	var req updateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := availabilityapp.UpdateCalendarCommand{ListingID: listingID}
	for _, day := range req.Days {
		cmd.Days = append(cmd.Days, availabilityapp.DayUpdate{
			Day:                day.Date,
			Available:          day.Available,
			OverridePriceCents: day.OverridePriceCents,
			HasOverridePrice:   day.HasOverridePrice,
		})
	}
	if _, err := commands.Dispatch[availabilityapp.UpdateCalendarCommand, struct{}](c.Request.Context(), h.Commands, cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type upsertRuleRequest struct {
	ID                 string        `json:"id"`
	Kind               string        `json:"kind"`
	Priority           int           `json:"priority"`
	Active             bool          `json:"active"`
	PercentOff         float64       `json:"percent_off"`
	OverridePriceCents int64         `json:"override_price_cents"`
	WindowFrom         dateonly.Date `json:"window_from"`
	WindowTo           dateonly.Date `json:"window_to"`
	Weekdays           []int         `json:"weekdays"`
	MinStayNights      int           `json:"min_stay_nights"`
}

func (h HostHandler) UpsertRule(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "host handler unavailable"})
		return
	}
	listingID := c.Param("id")
	var req upsertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	weekdays := make([]time.Weekday, 0, len(req.Weekdays))
	for _, day := range req.Weekdays {
		if day < 0 || day > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weekdays must be 0 (Sunday) through 6 (Saturday)"})
			return
		}
		weekdays = append(weekdays, time.Weekday(day))
	}
	cmd := pricingapp.UpsertRuleCommand{
		Rule: domainpricing.PricingRule{
			ID:                 domainpricing.RuleID(req.ID),
			ListingID:          listingID,
			Kind:               domainpricing.RuleKind(req.Kind),
			Priority:           req.Priority,
			Active:             req.Active,
			PercentOff:         req.PercentOff,
			OverridePriceCents: req.OverridePriceCents,
			Window:             domainpricing.Window{From: req.WindowFrom, To: req.WindowTo},
			Weekdays:           domainpricing.MaskOf(weekdays...),
			MinStayNights:      req.MinStayNights,
		},
	}
	ruleID, err := commands.Dispatch[pricingapp.UpsertRuleCommand, domainpricing.RuleID](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rule_id": string(ruleID)})
}

func (h HostHandler) DeactivateRule(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "host handler unavailable"})
		return
	}
	cmd := pricingapp.DeactivateRuleCommand{
		ListingID: c.Param("id"),
		RuleID:    domainpricing.RuleID(c.Param("ruleID")),
	}
	if _, err := commands.Dispatch[pricingapp.DeactivateRuleCommand, struct{}](c.Request.Context(), h.Commands, cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var _ HostHTTP = HostHandler{}
