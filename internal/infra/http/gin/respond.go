package ginserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	availabilityapp "staybook/internal/app/handlers/availability"
	bookingapp "staybook/internal/app/handlers/booking"
	pricingapp "staybook/internal/app/handlers/pricing"
	domainavailability "staybook/internal/domain/availability"
	domainbooking "staybook/internal/domain/booking"
	domainlistings "staybook/internal/domain/listings"
	domainpricing "staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/dateonly"
)

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainlistings.ErrListingNotFound),
		errors.Is(err, domainbooking.ErrBookingNotFound),
		errors.Is(err, domainavailability.ErrCalendarNotFound),
		errors.Is(err, domainpricing.ErrRuleNotFound):
		return http.StatusNotFound
	case errors.Is(err, bookingapp.ErrDatesUnavailable),
		errors.Is(err, pricingapp.ErrStayUnavailable),
		errors.Is(err, domainavailability.ErrNightUnavailable):
		return http.StatusConflict
	case errors.Is(err, domainbooking.ErrInvalidRange),
		errors.Is(err, domainbooking.ErrInvalidGuests),
		errors.Is(err, domainbooking.ErrInvalidState),
		errors.Is(err, domainbooking.ErrGuestRequired),
		errors.Is(err, bookingapp.ErrListingInactive),
		errors.Is(err, bookingapp.ErrStayLength),
		errors.Is(err, availabilityapp.ErrNoDays),
		errors.Is(err, domainpricing.ErrUnknownRuleKind),
		errors.Is(err, domainpricing.ErrRulePercent),
		errors.Is(err, domainpricing.ErrRuleOverride),
		errors.Is(err, dateonly.ErrInvalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseDay(raw string) (dateonly.Date, error) {
	return dateonly.Parse(strings.TrimSpace(raw))
}

// parseOptionalDay treats an absent parameter as the zero date.
func parseOptionalDay(raw string) (dateonly.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return dateonly.Date{}, nil
	}
	return parseDay(raw)
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseInt(raw string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(raw))
	if value < 0 {
		return 0
	}
	return value
}

func parseInt64(raw string) int64 {
	value, _ := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if value < 0 {
		return 0
	}
	return value
}
