package dto

import (
	"staybook/internal/domain/availability"
	"staybook/internal/domain/shared/dateonly"
)

type CalendarDay struct {
	Date               dateonly.Date `json:"date"`
	Available          bool          `json:"available"`
	OverridePriceCents int64         `json:"override_price_cents,omitempty"`
}

type Calendar struct {
	ListingID string        `json:"listing_id"`
	Days      []CalendarDay `json:"days"`
}

// MapCalendar flattens the aggregate into the wire shape, optionally limited
// to a [from, to) window. Zero dates mean no bound on that side.
func MapCalendar(cal *availability.Calendar, from, to dateonly.Date) Calendar {
	if cal == nil {
		return Calendar{}
	}
	out := Calendar{ListingID: cal.ListingID}
	for _, record := range cal.Records() {
		if !from.IsZero() && record.Day.Before(from) {
			continue
		}
		if !to.IsZero() && !record.Day.Before(to) {
			continue
		}
		day := CalendarDay{Date: record.Day, Available: record.Available}
		if record.HasOverridePrice {
			day.OverridePriceCents = record.OverridePriceCents
		}
		out.Days = append(out.Days, day)
	}
	return out
}

type RangeAvailability struct {
	ListingID string        `json:"listing_id"`
	CheckIn   dateonly.Date `json:"check_in"`
	CheckOut  dateonly.Date `json:"check_out"`
	Available bool          `json:"available"`
	BlockedOn string        `json:"blocked_on,omitempty"`
}
