package availability

import (
	"context"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/shared/dateonly"
)

const getCalendarKey = "availability.calendar"

// GetCalendarQuery fetches a listing's day calendar, optionally windowed.
type GetCalendarQuery struct {
	ListingID string
	From      dateonly.Date
	To        dateonly.Date
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	Calendars domainavailability.Repository
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	calendar, err := h.Calendars.Calendar(ctx, q.ListingID)
	if err != nil {
		return dto.Calendar{}, err
	}
	return dto.MapCalendar(calendar, q.From, q.To), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
