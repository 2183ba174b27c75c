package availability

import (
	"context"
	"errors"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/shared/dateonly"
)

const checkRangeKey = "availability.check_range"

// CheckRangeQuery asks whether a stay over [CheckIn, CheckOut) is bookable.
type CheckRangeQuery struct {
	ListingID string
	CheckIn   dateonly.Date
	CheckOut  dateonly.Date
}

func (q CheckRangeQuery) Key() string { return checkRangeKey }

type CheckRangeHandler struct {
	Calendars domainavailability.Repository
}

func (h *CheckRangeHandler) Handle(ctx context.Context, q CheckRangeQuery) (dto.RangeAvailability, error) {
	out := dto.RangeAvailability{
		ListingID: q.ListingID,
		CheckIn:   q.CheckIn,
		CheckOut:  q.CheckOut,
	}
	calendar, err := h.Calendars.Calendar(ctx, q.ListingID)
	if err != nil {
		if errors.Is(err, domainavailability.ErrCalendarNotFound) {
			// Fail-closed: a listing with no calendar has no bookable days.
			return out, nil
		}
		return dto.RangeAvailability{}, err
	}

	out.Available = calendar.IsRangeAvailable(q.CheckIn, q.CheckOut)
	if !out.Available {
		if blocked, found := calendar.FirstBlockedDay(q.CheckIn, q.CheckOut); found {
			out.BlockedOn = blocked.String()
		}
	}
	return out, nil
}

var _ queries.Handler[CheckRangeQuery, dto.RangeAvailability] = (*CheckRangeHandler)(nil)
