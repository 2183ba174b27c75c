package availability

import (
	"context"
	"errors"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/policies"
	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/shared/dateonly"
)

const updateCalendarKey = "availability.update_calendar"

var ErrNoDays = errors.New("availability: update must include at least one day")

// DayUpdate is one host edit: open/close a day and optionally pin a price.
type DayUpdate struct {
	Day                dateonly.Date
	Available          bool
	OverridePriceCents int64
	HasOverridePrice   bool
}

// UpdateCalendarCommand applies host edits to a listing's calendar.
type UpdateCalendarCommand struct {
	ListingID string
	Days      []DayUpdate
}

func (c UpdateCalendarCommand) Key() string { return updateCalendarKey }

type UpdateCalendarHandler struct {
	Calendars domainavailability.Repository
	Publisher policies.EventPublisher
	Now       func() time.Time
}

func (h *UpdateCalendarHandler) Handle(ctx context.Context, cmd UpdateCalendarCommand) (struct{}, error) {
	if len(cmd.Days) == 0 {
		return struct{}{}, ErrNoDays
	}
	calendar, err := h.Calendars.Calendar(ctx, cmd.ListingID)
	if err != nil {
		if !errors.Is(err, domainavailability.ErrCalendarNotFound) {
			return struct{}{}, err
		}
		calendar = domainavailability.NewCalendar(cmd.ListingID, nil)
	}

	now := h.now()
	for _, update := range cmd.Days {
		calendar.SetDay(domainavailability.Record{
			Day:                update.Day,
			Available:          update.Available,
			OverridePriceCents: update.OverridePriceCents,
			HasOverridePrice:   update.HasOverridePrice,
		}, now)
	}
	if err := h.Calendars.Save(ctx, calendar); err != nil {
		return struct{}{}, err
	}
	if h.Publisher != nil {
		if err := h.Publisher.Publish(ctx, calendar.PendingEvents()); err != nil {
			return struct{}{}, err
		}
		calendar.ClearEvents()
	}
	return struct{}{}, nil
}

func (h *UpdateCalendarHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ commands.Handler[UpdateCalendarCommand, struct{}] = (*UpdateCalendarHandler)(nil)
