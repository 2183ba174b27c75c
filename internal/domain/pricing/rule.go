package pricing

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/shared/dateonly"
)

var (
	ErrRuleNotFound    = errors.New("pricing: rule not found")
	ErrUnknownRuleKind = errors.New("pricing: unknown rule kind")
	ErrRulePercent     = errors.New("pricing: percent off must be within (0, 100]")
	ErrRuleOverride    = errors.New("pricing: override price must be non-negative")
)

type RuleID string

// RuleKind discriminates how a rule scopes itself and which adjustment field
// is meaningful. Percentage kinds use PercentOff, flat_override uses
// OverridePriceCents.
type RuleKind string

const (
	KindSeasonal           RuleKind = "seasonal"
	KindLastMinute         RuleKind = "last_minute"
	KindEarlyBird          RuleKind = "early_bird"
	KindWeekly             RuleKind = "weekly"
	KindFlatOverride       RuleKind = "flat_override"
	KindPercentageDiscount RuleKind = "percentage_discount"
)

func (k RuleKind) Valid() bool {
	switch k {
	case KindSeasonal, KindLastMinute, KindEarlyBird, KindWeekly, KindFlatOverride, KindPercentageDiscount:
		return true
	}
	return false
}

// WeekdayMask is a bitmask over time.Weekday (bit 0 = Sunday).
type WeekdayMask uint8

func (m WeekdayMask) Contains(day time.Weekday) bool {
	return m&(1<<uint(day)) != 0
}

func MaskOf(days ...time.Weekday) WeekdayMask {
	var m WeekdayMask
	for _, d := range days {
		m |= 1 << uint(d)
	}
	return m
}

// Window is an inclusive day range; zero ends mean unbounded on that side.
type Window struct {
	From dateonly.Date
	To   dateonly.Date
}

func (w Window) Covers(day dateonly.Date) bool {
	if !w.From.IsZero() && day.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && day.After(w.To) {
		return false
	}
	return true
}

// PricingRule adjusts the displayed price of a single listing while it
// applies. At most one rule wins per day; see ResolveDisplayPrice.
type PricingRule struct {
	ID        RuleID
	ListingID string
	Kind      RuleKind
	Priority  int
	Active    bool

	// Adjustment: exactly one of the two is meaningful, per Kind.
	PercentOff         float64
	OverridePriceCents int64

	Window        Window
	Weekdays      WeekdayMask
	MinStayNights int

	CreatedAt time.Time
}

// Validate checks the rule is internally consistent before persisting.
func (r PricingRule) Validate() error {
	if !r.Kind.Valid() {
		return ErrUnknownRuleKind
	}
	if r.Kind == KindFlatOverride {
		if r.OverridePriceCents < 0 {
			return ErrRuleOverride
		}
		return nil
	}
	if r.PercentOff <= 0 || r.PercentOff > 100 {
		return ErrRulePercent
	}
	return nil
}

// AppliesOn reports whether the rule is live on the given day with no stay
// context. Listing cards and search results evaluate "is this rule active
// today" since no concrete dates are known at browse time; rules conditioned
// on a minimum stay cannot match there.
func (r PricingRule) AppliesOn(day dateonly.Date) bool {
	return r.AppliesToStay(day, 0)
}

// AppliesToStay evaluates the rule against a concrete check-in day and stay
// length, as booking modals do once dates are chosen.
func (r PricingRule) AppliesToStay(checkIn dateonly.Date, nights int) bool {
	if !r.Active {
		return false
	}
	if !r.Window.Covers(checkIn) {
		return false
	}
	if r.Weekdays != 0 && !r.Weekdays.Contains(checkIn.Weekday()) {
		return false
	}
	if r.MinStayNights > 0 && nights < r.MinStayNights {
		return false
	}
	return true
}

// RuleRepository is the rules-fetch collaborator; implementations load the
// rule set for one listing.
type RuleRepository interface {
	ByListing(ctx context.Context, listingID string) ([]PricingRule, error)
	Save(ctx context.Context, rule PricingRule) error
	Deactivate(ctx context.Context, listingID string, id RuleID) error
}
