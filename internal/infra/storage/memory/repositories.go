package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainavailability "staybook/internal/domain/availability"
	domainbooking "staybook/internal/domain/booking"
	domainlistings "staybook/internal/domain/listings"
	domainpricing "staybook/internal/domain/pricing"
)

// ListingRepository is an in-memory implementation for dev mode and tests.
type ListingRepository struct {
	mu    sync.RWMutex
	items map[domainlistings.ListingID]*domainlistings.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{items: make(map[domainlistings.ListingID]*domainlistings.Listing)}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.items[id]
	if !ok {
		return nil, domainlistings.ErrListingNotFound
	}
	return listing, nil
}

func (r *ListingRepository) Save(ctx context.Context, listing *domainlistings.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[listing.ID] = listing
	return nil
}

func (r *ListingRepository) Search(ctx context.Context, params domainlistings.SearchParams) (domainlistings.SearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := params.Normalized()
	matches := make([]*domainlistings.Listing, 0, len(r.items))
	for _, listing := range r.items {
		select {
		case <-ctx.Done():
			return domainlistings.SearchResult{}, ctx.Err()
		default:
		}

		if opts.OnlyActive && listing.State != domainlistings.ListingActive {
			continue
		}
		if opts.Kind != "" && listing.Kind != opts.Kind {
			continue
		}
		if opts.City != "" && !strings.EqualFold(listing.Address.City, opts.City) {
			continue
		}
		if opts.Country != "" && !strings.EqualFold(listing.Address.Country, opts.Country) {
			continue
		}
		if opts.MinGuests > 0 && listing.GuestsLimit < opts.MinGuests {
			continue
		}
		if opts.PriceMinCents > 0 && listing.NightlyRateCents < opts.PriceMinCents {
			continue
		}
		if opts.PriceMaxCents > 0 && listing.NightlyRateCents > opts.PriceMaxCents {
			continue
		}
		if len(opts.PropertyTypes) > 0 && !propertyTypeMatches(listing.PropertyType, opts.PropertyTypes) {
			continue
		}
		matches = append(matches, listing)
	}

	sort.Slice(matches, func(i, j int) bool {
		switch opts.Sort {
		case domainlistings.SortByPriceDesc:
			return matches[i].NightlyRateCents > matches[j].NightlyRateCents
		case domainlistings.SortByRating:
			if matches[i].Rating == matches[j].Rating {
				return matches[i].NightlyRateCents < matches[j].NightlyRateCents
			}
			return matches[i].Rating > matches[j].Rating
		default:
			return matches[i].NightlyRateCents < matches[j].NightlyRateCents
		}
	})

	total := len(matches)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return domainlistings.SearchResult{Items: matches[start:end], Total: total}, nil
}

func propertyTypeMatches(propertyType string, wanted []string) bool {
	for _, w := range wanted {
		if strings.EqualFold(propertyType, w) {
			return true
		}
	}
	return false
}

// RuleRepository keeps pricing rules per listing.
type RuleRepository struct {
	mu    sync.RWMutex
	items map[string][]domainpricing.PricingRule
}

func NewRuleRepository() *RuleRepository {
	return &RuleRepository{items: make(map[string][]domainpricing.PricingRule)}
}

func (r *RuleRepository) ByListing(ctx context.Context, listingID string) ([]domainpricing.PricingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules := r.items[listingID]
	out := make([]domainpricing.PricingRule, len(rules))
	copy(out, rules)
	return out, nil
}

func (r *RuleRepository) Save(ctx context.Context, rule domainpricing.PricingRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rules := r.items[rule.ListingID]
	for i := range rules {
		if rules[i].ID == rule.ID {
			rules[i] = rule
			return nil
		}
	}
	r.items[rule.ListingID] = append(rules, rule)
	return nil
}

func (r *RuleRepository) Deactivate(ctx context.Context, listingID string, id domainpricing.RuleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rules := r.items[listingID]
	for i := range rules {
		if rules[i].ID == id {
			rules[i].Active = false
			return nil
		}
	}
	return domainpricing.ErrRuleNotFound
}

// CalendarRepository keeps availability calendars per listing.
type CalendarRepository struct {
	mu    sync.RWMutex
	items map[string][]domainavailability.Record
}

func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{items: make(map[string][]domainavailability.Record)}
}

func (r *CalendarRepository) Calendar(ctx context.Context, listingID string) (*domainavailability.Calendar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records, ok := r.items[listingID]
	if !ok {
		return nil, domainavailability.ErrCalendarNotFound
	}
	return domainavailability.NewCalendar(listingID, records), nil
}

func (r *CalendarRepository) Save(ctx context.Context, calendar *domainavailability.Calendar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[calendar.ListingID] = calendar.Records()
	return nil
}

// BookingRepository stores bookings keyed by ID.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return b, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = b
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.items {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
