package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/events"
)

var (
	ErrListingNotFound = errors.New("listings: not found")
	ErrTitleRequired   = errors.New("listings: title is required")
	ErrHostRequired    = errors.New("listings: host is required")
	ErrNightlyRate     = errors.New("listings: nightly rate must be non-negative")
	ErrGuestsLimit     = errors.New("listings: guests limit must be at least 1")
	ErrNightsRange     = errors.New("listings: min nights must be <= max nights")
	ErrInvalidState    = errors.New("listings: invalid state transition")
	ErrRoomRate        = errors.New("listings: room nightly rate must be non-negative")
)

type ListingID string
type HostID string

// Kind splits the catalog into the two bookable verticals.
type Kind string

const (
	KindStay    Kind = "stay"
	KindVehicle Kind = "vehicle"
)

type ListingState string

const (
	ListingDraft     ListingState = "DRAFT"
	ListingActive    ListingState = "ACTIVE"
	ListingSuspended ListingState = "SUSPENDED"
)

// Hotel-type property types expose sub-bookable rooms with independent rates.
const (
	PropertyHotel  = "hotel"
	PropertyResort = "resort"
)

type Address struct {
	Line1   string
	City    string
	Region  string
	Country string
	Lat     float64
	Lon     float64
}

func (a Address) Valid() bool {
	return strings.TrimSpace(a.City) != "" && strings.TrimSpace(a.Country) != ""
}

// Room is a bookable sub-unit of a hotel-type listing.
type Room struct {
	ID               string
	Name             string
	NightlyRateCents int64
	Capacity         int
	Active           bool
}

type Listing struct {
	ID               ListingID
	Host             HostID
	Kind             Kind
	Title            string
	Description      string
	PropertyType     string
	Address          Address
	Amenities        []string
	GuestsLimit      int
	MinNights        int
	MaxNights        int
	NightlyRateCents int64
	Currency         string
	Rooms            []Room
	State            ListingState
	ThumbnailURL     string
	Rating           float64
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Save(ctx context.Context, listing *Listing) error
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
}

type CreateListingParams struct {
	ID               ListingID
	Host             HostID
	Kind             Kind
	Title            string
	Description      string
	PropertyType     string
	Address          Address
	Amenities        []string
	GuestsLimit      int
	MinNights        int
	MaxNights        int
	NightlyRateCents int64
	Currency         string
	Rooms            []Room
	ThumbnailURL     string
	Now              time.Time
}

func NewListing(params CreateListingParams) (*Listing, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("listings: id is required")
	}
	if strings.TrimSpace(string(params.Host)) == "" {
		return nil, ErrHostRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.GuestsLimit < 1 {
		return nil, ErrGuestsLimit
	}
	// MaxNights == 0 means no upper bound, matching how booking validates
	// stay length.
	if params.MaxNights > 0 && params.MinNights > params.MaxNights {
		return nil, ErrNightsRange
	}
	if params.NightlyRateCents < 0 {
		return nil, ErrNightlyRate
	}
	for _, room := range params.Rooms {
		if room.NightlyRateCents < 0 {
			return nil, ErrRoomRate
		}
	}
	kind := params.Kind
	if kind == "" {
		kind = KindStay
	}
	currency := strings.ToUpper(strings.TrimSpace(params.Currency))
	if currency == "" {
		currency = "USD"
	}
	now := params.Now.UTC()

	listing := &Listing{
		ID:               params.ID,
		Host:             params.Host,
		Kind:             kind,
		Title:            strings.TrimSpace(params.Title),
		Description:      strings.TrimSpace(params.Description),
		PropertyType:     strings.ToLower(strings.TrimSpace(params.PropertyType)),
		Address:          params.Address,
		Amenities:        append([]string(nil), params.Amenities...),
		GuestsLimit:      params.GuestsLimit,
		MinNights:        params.MinNights,
		MaxNights:        params.MaxNights,
		NightlyRateCents: params.NightlyRateCents,
		Currency:         currency,
		Rooms:            append([]Room(nil), params.Rooms...),
		State:            ListingDraft,
		ThumbnailURL:     strings.TrimSpace(params.ThumbnailURL),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	listing.Record(ListingCreatedEvent{ListingID: listing.ID, HostID: listing.Host, At: now})
	return listing, nil
}

// IsHotelType reports whether the listing may expose bookable rooms.
func (l *Listing) IsHotelType() bool {
	return l.PropertyType == PropertyHotel || l.PropertyType == PropertyResort
}

// RoomInfo builds the anchor-price input for the display resolver: the
// lowest active room rate of a hotel-type listing, if any.
func (l *Listing) RoomInfo() pricing.RoomPriceInfo {
	if !l.IsHotelType() {
		return pricing.RoomPriceInfo{}
	}
	info := pricing.RoomPriceInfo{}
	for _, room := range l.Rooms {
		if !room.Active {
			continue
		}
		info.HasRooms = true
		if !info.LowestKnown || room.NightlyRateCents < info.LowestPriceCents {
			info.LowestPriceCents = room.NightlyRateCents
			info.LowestKnown = true
		}
	}
	return info
}

func (l *Listing) Activate(now time.Time) error {
	if l.State == ListingActive {
		return nil
	}
	if !l.Address.Valid() {
		return errors.New("listings: address required for activation")
	}
	l.State = ListingActive
	l.UpdatedAt = now.UTC()
	l.Record(ListingActivatedEvent{ListingID: l.ID, HostID: l.Host, At: l.UpdatedAt})
	return nil
}

func (l *Listing) Suspend(reason string, now time.Time) error {
	if l.State != ListingActive {
		return ErrInvalidState
	}
	l.State = ListingSuspended
	l.UpdatedAt = now.UTC()
	l.Record(ListingSuspendedEvent{ListingID: l.ID, Reason: reason, At: l.UpdatedAt})
	return nil
}

// UpsertRoom adds or replaces a room by ID.
func (l *Listing) UpsertRoom(room Room, now time.Time) error {
	if room.NightlyRateCents < 0 {
		return ErrRoomRate
	}
	for i := range l.Rooms {
		if l.Rooms[i].ID == room.ID {
			l.Rooms[i] = room
			l.UpdatedAt = now.UTC()
			return nil
		}
	}
	l.Rooms = append(l.Rooms, room)
	l.UpdatedAt = now.UTC()
	return nil
}
