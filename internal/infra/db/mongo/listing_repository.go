package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlistings "staybook/internal/domain/listings"
)

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection("agg_listing")}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainlistings.ErrListingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ListingRepository) Save(ctx context.Context, listing *domainlistings.Listing) error {
	doc := newListingDocument(listing)
	filter := bson.M{"_id": doc.ID, "version": listing.Version}
	doc.Version = listing.Version + 1
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	listing.Version = doc.Version
	return nil
}

func (r *ListingRepository) Search(ctx context.Context, params domainlistings.SearchParams) (domainlistings.SearchResult, error) {
	opts := params.Normalized()
	filter := bson.M{}
	if opts.OnlyActive {
		filter["state"] = string(domainlistings.ListingActive)
	}
	if opts.Kind != "" {
		filter["kind"] = string(opts.Kind)
	}
	if opts.City != "" {
		filter["address.city"] = opts.City
	}
	if opts.Country != "" {
		filter["address.country"] = opts.Country
	}
	if opts.MinGuests > 0 {
		filter["guests_limit"] = bson.M{"$gte": opts.MinGuests}
	}
	if len(opts.PropertyTypes) > 0 {
		filter["property_type"] = bson.M{"$in": opts.PropertyTypes}
	}
	price := bson.M{}
	if opts.PriceMinCents > 0 {
		price["$gte"] = opts.PriceMinCents
	}
	if opts.PriceMaxCents > 0 {
		price["$lte"] = opts.PriceMaxCents
	}
	if len(price) > 0 {
		filter["nightly_rate_cents"] = price
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainlistings.SearchResult{}, err
	}

	findOpts := options.Find().
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit)).
		SetSort(sortFor(opts.Sort))
	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return domainlistings.SearchResult{}, err
	}
	defer cursor.Close(ctx)

	var result domainlistings.SearchResult
	result.Total = int(total)
	for cursor.Next(ctx) {
		var doc listingDocument
		if err := cursor.Decode(&doc); err != nil {
			return domainlistings.SearchResult{}, err
		}
		result.Items = append(result.Items, doc.toAggregate())
	}
	return result, cursor.Err()
}

func sortFor(order domainlistings.SortOrder) bson.D {
	switch order {
	case domainlistings.SortByPriceDesc:
		return bson.D{{Key: "nightly_rate_cents", Value: -1}}
	case domainlistings.SortByRating:
		return bson.D{{Key: "rating", Value: -1}}
	default:
		return bson.D{{Key: "nightly_rate_cents", Value: 1}}
	}
}

type roomDocument struct {
	ID               string `bson:"id"`
	Name             string `bson:"name"`
	NightlyRateCents int64  `bson:"nightly_rate_cents"`
	Capacity         int    `bson:"capacity"`
	Active           bool   `bson:"active"`
}

type addressDocument struct {
	Line1   string  `bson:"line1"`
	City    string  `bson:"city"`
	Region  string  `bson:"region"`
	Country string  `bson:"country"`
	Lat     float64 `bson:"lat"`
	Lon     float64 `bson:"lon"`
}

type listingDocument struct {
	ID               string          `bson:"_id"`
	Host             string          `bson:"host"`
	Kind             string          `bson:"kind"`
	Title            string          `bson:"title"`
	Description      string          `bson:"description"`
	PropertyType     string          `bson:"property_type"`
	Address          addressDocument `bson:"address"`
	Amenities        []string        `bson:"amenities"`
	GuestsLimit      int             `bson:"guests_limit"`
	MinNights        int             `bson:"min_nights"`
	MaxNights        int             `bson:"max_nights"`
	NightlyRateCents int64           `bson:"nightly_rate_cents"`
	Currency         string          `bson:"currency"`
	Rooms            []roomDocument  `bson:"rooms"`
	State            string          `bson:"state"`
	ThumbnailURL     string          `bson:"thumbnail_url"`
	Rating           float64         `bson:"rating"`
	CreatedAt        int64           `bson:"created_at"`
	UpdatedAt        int64           `bson:"updated_at"`
	Version          int64           `bson:"version"`
}

func newListingDocument(l *domainlistings.Listing) listingDocument {
	rooms := make([]roomDocument, 0, len(l.Rooms))
	for _, room := range l.Rooms {
		rooms = append(rooms, roomDocument{
			ID:               room.ID,
			Name:             room.Name,
			NightlyRateCents: room.NightlyRateCents,
			Capacity:         room.Capacity,
			Active:           room.Active,
		})
	}
	return listingDocument{
		ID:               string(l.ID),
		Host:             string(l.Host),
		Kind:             string(l.Kind),
		Title:            l.Title,
		Description:      l.Description,
		PropertyType:     l.PropertyType,
		Address: addressDocument{
			Line1:   l.Address.Line1,
			City:    l.Address.City,
			Region:  l.Address.Region,
			Country: l.Address.Country,
			Lat:     l.Address.Lat,
			Lon:     l.Address.Lon,
		},
		Amenities:        l.Amenities,
		GuestsLimit:      l.GuestsLimit,
		MinNights:        l.MinNights,
		MaxNights:        l.MaxNights,
		NightlyRateCents: l.NightlyRateCents,
		Currency:         l.Currency,
		Rooms:            rooms,
		State:            string(l.State),
		ThumbnailURL:     l.ThumbnailURL,
		Rating:           l.Rating,
		CreatedAt:        l.CreatedAt.UnixMilli(),
		UpdatedAt:        l.UpdatedAt.UnixMilli(),
		Version:          l.Version,
	}
}

func (d listingDocument) toAggregate() *domainlistings.Listing {
	rooms := make([]domainlistings.Room, 0, len(d.Rooms))
	for _, room := range d.Rooms {
		rooms = append(rooms, domainlistings.Room{
			ID:               room.ID,
			Name:             room.Name,
			NightlyRateCents: room.NightlyRateCents,
			Capacity:         room.Capacity,
			Active:           room.Active,
		})
	}
	return &domainlistings.Listing{
		ID:           domainlistings.ListingID(d.ID),
		Host:         domainlistings.HostID(d.Host),
		Kind:         domainlistings.Kind(d.Kind),
		Title:        d.Title,
		Description:  d.Description,
		PropertyType: d.PropertyType,
		Address: domainlistings.Address{
			Line1:   d.Address.Line1,
			City:    d.Address.City,
			Region:  d.Address.Region,
			Country: d.Address.Country,
			Lat:     d.Address.Lat,
			Lon:     d.Address.Lon,
		},
		Amenities:        d.Amenities,
		GuestsLimit:      d.GuestsLimit,
		MinNights:        d.MinNights,
		MaxNights:        d.MaxNights,
		NightlyRateCents: d.NightlyRateCents,
		Currency:         d.Currency,
		Rooms:            rooms,
		State:            domainlistings.ListingState(d.State),
		ThumbnailURL:     d.ThumbnailURL,
		Rating:           d.Rating,
		CreatedAt:        timestampToTime(d.CreatedAt),
		UpdatedAt:        timestampToTime(d.UpdatedAt),
		Version:          d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
