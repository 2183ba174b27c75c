package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "staybook/internal/domain/booking"
	domainlistings "staybook/internal/domain/listings"
	domainpricing "staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/dateonly"
	"staybook/internal/domain/shared/money"
)

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
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
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"guest_id": guestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		agg, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, cursor.Err()
}

type priceLineDocument struct {
	Name        string `bson:"name"`
	AmountCents int64  `bson:"amount_cents"`
	Currency    string `bson:"currency"`
}

type breakdownDocument struct {
	Nights        int                 `bson:"nights"`
	SubtotalCents int64               `bson:"subtotal_cents"`
	Currency      string              `bson:"currency"`
	Fees          []priceLineDocument `bson:"fees"`
	Discounts     []priceLineDocument `bson:"discounts"`
	TotalCents    int64               `bson:"total_cents"`
}

type bookingDocument struct {
	ID        string            `bson:"_id"`
	ListingID string            `bson:"listing_id"`
	GuestID   string            `bson:"guest_id"`
	CheckIn   string            `bson:"check_in"`
	CheckOut  string            `bson:"check_out"`
	Guests    int               `bson:"guests"`
	Price     breakdownDocument `bson:"price"`
	State     string            `bson:"state"`
	CreatedAt int64             `bson:"created_at"`
	UpdatedAt int64             `bson:"updated_at"`
	Version   int64             `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	price := breakdownDocument{
		Nights:        b.Price.Nights,
		SubtotalCents: b.Price.SubtotalCents,
		Currency:      b.Price.Currency,
		TotalCents:    b.Price.Total.Amount,
	}
	for _, fee := range b.Price.Fees {
		price.Fees = append(price.Fees, priceLineDocument{Name: fee.Name, AmountCents: fee.Amount.Amount, Currency: fee.Amount.Currency})
	}
	for _, discount := range b.Price.Discounts {
		price.Discounts = append(price.Discounts, priceLineDocument{Name: discount.Name, AmountCents: discount.Amount.Amount, Currency: discount.Amount.Currency})
	}
	return bookingDocument{
		ID:        string(b.ID),
		ListingID: string(b.ListingID),
		GuestID:   b.GuestID,
		CheckIn:   b.CheckIn.String(),
		CheckOut:  b.CheckOut.String(),
		Guests:    b.Guests,
		Price:     price,
		State:     string(b.State),
		CreatedAt: b.CreatedAt.UnixMilli(),
		UpdatedAt: b.UpdatedAt.UnixMilli(),
		Version:   b.Version,
	}
}

func (d bookingDocument) toAggregate() (*domainbooking.Booking, error) {
	checkIn, err := dateonly.Parse(d.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := dateonly.Parse(d.CheckOut)
	if err != nil {
		return nil, err
	}
	price := domainpricing.StayBreakdown{
		Nights:        d.Price.Nights,
		SubtotalCents: d.Price.SubtotalCents,
		Currency:      d.Price.Currency,
		Total:         money.Money{Amount: d.Price.TotalCents, Currency: d.Price.Currency},
	}
	for _, fee := range d.Price.Fees {
		price.Fees = append(price.Fees, domainpricing.Fee{Name: fee.Name, Amount: money.Money{Amount: fee.AmountCents, Currency: fee.Currency}})
	}
	for _, discount := range d.Price.Discounts {
		price.Discounts = append(price.Discounts, domainpricing.Discount{Name: discount.Name, Amount: money.Money{Amount: discount.AmountCents, Currency: discount.Currency}})
	}
	return &domainbooking.Booking{
		ID:        domainbooking.BookingID(d.ID),
		ListingID: domainlistings.ListingID(d.ListingID),
		GuestID:   d.GuestID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    d.Guests,
		Price:     price,
		State:     domainbooking.BookingState(d.State),
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}, nil
}
