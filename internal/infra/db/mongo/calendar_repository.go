package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/shared/dateonly"
)

type CalendarRepository struct {
	col *mongo.Collection
}

func NewCalendarRepository(db *mongo.Database) *CalendarRepository {
	return &CalendarRepository{col: db.Collection("agg_calendar")}
}

func (r *CalendarRepository) Calendar(ctx context.Context, listingID string) (*domainavailability.Calendar, error) {
	var doc calendarDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": listingID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainavailability.ErrCalendarNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *CalendarRepository) Save(ctx context.Context, calendar *domainavailability.Calendar) error {
	doc := newCalendarDocument(calendar)
	filter := bson.M{"_id": doc.ID, "version": calendar.Version}
	doc.Version = calendar.Version + 1
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
	calendar.Version = doc.Version
	return nil
}

type calendarDayDocument struct {
	Date               string `bson:"date"`
	Available          bool   `bson:"available"`
	OverridePriceCents int64  `bson:"override_price_cents"`
	HasOverridePrice   bool   `bson:"has_override_price"`
}

type calendarDocument struct {
	ID      string                `bson:"_id"`
	Days    []calendarDayDocument `bson:"days"`
	Version int64                 `bson:"version"`
}

func newCalendarDocument(calendar *domainavailability.Calendar) calendarDocument {
	records := calendar.Records()
	days := make([]calendarDayDocument, 0, len(records))
	for _, record := range records {
		days = append(days, calendarDayDocument{
			Date:               record.Day.String(),
			Available:          record.Available,
			OverridePriceCents: record.OverridePriceCents,
			HasOverridePrice:   record.HasOverridePrice,
		})
	}
	return calendarDocument{ID: calendar.ListingID, Days: days, Version: calendar.Version}
}

func (d calendarDocument) toAggregate() (*domainavailability.Calendar, error) {
	records := make([]domainavailability.Record, 0, len(d.Days))
	for _, day := range d.Days {
		date, err := dateonly.Parse(day.Date)
		if err != nil {
			return nil, err
		}
		records = append(records, domainavailability.Record{
			Day:                date,
			Available:          day.Available,
			OverridePriceCents: day.OverridePriceCents,
			HasOverridePrice:   day.HasOverridePrice,
		})
	}
	calendar := domainavailability.NewCalendar(d.ID, records)
	calendar.Version = d.Version
	return calendar, nil
}
