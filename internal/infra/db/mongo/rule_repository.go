package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpricing "staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/dateonly"
)

type RuleRepository struct {
	col *mongo.Collection
}

func NewRuleRepository(db *mongo.Database) *RuleRepository {
	return &RuleRepository{col: db.Collection("pricing_rules")}
}

func (r *RuleRepository) ByListing(ctx context.Context, listingID string) ([]domainpricing.PricingRule, error) {
	cursor, err := r.col.Find(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []domainpricing.PricingRule
	for cursor.Next(ctx) {
		var doc ruleDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rule, err := doc.toRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, cursor.Err()
}

func (r *RuleRepository) Save(ctx context.Context, rule domainpricing.PricingRule) error {
	doc := newRuleDocument(rule)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *RuleRepository) Deactivate(ctx context.Context, listingID string, id domainpricing.RuleID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": string(id), "listing_id": listingID},
		bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainpricing.ErrRuleNotFound
	}
	return nil
}

type ruleDocument struct {
	ID                 string  `bson:"_id"`
	ListingID          string  `bson:"listing_id"`
	Kind               string  `bson:"kind"`
	Priority           int     `bson:"priority"`
	Active             bool    `bson:"active"`
	PercentOff         float64 `bson:"percent_off"`
	OverridePriceCents int64   `bson:"override_price_cents"`
	WindowFrom         string  `bson:"window_from,omitempty"`
	WindowTo           string  `bson:"window_to,omitempty"`
	Weekdays           uint8   `bson:"weekdays"`
	MinStayNights      int     `bson:"min_stay_nights"`
	CreatedAt          int64   `bson:"created_at"`
}

func newRuleDocument(rule domainpricing.PricingRule) ruleDocument {
	doc := ruleDocument{
		ID:                 string(rule.ID),
		ListingID:          rule.ListingID,
		Kind:               string(rule.Kind),
		Priority:           rule.Priority,
		Active:             rule.Active,
		PercentOff:         rule.PercentOff,
		OverridePriceCents: rule.OverridePriceCents,
		Weekdays:           uint8(rule.Weekdays),
		MinStayNights:      rule.MinStayNights,
		CreatedAt:          rule.CreatedAt.UnixMilli(),
	}
	if !rule.Window.From.IsZero() {
		doc.WindowFrom = rule.Window.From.String()
	}
	if !rule.Window.To.IsZero() {
		doc.WindowTo = rule.Window.To.String()
	}
	return doc
}

func (d ruleDocument) toRule() (domainpricing.PricingRule, error) {
	rule := domainpricing.PricingRule{
		ID:                 domainpricing.RuleID(d.ID),
		ListingID:          d.ListingID,
		Kind:               domainpricing.RuleKind(d.Kind),
		Priority:           d.Priority,
		Active:             d.Active,
		PercentOff:         d.PercentOff,
		OverridePriceCents: d.OverridePriceCents,
		Weekdays:           domainpricing.WeekdayMask(d.Weekdays),
		MinStayNights:      d.MinStayNights,
		CreatedAt:          time.UnixMilli(d.CreatedAt).UTC(),
	}
	if d.WindowFrom != "" {
		from, err := dateonly.Parse(d.WindowFrom)
		if err != nil {
			return domainpricing.PricingRule{}, err
		}
		rule.Window.From = from
	}
	if d.WindowTo != "" {
		to, err := dateonly.Parse(d.WindowTo)
		if err != nil {
			return domainpricing.PricingRule{}, err
		}
		rule.Window.To = to
	}
	return rule, nil
}
