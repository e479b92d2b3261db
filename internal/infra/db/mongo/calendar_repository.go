package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "stayquote/internal/domain/availability"
	domainpricing "stayquote/internal/domain/pricing"
	domainrange "stayquote/internal/domain/shared/daterange"
	"stayquote/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type CalendarRepository struct {
	col *mongo.Collection
}

func NewCalendarRepository(db *mongo.Database) *CalendarRepository {
	return &CalendarRepository{col: db.Collection("agg_calendar")}
}

func (r *CalendarRepository) Calendar(ctx context.Context, scope domainavailability.ScopeID) (*domainavailability.Calendar, error) {
	var doc calendarDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(scope)}).Decode(&doc); err != nil {
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
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
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

type calendarDocument struct {
	ID      string             `bson:"_id"`
	Profile profileDocument    `bson:"profile"`
	Entries []overrideDocument `bson:"entries"`
	Version int64              `bson:"version"`
}

type profileDocument struct {
	Base       int64  `bson:"base"`
	BestDeal   int64  `bson:"best_deal"`
	PeakSeason int64  `bson:"peak_season"`
	Currency   string `bson:"currency"`
}

type overrideDocument struct {
	Date  string `bson:"date"`
	Type  string `bson:"type"`
	Price *int64 `bson:"price,omitempty"`
}

func newCalendarDocument(calendar *domainavailability.Calendar) calendarDocument {
	entries := make([]overrideDocument, 0, len(calendar.Entries))
	for _, e := range calendar.Entries {
		doc := overrideDocument{Date: e.Date.String(), Type: string(e.Type)}
		if e.Price != nil {
			amount := e.Price.Amount
			doc.Price = &amount
		}
		entries = append(entries, doc)
	}
	return calendarDocument{
		ID: string(calendar.Scope),
		Profile: profileDocument{
			Base:       calendar.Profile.Base.Amount,
			BestDeal:   calendar.Profile.BestDeal.Amount,
			PeakSeason: calendar.Profile.PeakSeason.Amount,
			Currency:   calendar.Profile.Base.Currency,
		},
		Entries: entries,
		Version: calendar.Version,
	}
}

func (d calendarDocument) toAggregate() (*domainavailability.Calendar, error) {
	profile := domainpricing.Profile{
		Base:       money.Money{Amount: d.Profile.Base, Currency: d.Profile.Currency},
		BestDeal:   money.Money{Amount: d.Profile.BestDeal, Currency: d.Profile.Currency},
		PeakSeason: money.Money{Amount: d.Profile.PeakSeason, Currency: d.Profile.Currency},
	}
	entries := make([]domainavailability.Override, 0, len(d.Entries))
	for _, e := range d.Entries {
		date, err := domainrange.ParseDate(e.Date)
		if err != nil {
			return nil, err
		}
		override := domainavailability.Override{
			Date: date,
			Type: domainpricing.PriceType(e.Type),
		}
		if e.Price != nil {
			price := money.Money{Amount: *e.Price, Currency: d.Profile.Currency}
			override.Price = &price
		}
		entries = append(entries, override)
	}
	return &domainavailability.Calendar{
		Scope:   domainavailability.ScopeID(d.ID),
		Profile: profile,
		Entries: entries,
		Version: d.Version,
	}, nil
}

var _ domainavailability.Repository = (*CalendarRepository)(nil)
