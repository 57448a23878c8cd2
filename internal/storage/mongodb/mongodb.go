// Package mongodb backs the storage port with MongoDB collections. The
// conditional writes ride on filtered updates: the seat decrement only
// matches documents with enough seats left, the status swap only matches
// the expected current status.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avolkov/skyfare/internal/domain"
	"github.com/avolkov/skyfare/internal/storage"
)

// Connect dials the server and verifies it responds before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

type FlightStore struct {
	coll *mongo.Collection
}

func NewFlightStore(db *mongo.Database) *FlightStore {
	return &FlightStore{coll: db.Collection("flights")}
}

// seededFlight carries a seq counter so listings keep insertion order.
type seededFlight struct {
	domain.Flight `bson:",inline"`
	Seq           int `bson:"seq"`
}

func (s *FlightStore) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := bson.M{}
	if filter.Origin != "" {
		query["origin"] = substringRegex(filter.Origin)
	}
	if filter.Destination != "" {
		query["destination"] = substringRegex(filter.Destination)
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}

	cursor, err := s.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	flights := make([]domain.Flight, 0)
	for cursor.Next(ctx) {
		var f domain.Flight
		if err := cursor.Decode(&f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, cursor.Err()
}

func (s *FlightStore) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	var f domain.Flight
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (s *FlightStore) DecrementSeats(ctx context.Context, id string, count int) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "availableSeats": bson.M{"$gte": count}},
		bson.M{"$inc": bson.M{"availableSeats": -count}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := s.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrFlightNotFound
		}
		return domain.ErrNotEnoughSeats
	}
	return nil
}

func (s *FlightStore) SeedIfEmpty(ctx context.Context, flights []domain.Flight) error {
	n, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(flights))
	for i, f := range flights {
		docs = append(docs, seededFlight{Flight: f, Seq: i})
	}
	_, err = s.coll.InsertMany(ctx, docs)
	return err
}

type BookingStore struct {
	coll *mongo.Collection
}

func NewBookingStore(db *mongo.Database) *BookingStore {
	return &BookingStore{coll: db.Collection("bookings")}
}

func (s *BookingStore) Create(ctx context.Context, booking *domain.Booking) error {
	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now().UTC()
	booking.Status = domain.BookingStatusPending

	_, err := s.coll.InsertOne(ctx, booking)
	return err
}

func (s *BookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, payment *domain.PaymentDetails) (*domain.Booking, error) {
	set := bson.M{"status": to}
	if payment != nil {
		set["paymentDetails"] = payment
	}

	var b domain.Booking
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			n, err := s.coll.CountDocuments(ctx, bson.M{"_id": id})
			if err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, domain.ErrBookingNotFound
			}
			return nil, domain.ErrAlreadyProcessed
		}
		return nil, err
	}
	return &b, nil
}

func substringRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

var (
	_ storage.FlightStore  = (*FlightStore)(nil)
	_ storage.BookingStore = (*BookingStore)(nil)
)
