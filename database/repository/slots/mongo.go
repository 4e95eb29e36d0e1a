package slotsRepo

import (
	"context"
	"fmt"
	"time"

	"fixpoint/models"
	"fixpoint/services/scheduling"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSlotStore implements scheduling.Store over a Mongo collection. Reserve
// relies on a conditional single-document update, so the capacity check and
// the counter increment are one atomic operation server-side.
type MongoSlotStore struct {
	coll *mongo.Collection
}

// NewMongoSlotStore returns a slot store over db's "slots" collection.
func NewMongoSlotStore(db *mongo.Database) *MongoSlotStore {
	return &MongoSlotStore{coll: db.Collection("slots")}
}

func (s *MongoSlotStore) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// Put upserts slots, preserving counters on documents that already exist.
func (s *MongoSlotStore) Put(slots []models.AppointmentSlot) error {
	if len(slots) == 0 {
		return nil
	}
	ctx, cancel := s.opCtx()
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(slots))
	for _, slot := range slots {
		filter := bson.M{"date": slot.Date, "time": slot.Time}
		update := bson.M{"$setOnInsert": slot}
		writes = append(writes,
			mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
	}
	if _, err := s.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to upsert slot horizon: %w", err)
	}
	return nil
}

// Get returns the slot at the given coordinates.
func (s *MongoSlotStore) Get(ref models.SlotRef) (*models.AppointmentSlot, error) {
	ctx, cancel := s.opCtx()
	defer cancel()

	var slot models.AppointmentSlot
	err := s.coll.FindOne(ctx, bson.M{"date": ref.Date, "time": ref.Time}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, scheduling.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	return &slot, nil
}

// List returns slots within the inclusive date range, sorted by (date, time).
func (s *MongoSlotStore) List(from, to string) ([]models.AppointmentSlot, error) {
	ctx, cancel := s.opCtx()
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.AppointmentSlot
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return out, nil
}

// Reserve increments currentBookings only while capacity remains; no match
// means the slot is unknown or already full.
func (s *MongoSlotStore) Reserve(ref models.SlotRef) (*models.AppointmentSlot, error) {
	ctx, cancel := s.opCtx()
	defer cancel()

	filter := bson.M{
		"date": ref.Date,
		"time": ref.Time,
		"$expr": bson.M{
			"$lt": bson.A{"$currentBookings", "$maxBookings"},
		},
	}
	update := bson.M{"$inc": bson.M{"currentBookings": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.AppointmentSlot
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, scheduling.ErrSlotUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reserve slot: %w", err)
	}
	return &slot, nil
}

// Release decrements currentBookings, flooring at zero via the filter.
func (s *MongoSlotStore) Release(ref models.SlotRef) error {
	ctx, cancel := s.opCtx()
	defer cancel()

	filter := bson.M{
		"date":            ref.Date,
		"time":            ref.Time,
		"currentBookings": bson.M{"$gt": 0},
	}
	update := bson.M{"$inc": bson.M{"currentBookings": -1}}
	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	if res.MatchedCount == 0 {
		// Already at zero or unknown slot; distinguish for the caller.
		n, err := s.coll.CountDocuments(ctx, bson.M{"date": ref.Date, "time": ref.Time})
		if err != nil {
			return fmt.Errorf("failed to verify slot after release: %w", err)
		}
		if n == 0 {
			return scheduling.ErrSlotNotFound
		}
	}
	return nil
}
