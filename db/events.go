package db

import (
	"context"
	"errors"

	"evently/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *Mongo) InsertEvent(ctx context.Context, event models.Event) error {
	if err := m.connect(ctx); err != nil {
		return &models.StorageError{Op: "connect", Err: err}
	}
	if _, err := m.events.InsertOne(ctx, event); err != nil {
		return &models.StorageError{Op: "insert event", Err: err}
	}
	return nil
}

func (m *Mongo) FindEventByID(ctx context.Context, eventID string) (models.Event, error) {
	var event models.Event
	if err := m.connect(ctx); err != nil {
		return event, &models.StorageError{Op: "connect", Err: err}
	}
	err := m.events.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return event, models.ErrEventNotFound
	}
	if err != nil {
		return event, &models.StorageError{Op: "find event", Err: err}
	}
	return event, nil
}

func (m *Mongo) FindEventBySlug(ctx context.Context, slug string) (models.Event, error) {
	var event models.Event
	if err := m.connect(ctx); err != nil {
		return event, &models.StorageError{Op: "connect", Err: err}
	}
	err := m.events.FindOne(ctx, bson.M{"slug": slug}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return event, models.ErrEventNotFound
	}
	if err != nil {
		return event, &models.StorageError{Op: "find event by slug", Err: err}
	}
	return event, nil
}

// FindEvents returns one page of events, newest first, plus the total count.
func (m *Mongo) FindEvents(ctx context.Context, skip, limit int64) ([]models.Event, int64, error) {
	if err := m.connect(ctx); err != nil {
		return nil, 0, &models.StorageError{Op: "connect", Err: err}
	}

	total, err := m.events.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, &models.StorageError{Op: "count events", Err: err}
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.events.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, &models.StorageError{Op: "find events", Err: err}
	}
	defer cur.Close(ctx)

	events := make([]models.Event, 0, limit)
	if err := cur.All(ctx, &events); err != nil {
		return nil, 0, &models.StorageError{Op: "decode events", Err: err}
	}
	return events, total, nil
}

// UpdateEvent applies the changed fields and returns the updated document.
func (m *Mongo) UpdateEvent(ctx context.Context, eventID string, fields map[string]any) (models.Event, error) {
	var event models.Event
	if err := m.connect(ctx); err != nil {
		return event, &models.StorageError{Op: "connect", Err: err}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := m.events.FindOneAndUpdate(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$set": bson.M(fields)},
		opts,
	).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return event, models.ErrEventNotFound
	}
	if err != nil {
		return event, &models.StorageError{Op: "update event", Err: err}
	}
	return event, nil
}

func (m *Mongo) DeleteEvent(ctx context.Context, eventID string) error {
	if err := m.connect(ctx); err != nil {
		return &models.StorageError{Op: "connect", Err: err}
	}
	res, err := m.events.DeleteOne(ctx, bson.M{"eventid": eventID})
	if err != nil {
		return &models.StorageError{Op: "delete event", Err: err}
	}
	if res.DeletedCount == 0 {
		return models.ErrEventNotFound
	}
	return nil
}
