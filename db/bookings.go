package db

import (
	"context"
	"errors"

	"evently/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EventExists reports whether an event with the given id is present. Used by
// the booking create path; the check and the subsequent insert are two
// separate operations, so a concurrent event deletion can slip between them.
func (m *Mongo) EventExists(ctx context.Context, eventID string) (bool, error) {
	if err := m.connect(ctx); err != nil {
		return false, &models.StorageError{Op: "connect", Err: err}
	}
	err := m.events.FindOne(ctx, bson.M{"eventid": eventID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, &models.StorageError{Op: "check event", Err: err}
	}
	return true, nil
}

func (m *Mongo) InsertBooking(ctx context.Context, booking models.Booking) error {
	if err := m.connect(ctx); err != nil {
		return &models.StorageError{Op: "connect", Err: err}
	}
	if _, err := m.bookings.InsertOne(ctx, booking); err != nil {
		return &models.StorageError{Op: "insert booking", Err: err}
	}
	return nil
}

func (m *Mongo) FindBookingsByEvent(ctx context.Context, eventID string) ([]models.Booking, error) {
	if err := m.connect(ctx); err != nil {
		return nil, &models.StorageError{Op: "connect", Err: err}
	}
	cur, err := m.bookings.Find(ctx, bson.M{"eventid": eventID})
	if err != nil {
		return nil, &models.StorageError{Op: "find bookings", Err: err}
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, &models.StorageError{Op: "decode bookings", Err: err}
	}
	return bookings, nil
}

// DeleteEventBookings removes all bookings for an event when the event
// itself is deleted.
func (m *Mongo) DeleteEventBookings(ctx context.Context, eventID string) (int64, error) {
	if err := m.connect(ctx); err != nil {
		return 0, &models.StorageError{Op: "connect", Err: err}
	}
	res, err := m.bookings.DeleteMany(ctx, bson.M{"eventid": eventID})
	if err != nil {
		return 0, &models.StorageError{Op: "delete bookings", Err: err}
	}
	return res.DeletedCount, nil
}
