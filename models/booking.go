package models

import "time"

// Booking holds a non-owning reference to an Event; many bookings may point
// at the same event. Existence of the referenced event is checked at create
// time, not enforced by the storage layer.
type Booking struct {
	BookingID string    `json:"bookingid" bson:"bookingid"`
	EventID   string    `json:"eventid" bson:"eventid"`
	Email     string    `json:"email" bson:"email"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
