package models

import "time"

type Event struct {
	EventID     string    `json:"eventid" bson:"eventid"`
	Title       string    `json:"title" bson:"title"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description" bson:"description"`
	Overview    string    `json:"overview" bson:"overview"`
	Image       string    `json:"image" bson:"image"`
	Venue       string    `json:"venue" bson:"venue"`
	Location    string    `json:"location" bson:"location"`
	Date        string    `json:"date" bson:"date"`
	Time        string    `json:"time" bson:"time"`
	Mode        string    `json:"mode" bson:"mode"`
	Audience    string    `json:"audience" bson:"audience"`
	Agenda      []string  `json:"agenda" bson:"agenda"`
	Organizer   string    `json:"organizer" bson:"organizer"`
	Tags        []string  `json:"tags" bson:"tags"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// RequiredEventFields is checked in declaration order so a record missing
// several fields always reports the same one first.
var RequiredEventFields = []string{
	"title", "description", "overview", "image", "venue", "location",
	"date", "time", "mode", "audience", "agenda", "organizer", "tags",
}
