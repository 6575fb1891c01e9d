package events

import (
	"regexp"
	"strings"
	"time"

	"evently/models"
	"evently/utils"
)

// Time must already be exact 24-hour HH:MM; no reformatting is attempted.
var timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Layouts accepted for incoming dates. Whatever matches is canonicalized to
// UTC YYYY-MM-DD before the record is written.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// NormalizeDate parses a calendar date and rewrites it to YYYY-MM-DD.
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", models.ErrInvalidDateFormat
}

// ValidateEvent normalizes a candidate event in place and validates it. It
// is pure with respect to storage: it must run to completion before any
// write is issued, and a failure aborts the write entirely.
//
// Order matters: slug derivation, date canonicalization and the time check
// run first, then required fields are checked in declaration order so the
// first offending field is reported deterministically.
func ValidateEvent(event *models.Event) error {
	event.Title = strings.TrimSpace(event.Title)
	event.Description = strings.TrimSpace(event.Description)
	event.Overview = strings.TrimSpace(event.Overview)
	event.Image = strings.TrimSpace(event.Image)
	event.Venue = strings.TrimSpace(event.Venue)
	event.Location = strings.TrimSpace(event.Location)
	event.Mode = strings.TrimSpace(event.Mode)
	event.Audience = strings.TrimSpace(event.Audience)
	event.Organizer = strings.TrimSpace(event.Organizer)
	event.Slug = utils.Slugify(event.Title)

	if strings.TrimSpace(event.Date) != "" {
		date, err := NormalizeDate(event.Date)
		if err != nil {
			return err
		}
		event.Date = date
	}

	if event.Time != "" && !timeRe.MatchString(event.Time) {
		return models.ErrInvalidTimeFormat
	}

	for _, field := range models.RequiredEventFields {
		if !fieldPresent(event, field) {
			return &models.RequiredFieldError{Field: field}
		}
	}
	return nil
}

func fieldPresent(event *models.Event, field string) bool {
	switch field {
	case "title":
		// A title that slugifies to nothing (all punctuation) is as good
		// as missing.
		return event.Slug != ""
	case "description":
		return strings.TrimSpace(event.Description) != ""
	case "overview":
		return strings.TrimSpace(event.Overview) != ""
	case "image":
		return strings.TrimSpace(event.Image) != ""
	case "venue":
		return strings.TrimSpace(event.Venue) != ""
	case "location":
		return strings.TrimSpace(event.Location) != ""
	case "date":
		return strings.TrimSpace(event.Date) != ""
	case "time":
		return strings.TrimSpace(event.Time) != ""
	case "mode":
		return strings.TrimSpace(event.Mode) != ""
	case "audience":
		return strings.TrimSpace(event.Audience) != ""
	case "agenda":
		return len(event.Agenda) > 0
	case "organizer":
		return strings.TrimSpace(event.Organizer) != ""
	case "tags":
		return len(event.Tags) > 0
	}
	return false
}
