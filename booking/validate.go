package booking

import (
	"regexp"
	"strings"

	"evently/models"
)

var emailRe = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,}$`)

// ValidateBooking checks the candidate's own fields. The existence of the
// referenced event is a storage-side check done separately by the handler.
func ValidateBooking(b *models.Booking) error {
	b.EventID = strings.TrimSpace(b.EventID)
	b.Email = strings.TrimSpace(b.Email)

	if b.EventID == "" {
		return &models.RequiredFieldError{Field: "eventId"}
	}
	if !emailRe.MatchString(b.Email) {
		return models.ErrInvalidEmailFormat
	}
	return nil
}
