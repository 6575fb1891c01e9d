package booking

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"evently/models"
	"evently/mq"
	"evently/utils"

	"github.com/julienschmidt/httprouter"
)

// Store is the slice of the document store the booking handlers use.
type Store interface {
	EventExists(ctx context.Context, eventID string) (bool, error)
	InsertBooking(ctx context.Context, booking models.Booking) error
	FindBookingsByEvent(ctx context.Context, eventID string) ([]models.Booking, error)
}

type Handler struct {
	Store   Store
	Emitter *mq.Emitter
}

func NewHandler(store Store, emitter *mq.Emitter) *Handler {
	return &Handler{Store: store, Emitter: emitter}
}

type createRequest struct {
	EventID string `json:"eventId"`
	Email   string `json:"email"`
}

// CreateBooking handles POST /api/bookings. The event-existence check and
// the insert are two separate operations; a concurrent event deletion in
// between can produce a dangling booking. Known gap, accepted.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid Request Body")
		return
	}

	now := time.Now().UTC()
	b := models.Booking{
		BookingID: utils.GetUUID(),
		EventID:   req.EventID,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := ValidateBooking(&b); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"message": "Booking Creation Failed",
			"error":   models.FailureMessage(err),
		})
		return
	}

	exists, err := h.Store.EventExists(r.Context(), b.EventID)
	if err != nil {
		log.Println("event existence check failed:", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"message": "Booking Creation Failed",
			"error":   models.FailureMessage(err),
		})
		return
	}
	if !exists {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"message": "Booking Creation Failed",
			"error":   models.FailureMessage(models.ErrEventNotFound),
		})
		return
	}

	if err := h.Store.InsertBooking(r.Context(), b); err != nil {
		log.Printf("insert booking %s failed: %v", b.BookingID, err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"message": "Booking Creation Failed",
			"error":   models.FailureMessage(err),
		})
		return
	}

	go h.Emitter.Emit(context.Background(), "booking-created", models.Index{
		EntityType: "booking", EntityId: b.BookingID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Booking created successfully",
		"booking": b,
	})
}

func (h *Handler) GetEventBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Store.FindBookingsByEvent(ctx, ps.ByName("eventid"))
	if err != nil {
		log.Println("find bookings failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"bookings":     bookings,
		"bookingCount": len(bookings),
	})
}
