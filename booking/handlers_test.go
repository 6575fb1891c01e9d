package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"evently/models"

	"github.com/julienschmidt/httprouter"
)

type memStore struct {
	mu       sync.Mutex
	eventIDs map[string]bool
	bookings map[string][]models.Booking
}

func newMemStore(eventIDs ...string) *memStore {
	s := &memStore{
		eventIDs: make(map[string]bool),
		bookings: make(map[string][]models.Booking),
	}
	for _, id := range eventIDs {
		s.eventIDs[id] = true
	}
	return s
}

func (s *memStore) EventExists(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventIDs[eventID], nil
}

func (s *memStore) InsertBooking(_ context.Context, b models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.EventID] = append(s.bookings[b.EventID], b)
	return nil
}

func (s *memStore) FindBookingsByEvent(_ context.Context, eventID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[eventID], nil
}

func postBooking(h *Handler, payload string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("POST", "/api/bookings", bytes.NewBufferString(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.CreateBooking(w, r, nil)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestCreateBookingSuccess(t *testing.T) {
	store := newMemStore("ev1")
	h := NewHandler(store, nil)

	w := postBooking(h, `{"eventId":"ev1","email":"user@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	b := resp["booking"].(map[string]any)
	if b["eventid"] != "ev1" || b["email"] != "user@example.com" {
		t.Fatalf("booking = %v", b)
	}
	if b["bookingid"] == "" {
		t.Fatal("bookingid missing")
	}

	// retrievable afterward
	stored, _ := store.FindBookingsByEvent(context.Background(), "ev1")
	if len(stored) != 1 {
		t.Fatalf("stored %d bookings, want 1", len(stored))
	}
}

func TestCreateBookingDanglingEvent(t *testing.T) {
	store := newMemStore() // no events at all
	h := NewHandler(store, nil)

	w := postBooking(h, `{"eventId":"ghost","email":"user@example.com"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["error"] != "Referenced event does not exist." {
		t.Fatalf("error = %v", resp["error"])
	}
	if len(store.bookings["ghost"]) != 0 {
		t.Fatal("dangling booking was persisted")
	}
}

func TestCreateBookingInvalidEmail(t *testing.T) {
	store := newMemStore("ev1")
	h := NewHandler(store, nil)

	w := postBooking(h, `{"eventId":"ev1","email":"nope"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["error"] != "Invalid email format." {
		t.Fatalf("error = %v", resp["error"])
	}
	if len(store.bookings["ev1"]) != 0 {
		t.Fatal("invalid booking was persisted")
	}
}

func TestCreateBookingMalformedBody(t *testing.T) {
	h := NewHandler(newMemStore(), nil)
	w := postBooking(h, `{"eventId":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetEventBookings(t *testing.T) {
	store := newMemStore("ev1")
	h := NewHandler(store, nil)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		w := postBooking(h, `{"eventId":"ev1","email":"`+email+`"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: status = %d", email, w.Code)
		}
	}

	r := httptest.NewRequest("GET", "/api/events/ev1/bookings", nil)
	w := httptest.NewRecorder()
	h.GetEventBookings(w, r, httprouter.Params{{Key: "eventid", Value: "ev1"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["bookingCount"].(float64) != 2 {
		t.Fatalf("bookingCount = %v, want 2", resp["bookingCount"])
	}
}
