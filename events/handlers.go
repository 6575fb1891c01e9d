package events

import (
	"context"
	"log"
	"net/http"
	"time"

	"evently/models"
	"evently/mq"
	"evently/rdx"
	"evently/utils"

	"github.com/julienschmidt/httprouter"
)

// Store is the slice of the document store the event handlers use.
type Store interface {
	InsertEvent(ctx context.Context, event models.Event) error
	FindEventByID(ctx context.Context, eventID string) (models.Event, error)
	FindEventBySlug(ctx context.Context, slug string) (models.Event, error)
	FindEvents(ctx context.Context, skip, limit int64) ([]models.Event, int64, error)
	UpdateEvent(ctx context.Context, eventID string, fields map[string]any) (models.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	DeleteEventBookings(ctx context.Context, eventID string) (int64, error)
}

type Handler struct {
	Store   Store
	Emitter *mq.Emitter
	Cache   *rdx.EventCache
}

func NewHandler(store Store, emitter *mq.Emitter, cache *rdx.EventCache) *Handler {
	return &Handler{Store: store, Emitter: emitter, Cache: cache}
}

// eventFromForm flattens a multipart submission into a candidate event.
// Agenda and tags arrive as comma-separated values in a single field.
func eventFromForm(r *http.Request) models.Event {
	return models.Event{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Image:       r.FormValue("image"),
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Agenda:      utils.SplitList(r.FormValue("agenda")),
		Organizer:   r.FormValue("organizer"),
		Tags:        utils.SplitList(r.FormValue("tags")),
	}
}

// CreateEvent handles POST /api/events. Validation runs to completion
// before the insert; a validation failure never touches storage.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"message": "Invalid Form Data"})
		return
	}

	event := eventFromForm(r)
	event.EventID = utils.GenerateID(14)
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := ValidateEvent(&event); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"message": "Event Creation Failed",
			"error":   models.FailureMessage(err),
		})
		return
	}

	if err := h.Store.InsertEvent(r.Context(), event); err != nil {
		log.Printf("insert event %s failed: %v", event.EventID, err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"message": "Event Creation Failed",
			"error":   models.FailureMessage(err),
		})
		return
	}

	go h.Emitter.Emit(context.Background(), "event-created", models.Index{
		EntityType: "event", EntityId: event.EventID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Event created successfully",
		"event":   event,
	})
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)
	eventList, total, err := h.Store.FindEvents(ctx, skip, limit)
	if err != nil {
		log.Println("find events failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"events":     eventList,
		"eventCount": total,
		"page":       skip/limit + 1,
		"limit":      limit,
	})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, err := h.Store.FindEventByID(r.Context(), ps.ByName("eventid"))
	if err == models.ErrEventNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		log.Println("find event failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"event": event})
}

// GetEventBySlug serves GET /api/slugs/:slug from the Redis cache when it
// can, falling back to the document store.
func (h *Handler) GetEventBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")

	if event, ok := h.Cache.Get(r.Context(), slug); ok {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"event": event})
		return
	}

	event, err := h.Store.FindEventBySlug(r.Context(), slug)
	if err == models.ErrEventNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		log.Println("find event by slug failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	go func(ev models.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Cache.Set(ctx, ev); err != nil {
			log.Println("slug cache backfill failed:", err)
		}
	}(event)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"event": event})
}

// EditEvent re-runs the full normalization pipeline on the merged record, so
// a title change regenerates the slug and date/time rules re-apply.
func (h *Handler) EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"message": "Invalid Form Data"})
		return
	}

	existing, err := h.Store.FindEventByID(r.Context(), eventID)
	if err == models.ErrEventNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		log.Println("find event failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	oldSlug := existing.Slug
	merged := mergeFormFields(existing, r)
	if err := ValidateEvent(&merged); err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"message": "Event Update Failed",
			"error":   models.FailureMessage(err),
		})
		return
	}
	merged.UpdatedAt = time.Now().UTC()

	updated, err := h.Store.UpdateEvent(r.Context(), eventID, updateFields(merged))
	if err == models.ErrEventNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		log.Printf("update event %s failed: %v", eventID, err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"message": "Event Update Failed",
			"error":   models.FailureMessage(err),
		})
		return
	}

	if oldSlug != updated.Slug {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.Cache.Delete(ctx, oldSlug); err != nil {
				log.Println("stale slug eviction failed:", err)
			}
		}()
	}
	go h.Emitter.Emit(context.Background(), "event-updated", models.Index{
		EntityType: "event", EntityId: eventID, Method: "PUT",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Event updated successfully",
		"event":   updated,
	})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	event, err := h.Store.FindEventByID(r.Context(), eventID)
	if err == models.ErrEventNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		log.Println("find event failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	if err := h.Store.DeleteEvent(r.Context(), eventID); err != nil {
		log.Printf("delete event %s failed: %v", eventID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	removed, err := h.Store.DeleteEventBookings(r.Context(), eventID)
	if err != nil {
		// Event is already gone; orphaned bookings are logged, not fatal.
		log.Printf("cleanup of bookings for %s failed: %v", eventID, err)
	} else if removed > 0 {
		log.Printf("deleted %d bookings for event %s", removed, eventID)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Cache.Delete(ctx, event.Slug); err != nil {
			log.Println("slug eviction failed:", err)
		}
	}()
	go h.Emitter.Emit(context.Background(), "event-deleted", models.Index{
		EntityType: "event", EntityId: eventID, Method: "DELETE",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Event deleted successfully"})
}

// mergeFormFields overlays the submitted form values onto the stored event.
// An absent or empty field keeps its stored value.
func mergeFormFields(event models.Event, r *http.Request) models.Event {
	set := func(dst *string, name string) {
		if v := r.FormValue(name); v != "" {
			*dst = v
		}
	}
	set(&event.Title, "title")
	set(&event.Description, "description")
	set(&event.Overview, "overview")
	set(&event.Image, "image")
	set(&event.Venue, "venue")
	set(&event.Location, "location")
	set(&event.Date, "date")
	set(&event.Time, "time")
	set(&event.Mode, "mode")
	set(&event.Audience, "audience")
	set(&event.Organizer, "organizer")
	if v := r.FormValue("agenda"); v != "" {
		event.Agenda = utils.SplitList(v)
	}
	if v := r.FormValue("tags"); v != "" {
		event.Tags = utils.SplitList(v)
	}
	return event
}

func updateFields(event models.Event) map[string]any {
	return map[string]any{
		"title":       event.Title,
		"slug":        event.Slug,
		"description": event.Description,
		"overview":    event.Overview,
		"image":       event.Image,
		"venue":       event.Venue,
		"location":    event.Location,
		"date":        event.Date,
		"time":        event.Time,
		"mode":        event.Mode,
		"audience":    event.Audience,
		"agenda":      event.Agenda,
		"organizer":   event.Organizer,
		"tags":        event.Tags,
		"updated_at":  event.UpdatedAt,
	}
}
