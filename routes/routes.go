package routes

import (
	"evently/booking"
	"evently/events"
	"evently/middleware"
	"evently/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddEventRoutes(router *httprouter.Router, h *events.Handler, auth *middleware.Auth, rl *ratelim.RateLimiter) {
	router.GET("/api/events", rl.Limit(h.GetEvents))
	router.POST("/api/events", rl.Limit(h.CreateEvent))
	router.GET("/api/events/:eventid", h.GetEvent)
	router.PUT("/api/events/:eventid", auth.Authenticate(h.EditEvent))
	router.DELETE("/api/events/:eventid", auth.Authenticate(h.DeleteEvent))
	router.GET("/api/slugs/:slug", h.GetEventBySlug)
}

func AddBookingRoutes(router *httprouter.Router, h *booking.Handler, auth *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(h.CreateBooking))
	router.GET("/api/events/:eventid/bookings", auth.Authenticate(h.GetEventBookings))
}
