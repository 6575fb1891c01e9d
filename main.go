package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evently/booking"
	"evently/config"
	"evently/db"
	"evently/events"
	"evently/middleware"
	"evently/mq"
	"evently/ratelim"
	"evently/rdx"
	"evently/routes"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	port := cfg.Port
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	// storage handle; dials lazily on first use
	store, err := db.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("❌ Database config error: %v", err)
	}

	// redis: indexing channel + slug cache
	redisConn := rdx.New(cfg.RedisAddr)
	cache := rdx.NewEventCache(redisConn)
	emitter := mq.NewEmitter(redisConn)

	auth := middleware.NewAuth(cfg.JWTSecret)
	rateLimiter := ratelim.NewRateLimiter()

	eventHandler := events.NewHandler(store, emitter, cache)
	bookingHandler := booking.NewHandler(store, emitter)

	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddEventRoutes(router, eventHandler, auth, rateLimiter)
	routes.AddBookingRoutes(router, bookingHandler, auth, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// keep the slug cache warm from the indexing channel
	workerCtx, stopWorker := context.WithCancel(context.Background())
	go mq.StartIndexingWorker(workerCtx, redisConn, cache, store)

	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}
	if err := store.Close(ctx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
	if err := redisConn.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
