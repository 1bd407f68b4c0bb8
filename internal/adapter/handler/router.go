package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/srgjo27/hotel_booking/internal/core/services"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type RouterConfig struct {
	Reservations *services.ReservationService
	Rooms        *services.RoomService
	Broadcaster  *services.AvailabilityBroadcaster
	RateLimit    RateLimitConfig
	Readiness    map[string]ReadinessCheck
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	Logger  *zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	reservations := NewReservationHandler(cfg.Reservations, cfg.Logger)
	rooms := NewRoomHandler(cfg.Rooms, cfg.Logger)
	stream := NewStreamHandler(cfg.Broadcaster, cfg.Logger)
	limiter := NewRateLimiter(cfg.RateLimit)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(cfg.Logger))
	r.Use(Occupant)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readyHandler(cfg.Readiness))

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/reservations", func(r chi.Router) {
			r.With(limiter.Middleware).Post("/", reservations.CreateReservation)
			r.Get("/", reservations.ListReservations)
			r.Get("/mine", reservations.ListMine)
			r.Get("/export.xlsx", reservations.Export)
			r.Get("/{id}", reservations.GetReservation)
			r.Patch("/{id}", reservations.UpdateReservation)
			r.Put("/{id}", reservations.UpdateReservation)
			r.Delete("/{id}", reservations.DeleteReservation)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", rooms.ListRooms)
			r.Post("/", rooms.CreateRoom)
			r.Get("/availability/stream", stream.Stream)
			r.Get("/{id}", rooms.GetRoom)
			r.Get("/{id}/availability", rooms.Availability)
		})
	})

	return r
}

func readyHandler(checks map[string]ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		for name, check := range checks {
			if err := check(ctx); err != nil {
				writeError(w, http.StatusServiceUnavailable, name+" not ready")
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
