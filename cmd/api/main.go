package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/srgjo27/hotel_booking/internal/adapter/cache/redis"
	"github.com/srgjo27/hotel_booking/internal/adapter/handler"
	"github.com/srgjo27/hotel_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/hotel_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/srgjo27/hotel_booking/internal/platform/config"
	"github.com/srgjo27/hotel_booking/internal/platform/database"
	"github.com/srgjo27/hotel_booking/internal/platform/logger"
	"github.com/srgjo27/hotel_booking/internal/platform/metrics"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		bootLog := logger.New(logger.Config{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	readiness := map[string]handler.ReadinessCheck{}

	var (
		roomRepo        ports.RoomRepository
		reservationRepo ports.ReservationRepository
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		roomRepo, reservationRepo = store, store
		log.Info().Msg("using in-memory store")
	default:
		db, err := openPostgres(ctx, cfg, &log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to db after retries")
		}
		defer db.Close()

		roomRepo = postgres.NewRoomRepository(db)
		reservationRepo = postgres.NewReservationRepository(db)
		readiness["db"] = db.PingContext
	}

	var roomCache ports.RoomListCache
	if cfg.Redis.Address != "" {
		log.Info().Str("address", cfg.Redis.Address).Msg("connecting to redis")

		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		log.Info().Msg("redis connected")

		roomCache = redis.NewRoomListCache(redisClient, cfg.RoomCacheTTL())
		readiness["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	pricingService := services.NewPricingService(roomRepo, reservationRepo)
	reservationService := services.NewReservationService(roomRepo, reservationRepo, pricingService, &log)
	roomService := services.NewRoomService(roomRepo, reservationRepo, pricingService, roomCache, &log)
	broadcaster := services.NewAvailabilityBroadcaster(cfg.Broadcast.SubscriberBuffer, &log)

	if roomCache != nil {
		reservationService.AddHook(services.CacheInvalidationHook(roomCache))
	}
	reservationService.AddHook(services.BroadcastHook(pricingService, broadcaster))

	if cfg.Database.Driver == config.DriverMemory {
		seedRooms(ctx, roomService, cfg.Rooms, &log)
	}

	go reservationService.RunAvailabilityReconciler(ctx, cfg.ReconcileInterval())

	var metricsHandler http.Handler
	if cfg.Monitoring.PrometheusEnabled {
		metricsHandler = promhttp.Handler()
	}

	router := handler.NewRouter(handler.RouterConfig{
		Reservations: reservationService,
		Rooms:        roomService,
		Broadcaster:  broadcaster,
		RateLimit: handler.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			IdleTTL:           cfg.RateLimiterIdleTTL(),
			MaxKeys:           cfg.RateLimit.MaxKeys,
		},
		Readiness: readiness,
		Metrics:   metricsHandler,
		Logger:    &log,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
	}
	// Streams never go idle, so end them when shutdown starts; in-flight
	// writes keep their own contexts and are drained.
	server.RegisterOnShutdown(broadcaster.Close)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server startup failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exiting")
}

func openPostgres(ctx context.Context, cfg *config.Config, log *zerolog.Logger) (*sql.DB, error) {
	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.Name,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}, log)
	if err != nil {
		return nil, err
	}

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

func seedRooms(ctx context.Context, svc *services.RoomService, seeds []config.RoomSeed, log *zerolog.Logger) {
	for _, seed := range seeds {
		room, err := svc.CreateRoom(ctx, services.CreateRoomRequest{
			RoomNumber:   seed.RoomNumber,
			Type:         seed.Type,
			BasePrice:    seed.BasePrice,
			CurrentPrice: seed.CurrentPrice,
			Price:        seed.Price,
			Status:       seed.Status,
			Description:  seed.Description,
		})
		if err != nil {
			log.Warn().Err(err).Str("room_number", seed.RoomNumber).Msg("failed to seed room")
			continue
		}

		log.Info().Str("room_number", room.RoomNumber).Float64("price", room.Price).Msg("room seeded")
	}
}
