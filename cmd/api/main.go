package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/sartorlabs/sartor-backend/api/controllers"
	"github.com/sartorlabs/sartor-backend/api/routes"
	"github.com/sartorlabs/sartor-backend/internal/appointments"
	"github.com/sartorlabs/sartor-backend/internal/auth"
	"github.com/sartorlabs/sartor-backend/internal/clients"
	"github.com/sartorlabs/sartor-backend/internal/measurements"
	"github.com/sartorlabs/sartor-backend/internal/timers"
	"github.com/sartorlabs/sartor-backend/internal/users"
	"github.com/sartorlabs/sartor-backend/pkg/config"
	"github.com/sartorlabs/sartor-backend/pkg/db"
	"github.com/sartorlabs/sartor-backend/pkg/logger"
	"github.com/sartorlabs/sartor-backend/pkg/metrics"
	"github.com/sartorlabs/sartor-backend/pkg/migrate"
	"github.com/sartorlabs/sartor-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	userRepo := users.NewRepository(dbClient.DB())
	clientRepo := clients.NewRepository(dbClient.DB())
	measurementRepo := measurements.NewRepository(dbClient.DB())
	appointmentRepo := appointments.NewRepository(dbClient.DB())
	timerRepo := timers.NewRepository(dbClient.DB())

	resolver, err := clients.NewResolver(clientRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create access resolver", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		ClientRepo:     clientRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	clientsService, err := clients.NewService(clients.ServiceParams{
		ClientRepo:     clientRepo,
		UserRepo:       userRepo,
		Resolver:       resolver,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create clients service", err)
		os.Exit(1)
	}

	measurementsService, err := measurements.NewService(measurements.ServiceParams{
		MeasurementRepo: measurementRepo,
		Resolver:        resolver,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create measurements service", err)
		os.Exit(1)
	}

	appointmentsService, err := appointments.NewService(appointments.ServiceParams{
		AppointmentRepo: appointmentRepo,
		Resolver:        resolver,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create appointments service", err)
		os.Exit(1)
	}

	timersService, err := timers.NewService(timers.ServiceParams{
		TimerRepo: timerRepo,
		Resolver:  resolver,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create timers service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:     cfg,
			Logger:     logg,
			Redis:      redisClient,
			Metrics:    metrics.NewHTTPMetrics(registry),
			MetricsReg: registry,
			Pingers: map[string]controllers.Pinger{
				"postgres": dbClient,
				"redis":    redisClient,
			},
			Auth:         authService,
			Clients:      clientsService,
			Measurements: measurementsService,
			Appointments: appointmentsService,
			Timers:       timersService,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs error
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = multierr.Append(errs, err)
		}
		if err := <-serverErr; err != nil && err != http.ErrServerClosed {
			errs = multierr.Append(errs, err)
		}
		if errs != nil {
			logg.Error(ctx, "graceful shutdown incomplete", errs)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}
