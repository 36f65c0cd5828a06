package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sartorlabs/sartor-backend/api/controllers"
	"github.com/sartorlabs/sartor-backend/api/middleware"
	"github.com/sartorlabs/sartor-backend/internal/appointments"
	"github.com/sartorlabs/sartor-backend/internal/auth"
	"github.com/sartorlabs/sartor-backend/internal/clients"
	"github.com/sartorlabs/sartor-backend/internal/measurements"
	"github.com/sartorlabs/sartor-backend/internal/timers"
	"github.com/sartorlabs/sartor-backend/pkg/config"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
	"github.com/sartorlabs/sartor-backend/pkg/logger"
	"github.com/sartorlabs/sartor-backend/pkg/metrics"
)

// RateLimiter counts attempts for the auth throttling middleware.
type RateLimiter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Dependencies bundles everything the router needs to wire handlers.
type Dependencies struct {
	Config       *config.Config
	Logger       *logger.Logger
	Redis        RateLimiter
	Metrics      *metrics.HTTPMetrics
	MetricsReg   *prometheus.Registry
	Pingers      map[string]controllers.Pinger
	Auth         auth.Service
	Clients      clients.Service
	Measurements measurements.Service
	Appointments appointments.Service
	Timers       timers.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.Metrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	// Anonymous creation carries no email, so the policy is per-IP only.
	anonymousPolicy := middleware.NewAuthRateLimitPolicy(
		"anonymous",
		cfg.AuthRateLimit.AnonymousWindow,
		cfg.AuthRateLimit.AnonymousIPLimit,
		0,
	)

	tailorOnly := middleware.RequireKind(logg, string(enums.IdentityKindTailor))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	if deps.MetricsReg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsReg, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(anonymousPolicy, deps.Redis, logg)).Post("/anonymous", controllers.AuthAnonymous(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Put("/auth/profile", controllers.AuthUpdateProfile(deps.Auth, logg))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ClientsList(deps.Clients, logg))
			r.With(tailorOnly).Post("/", controllers.ClientsProvision(deps.Clients, logg))
			r.Get("/{client_id}", controllers.ClientsGet(deps.Clients, logg))
			r.Put("/{client_id}", controllers.ClientsUpdate(deps.Clients, logg))
		})

		r.Route("/measurements", func(r chi.Router) {
			r.Post("/", controllers.MeasurementsUpsert(deps.Measurements, logg))
			r.Get("/me", controllers.MeasurementsGetSelf(deps.Measurements, logg))
			r.Get("/{client_id}", controllers.MeasurementsGetForClient(deps.Measurements, logg))
		})

		r.Route("/appointments", func(r chi.Router) {
			r.With(tailorOnly).Post("/", controllers.AppointmentsCreate(deps.Appointments, logg))
			r.Get("/{client_id}", controllers.AppointmentsList(deps.Appointments, logg))
			r.With(tailorOnly).Put("/{appointment_id}", controllers.AppointmentsUpdate(deps.Appointments, logg))
		})

		r.Route("/timers", func(r chi.Router) {
			r.With(tailorOnly).Post("/start", controllers.TimersStart(deps.Timers, logg))
			r.With(tailorOnly).Post("/stop", controllers.TimersStop(deps.Timers, logg))
			r.Get("/{client_id}", controllers.TimersList(deps.Timers, logg))
		})
	})

	return r
}
