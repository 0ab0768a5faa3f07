package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/anurag-po/CODSOFT/docs" // registers the swagger spec
	"github.com/anurag-po/CODSOFT/internal/api/handler"
	"github.com/anurag-po/CODSOFT/internal/api/middleware"
	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/http/handlers"
)

// Deps carries everything the API router wires into handlers.
type Deps struct {
	Auth         ports.AuthService
	Jobs         ports.JobService
	Applications ports.ApplicationService
	Dashboard    ports.DashboardService
	Profiles     ports.ProfileService
	Storage      ports.FileStorage
	Sessions     ports.SessionStore
	// Relay, when set, mounts POST /api/notify on the API process.
	Relay ports.Notifier

	JWTSecret      string
	CORSOrigins    []string
	MaxResumeBytes int64
	MaxAvatarBytes int64
	HealthChecks   map[string]handlers.Check
	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := newEcho(d.Log, d.CORSOrigins, bodyLimit(d.MaxResumeBytes, d.MaxAvatarBytes))
	registerMetrics(e, "jobboard", d.Registry)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	registerHealth(e, d.HealthChecks)

	authMW := middleware.Auth(d.JWTSecret, d.Sessions)
	optionalAuthMW := middleware.OptionalAuth(d.JWTSecret, d.Sessions)
	employerOnly := middleware.RBAC(domain.RoleEmployer)

	authHandler := handler.NewAuthHandler(d.Auth)
	sessionHandler := handler.NewSessionHandler()
	jobHandler := handler.NewJobHandler(d.Jobs)
	applicationHandler := handler.NewApplicationHandler(d.Applications, d.MaxResumeBytes)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	profileHandler := handler.NewProfileHandler(d.Profiles, d.Auth, d.MaxAvatarBytes)
	storageHandler := handler.NewStorageHandler(d.Storage)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// --- Public storage ---
	e.GET("/storage/v1/object/public/:bucket/:name", storageHandler.Object)

	v1 := e.Group("/v1")
	v1.GET("/session", sessionHandler.Session, optionalAuthMW)

	// --- Jobs ---
	v1.GET("/jobs/featured", jobHandler.Featured)
	v1.GET("/jobs", jobHandler.List)
	v1.GET("/jobs/:id", jobHandler.Get)
	v1.POST("/jobs", jobHandler.Create, authMW, employerOnly)
	v1.PUT("/jobs/:id", jobHandler.Update, authMW, employerOnly)
	v1.DELETE("/jobs/:id", jobHandler.Delete, authMW, employerOnly)
	v1.POST("/jobs/:id/applications", applicationHandler.Apply, authMW)

	// --- Dashboard & profile ---
	v1.GET("/dashboard", dashboardHandler.Get, authMW)
	v1.GET("/profile", profileHandler.Get, authMW)
	v1.PUT("/profile", profileHandler.Update, authMW)
	v1.POST("/profile/avatar", profileHandler.UploadAvatar, authMW)

	if d.Relay != nil {
		e.POST("/api/notify", handler.NewNotifyHandler(d.Relay, d.Log).Notify)
	}

	return e
}

// NewRelayRouter builds the standalone relay: the notify endpoint and health
// probes, open to any origin.
func NewRelayRouter(notifier ports.Notifier, registry *prometheus.Registry, log zerolog.Logger) *echo.Echo {
	e := newEcho(log, []string{"*"}, "64K")
	registerMetrics(e, "jobboard_relay", registry)
	registerHealth(e, nil)

	e.POST("/api/notify", handler.NewNotifyHandler(notifier, log).Notify)
	return e
}

func newEcho(log zerolog.Logger, origins []string, limit string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit(limit))
	return e
}

func registerMetrics(e *echo.Echo, subsystem string, registry *prometheus.Registry) {
	mwCfg := echoprometheus.MiddlewareConfig{Subsystem: subsystem}
	handlerCfg := echoprometheus.HandlerConfig{}
	if registry != nil {
		mwCfg.Registerer = registry
		handlerCfg.Gatherer = registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(mwCfg))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))
}

func registerHealth(e *echo.Echo, checks map[string]handlers.Check) {
	if checks == nil {
		checks = map[string]handlers.Check{}
	}
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(checks).Readiness)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// bodyLimit sizes the request body cap to the largest upload plus form overhead.
func bodyLimit(limits ...int64) string {
	var largest int64 = 1 << 20
	for _, l := range limits {
		if l > largest {
			largest = l
		}
	}
	return fmt.Sprintf("%dK", (largest+64<<10)/1024)
}

// SplitOrigins parses a comma-separated CORS_ORIGINS value.
func SplitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// ShutdownTimeout bounds graceful shutdown in both commands.
const ShutdownTimeout = 10 * time.Second
