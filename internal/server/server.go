package server

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/NotionPet_Go/docs"
	"github.com/osse101/NotionPet_Go/internal/cooldown"
	"github.com/osse101/NotionPet_Go/internal/database"
	"github.com/osse101/NotionPet_Go/internal/eventlog"
	"github.com/osse101/NotionPet_Go/internal/handler"
	"github.com/osse101/NotionPet_Go/internal/logger"
	"github.com/osse101/NotionPet_Go/internal/metrics"
	"github.com/osse101/NotionPet_Go/internal/pet"
	"github.com/osse101/NotionPet_Go/internal/settings"
	"github.com/osse101/NotionPet_Go/internal/sse"
)

// Deps are the services behind the HTTP API. Cooldowns may be nil.
type Deps struct {
	Tokens            TokenParser
	TrustedProxies    []string
	NotionRedirectURI string

	DB        database.Pool
	Pets      pet.Service
	Settings  settings.Service
	History   eventlog.Service
	Cooldowns cooldown.Service
	Hub       *sse.Hub
}

// Server owns the listening http.Server
type Server struct {
	httpServer *http.Server
}

// NewServer creates a server listening on port
func NewServer(port int, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(port)),
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter mounts every route behind the middleware stack, outermost first
func NewRouter(deps Deps) http.Handler {
	detector := NewSuspiciousActivityDetector()

	r := chi.NewRouter()
	r.Use(
		SecurityHeadersMiddleware(),
		loggingMiddleware,
		middleware.Recoverer,
		SecurityLoggingMiddleware(deps.TrustedProxies, detector),
		AuthMiddleware(deps.Tokens, deps.TrustedProxies, detector),
		RequestSizeLimitMiddleware(MaxRequestBodyBytes),
		metrics.Middleware,
	)

	mountOps(r, deps)
	r.Route("/api/v1", func(r chi.Router) { mountAPI(r, deps) })
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	return r
}

// mountOps registers the unversioned probe and metrics routes
func mountOps(r chi.Router, deps Deps) {
	checks := []handler.ReadinessCheck{{Name: "database", Probe: deps.DB.Ping}}
	if deps.Hub != nil {
		checks = append(checks, handler.ReadinessCheck{Name: "events", Probe: deps.Hub.Ping})
	}
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(checks...))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
}

func mountAPI(r chi.Router, deps Deps) {
	pets := handler.NewPetHandlers(deps.Pets, deps.History, deps.Cooldowns)
	cfg := handler.NewSettingsHandlers(deps.Settings, deps.NotionRedirectURI)
	dbID := "{" + handler.URLParamDatabaseID + "}"

	r.Route("/pet", func(r chi.Router) {
		r.Get("/", pets.HandleGetCard())
		r.Get("/public/{"+handler.URLParamUserID+"}", pets.HandleGetPublicCard())
		r.Get("/stream", sse.Handler(deps.Hub))
		r.Get("/history", pets.HandleHistory())
		r.Post("/refresh", pets.HandleRefresh())
	})

	r.Get("/settings", cfg.HandleGetSettings())
	r.Put("/settings", cfg.HandleSaveSettings())
	r.Get("/difficulty", cfg.HandleGetDifficulty())
	r.Post("/difficulty/move", cfg.HandleMoveDifficulty())

	r.Route("/notion", func(r chi.Router) {
		r.Post("/connect", cfg.HandleConnect())
		r.Get("/databases", cfg.HandleListDatabases())
		r.Get("/databases/"+dbID+"/properties", cfg.HandleGetProperties())
		r.Post("/databases/"+dbID+"/properties", cfg.HandleCreateProperty())
		r.Post("/options", cfg.HandleManageOption())
	})

	r.Get("/progression/{"+handler.URLParamExperience+"}", handler.HandleProgression())
}

// Start blocks serving HTTP until Stop
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop drains open requests until ctx ends
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
