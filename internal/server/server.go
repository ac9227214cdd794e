package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/saadjs/maxout/internal/config"
	"github.com/saadjs/maxout/internal/metrics"
	"github.com/saadjs/maxout/internal/server/middleware"
	"github.com/saadjs/maxout/internal/service"
)

// Server exposes one session over the JSON API.
type Server struct {
	httpServer  *http.Server
	config      *config.Config
	session     *service.Session
	versionInfo string
	limiter     *middleware.RateLimiter

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config      *config.Config
	Session     *service.Session
	VersionInfo string
	// Registry defaults to a fresh registry with runtime collectors.
	Registry *prometheus.Registry
}

func NewServer(params NewServerParams) (*Server, error) {
	if params.Config == nil {
		return nil, errors.New("new server: config is required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("new server: %w", service.ErrNotInitialized)
	}
	promRegistry := params.Registry
	if promRegistry == nil {
		promRegistry = metrics.SetupPrometheus()
	}

	s := &Server{
		config:         params.Config,
		session:        params.Session,
		versionInfo:    params.VersionInfo,
		metricsManager: metrics.NewManager("maxout", "api", promRegistry),
		promRegistry:   promRegistry,
	}
	if !params.Config.RateLimit.Disabled {
		s.limiter = middleware.NewRateLimiter(params.Config.RateLimit.RPS, params.Config.RateLimit.Burst)
	}
	return s, nil
}

func (s *Server) Metrics() *metrics.Manager {
	return s.metricsManager
}

// Handler returns the API router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return middleware.Cors(middleware.CorsParams{
		AllowedOrigins: s.config.CORS.Origins(),
		AllowedMethods: s.config.CORS.Methods(),
		AllowedHeaders: s.config.CORS.Headers(),
	})(s.routerSetup())
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{})).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/achievements", s.handleListAchievements).Methods("GET")
	api.HandleFunc("/achievements/{id}", s.handleGetAchievement).Methods("GET")
	api.HandleFunc("/achievements/{id}/unlock", s.handleUnlockAchievement).Methods("POST")
	api.HandleFunc("/achievements/{id}/progress", s.handleAchievementProgress).Methods("POST")

	api.HandleFunc("/weight", s.handleListWeight).Methods("GET")
	api.HandleFunc("/weight", s.handleAddWeight).Methods("POST")
	api.HandleFunc("/weight/current", s.handleCurrentWeight).Methods("GET")

	api.HandleFunc("/calories", s.handleListCalories).Methods("GET")
	api.HandleFunc("/calories", s.handleAddCalories).Methods("POST")
	api.HandleFunc("/calories/total", s.handleCalorieTotal).Methods("GET")
	api.HandleFunc("/calories/{id}", s.handleRemoveCalories).Methods("DELETE")

	api.HandleFunc("/plans", s.handleListPlans).Methods("GET")
	api.HandleFunc("/plans", s.handleAddPlan).Methods("POST")
	api.HandleFunc("/plans/{id}/complete", s.handleCompletePlan).Methods("POST")
	api.HandleFunc("/workouts/status", s.handleWorkoutStatus).Methods("GET")

	api.HandleFunc("/strength", s.handleRecordLift).Methods("POST")

	api.HandleFunc("/chat", s.handleChatHistory).Methods("GET")
	api.HandleFunc("/chat", s.handleChatSend).Methods("POST")
	api.HandleFunc("/chat", s.handleChatClear).Methods("DELETE")
	api.HandleFunc("/motivation", s.handleMotivation).Methods("GET")

	api.HandleFunc("/profile", s.handleGetProfile).Methods("GET")
	api.HandleFunc("/profile", s.handleUpdateProfile).Methods("PATCH")
	api.HandleFunc("/today", s.handleToday).Methods("GET")
	api.HandleFunc("/export", s.handleExport).Methods("GET")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	if s.limiter != nil {
		api.Use(middleware.RateLimit(s.limiter, s.metricsManager))
	}

	return r
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Server.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
		ConnState:    s.connStateMetrics,
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	if s.limiter != nil {
		go s.limiter.CleanupVisitors(cleanupCtx)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof(" > server listening on: [%s]", ln.Addr())
		err := s.httpServer.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()
	s.metricsManager.GaugeLifeSignal.Set(1)

	var err error
	select {
	case err = <-serveErr:
		if err != nil {
			err = fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		err = s.gracefulShutdown()
		if serr := <-serveErr; serr != nil {
			err = multierr.Append(err, fmt.Errorf("serve: %w", serr))
		}
	}
	s.metricsManager.GaugeLifeSignal.Set(0)
	return err
}

func (s *Server) gracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	var err error
	if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
		err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
	}
	log.Info("server shut down")
	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.versionInfo})
}
