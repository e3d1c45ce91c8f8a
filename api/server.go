package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"costconsole/backend/config"
	"costconsole/backend/handlers"
	"costconsole/backend/middleware"
)

// Server represents the API server
type Server struct {
	cfg         *config.Config
	logger      *zap.Logger
	router      *mux.Router
	jiraHandler *handlers.JiraHandler
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	s := &Server{
		cfg:         cfg,
		logger:      logger,
		router:      mux.NewRouter(),
		jiraHandler: handlers.NewJiraHandler(cfg.Jira),
	}
	s.RegisterRoutes()
	return s
}

// RegisterRoutes registers all API routes
func (s *Server) RegisterRoutes() {
	s.router.Use(middleware.RequestLogger(s.logger))

	// Register routes with both direct paths and /api prefix to maintain compatibility
	apiRouter := s.router.PathPrefix("/api").Subrouter()
	s.registerRoutes(apiRouter)
	s.registerRoutes(s.router)

	if s.cfg.Server.StaticDir != "" {
		s.router.PathPrefix("/").Handler(s.static()).Methods("GET")
	}
}

func (s *Server) registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware)

	// Filter definitions and candidates
	protected.HandleFunc("/filters", handlers.GetFilterDefinitions).Methods("GET")
	protected.HandleFunc("/filters/applied", handlers.GetAppliedFilters).Methods("GET")
	protected.HandleFunc("/filters/{name}/values", handlers.GetFilterValues).Methods("GET")
	protected.HandleFunc("/search-params/equal", handlers.CompareSearchParams).Methods("POST")

	// Saved filters routes
	protected.HandleFunc("/saved-filters", handlers.GetSavedFilters).Methods("GET")
	protected.HandleFunc("/saved-filters", handlers.CreateSavedFilter).Methods("POST")
	protected.HandleFunc("/saved-filters/default", handlers.GetDefaultSavedFilter).Methods("GET")
	protected.HandleFunc("/saved-filters/{id}", handlers.GetSavedFilter).Methods("GET")
	protected.HandleFunc("/saved-filters/{id}", handlers.UpdateSavedFilter).Methods("PUT")
	protected.HandleFunc("/saved-filters/{id}", handlers.DeleteSavedFilter).Methods("DELETE")

	// Recommendations
	protected.HandleFunc("/recommendations", handlers.GetRecommendationTypes).Methods("GET")
	protected.HandleFunc("/recommendations/summary", handlers.GetRecommendationSummary).Methods("GET")
	protected.Handle("/recommendations/summary/refresh",
		middleware.RequireAdmin()(http.HandlerFunc(handlers.RefreshRecommendationSummary))).Methods("POST")
	protected.HandleFunc("/recommendations/{type}", handlers.GetRecommendation).Methods("GET")
	protected.HandleFunc("/recommendations/{type}/columns", handlers.GetRecommendationColumns).Methods("GET")

	// ML runs and expenses
	protected.HandleFunc("/runs", handlers.GetRuns).Methods("GET")
	protected.HandleFunc("/runs/summary", handlers.GetRunsSummary).Methods("GET")
	protected.HandleFunc("/expenses/breakdown", handlers.GetExpensesBreakdown).Methods("GET")

	// Jira panel
	protected.HandleFunc("/jira/status", s.jiraHandler.GetStatus).Methods("GET")
	protected.HandleFunc("/jira/issues/{key}/resources", s.jiraHandler.GetShareableResources).Methods("GET")
	protected.HandleFunc("/integrations/jira", s.jiraHandler.GetIntegration).Methods("GET")
	protected.Handle("/integrations/jira",
		middleware.RequireAdmin()(http.HandlerFunc(s.jiraHandler.SaveIntegration))).Methods("PUT")
}

// static serves the frontend build, falling back to index.html for client-side
// routes. Unknown API and asset paths are not found.
func (s *Server) static() http.Handler {
	dir := s.cfg.Server.StaticDir
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/assets/") {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	})
}

// Handler returns the HTTP handler for the API server. CORS wraps the router so
// preflight requests are answered for every route.
func (s *Server) Handler() http.Handler {
	return middleware.CORS(s.cfg.CORS, s.cfg.IsDevelopment())(s.router)
}
