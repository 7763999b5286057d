package adapthttp

import (
	"log/slog"
	"net/http"

	"calorietracker/internal/app"
	"calorietracker/internal/domain"
)

// Services bundles the application services the adapter drives.
type Services struct {
	Auth    *app.AuthService
	Foods   *app.FoodService
	Entries *app.EntryService
	Goals   *app.GoalService
	Summary *app.SummaryService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	authSvc    *app.AuthService
	foods      *app.FoodService
	entries    *app.EntryService
	goals      *app.GoalService
	summary    *app.SummaryService
	oidcConfig *OIDCConfig
	log        *slog.Logger
	webDir     string

	trustForwardAuth bool
	disableAuth      bool
}

// testUser is the identity every request assumes once auth is disabled.
var testUser = &domain.User{ID: 1, Username: "test"}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string) *Server {
	return &Server{
		authSvc:    svc.Auth,
		foods:      svc.Foods,
		entries:    svc.Entries,
		goals:      svc.Goals,
		summary:    svc.Summary,
		oidcConfig: &OIDCConfig{},
		log:        slog.Default(),
		webDir:     webDir,
	}
}

// WithoutAuth disables authentication; every request acts as user 1.
// Intended for tests.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// WithOIDC enables SSO login through the given provider.
func (s *Server) WithOIDC(cfg *OIDCConfig) *Server {
	if cfg != nil {
		s.oidcConfig = cfg
	}
	return s
}

// WithForwardAuth makes the server trust the Remote-User header set by an
// authenticating reverse proxy.
func (s *Server) WithForwardAuth(trust bool) *Server {
	s.trustForwardAuth = trust
	return s
}

// WithLogger replaces the access and error logger.
func (s *Server) WithLogger(l *slog.Logger) *Server {
	if l != nil {
		s.log = l
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protect := func(pattern string, h http.HandlerFunc) {
		api.Handle(pattern, s.authMiddleware(h))
	}
	protect("GET /auth/me", s.handleMe)

	protect("/foods", s.handleFoods)
	protect("GET /foods/export", s.handleFoodsExport)

	protect("/entries", s.handleEntries)
	protect("DELETE /entries/{id}", s.handleEntryDelete)
	protect("GET /entries/export", s.handleEntriesExport)

	protect("/goal", s.handleGoal)

	protect("GET /summary/day", s.handleSummaryDay)
	protect("GET /summary/history", s.handleSummaryHistory)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
