package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sgs-events/eventdesk/internal/api/handler"
	"github.com/sgs-events/eventdesk/internal/api/middleware"
	"github.com/sgs-events/eventdesk/internal/services/login"
	"github.com/sgs-events/eventdesk/internal/services/notice"
	"github.com/sgs-events/eventdesk/internal/services/registration"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	LoginService        *login.Service
	RegistrationService *registration.Service
	NoticeService       *notice.Service
	// Rate limit settings for the login endpoints. Zero values disable
	// rate limiting, which the test factory relies on.
	RateLimitPerMinute int
	RateLimitBurst     int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	loginHandler := handler.NewLoginHandler(cfg.LoginService)
	registrationHandler := handler.NewRegistrationHandler(cfg.RegistrationService)
	noticeHandler := handler.NewNoticeHandler(cfg.NoticeService)

	// Create middleware
	sessionMiddleware := middleware.Session(cfg.LoginService)
	optionalSessionMiddleware := middleware.OptionalSession(cfg.LoginService)
	authMiddleware := middleware.Auth(cfg.LoginService)
	adminMiddleware := middleware.Admin(cfg.LoginService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Login routes. Code request and verification carry credentials, so
	// they get per-IP rate limiting on top of the service's own lockout.
	loginRoutes := api.PathPrefix("/login").Subrouter()
	if cfg.RateLimitPerMinute > 0 {
		limiter := middleware.NewTokenBucket(cfg.RateLimitBurst, cfg.RateLimitPerMinute)
		loginRoutes.Use(limiter.Middleware())
	}
	loginRoutes.Handle("/code",
		optionalSessionMiddleware(http.HandlerFunc(loginHandler.RequestCode))).Methods(http.MethodPost)
	loginRoutes.Handle("/verify",
		sessionMiddleware(http.HandlerFunc(loginHandler.VerifyCode))).Methods(http.MethodPost)
	loginRoutes.Handle("/admin",
		authMiddleware(http.HandlerFunc(loginHandler.AdminLogin))).Methods(http.MethodPost)

	// Session routes (require an authenticated session)
	api.Handle("/session",
		authMiddleware(http.HandlerFunc(loginHandler.GetSession))).Methods(http.MethodGet)
	api.Handle("/logout",
		authMiddleware(http.HandlerFunc(loginHandler.Logout))).Methods(http.MethodPost)

	// Registration routes (all require auth)
	registrations := api.PathPrefix("/registrations").Subrouter()
	registrations.Use(authMiddleware)
	registrations.HandleFunc("", registrationHandler.Submit).Methods(http.MethodPost)
	registrations.HandleFunc("", registrationHandler.List).Methods(http.MethodGet)
	registrations.HandleFunc("/export", registrationHandler.Export).Methods(http.MethodGet)

	// Notice routes: reading requires login, posting requires admin
	api.Handle("/notices",
		authMiddleware(http.HandlerFunc(noticeHandler.List))).Methods(http.MethodGet)
	api.Handle("/notices",
		adminMiddleware(http.HandlerFunc(noticeHandler.Post))).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
