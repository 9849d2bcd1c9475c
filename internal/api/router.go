package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cards10e/laquiniela247/internal/api/handler"
	"github.com/cards10e/laquiniela247/internal/api/middleware"
	"github.com/cards10e/laquiniela247/internal/services/account"
	"github.com/cards10e/laquiniela247/internal/services/auth"
	"github.com/cards10e/laquiniela247/internal/services/maintenance"
	"github.com/cards10e/laquiniela247/internal/services/pool"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	PoolController    *pool.Controller
	MaintenanceEngine *maintenance.Engine
	AccountService    *account.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	poolHandler := handler.NewPoolHandler(cfg.PoolController)
	adminHandler := handler.NewAdminHandler(cfg.PoolController, cfg.MaintenanceEngine, cfg.AccountService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no session required to register or log in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// Week routes (auth required)
	weeks := api.PathPrefix("/weeks").Subrouter()
	weeks.Use(authMiddleware)
	weeks.HandleFunc("", poolHandler.ListWeeks).Methods(http.MethodGet)
	weeks.HandleFunc("/{number}/games", poolHandler.ListGames).Methods(http.MethodGet)

	// Bet routes (auth required; admins do not place bets)
	bets := api.PathPrefix("/bets").Subrouter()
	bets.Use(authMiddleware)
	bets.Use(middleware.UserOnly())
	bets.HandleFunc("", poolHandler.PlaceBet).Methods(http.MethodPost)
	bets.HandleFunc("", poolHandler.ListBets).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware)
	admin.Use(middleware.RequireAdmin())
	admin.HandleFunc("/weeks", adminHandler.CreateWeek).Methods(http.MethodPost)
	admin.HandleFunc("/weeks/{number}", adminHandler.PurgeWeek).Methods(http.MethodDelete)
	admin.HandleFunc("/games", adminHandler.ScheduleGame).Methods(http.MethodPost)
	admin.HandleFunc("/games/purge", adminHandler.PurgeGames).Methods(http.MethodPost)
	admin.HandleFunc("/users", adminHandler.Users).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
