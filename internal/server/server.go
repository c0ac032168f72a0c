package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cherryapp/cherry/internal/email"
	"github.com/cherryapp/cherry/internal/handler"
	"github.com/cherryapp/cherry/internal/middleware"
	"github.com/cherryapp/cherry/internal/shopping"
	"github.com/cherryapp/cherry/internal/store"
	ws "github.com/cherryapp/cherry/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	profileH     *handler.ProfileHandler
	productH     *handler.ProductHandler
	listH        *handler.ListHandler
	pantryH      *handler.PantryHandler
	shoppingH    *handler.ShoppingDayHandler
	financeH     *handler.FinanceHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, emailClient *email.Client, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	profileStore := store.NewProfileStore(db)
	sessionStore := store.NewSessionStore(db)
	resetStore := store.NewPasswordResetStore(db)
	productStore := store.NewProductStore(db)
	listStore := store.NewListStore(db)
	pantryStore := store.NewPantryStore(db)
	purchaseStore := store.NewPurchaseStore(db)

	shoppingSvc := shopping.NewService(db, listStore, pantryStore, logger.With("component", "shopping"))

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(userStore, profileStore, sessionStore, resetStore, emailClient, logger.With("component", "auth")),
		profileH:     handler.NewProfileHandler(profileStore, hub),
		productH:     handler.NewProductHandler(productStore),
		listH:        handler.NewListHandler(listStore, productStore, hub),
		pantryH:      handler.NewPantryHandler(pantryStore, productStore, hub),
		shoppingH:    handler.NewShoppingDayHandler(shoppingSvc, hub),
		financeH:     handler.NewFinanceHandler(purchaseStore, hub),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/forgot-password", s.rateLimitedHandler(s.authH.ForgotPassword))
	outerMux.HandleFunc("POST /api/reset-password", s.rateLimitedHandler(s.authH.ResetPassword))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Session
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/me", s.authH.Me)

	// Profile
	mux.HandleFunc("GET /api/profile", s.profileH.Get)
	mux.HandleFunc("PUT /api/profile", s.profileH.Update)

	// Products
	mux.HandleFunc("POST /api/products", s.productH.Create)
	mux.HandleFunc("GET /api/products", s.productH.List)
	mux.HandleFunc("GET /api/products/{id}", s.productH.Get)
	mux.HandleFunc("PUT /api/products/{id}", s.productH.Update)

	// Lists
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("GET /api/lists", s.listH.List)
	mux.HandleFunc("GET /api/lists/{id}", s.listH.Get)
	mux.HandleFunc("POST /api/lists/{id}/current", s.listH.SetCurrent)
	mux.HandleFunc("POST /api/lists/{id}/archive", s.listH.Archive)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)

	// List items
	mux.HandleFunc("POST /api/lists/{list_id}/items", s.listH.CreateItem)
	mux.HandleFunc("PUT /api/list-items/{id}", s.listH.UpdateItem)
	mux.HandleFunc("DELETE /api/list-items/{id}", s.listH.DeleteItem)
	mux.HandleFunc("POST /api/list-items/{id}/toggle", s.listH.TogglePurchased)
	mux.HandleFunc("PUT /api/list-items/{id}/price", s.listH.SetPrice)

	// Pantry
	mux.HandleFunc("POST /api/pantry", s.pantryH.Create)
	mux.HandleFunc("GET /api/pantry", s.pantryH.List)
	mux.HandleFunc("GET /api/pantry/alerts", s.pantryH.Alerts)
	mux.HandleFunc("PUT /api/pantry/{id}", s.pantryH.Update)
	mux.HandleFunc("PUT /api/pantry/{id}/quantity", s.pantryH.SetQuantity)
	mux.HandleFunc("DELETE /api/pantry/{id}", s.pantryH.Delete)

	// Shopping day
	mux.HandleFunc("GET /api/shopping-day", s.shoppingH.Day)
	mux.HandleFunc("POST /api/shopping-day/add-pantry/{id}", s.shoppingH.AddPantryItem)
	mux.HandleFunc("POST /api/shopping-day/complete", s.shoppingH.Complete)

	// Finance
	mux.HandleFunc("POST /api/purchases", s.financeH.CreatePurchase)
	mux.HandleFunc("GET /api/purchases", s.financeH.ListPurchases)
	mux.HandleFunc("DELETE /api/purchases/{id}", s.financeH.DeletePurchase)
	mux.HandleFunc("GET /api/budget", s.financeH.GetBudget)
	mux.HandleFunc("PUT /api/budget", s.financeH.SetBudget)
	mux.HandleFunc("GET /api/summary", s.financeH.Summary)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))
}
