// ABOUTME: Sandbox REST backend serving the /api surface over SQLite
// ABOUTME: Routes with gorilla/mux; errors are returned as {"error": "..."}
package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/harperreed/riwora/db"
	"github.com/harperreed/riwora/models"
)

// BasePath prefixes every route.
const BasePath = "/api"

type Server struct {
	db     *sql.DB
	logger *log.Logger
	router *mux.Router
}

func NewServer(database *sql.DB, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{db: database, logger: logger, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router.PathPrefix(BasePath).Subrouter()
	r.Use(s.logRequests)

	// Accounts
	r.HandleFunc("/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/forgot-password", s.handleForgotPassword).Methods(http.MethodPost)
	r.HandleFunc("/reset-password", s.handleResetPassword).Methods(http.MethodPost)
	r.HandleFunc("/profile", s.handleProfile).Methods(http.MethodGet)
	r.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	r.HandleFunc("/notifications", s.handleUpdateNotifications).Methods(http.MethodPut)
	r.HandleFunc("/security/change-password", s.handleChangePassword).Methods(http.MethodPost)

	r.HandleFunc("/dashboard/{uid}", s.handleDashboard).Methods(http.MethodGet)

	// Customers
	r.HandleFunc("/new-customers", s.customerList(models.CustomerNew)).Methods(http.MethodGet)
	r.HandleFunc("/pending-customers", s.customerList(models.CustomerPending)).Methods(http.MethodGet)
	r.HandleFunc("/beback-customers", s.customerList(models.CustomerBeBack)).Methods(http.MethodGet)
	r.HandleFunc("/add-customer", s.handleAddCustomer).Methods(http.MethodPost)
	r.HandleFunc("/customer/{id}", s.handleCustomer).Methods(http.MethodGet)
	r.HandleFunc("/customer/{id}", s.handleUpdateCustomer).Methods(http.MethodPut)
	r.HandleFunc("/customer/{id}/notes", s.handleNotes).Methods(http.MethodGet)
	r.HandleFunc("/customer/{id}/notes", s.handleAddNote).Methods(http.MethodPost)
	r.HandleFunc("/customer/{id}/purchases", s.handlePurchases).Methods(http.MethodGet)
	r.HandleFunc("/search-customers", s.handleSearchCustomers).Methods(http.MethodGet)
	r.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)

	// Deals and tasks
	r.HandleFunc("/open-deals", s.dealList(models.DealOpen)).Methods(http.MethodGet)
	r.HandleFunc("/closed-deals", s.dealList(models.DealClosed)).Methods(http.MethodGet)
	r.HandleFunc("/add-deal", s.handleAddDeal).Methods(http.MethodPost)
	r.HandleFunc("/tasks", s.handleTasks).Methods(http.MethodGet)
	r.HandleFunc("/add-task", s.handleAddTask).Methods(http.MethodPost)

	// Messages
	r.HandleFunc("/messages", s.handleMessages).Methods(http.MethodGet)
	r.HandleFunc("/messages", s.handleSendMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages/conversation", s.handleConversation).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("sandbox listening", "url", "http://"+addr+BasePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "dur", time.Since(start))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps storage errors onto HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, db.ErrInvalidCredentials):
		s.writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, db.ErrEmailTaken):
		s.writeError(w, http.StatusConflict, "Email already registered")
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decode reads a JSON body, answering 400 on malformed input.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// requireUser answers 400 when the user_id parameter is missing.
func (s *Server) requireUser(w http.ResponseWriter, uid string) bool {
	if uid == "" {
		s.writeError(w, http.StatusBadRequest, "user_id is required")
		return false
	}
	return true
}
