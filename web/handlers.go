// ABOUTME: Sandbox request handlers for accounts, customers, deals, tasks, and messages
package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/harperreed/riwora/db"
	"github.com/harperreed/riwora/models"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		CompanyName string `json:"company_name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user := &models.User{FirstName: req.FirstName, LastName: req.LastName, CompanyName: req.CompanyName, Email: req.Email}
	if err := db.CreateUser(s.db, user, req.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"message": "User created", "user_id": user.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	user, err := db.Authenticate(s.db, req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful", "user_id": user.ID})
}

// handleForgotPassword logs the reset token instead of mailing it.
func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	token, err := db.CreateResetToken(s.db, req.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("password reset requested", "email", req.Email, "token", token)
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Reset token sent"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.NewPassword == "" {
		s.writeError(w, http.StatusBadRequest, "New password is required")
		return
	}
	if err := db.ResetPassword(s.db, req.Token, req.NewPassword); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("user_id")
	if !s.requireUser(w, uid) {
		return
	}
	user, err := db.GetUser(s.db, uid)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string `json:"user_id"`
		Updates struct {
			FirstName   string `json:"first_name"`
			LastName    string `json:"last_name"`
			Email       string `json:"email"`
			CompanyName string `json:"company_name"`
		} `json:"updates"`
	}
	if !s.decode(w, r, &req) || !s.requireUser(w, req.UserID) {
		return
	}
	fields := db.ProfileFields(req.Updates)
	if err := db.UpdateUser(s.db, req.UserID, fields); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}

func (s *Server) handleUpdateNotifications(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string                   `json:"user_id"`
		Updates models.NotificationPrefs `json:"updates"`
	}
	if !s.decode(w, r, &req) || !s.requireUser(w, req.UserID) {
		return
	}
	if err := db.UpdateNotifications(s.db, req.UserID, req.Updates); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Notifications updated"})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID          string `json:"user_id"`
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if !s.decode(w, r, &req) || !s.requireUser(w, req.UserID) {
		return
	}
	if req.NewPassword == "" {
		s.writeError(w, http.StatusBadRequest, "New password is required")
		return
	}
	err := db.ChangePassword(s.db, req.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, db.ErrInvalidCredentials) {
			s.writeError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := db.GetDashboard(s.db, mux.Vars(r)["uid"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) customerList(t models.CustomerType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.URL.Query().Get("user_id")
		if !s.requireUser(w, uid) {
			return
		}
		customers, err := db.ListCustomersByType(s.db, uid, t)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, customers)
	}
}

type customerBody struct {
	UserID    string              `json:"user_id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Email     string              `json:"email"`
	Phone     string              `json:"phone"`
	Type      models.CustomerType `json:"type"`
	Notes     string              `json:"notes"`
}

func (b customerBody) customer() models.Customer {
	return models.Customer{
		UserID:    b.UserID,
		FirstName: strings.TrimSpace(b.FirstName),
		LastName:  strings.TrimSpace(b.LastName),
		Email:     strings.TrimSpace(b.Email),
		Phone:     strings.TrimSpace(b.Phone),
		Type:      b.Type,
		Notes:     b.Notes,
	}
}

func (s *Server) validType(w http.ResponseWriter, t models.CustomerType) bool {
	if t == "" {
		return true
	}
	if _, ok := models.ParseCustomerType(string(t)); !ok {
		s.writeError(w, http.StatusBadRequest, "Invalid customer type")
		return false
	}
	return true
}

func (s *Server) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerBody
	if !s.decode(w, r, &req) || !s.requireUser(w, req.UserID) || !s.validType(w, req.Type) {
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		s.writeError(w, http.StatusBadRequest, "First and last name are required")
		return
	}
	if req.Type != "" {
		req.Type, _ = models.ParseCustomerType(string(req.Type))
	}

	c := req.customer()
	if err := db.CreateCustomer(s.db, &c); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := db.GetCustomer(s.db, mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerBody
	if !s.decode(w, r, &req) || !s.validType(w, req.Type) {
		return
	}
	if req.Type != "" {
		req.Type, _ = models.ParseCustomerType(string(req.Type))
	}
	c, err := db.UpdateCustomer(s.db, mux.Vars(r)["id"], req.customer())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := db.ListNotes(s.db, mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var note models.Note
	if !s.decode(w, r, &note) {
		return
	}
	if strings.TrimSpace(note.Title) == "" || strings.TrimSpace(note.Content) == "" {
		s.writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	if err := db.CreateNote(s.db, mux.Vars(r)["id"], &note); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handlePurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := db.ListPurchases(s.db, mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, purchases)
}

const searchLimit = 20

func (s *Server) handleSearchCustomers(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("query"))
	if q == "" {
		s.writeJSON(w, http.StatusOK, []models.Customer{})
		return
	}
	customers, err := db.SearchCustomers(s.db, q, searchLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, customers)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("query"))
	var out models.SearchResults
	if q == "" {
		s.writeJSON(w, http.StatusOK, out)
		return
	}

	var err error
	if out.Customers, err = db.SearchCustomers(s.db, q, searchLimit); err != nil {
		s.fail(w, r, err)
		return
	}
	if out.Deals, err = db.SearchDeals(s.db, q, searchLimit); err != nil {
		s.fail(w, r, err)
		return
	}
	if out.Products, err = db.SearchProducts(s.db, q, searchLimit); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) dealList(status models.DealStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := r.URL.Query().Get("user_id")
		if !s.requireUser(w, uid) {
			return
		}
		deals, err := db.ListDealsByStatus(s.db, uid, status)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, deals)
	}
}

func (s *Server) handleAddDeal(w http.ResponseWriter, r *http.Request) {
	var deal models.Deal
	if !s.decode(w, r, &deal) || !s.requireUser(w, deal.UserID) {
		return
	}
	if strings.TrimSpace(deal.Title) == "" || strings.TrimSpace(deal.Description) == "" {
		s.writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}
	if deal.Status != "" && deal.Status != models.DealOpen && deal.Status != models.DealClosed {
		s.writeError(w, http.StatusBadRequest, "Invalid deal status")
		return
	}
	if err := db.CreateDeal(s.db, &deal); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, deal)
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("user_id")
	if !s.requireUser(w, uid) {
		return
	}
	tasks, err := db.ListTasks(s.db, uid)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if !s.decode(w, r, &task) || !s.requireUser(w, task.UserID) {
		return
	}
	if strings.TrimSpace(task.Title) == "" {
		s.writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	task.Status = task.Status.Normalized()
	task.Priority = task.Priority.Normalized()
	if err := db.CreateTask(s.db, &task); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("user_id")
	if !s.requireUser(w, uid) {
		return
	}
	msgs, err := db.ListMessagesBySender(s.db, uid)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sender   string `json:"sender"`
		Receiver string `json:"receiver"`
		Content  string `json:"content"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Sender == "" || req.Receiver == "" || strings.TrimSpace(req.Content) == "" {
		s.writeError(w, http.StatusBadRequest, "Sender, receiver, and content are required")
		return
	}

	msg := models.Message{Sender: req.Sender, Receiver: req.Receiver, Message: req.Content}
	if err := db.CreateMessage(s.db, &msg); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sender, receiver := q.Get("sender"), q.Get("receiver")
	if sender == "" || receiver == "" {
		s.writeError(w, http.StatusBadRequest, "sender and receiver are required")
		return
	}
	msgs, err := db.Conversation(s.db, sender, receiver)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, msgs)
}
