// Package apitest provides an in-memory fake of the Found & Loss backend
// for package tests. It speaks the production wire format: bearer auth,
// {"detail": ...} error envelopes, and the /api route layout.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/foundloss/foundloss/internal/model"
)

type userRec struct {
	user     model.User
	password string
}

// Server is a fake backend. All exported mutators are safe for concurrent
// use with in-flight requests.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	users  map[string]*userRec   // keyed by email
	tokens map[string]string     // token -> user id
	items  map[string]model.Item // keyed by item id
	seq    int

	failStatus int
	failDetail string

	// Requests counts handled requests, for asserting that an operation
	// did or did not reach the backend.
	Requests int
}

// New starts a fake backend. The caller owns Close (use t.Cleanup).
func New() *Server {
	s := &Server{
		users:  make(map[string]*userRec),
		tokens: make(map[string]string),
		items:  make(map[string]model.Item),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)
	mux.HandleFunc("POST /api/items", s.handleCreateItem)
	mux.HandleFunc("GET /api/items", s.handleListItems)
	mux.HandleFunc("GET /api/items/{id}", s.handleGetItem)
	mux.HandleFunc("PUT /api/items/{id}/status", s.handleUpdateStatus)
	mux.HandleFunc("GET /api/my-items", s.handleMyItems)
	mux.HandleFunc("POST /api/contact-owner", s.handleContact)
	s.Server = httptest.NewServer(s.countRequests(mux))
	return s
}

// FailNext makes every subsequent request fail with the given status and
// detail until cleared with FailNext(0, "").
func (s *Server) FailNext(status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus, s.failDetail = status, detail
}

// AddUser registers an account directly and returns a valid bearer token
// for it.
func (s *Server) AddUser(email, password, fullName, phone string) (model.User, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	u := model.User{
		ID:        fmt.Sprintf("user-%d", s.seq),
		Email:     email,
		FullName:  fullName,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
	s.users[email] = &userRec{user: u, password: password}
	tok := s.issueLocked(u.ID)
	return u, tok
}

// AddItem seeds an item, assigning an id when empty.
func (s *Server) AddItem(item model.Item) model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		s.seq++
		item.ID = fmt.Sprintf("item-%d", s.seq)
	}
	if item.Status == "" {
		item.Status = model.StatusActive
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	s.items[item.ID] = item
	return item
}

// Item returns the current server-side copy of an item.
func (s *Server) Item(id string) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	return item, ok
}

// RevokeToken invalidates a previously issued bearer token.
func (s *Server) RevokeToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tok)
}

func (s *Server) issueLocked(userID string) string {
	s.seq++
	tok := fmt.Sprintf("tok-%d", s.seq)
	s.tokens[tok] = userID
	return tok
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.Requests++
		fail, detail := s.failStatus, s.failDetail
		s.mu.Unlock()
		if fail > 0 {
			writeDetail(w, fail, detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// authed resolves the bearer token, writing a 401 on failure.
func (s *Server) authed(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.tokens[tok]
	if !ok || tok == "" {
		writeDetail(w, http.StatusUnauthorized, "Invalid token")
		return model.User{}, false
	}
	for _, rec := range s.users {
		if rec.user.ID == uid {
			return rec.user, true
		}
	}
	writeDetail(w, http.StatusUnauthorized, "User not found")
	return model.User{}, false
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var p model.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.mu.Lock()
	if _, dup := s.users[p.Email]; dup {
		s.mu.Unlock()
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.seq++
	u := model.User{
		ID:        fmt.Sprintf("user-%d", s.seq),
		Email:     p.Email,
		FullName:  p.FullName,
		Phone:     p.Phone,
		CreatedAt: time.Now().UTC(),
	}
	s.users[p.Email] = &userRec{user: u, password: p.Password}
	tok := s.issueLocked(u.ID)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, model.Token{AccessToken: tok, TokenType: "bearer", User: u})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var c model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.mu.Lock()
	rec, ok := s.users[c.Email]
	if !ok || rec.password != c.Password {
		s.mu.Unlock()
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	tok := s.issueLocked(rec.user.ID)
	u := rec.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, model.Token{AccessToken: tok, TokenType: "bearer", User: u})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	var d model.ItemDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.mu.Lock()
	s.seq++
	item := model.Item{
		ID:           fmt.Sprintf("item-%d", s.seq),
		UserID:       u.ID,
		Type:         d.Type,
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		Color:        d.Color,
		Location:     d.Location,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		ImageURL:     d.ImageURL,
		Status:       model.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
	s.items[item.ID] = item
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, item)
}

// Listing, detail and contact disclosure skip auth enforcement, matching
// the production backend: visibility gating is the client's job.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	category := r.URL.Query().Get("category")
	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	s.mu.Lock()
	out := []model.Item{}
	for _, item := range s.items {
		if item.Status != model.StatusActive {
			continue
		}
		if typ != "" && string(item.Type) != typ {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		out = append(out, item)
		if len(out) >= limit {
			break
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	item, ok := s.items[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	if status == "" {
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		status = body.Status
	}
	s.mu.Lock()
	item, found := s.items[r.PathValue("id")]
	if !found || item.UserID != u.ID {
		s.mu.Unlock()
		writeDetail(w, http.StatusNotFound, "Item not found or not owned by you")
		return
	}
	item.Status = model.ItemStatus(status)
	s.items[item.ID] = item
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Item status updated to " + status,
	})
}

func (s *Server) handleMyItems(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	out := []model.Item{}
	for _, item := range s.items {
		if item.UserID == u.ID {
			out = append(out, item)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.mu.Lock()
	item, ok := s.items[req.ItemID]
	s.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, model.ContactResult{
		Success: true,
		Message: "Contact request processed",
		ContactInfo: model.ContactInfo{
			Email:  item.ContactEmail,
			Phone:  item.ContactPhone,
			Method: req.Method,
		},
	})
}
