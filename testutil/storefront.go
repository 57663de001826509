// Package testutil provides an in-process fake of the Bloomify storefront
// backend for tests and examples. It implements the endpoints the SDK
// consumes with in-memory state, issues the csrftoken cookie, and enforces
// token auth and CSRF checks the way the real backend does.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Item mirrors the backend's cart line item payload.
type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Product mirrors the backend's catalog payload. Price is a decimal string,
// as the real backend serializes it.
type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
	Image string `json:"image"`
}

const defaultChatbotFragment = `<div id="flora-bot"><p>Hi! I am FloraBot.</p></div>`

// Storefront is the fake backend. Zero value is not usable; call
// NewStorefront.
type Storefront struct {
	mu        sync.Mutex
	items     []Item
	products  []Product
	users     map[string]string // email -> password
	tokens    map[string]string // token -> email
	csrf      string
	tokenSeq  int
	orders    int
	chatbot   string
}

// NewStorefront returns an empty storefront with an initial CSRF token.
func NewStorefront() *Storefront {
	return &Storefront{
		users:   make(map[string]string),
		tokens:  make(map[string]string),
		csrf:    "csrf-0",
		chatbot: defaultChatbotFragment,
	}
}

// SeedCart replaces the cart contents.
func (s *Storefront) SeedCart(items ...Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]Item(nil), items...)
}

// SeedUser registers an account directly, bypassing the register endpoint.
func (s *Storefront) SeedUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// SeedProducts replaces the catalog.
func (s *Storefront) SeedProducts(products ...Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]Product(nil), products...)
}

// SetChatbotFragment replaces the markup /chatbot/ serves.
func (s *Storefront) SetChatbotFragment(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatbot = html
}

// RotateCSRF replaces the anti-forgery token, as the real backend may do
// between any two requests, and returns the new value.
func (s *Storefront) RotateCSRF() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenSeq++
	s.csrf = fmt.Sprintf("csrf-%d", s.tokenSeq)
	return s.csrf
}

// CookieHeader returns the Cookie header a browser pointed at this backend
// would currently send. Storefront satisfies the SDK's cookie source
// interface through this method.
func (s *Storefront) CookieHeader() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return "csrftoken=" + s.csrf
}

// CartItems returns a copy of the current cart contents.
func (s *Storefront) CartItems() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// OrdersPlaced reports how many orders were accepted.
func (s *Storefront) OrdersPlaced() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders
}

// Handler returns the HTTP handler. Mount it on an httptest server.
func (s *Storefront) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.issueCSRFCookie)

	r.Get("/api/cart/", s.handleCart)
	r.Delete("/api/cart/{index}/", s.handleRemoveItem)
	r.Post("/api/orders/", s.handlePlaceOrder)
	r.Post("/api/login/", s.handleLogin)
	r.Post("/api/register/", s.handleRegister)
	r.Post("/api/logout/", s.handleLogout)
	r.Get("/api/products/list/", s.handleProducts)
	r.Get("/chatbot/", s.handleChatbot)

	return r
}

// issueCSRFCookie mirrors Django's CSRF middleware: every response carries
// the current cookie.
func (s *Storefront) issueCSRFCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		csrf := s.csrf
		s.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: csrf, Path: "/"})
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// authenticate resolves the Authorization header to an account email.
func (s *Storefront) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Token ")
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
		return "", false
	}
	s.mu.Lock()
	email, found := s.tokens[token]
	s.mu.Unlock()
	if !found {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
		return "", false
	}
	return email, true
}

// checkCSRF enforces the anti-forgery header on mutations.
func (s *Storefront) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	csrf := s.csrf
	s.mu.Unlock()
	if r.Header.Get("X-CSRFToken") != csrf {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "CSRF Failed: CSRF token missing or incorrect."})
		return false
	}
	return true
}

func (s *Storefront) handleCart(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	s.mu.Lock()
	items := append([]Item(nil), s.items...)
	s.mu.Unlock()
	if items == nil {
		items = []Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Storefront) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	if !s.checkCSRF(w, r) {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such cart item"})
		return
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Storefront) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	if !s.checkCSRF(w, r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cart is empty"})
		return
	}
	s.orders++
	s.items = nil
	writeJSON(w, http.StatusCreated, map[string]string{"message": "order placed"})
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Storefront) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if password, ok := s.users[body.Email]; !ok || password != body.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	s.tokenSeq++
	token := fmt.Sprintf("token-%d", s.tokenSeq)
	s.tokens[token] = body.Email
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "email": body.Email})
}

func (s *Storefront) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.checkCSRF(w, r) {
		return
	}
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[body.Email]; exists {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"email": {"A user with that email already exists."}})
		return
	}
	s.users[body.Email] = body.Password
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful"})
}

func (s *Storefront) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	if !s.checkCSRF(w, r) {
		return
	}
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Token ")
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func (s *Storefront) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	products := append([]Product(nil), s.products...)
	s.mu.Unlock()
	if products == nil {
		products = []Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Storefront) handleChatbot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fragment := s.chatbot
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(fragment))
}
