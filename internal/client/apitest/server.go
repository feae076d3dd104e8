// Package apitest is an in-process fake of the catering backend, served by
// httptest and routed with chi. It keeps users, catalog, carts, addresses
// and placed orders in memory, records every request, and can be told to
// fail individual routes.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

const (
	PathLogin        = "/Account/MobileLogin"
	PathCategories   = "/Items/GetMobileCategoryDDL"
	PathProducts     = "/Items/GetCategoriesProductsByID"
	PathManageCart   = "/Cart/ManageCart"
	PathCart         = "/Cart/GetUserCartList"
	PathCalculation  = "/Order/OrderCalculation"
	PathCheckout     = "/Order/CheckOut"
	PathAddresses    = "/Address/GetUserAddresses"
	signingSecret    = "apitest-secret"
	injectedFailBody = `{"message":"injected failure"}`
)

type User struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type Category struct {
	ID   string
	Name string
}

type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	Specification string
	PhotoURLs     []string
}

type Address struct {
	ID      string
	Title   string
	Details string
}

// Order is a checkout the fake accepted.
type Order struct {
	UserID       string
	AddressID    string
	Notes        string
	DiscountCode string
	Lines        map[string]int
}

// Request is a recorded inbound request.
type Request struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	users      []User
	tokens     map[string]string // token -> user id
	categories []Category
	products   map[string][]Product // category id -> products
	addresses  map[string][]Address // user id -> addresses
	carts      map[string]map[string]int
	cartOrder  map[string][]string
	orders     []Order
	failures   map[string]int
	requests   []Request

	// OmitIdentity makes login respond with the token only.
	OmitIdentity bool
	// OmitLineTotal drops lineTotal from cart lines.
	OmitLineTotal bool
}

// New starts a fake backend seeded with Fixture data and closes it when the
// test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := NewUnstarted()
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// NewUnstarted returns a seeded fake without a listener; Handler serves it.
func NewUnstarted() *Server {
	s := &Server{
		tokens:    map[string]string{},
		products:  map[string][]Product{},
		addresses: map[string][]Address{},
		carts:     map[string]map[string]int{},
		cartOrder: map[string][]string{},
		failures:  map[string]int{},
	}
	seed(s)
	return s
}

func (s *Server) Handler() http.Handler { return s.routes() }

// URL of the API root, suitable as the client's base URL.
func (s *Server) BaseURL() string { return s.URL + "/api" }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/api", func(r chi.Router) {
		r.Use(s.record, s.inject)
		r.Post(PathLogin, s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get(PathCategories, s.handleCategories)
			r.Get(PathProducts, s.handleProducts)
			r.Post(PathManageCart, s.handleManageCart)
			r.Get(PathCart, s.handleCart)
			r.Post(PathCalculation, s.handleCalculation)
			r.Post(PathCheckout, s.handleCheckout)
			r.Get(PathAddresses, s.handleAddresses)
		})
	})
	return r
}

// Fail makes every request to path answer with status until Recover.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

func (s *Server) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

// Calls counts requests received for path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Path == path {
			n++
		}
	}
	return n
}

// LastRequest returns the most recent request for path.
func (s *Server) LastRequest(path string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Path == path {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Order(nil), s.orders...)
}

// CartOf returns the quantities in a user's cart keyed by product id.
func (s *Server) CartOf(userID string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int{}
	for k, v := range s.carts[userID] {
		out[k] = v
	}
	return out
}

// SetAddresses replaces a user's saved addresses.
func (s *Server) SetAddresses(userID string, addrs []Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[userID] = addrs
}

// IssueToken signs a token for an existing user, as login would.
func (s *Server) IssueToken(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(userID)
}

func (s *Server) issueLocked(userID string) string {
	var name string
	for _, u := range s.users {
		if u.ID == userID {
			name = u.Name
		}
	}
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"jti":  len(s.tokens) + 1,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	if err != nil {
		panic(err)
	}
	s.tokens[token] = userID
	return token
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   strings.TrimPrefix(r.URL.Path, "/api"),
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, ok := s.failures[strings.TrimPrefix(r.URL.Path, "/api")]
		s.mu.Unlock()
		if ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, injectedFailBody)
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

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
