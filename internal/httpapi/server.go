// Package httpapi wires HTTP handlers to the application services.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"spacebook/internal/app/bookings"
	"spacebook/internal/catalog"
	"spacebook/internal/search"
	"spacebook/internal/store"
)

// UserService captures the account operations needed by the HTTP
// handlers. Login and Signup return the signed-in user plus a
// session token.
type UserService interface {
	Login(ctx context.Context, email, password string) (store.User, string, error)
	Signup(ctx context.Context, name, email, password string) (store.User, string, error)
	Logout(ctx context.Context) error
}

// SpaceService exposes catalog browsing.
type SpaceService interface {
	List(ctx context.Context, query string, sortBy search.SortBy, bucket search.PriceBucket) ([]catalog.Space, error)
	Get(ctx context.Context, id catalog.SpaceID) (catalog.Space, error)
}

// BookingService coordinates the booking flow for the authenticated
// user identified by userID.
type BookingService interface {
	List(ctx context.Context, userID int64) ([]store.Booking, error)
	Create(ctx context.Context, userID int64, req bookings.CreateRequest) (store.Booking, error)
	Cancel(ctx context.Context, userID, bookingID int64) error
}

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users    UserService
	spaces   SpaceService
	bookings BookingService
	tokens   TokenVerifier
}

// New configures a Server over the given services.
func New(users UserService, spaces SpaceService, bookings BookingService, tokens TokenVerifier) *Server {
	return &Server{
		users:    users,
		spaces:   spaces,
		bookings: bookings,
		tokens:   tokens,
	}
}

// Routes exposes the HTTP handlers for the catalog, accounts, and
// bookings.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api/v1/spaces", s.handleListSpaces)
	mux.HandleFunc("GET /api/v1/spaces/{id}", s.handleGetSpace)

	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", s.handleLogout)

	mux.HandleFunc("GET /api/v1/me/bookings", s.handleListBookings)
	mux.HandleFunc("POST /api/v1/me/bookings", s.handleCreateBooking)
	mux.HandleFunc("DELETE /api/v1/me/bookings/{id}", s.handleCancelBooking)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// userResponse is the account shape returned to clients. The stored
// password never leaves the server.
type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(u store.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// userID resolves the request's bearer token to a user id, or 0 when
// the request carries no valid token. Authorization decisions belong
// to the services, which treat id 0 as signed-out.
func (s *Server) userID(r *http.Request) int64 {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return 0
	}
	id, err := s.tokens.Verify(token)
	if err != nil {
		return 0
	}
	return id
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
