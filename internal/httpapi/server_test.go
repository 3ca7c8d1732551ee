package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spacebook/internal/app/bookings"
	"spacebook/internal/catalog"
	"spacebook/internal/search"
	"spacebook/internal/store"
)

type stubUserService struct {
	user  store.User
	token string

	loginErr  error
	signupErr error

	lastEmail    string
	lastPassword string
	lastName     string
	loggedOut    bool
}

func (s *stubUserService) Login(_ context.Context, email, password string) (store.User, string, error) {
	s.lastEmail = email
	s.lastPassword = password
	if s.loginErr != nil {
		return store.User{}, "", s.loginErr
	}
	return s.user, s.token, nil
}

func (s *stubUserService) Signup(_ context.Context, name, email, password string) (store.User, string, error) {
	s.lastName = name
	s.lastEmail = email
	s.lastPassword = password
	if s.signupErr != nil {
		return store.User{}, "", s.signupErr
	}
	return s.user, s.token, nil
}

func (s *stubUserService) Logout(context.Context) error {
	s.loggedOut = true
	return nil
}

type stubSpaceService struct {
	listResponse []catalog.Space
	listErr      error

	singleSpace catalog.Space
	singleErr   error

	lastQuery  string
	lastSortBy search.SortBy
	lastBucket search.PriceBucket
	lastID     catalog.SpaceID
}

func (s *stubSpaceService) List(_ context.Context, query string, sortBy search.SortBy, bucket search.PriceBucket) ([]catalog.Space, error) {
	s.lastQuery = query
	s.lastSortBy = sortBy
	s.lastBucket = bucket
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listResponse, nil
}

func (s *stubSpaceService) Get(_ context.Context, id catalog.SpaceID) (catalog.Space, error) {
	s.lastID = id
	if s.singleErr != nil {
		return catalog.Space{}, s.singleErr
	}
	return s.singleSpace, nil
}

type stubBookingService struct {
	listResponse []store.Booking
	listErr      error

	created   store.Booking
	createErr error

	cancelErr error

	lastUserID  int64
	lastRequest bookings.CreateRequest
	lastCancel  int64
}

func (s *stubBookingService) List(_ context.Context, userID int64) ([]store.Booking, error) {
	s.lastUserID = userID
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listResponse, nil
}

func (s *stubBookingService) Create(_ context.Context, userID int64, req bookings.CreateRequest) (store.Booking, error) {
	s.lastUserID = userID
	s.lastRequest = req
	if s.createErr != nil {
		return store.Booking{}, s.createErr
	}
	return s.created, nil
}

func (s *stubBookingService) Cancel(_ context.Context, userID, bookingID int64) error {
	s.lastUserID = userID
	s.lastCancel = bookingID
	return s.cancelErr
}

// stubTokenVerifier maps the literal token "valid" to user 7.
type stubTokenVerifier struct{}

func (stubTokenVerifier) Verify(token string) (int64, error) {
	if token == "valid" {
		return 7, nil
	}
	return 0, errors.New("invalid token")
}

type serverStubs struct {
	users    *stubUserService
	spaces   *stubSpaceService
	bookings *stubBookingService
}

func newTestServer() (*Server, *serverStubs) {
	stubs := &serverStubs{
		users:    &stubUserService{},
		spaces:   &stubSpaceService{},
		bookings: &stubBookingService{},
	}
	return New(stubs.users, stubs.spaces, stubs.bookings, stubTokenVerifier{}), stubs
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer()
	rec := doRequest(t, srv.Routes(), http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestListSpacesPassesQueryParams(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.spaces.listResponse = []catalog.Space{{ID: "1", Name: "Quiet Library"}}

	rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/v1/spaces?q=library&sort=price&price=low", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stubs.spaces.lastQuery != "library" {
		t.Fatalf("query = %q, want library", stubs.spaces.lastQuery)
	}
	if stubs.spaces.lastSortBy != search.SortByPrice {
		t.Fatalf("sort = %q, want price", stubs.spaces.lastSortBy)
	}
	if stubs.spaces.lastBucket != search.PriceLow {
		t.Fatalf("bucket = %q, want low", stubs.spaces.lastBucket)
	}

	var resp struct {
		Spaces []catalog.Space `json:"spaces"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Spaces) != 1 || resp.Spaces[0].Name != "Quiet Library" {
		t.Fatalf("unexpected spaces payload: %#v", resp.Spaces)
	}
}

func TestGetSpaceNotFound(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.spaces.singleErr = catalog.ErrSpaceNotFound

	rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/v1/spaces/999", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Space not found" {
		t.Fatalf("error = %q", msg)
	}
	if stubs.spaces.lastID != "999" {
		t.Fatalf("id = %q, want 999", stubs.spaces.lastID)
	}
}

func TestGetSpaceIncludesDefaultPricing(t *testing.T) {
	morningPrice := 150.0
	tests := []struct {
		name      string
		space     catalog.Space
		wantSlot  string
		wantPrice float64
	}{
		{
			name: "priced first slot",
			space: catalog.Space{
				ID: "2", Name: "Brew & Study Cafe", BasePrice: 180,
				TimeSlots: []catalog.TimeSlot{{Name: "Morning", Price: &morningPrice}},
			},
			wantSlot:  "Morning",
			wantPrice: 150,
		},
		{
			name: "legacy slots fall back to base price",
			space: catalog.Space{
				ID: "1", Name: "Quiet Library", BasePrice: 200,
				TimeSlots: []catalog.TimeSlot{{Name: "Morning (8AM-12PM)"}},
			},
			wantSlot:  "Morning (8AM-12PM)",
			wantPrice: 200,
		},
		{
			name:      "no slots at all",
			space:     catalog.Space{ID: "3", Name: "Rooftop Nook", BasePrice: 320},
			wantSlot:  "",
			wantPrice: 320,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, stubs := newTestServer()
			stubs.spaces.singleSpace = tt.space

			rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/v1/spaces/"+string(tt.space.ID), "", nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var resp struct {
				Name            string  `json:"name"`
				DefaultTimeSlot string  `json:"defaultTimeSlot"`
				DefaultPrice    float64 `json:"defaultPrice"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Name != tt.space.Name {
				t.Fatalf("name = %q, want %q", resp.Name, tt.space.Name)
			}
			if resp.DefaultTimeSlot != tt.wantSlot {
				t.Fatalf("defaultTimeSlot = %q, want %q", resp.DefaultTimeSlot, tt.wantSlot)
			}
			if resp.DefaultPrice != tt.wantPrice {
				t.Fatalf("defaultPrice = %v, want %v", resp.DefaultPrice, tt.wantPrice)
			}
		})
	}
}

func TestLoginSuccessReturnsSessionWithoutPassword(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.users.user = store.User{ID: 1, Name: "Juan Dela Cruz", Email: "juan@example.com", Password: "password123"}
	stubs.users.token = "token-1"

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/v1/auth/login", "", loginRequest{
		Email: "juan@example.com", Password: "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password123") {
		t.Fatal("response must not leak the stored password")
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.Email != "juan@example.com" || resp.Token != "token-1" {
		t.Fatalf("unexpected session: %#v", resp)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.users.loginErr = store.ErrInvalidCredentials

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/v1/auth/login", "", loginRequest{
		Email: "juan@example.com", Password: "nope",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Invalid email or password" {
		t.Fatalf("error = %q", msg)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.users.signupErr = store.ErrUserExists

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/v1/auth/signup", "", signupRequest{
		Name: "Impostor", Email: "juan@example.com", Password: "pw",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Email already exists" {
		t.Fatalf("error = %q", msg)
	}
}

func TestSignupCreated(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.users.user = store.User{ID: 2, Name: "Ana Reyes", Email: "ana@example.com"}
	stubs.users.token = "token-2"

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/v1/auth/signup", "", signupRequest{
		Name: "Ana Reyes", Email: "ana@example.com", Password: "secret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if stubs.users.lastEmail != "ana@example.com" {
		t.Fatalf("email = %q", stubs.users.lastEmail)
	}
}

func TestLogout(t *testing.T) {
	srv, stubs := newTestServer()

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/v1/auth/logout", "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if !stubs.users.loggedOut {
		t.Fatal("logout should reach the service")
	}
}

func TestListBookingsRequiresLogin(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.bookings.listErr = bookings.ErrLoginRequired

	for _, token := range []string{"", "garbage"} {
		rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/v1/me/bookings", token, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: status = %d, want 401", token, rec.Code)
		}
		if msg := decodeError(t, rec); msg != "You must log in to view your bookings" {
			t.Fatalf("token %q: error = %q", token, msg)
		}
		if stubs.bookings.lastUserID != 0 {
			t.Fatalf("token %q: user id = %d, want 0", token, stubs.bookings.lastUserID)
		}
	}
}

func TestListBookingsAuthenticated(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.bookings.listResponse = []store.Booking{{ID: 10, UserID: 7, SpaceName: "Quiet Library"}}

	rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/v1/me/bookings", "valid", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stubs.bookings.lastUserID != 7 {
		t.Fatalf("user id = %d, want 7", stubs.bookings.lastUserID)
	}

	var resp struct {
		Bookings []store.Booking `json:"bookings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Bookings) != 1 || resp.Bookings[0].SpaceName != "Quiet Library" {
		t.Fatalf("unexpected bookings payload: %#v", resp.Bookings)
	}
}

func TestCreateBookingErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{"login required", bookings.ErrLoginRequired, http.StatusUnauthorized, "Please log in to make a booking"},
		{"missing fields", bookings.ErrMissingFields, http.StatusBadRequest, "Please select both date and time slot"},
		{"past date", bookings.ErrPastDate, http.StatusBadRequest, "Cannot book for past dates"},
		{"too far ahead", bookings.ErrTooFarAhead, http.StatusBadRequest, "Cannot book more than 3 months ahead"},
		{"unknown space", catalog.ErrSpaceNotFound, http.StatusNotFound, "Space not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, stubs := newTestServer()
			stubs.bookings.createErr = tt.serviceErr

			rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/v1/me/bookings", "valid", bookingRequest{
				SpaceID: "1", Date: "2026-06-20", TimeSlot: "Morning",
			})
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if msg := decodeError(t, rec); msg != tt.wantMsg {
				t.Fatalf("error = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.bookings.created = store.Booking{ID: 42, UserID: 7, SpaceID: "2", SpaceName: "Brew & Study Cafe", Price: 150}

	rec := doRequest(t, srv.Routes(), http.MethodPost, "/api/v1/me/bookings", "valid", bookingRequest{
		SpaceID: "2", Date: "2026-06-20", TimeSlot: "Morning",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if stubs.bookings.lastRequest.SpaceID != "2" || stubs.bookings.lastRequest.TimeSlot != "Morning" {
		t.Fatalf("unexpected create request: %#v", stubs.bookings.lastRequest)
	}

	var resp store.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 42 || resp.Price != 150 {
		t.Fatalf("unexpected booking payload: %#v", resp)
	}
}

func TestCancelBooking(t *testing.T) {
	srv, stubs := newTestServer()

	rec := doRequest(t, srv.Routes(), http.MethodDelete, "/api/v1/me/bookings/42", "valid", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if stubs.bookings.lastCancel != 42 || stubs.bookings.lastUserID != 7 {
		t.Fatalf("cancel id = %d user = %d", stubs.bookings.lastCancel, stubs.bookings.lastUserID)
	}
}

func TestCancelBookingNotFound(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.bookings.cancelErr = bookings.ErrBookingNotFound

	rec := doRequest(t, srv.Routes(), http.MethodDelete, "/api/v1/me/bookings/42", "valid", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Booking not found" {
		t.Fatalf("error = %q", msg)
	}
}

func TestCancelBookingInvalidID(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(t, srv.Routes(), http.MethodDelete, "/api/v1/me/bookings/abc", "valid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
