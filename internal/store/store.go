// Package store holds the process-wide application state: the
// signed-in user, the registered users, and every booking. Each
// mutation is written through the key-value layer immediately, so a
// restart reproduces the exact prior state.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"spacebook/internal/kvstore"
)

// Storage keys. These are stable across versions; older deployments
// wrote the same keys, and continuity matters more than naming.
const (
	keyCurrentUser = "ss_user"
	keyUsers       = "ss_users"
	keyBookings    = "ss_bookings"
)

var (
	// ErrUserExists signals a registration with an already-taken email.
	ErrUserExists = errors.New("email already exists")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Store is the auth and booking state holder. It is initialized once
// at startup from persisted defaults and lives for the process
// lifetime; consumers receive it by reference.
type Store struct {
	mu sync.Mutex
	kv kvstore.Store

	current  *User
	users    []User
	bookings []Booking

	now func() time.Time
}

// New loads persisted state through kv, seeding the default account
// on first run. The seed is written back so the very first load is
// already reproducible.
func New(ctx context.Context, kv kvstore.Store) (*Store, error) {
	s := &Store{
		kv:  kv,
		now: time.Now,
	}

	s.current = kvstore.Get(ctx, kv, keyCurrentUser, (*User)(nil))
	s.bookings = kvstore.Get(ctx, kv, keyBookings, []Booking{})

	s.users = kvstore.Get(ctx, kv, keyUsers, []User(nil))
	if s.users == nil {
		s.users = seedUsers()
		if err := s.persistUsers(ctx); err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
	}

	return s, nil
}

func seedUsers() []User {
	return []User{
		{ID: 1, Name: "Juan Dela Cruz", Email: "juan@example.com", Password: "password123"},
	}
}

// CurrentUser returns the signed-in user, or nil.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// Users returns a copy of every registered user.
func (s *Store) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// Login scans for a user whose email and password both match
// exactly (case-sensitive). On a match the user becomes the current
// user; otherwise state is left unchanged and ErrInvalidCredentials
// is returned.
func (s *Store) Login(ctx context.Context, email, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			matched := u
			s.current = &matched
			if err := s.persistCurrent(ctx); err != nil {
				return User{}, err
			}
			return u, nil
		}
	}
	return User{}, ErrInvalidCredentials
}

// Logout clears the current user unconditionally.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	return s.persistCurrent(ctx)
}

// Register creates a new account. A duplicate email (case-sensitive
// exact match) fails with ErrUserExists and mutates nothing. On
// success the new user is appended and becomes the current user.
func (s *Store) Register(ctx context.Context, name, email, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return User{}, ErrUserExists
		}
	}

	user := User{
		ID:       s.nextIDLocked(s.userIDTakenLocked),
		Name:     name,
		Email:    email,
		Password: password,
	}
	s.users = append(s.users, user)
	matched := user
	s.current = &matched

	if err := s.persistUsers(ctx); err != nil {
		return User{}, err
	}
	if err := s.persistCurrent(ctx); err != nil {
		return User{}, err
	}
	return user, nil
}

// AddBooking appends the booking unconditionally; validation is the
// caller's job. A zero id is filled in here, under the same lock as
// the append, so concurrent adds in the same millisecond still get
// distinct ids. The stored booking is returned.
func (s *Store) AddBooking(ctx context.Context, b Booking) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == 0 {
		b.ID = s.nextIDLocked(s.bookingIDTakenLocked)
	}
	s.bookings = append(s.bookings, b)
	if err := s.persistBookings(ctx); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// CancelBooking removes the booking with the given id. A second call
// with the same id is a no-op. Ownership is not checked here; the
// service layer only acts on the requesting user's own bookings.
func (s *Store) CancelBooking(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.bookings[:0]
	removed := false
	for _, b := range s.bookings {
		if b.ID == id {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	s.bookings = kept

	if !removed {
		return nil
	}
	return s.persistBookings(ctx)
}

// Bookings returns a copy of every booking across all users.
func (s *Store) Bookings() []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// BookingsForUser returns the given user's bookings in creation
// order.
func (s *Store) BookingsForUser(userID int64) []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// nextIDLocked derives an id from the current time in milliseconds,
// bumping forward past any id already taken.
func (s *Store) nextIDLocked(taken func(int64) bool) int64 {
	id := s.now().UnixMilli()
	for taken(id) {
		id++
	}
	return id
}

func (s *Store) userIDTakenLocked(id int64) bool {
	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) bookingIDTakenLocked(id int64) bool {
	for _, b := range s.bookings {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) persistCurrent(ctx context.Context) error {
	return kvstore.Set(ctx, s.kv, keyCurrentUser, s.current)
}

func (s *Store) persistUsers(ctx context.Context) error {
	return kvstore.Set(ctx, s.kv, keyUsers, s.users)
}

func (s *Store) persistBookings(ctx context.Context) error {
	return kvstore.Set(ctx, s.kv, keyBookings, s.bookings)
}
