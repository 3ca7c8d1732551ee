// Package bookings implements the booking flow: slot and price
// resolution for a chosen space, submit-time validation, and
// cancellation of the requesting user's own bookings.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacebook/internal/catalog"
	"spacebook/internal/store"
)

// Validation failures, checked in this order on submit.
var (
	// ErrLoginRequired rejects a submit with no authenticated user.
	ErrLoginRequired = errors.New("login required")
	// ErrMissingFields rejects a submit without both date and slot.
	ErrMissingFields = errors.New("date and time slot are required")
	// ErrInvalidDate rejects a date that does not parse as a calendar day.
	ErrInvalidDate = errors.New("invalid booking date")
	// ErrPastDate rejects dates before today.
	ErrPastDate = errors.New("cannot book past dates")
	// ErrTooFarAhead rejects dates beyond the three-month window.
	ErrTooFarAhead = errors.New("cannot book more than 3 months ahead")
	// ErrUnknownSlot rejects a slot the space does not offer.
	ErrUnknownSlot = errors.New("time slot not offered by this space")
	// ErrBookingNotFound signals a cancel for a booking the user does
	// not have.
	ErrBookingNotFound = errors.New("booking not found")
)

// bookingWindow is how far ahead a date may be, in months.
const bookingWindowMonths = 3

// Store describes the booking persistence the flow hands off to.
// AddBooking assigns the booking id atomically with the append.
type Store interface {
	AddBooking(ctx context.Context, b store.Booking) (store.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
	BookingsForUser(userID int64) []store.Booking
}

// Catalog resolves the space being booked.
type Catalog interface {
	Get(id catalog.SpaceID) (catalog.Space, error)
}

// CreateRequest is a booking attempt as submitted.
type CreateRequest struct {
	SpaceID  catalog.SpaceID
	Date     string // calendar date, YYYY-MM-DD
	TimeSlot string
}

// Service runs the booking workflows for one authenticated user at a
// time, identified by userID on every call.
type Service interface {
	List(ctx context.Context, userID int64) ([]store.Booking, error)
	Create(ctx context.Context, userID int64, req CreateRequest) (store.Booking, error)
	Cancel(ctx context.Context, userID, bookingID int64) error
}

type service struct {
	store   Store
	catalog Catalog
	now     func() time.Time
}

// New wires a Service over the booking store and the space catalog.
func New(st Store, c Catalog) Service {
	return &service{store: st, catalog: c, now: time.Now}
}

func (s *service) List(ctx context.Context, userID int64) ([]store.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, ErrLoginRequired
	}
	return s.store.BookingsForUser(userID), nil
}

// Create validates the request and appends a fully-populated booking.
// Checks short-circuit in a fixed order: authentication, field
// presence, date window, then the space and its slot.
func (s *service) Create(ctx context.Context, userID int64, req CreateRequest) (store.Booking, error) {
	if err := ctx.Err(); err != nil {
		return store.Booking{}, err
	}

	if userID == 0 {
		return store.Booking{}, ErrLoginRequired
	}
	if req.Date == "" || req.TimeSlot == "" {
		return store.Booking{}, ErrMissingFields
	}

	selected, err := time.ParseInLocation(time.DateOnly, req.Date, time.Local)
	if err != nil {
		return store.Booking{}, ErrInvalidDate
	}
	today := s.today()
	if selected.Before(today) {
		return store.Booking{}, ErrPastDate
	}
	if selected.After(today.AddDate(0, bookingWindowMonths, 0)) {
		return store.Booking{}, ErrTooFarAhead
	}

	space, err := s.catalog.Get(req.SpaceID)
	if err != nil {
		return store.Booking{}, err
	}
	slot, ok := space.SlotByName(req.TimeSlot)
	if !ok {
		return store.Booking{}, ErrUnknownSlot
	}

	booking := store.Booking{
		UserID:    userID,
		SpaceID:   space.ID,
		SpaceName: space.Name,
		Date:      req.Date,
		TimeSlot:  slot.Name,
		Price:     space.SlotPrice(slot),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if slot.Priced() {
		details := slot
		booking.TimeSlotDetails = &details
	}

	stored, err := s.store.AddBooking(ctx, booking)
	if err != nil {
		return store.Booking{}, fmt.Errorf("add booking: %w", err)
	}
	return stored, nil
}

// Cancel removes one of the user's own bookings. Other users'
// bookings are invisible here, so a foreign id reports not-found.
func (s *service) Cancel(ctx context.Context, userID, bookingID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == 0 {
		return ErrLoginRequired
	}

	for _, b := range s.store.BookingsForUser(userID) {
		if b.ID == bookingID {
			return s.store.CancelBooking(ctx, bookingID)
		}
	}
	return ErrBookingNotFound
}

// today is the current calendar day with the time of day zeroed, in
// local time, matching how submitted dates are parsed.
func (s *service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
