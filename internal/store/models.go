package store

import "spacebook/internal/catalog"

// User is a registered account. Passwords are stored as-is: this is
// a demo directory, and the persisted shape is pinned for continuity
// with earlier versions.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Booking is a user's reservation of a space for a date and time
// slot. The space name and price are snapshots taken at booking
// time; a booking is immutable once created except for deletion.
type Booking struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"userId"`
	SpaceID         catalog.SpaceID   `json:"spaceId"`
	SpaceName       string            `json:"spaceName"`
	Date            string            `json:"date"`
	TimeSlot        string            `json:"timeSlot"`
	TimeSlotDetails *catalog.TimeSlot `json:"timeSlotDetails,omitempty"`
	Price           float64           `json:"price"`
	CreatedAt       string            `json:"createdAt"`
}
