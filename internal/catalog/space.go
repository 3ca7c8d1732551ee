package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// SpaceID identifies a space. Catalog data has carried both numeric
// and string ids over time, so both decode into the same type and
// compare as strings.
type SpaceID string

// UnmarshalJSON accepts a JSON string or number.
func (id *SpaceID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode space id: %w", err)
		}
		*id = SpaceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode space id: %w", err)
	}
	*id = SpaceID(n.String())
	return nil
}

// ParseSpaceID normalizes a raw path or query value into a SpaceID.
func ParseSpaceID(raw string) SpaceID {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return SpaceID(strconv.FormatInt(n, 10))
	}
	return SpaceID(raw)
}

// Space is one bookable listing in the static catalog. Records are
// immutable after load.
type Space struct {
	ID          SpaceID    `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	BasePrice   float64    `json:"base_price"`
	Price       float64    `json:"price,omitempty"` // legacy alias for BasePrice
	MainImage   string     `json:"main_image,omitempty"`
	Images      []string   `json:"images,omitempty"`
	Amenities   []string   `json:"amenities,omitempty"`
	Hours       string     `json:"hours,omitempty"`
	TimeSlots   []TimeSlot `json:"time_slots"`
}

// SessionPrice is the per-session price of the space itself: the base
// price, falling back to the legacy alias.
func (s Space) SessionPrice() float64 {
	if s.BasePrice != 0 {
		return s.BasePrice
	}
	return s.Price
}

// SlotByName returns the named slot.
func (s Space) SlotByName(name string) (TimeSlot, bool) {
	for _, slot := range s.TimeSlots {
		if slot.Name == name {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// SlotPrice resolves the effective booking price for a slot: a priced
// slot charges its own price, a legacy slot charges the session price.
func (s Space) SlotPrice(slot TimeSlot) float64 {
	if slot.Priced() {
		return *slot.Price
	}
	return s.SessionPrice()
}

// DefaultSlot is the slot preselected on first render: the first
// entry of the slot list, if any.
func (s Space) DefaultSlot() (TimeSlot, bool) {
	if len(s.TimeSlots) == 0 {
		return TimeSlot{}, false
	}
	return s.TimeSlots[0], true
}

// DefaultPrice is the price shown before any slot is chosen: the
// default slot's price when one exists, else the session price
// (which may be zero for a record with no pricing at all).
func (s Space) DefaultPrice() float64 {
	if slot, ok := s.DefaultSlot(); ok {
		return s.SlotPrice(slot)
	}
	return s.SessionPrice()
}
