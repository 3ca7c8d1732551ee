package catalog

import (
	"encoding/json"
	"fmt"
)

// TimeSlot is a bookable period for a space. The catalog carries two
// wire shapes: a bare label (legacy) and an object with a per-slot
// price. Both decode into this one variant; Price is nil for legacy
// slots and downstream code never re-inspects the raw shape.
type TimeSlot struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Priced reports whether the slot carries its own price.
func (t TimeSlot) Priced() bool {
	return t.Price != nil
}

// UnmarshalJSON accepts either a plain string or a slot object.
func (t *TimeSlot) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return fmt.Errorf("decode legacy time slot: %w", err)
		}
		*t = TimeSlot{Name: label}
		return nil
	}

	var obj struct {
		Name        string   `json:"name"`
		Price       *float64 `json:"price"`
		Duration    string   `json:"duration"`
		Description string   `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode time slot: %w", err)
	}
	*t = TimeSlot{
		Name:        obj.Name,
		Price:       obj.Price,
		Duration:    obj.Duration,
		Description: obj.Description,
	}
	return nil
}

// MarshalJSON writes legacy slots back out as bare labels so the
// persisted shape stays stable across versions.
func (t TimeSlot) MarshalJSON() ([]byte, error) {
	if !t.Priced() {
		return json.Marshal(t.Name)
	}
	type slot TimeSlot // avoid recursing into MarshalJSON
	return json.Marshal(slot(t))
}
