// Package catalog holds the static, read-only collection of bookable
// study spaces. The catalog is bundled into the binary and loaded
// wholesale at startup; nothing mutates it afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

//go:embed spaces.json
var spacesJSON []byte

// ErrSpaceNotFound signals a lookup for an id the catalog does not
// contain.
var ErrSpaceNotFound = errors.New("space not found")

// Catalog is the loaded space directory.
type Catalog struct {
	spaces []Space
	byID   map[SpaceID]int
}

// New loads the bundled catalog.
func New() (*Catalog, error) {
	return NewFromJSON(spacesJSON)
}

// NewFromJSON builds a catalog from raw JSON, mostly for tests.
func NewFromJSON(raw []byte) (*Catalog, error) {
	var spaces []Space
	if err := json.Unmarshal(raw, &spaces); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		spaces: spaces,
		byID:   make(map[SpaceID]int, len(spaces)),
	}
	for i, s := range spaces {
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate space id %q", s.ID)
		}
		c.byID[s.ID] = i
	}
	return c, nil
}

// List returns the catalog in its stable load order.
func (c *Catalog) List() []Space {
	out := make([]Space, len(c.spaces))
	copy(out, c.spaces)
	return out
}

// Get returns the space with the given id.
func (c *Catalog) Get(id SpaceID) (Space, error) {
	i, ok := c.byID[id]
	if !ok {
		return Space{}, ErrSpaceNotFound
	}
	return c.spaces[i], nil
}

// Len reports the number of spaces.
func (c *Catalog) Len() int {
	return len(c.spaces)
}
