// Package search derives an ordered result list from the catalog and
// the user's query, sort key, and price filter. It is a pure
// function of its inputs; recomputing on every change is cheap at
// catalog scale.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"spacebook/internal/catalog"
)

// SortBy selects the ordering of results.
type SortBy string

const (
	SortByName     SortBy = "name"
	SortByPrice    SortBy = "price"
	SortByLocation SortBy = "location"
)

// ParseSortBy maps a raw query value to a sort key, defaulting to
// name for anything unrecognized.
func ParseSortBy(raw string) SortBy {
	switch SortBy(raw) {
	case SortByPrice:
		return SortByPrice
	case SortByLocation:
		return SortByLocation
	default:
		return SortByName
	}
}

// PriceBucket filters results by base price after the text match.
type PriceBucket string

const (
	PriceAll    PriceBucket = "all"    // no filtering
	PriceLow    PriceBucket = "low"    // base price <= 250
	PriceMedium PriceBucket = "medium" // 251 - 400 inclusive
	PriceHigh   PriceBucket = "high"   // base price > 400
)

// ParsePriceBucket maps a raw query value to a bucket, defaulting to
// all for anything unrecognized.
func ParsePriceBucket(raw string) PriceBucket {
	switch PriceBucket(raw) {
	case PriceLow:
		return PriceLow
	case PriceMedium:
		return PriceMedium
	case PriceHigh:
		return PriceHigh
	default:
		return PriceAll
	}
}

func (b PriceBucket) matches(basePrice float64) bool {
	switch b {
	case PriceLow:
		return basePrice <= 250
	case PriceMedium:
		return basePrice > 250 && basePrice <= 400
	case PriceHigh:
		return basePrice > 400
	default:
		return true
	}
}

// Run filters spaces by query and price bucket, then orders them by
// the sort key. The sort is stable: ties keep catalog order. The
// input slice is not modified.
func Run(spaces []catalog.Space, query string, sortBy SortBy, bucket PriceBucket) []catalog.Space {
	q := strings.ToLower(strings.TrimSpace(query))

	matched := make([]catalog.Space, 0, len(spaces))
	for _, s := range spaces {
		if !matchesQuery(s, q) {
			continue
		}
		if !bucket.matches(s.BasePrice) {
			continue
		}
		matched = append(matched, s)
	}

	c := collate.New(language.English, collate.Loose)
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch sortBy {
		case SortByPrice:
			return a.BasePrice < b.BasePrice
		case SortByLocation:
			return c.CompareString(a.Location, b.Location) < 0
		default:
			return c.CompareString(a.Name, b.Name) < 0
		}
	})

	return matched
}

// matchesQuery reports whether any of name, location, or description
// contains the lowercased query. An empty query matches everything.
func matchesQuery(s catalog.Space, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Location), q) ||
		strings.Contains(strings.ToLower(s.Description), q)
}
