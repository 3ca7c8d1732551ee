package spaces

import (
	"context"

	"spacebook/internal/catalog"
	"spacebook/internal/search"
)

// Service exposes catalog browsing: a searched/sorted listing and
// single-space lookup.
type Service interface {
	List(ctx context.Context, query string, sortBy search.SortBy, bucket search.PriceBucket) ([]catalog.Space, error)
	Get(ctx context.Context, id catalog.SpaceID) (catalog.Space, error)
}

type service struct {
	catalog *catalog.Catalog
}

// New wires a Service over the loaded catalog.
func New(c *catalog.Catalog) Service {
	return &service{catalog: c}
}

func (s *service) List(ctx context.Context, query string, sortBy search.SortBy, bucket search.PriceBucket) ([]catalog.Space, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return search.Run(s.catalog.List(), query, sortBy, bucket), nil
}

func (s *service) Get(ctx context.Context, id catalog.SpaceID) (catalog.Space, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Space{}, err
	}
	return s.catalog.Get(id)
}
