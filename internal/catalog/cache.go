// Package catalog serves the product list the sale form's dropdown is built
// from. The list is treated as immutable input for the length of a form
// session, so it is read through a short-lived cache instead of hitting the
// core API on every keystroke.
package catalog

import (
	"context"
	"time"

	"github.com/storekeep/adminapi/internal/domain"
)

// Cache stores product lists keyed by search term.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.Product, bool, error)
	Set(ctx context.Context, key string, products []domain.Product, ttl time.Duration) error
}

// NoopCache disables caching; every lookup goes upstream. Used when redis is
// not configured.
type NoopCache struct{}

func (NoopCache) Get(_ context.Context, _ string) ([]domain.Product, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(_ context.Context, _ string, _ []domain.Product, _ time.Duration) error {
	return nil
}
