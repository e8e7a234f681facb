package article

import (
	"context"

	"github.com/majallahq/majalla/pkg/pagination"
)

// Repository abstracts article persistence.
type Repository interface {
	Create(ctx context.Context, a *Article) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByStatus(ctx context.Context, status Status, params pagination.Params) ([]Article, int, error)
}
