package category

import "context"

// Repository abstracts category persistence.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
}
