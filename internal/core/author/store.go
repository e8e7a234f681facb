package author

import "context"

type Repository interface {
	FindByEmail(context context.Context, email string) (*Author, error)
	Create(context context.Context, a *Author) error
	Update(context context.Context, a *Author) error
}
