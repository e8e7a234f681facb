package formconfig

import "context"

// FormKey is the configuration key for the public submission form.
const FormKey = "submission-form"

// Repository abstracts form-configuration persistence.
type Repository interface {
	// Get returns the raw JSON payload stored under key, or dberr.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
}
