package repositories

import (
	"context"

	"user-crud-api/internal/adapters/store"
	"user-crud-api/internal/models"
)

// UserRepository maps user operations onto single store round-trips.
// Every backend failure surfaces as ErrInternal; not-found is not an error.
type UserRepository interface {
	// Create stores a new user under a freshly minted UUID v1
	Create(ctx context.Context, user *models.User) error

	// Read returns the raw get result; Item is nil when the id is unknown
	Read(ctx context.Context, id string) (*store.GetOutput, error)

	// Update overwrites every mutable field and returns the stored attributes
	Update(ctx context.Context, id string, user *models.User) (store.Item, error)

	// Delete removes the user and returns the raw delete result
	Delete(ctx context.Context, id string) (*store.DeleteOutput, error)
}
