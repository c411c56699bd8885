package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence for accounts. Email is unique across
// all accounts; Create must surface shared.ErrAlreadyExists on duplicates.
type UserRepository interface {
	Create(ctx context.Context, user *User) error

	Save(ctx context.Context, user *User) error

	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	FindByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
