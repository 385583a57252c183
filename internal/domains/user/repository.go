package user

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// GetByID returns (nil, nil) when no row matches; same for the
	// other lookups.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, u *User) (*User, error)
}
