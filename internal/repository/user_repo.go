package repository

import (
	"context"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
)

// UpdateProfileParams carries the mutable contact fields; nil means
// leave the field untouched.
type UpdateProfileParams struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (string, error)
	GetByID(ctx context.Context, userID string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*entity.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	// UpdateEmail sets a new address after a case-insensitive duplicate
	// check; ErrAlreadyExists when another account holds it.
	UpdateEmail(ctx context.Context, userID, email string) (*entity.User, error)
}
