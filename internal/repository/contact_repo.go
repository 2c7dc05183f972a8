package repository

import (
	"context"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
)

type CreateContactParams struct {
	Name     string
	LastName string
	Email    string
	Phone    string
	Subject  string
	Message  string
}

type ContactRepository interface {
	Create(ctx context.Context, params CreateContactParams) (*entity.ContactMessage, error)
}
