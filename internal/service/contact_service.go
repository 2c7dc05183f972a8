package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

type ContactInput struct {
	Name     string
	LastName string
	Email    string
	Phone    string
	Subject  string
	Message  string
}

// ContactView is the stored contact-form submission as returned to the
// client.
type ContactView struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactService interface {
	Submit(ctx context.Context, input ContactInput) (*ContactView, error)
}

type contactService struct {
	contacts repository.ContactRepository
	log      logger.Logger
}

func NewContactService(contacts repository.ContactRepository, log logger.Logger) ContactService {
	return &contactService{contacts: contacts, log: log}
}

func (s *contactService) Submit(ctx context.Context, input ContactInput) (*ContactView, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}

	created, err := s.contacts.Create(ctx, repository.CreateContactParams{
		Name:     strings.TrimSpace(input.Name),
		LastName: strings.TrimSpace(input.LastName),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:    strings.TrimSpace(input.Phone),
		Subject:  strings.TrimSpace(input.Subject),
		Message:  message,
	})
	if err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	return &ContactView{
		ID:        created.ID,
		Name:      created.Name,
		LastName:  created.LastName,
		Email:     created.Email,
		Phone:     created.Phone,
		Subject:   created.Subject,
		Message:   created.Message,
		Status:    created.Status,
		CreatedAt: created.CreatedAt,
	}, nil
}
