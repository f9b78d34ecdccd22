package service

import (
	"context"
	"strings"

	"paxala/internal/apperr"
	"paxala/internal/model"
	"paxala/internal/repository"

	"github.com/google/uuid"
)

type ContactService struct {
	contacts *repository.ContactRepository
	users    *repository.UserRepository
}

func NewContactService(contacts *repository.ContactRepository, users *repository.UserRepository) *ContactService {
	return &ContactService{contacts: contacts, users: users}
}

type CreateContactInput struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Position string     `json:"position"`
	UserID   *uuid.UUID `json:"userId"`
}

func (s *ContactService) client(ctx context.Context, clientID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, clientID)
	if err != nil {
		return classify(err, "Failed to load client")
	}
	if user == nil {
		return apperr.NotFound("Client not found")
	}
	if user.Role != model.RoleClient {
		return apperr.Validation("contacts can only be added to CLIENT users")
	}
	return nil
}

// Create adds a contact person to a client. A linked UserID lets the
// contact sign in and see the projects it is attached to.
func (s *ContactService) Create(ctx context.Context, clientID uuid.UUID, in CreateContactInput) (*model.Contact, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := s.client(ctx, clientID); err != nil {
		return nil, err
	}
	if in.UserID != nil {
		linked, err := s.users.GetByID(ctx, *in.UserID)
		if err != nil {
			return nil, classify(err, "Failed to load user")
		}
		if linked == nil {
			return nil, apperr.NotFound("User not found")
		}
	}

	contact := &model.Contact{
		ClientID: clientID,
		UserID:   in.UserID,
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Position: strings.TrimSpace(in.Position),
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, classify(err, "Failed to create contact")
	}
	return contact, nil
}

func (s *ContactService) List(ctx context.Context, clientID uuid.UUID) ([]model.Contact, error) {
	if err := s.client(ctx, clientID); err != nil {
		return nil, err
	}
	contacts, err := s.contacts.ListByClient(ctx, clientID)
	if err != nil {
		return nil, classify(err, "Failed to list contacts")
	}
	return contacts, nil
}
