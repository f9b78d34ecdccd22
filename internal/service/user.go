package service

import (
	"context"
	"strings"

	"paxala/internal/apperr"
	"paxala/internal/auth"
	"paxala/internal/model"
	"paxala/internal/repository"

	"github.com/google/uuid"
)

const minPasswordLength = 6

// UserService holds the admin-side user operations. Self-registration and
// login live in the user handler.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

type CreateUserInput struct {
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validEmail(email) {
		return nil, apperr.Validation("email is invalid")
	}
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return nil, apperr.Validation("name must be at least 2 characters")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	if !in.Role.Valid() {
		return nil, apperr.Validation("unknown role %q", in.Role)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, classify(err, "Failed to look up user")
	}
	if existing != nil {
		return nil, apperr.Conflict("User with this email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("Failed to hash password", err)
	}
	user := &model.User{
		Email:          email,
		Name:           name,
		HashedPassword: hash,
		Role:           in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, classify(err, "Failed to create user")
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, role *model.Role) ([]model.User, error) {
	if role != nil && !role.Valid() {
		return nil, apperr.Validation("unknown role %q", *role)
	}
	users, err := s.users.List(ctx, role)
	if err != nil {
		return nil, classify(err, "Failed to list users")
	}
	return users, nil
}

func (s *UserService) get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "Failed to load user")
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.get(ctx, id)
}

func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperr.Validation("unknown role %q", role)
	}
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, classify(err, "Failed to update role")
	}
	user.Role = role
	return user, nil
}

// UpdateManager sets the user's manager. The manager must be ADMIN or STAFF
// and cannot be the user itself; nil clears it.
func (s *UserService) UpdateManager(ctx context.Context, id uuid.UUID, managerID *uuid.UUID) (*model.User, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if managerID != nil {
		if *managerID == id {
			return nil, apperr.Validation("a user cannot manage themselves")
		}
		manager, err := s.get(ctx, *managerID)
		if err != nil {
			return nil, err
		}
		if !manager.Role.IsTeam() {
			return nil, apperr.Validation("manager must be an ADMIN or STAFF user")
		}
	}
	if err := s.users.UpdateManager(ctx, id, managerID); err != nil {
		return nil, classify(err, "Failed to update manager")
	}
	user.ManagerID = managerID
	return user, nil
}
