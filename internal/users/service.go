package users

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"notesboard/internal/httpapi"
)

type Service struct {
	store    Store
	validate *validator.Validate
}

func NewService(store Store) *Service {
	return &Service{
		store:    store,
		validate: httpapi.NewValidator(),
	}
}

// Create validates and registers a new user
func (s *Service) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	user := &User{Username: input.Username, Email: input.Email}
	if err := s.store.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.store.FindByID(ctx, id)
}

// List retrieves a page of users
func (s *Service) List(ctx context.Context, q ListQuery) ([]*User, error) {
	return s.store.List(ctx, q)
}
