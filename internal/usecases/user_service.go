package usecases

import (
	"context"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/domain/schema"
	"scrapemyuni.backend/pkg/validation"
)

// UserService handles user profile records. Users are keyed by the
// identifier issued by the auth provider.
type UserService struct {
	docs documentService
}

// NewUserService creates a new user service
func NewUserService(
	store repositories.DocumentStore,
	registry *schema.Registry,
	validator *validation.Validator,
) *UserService {
	return &UserService{
		docs: newDocumentService(store, registry, validator, repositories.CollectionUsers, "User", func() interface{} { return &entities.User{} }),
	}
}

// Get gets a user by ID
func (s *UserService) Get(ctx context.Context, id string) (*entities.User, error) {
	var u entities.User
	if err := s.docs.get(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create stores a profile under the given identifier, replacing any
// existing one. Role defaults to user.
func (s *UserService) Create(ctx context.Context, id string, u *entities.User) (*entities.User, error) {
	if u.Role == "" {
		u.Role = entities.UserRoleUser
	}
	if err := s.docs.set(ctx, id, u); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// operatorFields are managed by operators and the auth provider, never by
// the profile owner.
var operatorFields = []string{"role", "emailVerified", "lastLogin"}

// Update merges fields into an existing profile
func (s *UserService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	for _, key := range operatorFields {
		if _, ok := fields[key]; ok {
			return domainerrors.Forbidden(key + " cannot be changed")
		}
	}
	return s.docs.patch(ctx, id, fields)
}

// Remove deletes a profile
func (s *UserService) Remove(ctx context.Context, id string) error {
	return s.docs.remove(ctx, id)
}

// RecordLogin stamps lastLogin with the current time
func (s *UserService) RecordLogin(ctx context.Context, id string) error {
	return s.docs.write(ctx, id, map[string]interface{}{"lastLogin": s.docs.now()})
}
