package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Harshitk-cp/cloudtail/internal/domain"
	"github.com/Harshitk-cp/cloudtail/internal/store"
)

type UserService struct {
	store domain.UserStore
}

func NewUserService(s domain.UserStore) *UserService {
	return &UserService{store: s}
}

// Create registers a user under an already hashed API key.
func (s *UserService) Create(ctx context.Context, name, apiKeyHash string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUserNameEmpty
	}
	u := &domain.User{Name: name, APIKeyHash: apiKeyHash}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrUserConflict
		}
		return nil, err
	}
	return u, nil
}
