package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vkaran/murmur/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// SettingsService reads and writes the owner's acceptance flag. It is
// only ever called with an authenticated owner identity; unknown ids
// should not occur for a valid session but are handled anyway.
type SettingsService struct {
	userRepo repository.UserRepository
}

func NewSettingsService(userRepo repository.UserRepository) *SettingsService {
	return &SettingsService{userRepo: userRepo}
}

func (s *SettingsService) AcceptingMessages(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return false, ErrUserNotFound
	}
	return user.IsAcceptingMessages, nil
}

func (s *SettingsService) SetAcceptingMessages(ctx context.Context, ownerID uuid.UUID, accepting bool) (bool, error) {
	user, err := s.userRepo.SetAcceptingMessages(ctx, ownerID, accepting)
	if err != nil {
		return false, fmt.Errorf("updating settings: %w", err)
	}
	if user == nil {
		return false, ErrUserNotFound
	}
	return user.IsAcceptingMessages, nil
}
