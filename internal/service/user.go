package service

import (
	"context"
	"errors"
	"strings"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, avatarURL string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Invalid(map[string]string{"name": "name is required"})
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(name)
	user.AvatarURL = avatarURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
