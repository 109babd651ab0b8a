package service

import (
	"context"

	"github.com/avolkonsky/taskboard-api/internal/model"
	"github.com/avolkonsky/taskboard-api/internal/repo"
)

type UserService struct {
	users repo.UserRepository
}

func NewUserService(users repo.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
