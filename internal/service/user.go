package service

import (
	"context"
	"log/slog"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

// UserService is read-only: users are created by seeding, not through the API.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list users", err)
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		logFailure(s.logger, "failed to get user", err, slog.String("username", username))
		return nil, err
	}
	return user, nil
}
