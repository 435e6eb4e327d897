package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

const MaxSlugLength = 100

type TopicService struct {
	repo   repository.TopicRepository
	logger *slog.Logger
}

func NewTopicService(repo repository.TopicRepository, logger *slog.Logger) *TopicService {
	return &TopicService{repo: repo, logger: logger}
}

func (s *TopicService) List(ctx context.Context) ([]model.Topic, error) {
	topics, err := s.repo.ListTopics(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list topics", err)
		return nil, err
	}
	return topics, nil
}

// Create adds a topic. Slugs are unique; a duplicate is a conflict.
func (s *TopicService) Create(ctx context.Context, slug, description string) (*model.Topic, error) {
	slug = strings.TrimSpace(slug)
	description = strings.TrimSpace(description)

	if slug == "" {
		return nil, apperror.ValidationFailed("slug", "slug is required")
	}
	if len(slug) > MaxSlugLength {
		return nil, apperror.ValidationFailed("slug",
			fmt.Sprintf("slug must be %d characters or less", MaxSlugLength))
	}
	if description == "" {
		return nil, apperror.ValidationFailed("description", "description is required")
	}

	topic, err := s.repo.CreateTopic(ctx, model.Topic{Slug: slug, Description: description})
	if err != nil {
		logFailure(s.logger, "failed to create topic", err, slog.String("slug", slug))
		return nil, err
	}

	s.logger.Info("topic created", slog.String("slug", topic.Slug))
	return topic, nil
}
