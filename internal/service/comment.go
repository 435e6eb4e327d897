package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

// CommentService handles business logic for comments.
type CommentService struct {
	repo    repository.CommentRepository
	checker repository.ExistenceChecker
	logger  *slog.Logger
}

func NewCommentService(repo repository.CommentRepository, checker repository.ExistenceChecker, logger *slog.Logger) *CommentService {
	return &CommentService{
		repo:    repo,
		checker: checker,
		logger:  logger,
	}
}

// ListForArticle returns an article's comments oldest first. An article with
// no comments gives an empty slice; an unknown article gives NotFound.
func (s *CommentService) ListForArticle(ctx context.Context, articleID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := joinChecked(ctx, s.checker,
		func(ctx context.Context) error {
			var err error
			comments, err = s.repo.ListComments(ctx, articleID)
			return err
		},
		exists(repository.ArticleID, articleID),
	)
	if err != nil {
		logFailure(s.logger, "failed to list comments", err, slog.Int64("article_id", articleID))
		return nil, err
	}
	return comments, nil
}

// Create posts a comment. The article and the author are checked concurrently
// with the insert, so an unknown username is reported as "user <name> not found".
func (s *CommentService) Create(ctx context.Context, in model.NewComment) (*model.Comment, error) {
	in.Author = strings.TrimSpace(in.Author)
	if in.Author == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, apperror.ValidationFailed("body", "body is required")
	}

	var created *model.Comment
	err := joinChecked(ctx, s.checker,
		func(ctx context.Context) error {
			var err error
			created, err = s.repo.CreateComment(ctx, in)
			return err
		},
		exists(repository.ArticleID, in.ArticleID),
		exists(repository.Username, in.Author),
	)
	if err != nil {
		logFailure(s.logger, "failed to create comment", err, slog.Int64("article_id", in.ArticleID))
		return nil, err
	}

	s.logger.Info("comment created",
		slog.Int64("comment_id", created.CommentID),
		slog.Int64("article_id", created.ArticleID),
		slog.String("author", created.Author),
	)
	return created, nil
}

func (s *CommentService) Vote(ctx context.Context, id int64, delta int) (*model.Comment, error) {
	if err := checkVoteDelta(delta); err != nil {
		return nil, err
	}

	var comment *model.Comment
	err := joinChecked(ctx, s.checker,
		func(ctx context.Context) error {
			var err error
			comment, err = s.repo.IncrementCommentVotes(ctx, id, delta)
			return err
		},
		exists(repository.CommentID, id),
	)
	if err != nil {
		logFailure(s.logger, "failed to vote on comment", err, slog.Int64("comment_id", id))
		return nil, err
	}

	s.logger.Info("comment votes updated",
		slog.Int64("comment_id", id),
		slog.Int("inc_votes", delta),
		slog.Int("votes", comment.Votes),
	)
	return comment, nil
}

// Delete checks the comment exists, then removes it. A second delete of the
// same id is NotFound.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	ok, err := s.checker.Exists(ctx, repository.CommentID, id)
	if err != nil {
		logFailure(s.logger, "failed to check comment", err, slog.Int64("comment_id", id))
		return err
	}
	if !ok {
		return apperror.NotFound("comment", strconv.FormatInt(id, 10))
	}

	if err := s.repo.DeleteComment(ctx, id); err != nil {
		logFailure(s.logger, "failed to delete comment", err, slog.Int64("comment_id", id))
		return err
	}

	s.logger.Info("comment deleted", slog.Int64("comment_id", id))
	return nil
}
