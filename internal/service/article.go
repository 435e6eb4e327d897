// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services accept plain Go values and return domain errors from
// internal/apperror. They never see an *http.Request or a status code.
//
// Lookups that reference another row (a comment's article, an article's topic)
// are paired with an existence check run concurrently with the main query;
// see joinChecked for how the two results are combined.
package service

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

// ArticleListParams are the listing query parameters after parsing.
// Zero Page and Limit mean "use the default".
type ArticleListParams struct {
	Topic  string
	SortBy string
	Order  string
	Page   int
	Limit  int
}

// ArticleService handles business logic for articles.
type ArticleService struct {
	repo    repository.ArticleRepository
	checker repository.ExistenceChecker
	logger  *slog.Logger
}

func NewArticleService(repo repository.ArticleRepository, checker repository.ExistenceChecker, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		repo:    repo,
		checker: checker,
		logger:  logger,
	}
}

// List returns one page of article summaries and the total matching count.
//
// ORDER OF CHECKS:
//  1. sort_by, order, page and limit are validated; nothing touches the
//     database if any of them is wrong.
//  2. With a topic filter, the listing and a topic existence check run
//     together. An unknown topic is a 404; a known topic with no articles is
//     an empty page.
func (s *ArticleService) List(ctx context.Context, p ArticleListParams) (*repository.ArticlePage, error) {
	if p.Page < 0 {
		return nil, apperror.ValidationFailed("page", "page must be a positive integer")
	}
	if p.Limit < 0 {
		return nil, apperror.ValidationFailed("limit", "limit must be a positive integer")
	}

	page := p.Page
	if page == 0 {
		page = 1
	}
	limit := p.Limit
	if limit == 0 {
		limit = repository.DefaultListLimit
	}
	if page > math.MaxInt32/limit {
		return nil, apperror.ValidationFailed("page", "page is out of range")
	}

	opts := repository.ArticleListOptions{
		Topic:  strings.TrimSpace(p.Topic),
		SortBy: p.SortBy,
		Order:  p.Order,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var result *repository.ArticlePage
	list := func(ctx context.Context) error {
		var err error
		result, err = s.repo.ListArticles(ctx, opts)
		return err
	}

	var err error
	if opts.Topic == "" {
		err = list(ctx)
	} else {
		err = joinChecked(ctx, s.checker, list, exists(repository.TopicSlug, opts.Topic))
	}
	if err != nil {
		logFailure(s.logger, "failed to list articles", err, slog.String("topic", opts.Topic))
		return nil, err
	}

	return result, nil
}

// Get returns one article with its body and comment_count.
func (s *ArticleService) Get(ctx context.Context, id int64) (*model.Article, error) {
	var article *model.Article
	err := joinChecked(ctx, s.checker,
		func(ctx context.Context) error {
			var err error
			article, err = s.repo.GetArticle(ctx, id)
			return err
		},
		exists(repository.ArticleID, id),
	)
	if err != nil {
		logFailure(s.logger, "failed to get article", err, slog.Int64("article_id", id))
		return nil, err
	}
	return article, nil
}

// Create validates and stores a new article. The author and topic are checked
// concurrently with the insert so an unknown one is reported by name.
func (s *ArticleService) Create(ctx context.Context, in model.NewArticle) (*model.Article, error) {
	in.Author = strings.TrimSpace(in.Author)
	in.Topic = strings.TrimSpace(in.Topic)
	in.Title = strings.TrimSpace(in.Title)
	in.ArticleImgURL = strings.TrimSpace(in.ArticleImgURL)

	switch {
	case in.Author == "":
		return nil, apperror.ValidationFailed("author", "author is required")
	case in.Title == "":
		return nil, apperror.ValidationFailed("title", "title is required")
	case strings.TrimSpace(in.Body) == "":
		return nil, apperror.ValidationFailed("body", "body is required")
	case in.Topic == "":
		return nil, apperror.ValidationFailed("topic", "topic is required")
	}

	var created *model.Article
	err := joinChecked(ctx, s.checker,
		func(ctx context.Context) error {
			var err error
			created, err = s.repo.CreateArticle(ctx, in)
			return err
		},
		exists(repository.TopicSlug, in.Topic),
		exists(repository.Username, in.Author),
	)
	if err != nil {
		logFailure(s.logger, "failed to create article", err, slog.String("title", in.Title))
		return nil, err
	}

	s.logger.Info("article created",
		slog.Int64("article_id", created.ArticleID),
		slog.String("topic", created.Topic),
		slog.String("author", created.Author),
	)
	return created, nil
}

// Vote adds delta to the article's votes. Negative and zero deltas are valid;
// deltas outside the 32-bit range of the votes column are not.
func (s *ArticleService) Vote(ctx context.Context, id int64, delta int) (*model.Article, error) {
	if err := checkVoteDelta(delta); err != nil {
		return nil, err
	}

	var article *model.Article
	err := joinChecked(ctx, s.checker,
		func(ctx context.Context) error {
			var err error
			article, err = s.repo.IncrementArticleVotes(ctx, id, delta)
			return err
		},
		exists(repository.ArticleID, id),
	)
	if err != nil {
		logFailure(s.logger, "failed to vote on article", err, slog.Int64("article_id", id))
		return nil, err
	}

	s.logger.Info("article votes updated",
		slog.Int64("article_id", id),
		slog.Int("inc_votes", delta),
		slog.Int("votes", article.Votes),
	)
	return article, nil
}

// Delete removes an article and its comments.
//
// The existence check runs first rather than alongside the delete: once the
// row is gone a concurrent check could no longer tell "just deleted" from
// "never existed".
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	ok, err := s.checker.Exists(ctx, repository.ArticleID, id)
	if err != nil {
		logFailure(s.logger, "failed to check article", err, slog.Int64("article_id", id))
		return err
	}
	if !ok {
		return apperror.NotFound("article", strconv.FormatInt(id, 10))
	}

	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		logFailure(s.logger, "failed to delete article", err, slog.Int64("article_id", id))
		return err
	}

	s.logger.Info("article deleted", slog.Int64("article_id", id))
	return nil
}
