// Package repository declares the storage interfaces the service layer depends on.
//
// The service never imports a concrete store. internal/repository/sqldb
// satisfies every interface here for SQLite and PostgreSQL, and service tests
// substitute hand-written fakes.
package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
)

// SortOrder is the direction of an ORDER BY clause.
type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// ArticleListOptions carries the raw listing parameters.
//
// SortBy and Order arrive as the client sent them; the query builder validates
// them against its allow-lists before any SQL is produced. Empty strings pick
// the defaults (created_at, DESC).
type ArticleListOptions struct {
	Topic  string
	SortBy string
	Order  string
	Limit  int
	Offset int
}

// Listing defaults and bounds.
const (
	DefaultSortBy    = "created_at"
	DefaultOrder     = OrderDesc
	DefaultListLimit = 12
	MaxListLimit     = 100
)

// SortFields is the allow-list for ArticleListOptions.SortBy.
var SortFields = []string{
	"article_id", "title", "created_at", "topic",
	"author", "article_img_url", "votes", "comment_count",
}

// ParseOrder normalises an order string. Matching is case-insensitive and an
// empty string means DefaultOrder.
func ParseOrder(s string) (SortOrder, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DefaultOrder, nil
	case string(OrderAsc):
		return OrderAsc, nil
	case string(OrderDesc):
		return OrderDesc, nil
	}
	return "", apperror.ValidationFailed("order", fmt.Sprintf("invalid order %q: must be ASC or DESC", s))
}

// Validate checks every listing parameter against its allow-list or bounds.
// It touches nothing but opts, so callers run it before any query.
func (o ArticleListOptions) Validate() error {
	if o.SortBy != "" && !slices.Contains(SortFields, o.SortBy) {
		return apperror.ValidationFailed("sort_by",
			fmt.Sprintf("invalid sort_by %q: must be one of %s", o.SortBy, strings.Join(SortFields, ", ")))
	}
	if _, err := ParseOrder(o.Order); err != nil {
		return err
	}
	if o.Limit < 0 || o.Limit > MaxListLimit {
		return apperror.ValidationFailed("limit",
			fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}
	if o.Offset < 0 {
		return apperror.ValidationFailed("page", "page must be a positive integer")
	}
	return nil
}

// ArticlePage is one page of article summaries plus the number of articles
// matching the filter across all pages.
type ArticlePage struct {
	Articles   []model.ArticleSummary `json:"articles"`
	TotalCount int                    `json:"total_count"`
}

// Key names a (table, column) pair the ExistenceChecker may probe.
//
// The fields are unexported so only this package can mint keys: callers pick
// one of the predefined values below and never pass raw identifiers that end
// up in SQL.
type Key struct {
	table    string
	column   string
	resource string
}

var (
	TopicSlug = Key{table: "topics", column: "slug", resource: "topic"}
	ArticleID = Key{table: "articles", column: "article_id", resource: "article"}
	CommentID = Key{table: "comments", column: "comment_id", resource: "comment"}
	Username  = Key{table: "users", column: "username", resource: "user"}
)

// Table returns the table the key probes.
func (k Key) Table() string { return k.table }

// Column returns the column the key probes.
func (k Key) Column() string { return k.column }

// Resource is the singular noun used in not-found messages ("article", "user").
func (k Key) Resource() string { return k.resource }

// Valid reports whether k is one of the predefined keys.
func (k Key) Valid() bool {
	switch k {
	case TopicSlug, ArticleID, CommentID, Username:
		return true
	}
	return false
}

// ExistenceChecker answers "is there at least one row with column = value?".
type ExistenceChecker interface {
	Exists(ctx context.Context, key Key, value any) (bool, error)
}

type TopicRepository interface {
	ListTopics(ctx context.Context) ([]model.Topic, error)
	CreateTopic(ctx context.Context, topic model.Topic) (*model.Topic, error)
}

type ArticleRepository interface {
	ListArticles(ctx context.Context, opts ArticleListOptions) (*ArticlePage, error)
	GetArticle(ctx context.Context, id int64) (*model.Article, error)
	CreateArticle(ctx context.Context, in model.NewArticle) (*model.Article, error)
	IncrementArticleVotes(ctx context.Context, id int64, delta int) (*model.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
}

type CommentRepository interface {
	ListComments(ctx context.Context, articleID int64) ([]model.Comment, error)
	CreateComment(ctx context.Context, in model.NewComment) (*model.Comment, error)
	IncrementCommentVotes(ctx context.Context, id int64, delta int) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, username string) (*model.User, error)
}

// Store is everything the HTTP server needs from persistence.
type Store interface {
	ExistenceChecker
	TopicRepository
	ArticleRepository
	CommentRepository
	UserRepository
	Close() error
}
