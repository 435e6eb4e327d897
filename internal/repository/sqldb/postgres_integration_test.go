//go:build integration
// +build integration

package sqldb

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
	"github.com/sakif/nc-news/internal/seed"
)

// setupPostgres starts a PostgreSQL container and returns a seeded DB on it.
func setupPostgres(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("nc_news_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, Postgres, connStr)
	require.NoError(t, err, "opening postgres")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Reset(ctx))
	require.NoError(t, db.Seed(ctx, seed.Test()))
	return db
}

func TestPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	t.Run("list defaults", func(t *testing.T) {
		page, err := db.ListArticles(ctx, repository.ArticleListOptions{})
		require.NoError(t, err)
		assert.Equal(t, 13, page.TotalCount)
		assert.Len(t, page.Articles, repository.DefaultListLimit)
		for i := 1; i < len(page.Articles); i++ {
			assert.False(t, page.Articles[i].CreatedAt.After(page.Articles[i-1].CreatedAt))
		}
	})

	t.Run("topic filter and paging", func(t *testing.T) {
		page, err := db.ListArticles(ctx, repository.ArticleListOptions{
			Topic: "mitch", Limit: 3, SortBy: "votes", Order: "asc",
		})
		require.NoError(t, err)
		assert.Len(t, page.Articles, 3)
		assert.Equal(t, 12, page.TotalCount)

		page, err = db.ListArticles(ctx, repository.ArticleListOptions{Topic: "paper"})
		require.NoError(t, err)
		assert.Empty(t, page.Articles)
		assert.Zero(t, page.TotalCount)
	})

	t.Run("comment count", func(t *testing.T) {
		page, err := db.ListArticles(ctx, repository.ArticleListOptions{SortBy: "comment_count", Limit: 1})
		require.NoError(t, err)
		require.Len(t, page.Articles, 1)
		assert.Equal(t, int64(1), page.Articles[0].ArticleID)
		assert.Equal(t, 11, page.Articles[0].CommentCount)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := db.Exists(ctx, repository.TopicSlug, "paper")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = db.Exists(ctx, repository.ArticleID, int64(999))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate topic", func(t *testing.T) {
		_, err := db.CreateTopic(ctx, model.Topic{Slug: "mitch", Description: "again"})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("unknown author", func(t *testing.T) {
		_, err := db.CreateComment(ctx, model.NewComment{ArticleID: 1, Author: "nobody", Body: "hi"})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("votes", func(t *testing.T) {
		a, err := db.IncrementArticleVotes(ctx, 1, -1)
		require.NoError(t, err)
		assert.Equal(t, 99, a.Votes)
		assert.Equal(t, 11, a.CommentCount)

		_, err = db.IncrementArticleVotes(ctx, 999, 1)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("ids beyond 32 bits", func(t *testing.T) {
		ok, err := db.Exists(ctx, repository.ArticleID, int64(3_000_000_000))
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = db.GetArticle(ctx, 3_000_000_000)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		_, err = db.IncrementCommentVotes(ctx, 3_000_000_000, 1)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("votes overflow", func(t *testing.T) {
		_, err := db.IncrementCommentVotes(ctx, 1, math.MaxInt32)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		comments, err := db.ListComments(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, 16, commentVotes(t, comments, 1))
	})

	t.Run("create and cascade", func(t *testing.T) {
		a, err := db.CreateArticle(ctx, model.NewArticle{
			Author: "lurker", Title: "pg", Body: "body", Topic: "paper",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(14), a.ArticleID)

		c, err := db.CreateComment(ctx, model.NewComment{ArticleID: a.ArticleID, Author: "lurker", Body: "first"})
		require.NoError(t, err)
		assert.Equal(t, int64(19), c.CommentID)

		require.NoError(t, db.DeleteArticle(ctx, a.ArticleID))
		ok, err := db.Exists(ctx, repository.CommentID, c.CommentID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
