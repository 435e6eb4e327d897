package sqldb

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/nc-news/internal/apperror"
	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
	"github.com/sakif/nc-news/internal/seed"
)

// newTestDB opens a fresh in-memory SQLite database seeded with the test
// dataset. Each test gets its own copy, so mutations never leak between tests.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, SQLite, ":memory:")
	require.NoError(t, err, "opening test db")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Seed(ctx, seed.Test()), "seeding test db")
	return db
}

// =========================================================================
// EXISTENCE CHECKER
// =========================================================================

func TestExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   repository.Key
		value any
		want  bool
	}{
		{"topic present", repository.TopicSlug, "paper", true},
		{"topic absent", repository.TopicSlug, "dogs", false},
		{"article present", repository.ArticleID, int64(13), true},
		{"article absent", repository.ArticleID, int64(999), false},
		{"comment present", repository.CommentID, int64(18), true},
		{"comment absent", repository.CommentID, int64(19), false},
		{"user present", repository.Username, "lurker", true},
		{"user absent", repository.Username, "nobody", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Exists(ctx, tt.key, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExists_RejectsUnknownKey(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exists(context.Background(), repository.Key{}, "x")
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

// =========================================================================
// TOPICS AND USERS
// =========================================================================

func TestListTopics(t *testing.T) {
	db := newTestDB(t)

	topics, err := db.ListTopics(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 3)

	slugs := []string{topics[0].Slug, topics[1].Slug, topics[2].Slug}
	assert.ElementsMatch(t, []string{"mitch", "cats", "paper"}, slugs)
}

func TestCreateTopic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateTopic(ctx, model.Topic{Slug: "dogs", Description: "Not cats"})
	require.NoError(t, err)
	assert.Equal(t, "dogs", created.Slug)
	assert.Equal(t, "Not cats", created.Description)

	_, err = db.CreateTopic(ctx, model.Topic{Slug: "dogs", Description: "again"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict), "duplicate slug should conflict, got %v", err)
}

func TestUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	u, err := db.GetUser(ctx, "butter_bridge")
	require.NoError(t, err)
	assert.Equal(t, "jonny", u.Name)
	assert.NotEmpty(t, u.AvatarURL)

	_, err = db.GetUser(ctx, "nobody")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

// =========================================================================
// ARTICLES
// =========================================================================

func TestGetArticle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a, err := db.GetArticle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ArticleID)
	assert.Equal(t, "Living in the shadow of a great man", a.Title)
	assert.Equal(t, "I find this existence challenging", a.Body)
	assert.Equal(t, 100, a.Votes)
	assert.Equal(t, 11, a.CommentCount)
	assert.Equal(t, model.DefaultArticleImgURL, a.ArticleImgURL)
	assert.True(t, seed.Test().Articles[0].CreatedAt.Equal(a.CreatedAt), "created_at = %v", a.CreatedAt)

	a, err = db.GetArticle(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, a.CommentCount)

	_, err = db.GetArticle(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListArticles_DefaultsAndCounts(t *testing.T) {
	db := newTestDB(t)

	page, err := db.ListArticles(context.Background(), repository.ArticleListOptions{})
	require.NoError(t, err)

	assert.Equal(t, 13, page.TotalCount)
	assert.Len(t, page.Articles, repository.DefaultListLimit)

	// Newest first by default.
	for i := 1; i < len(page.Articles); i++ {
		assert.False(t, page.Articles[i].CreatedAt.After(page.Articles[i-1].CreatedAt),
			"article %d is newer than the one before it", page.Articles[i].ArticleID)
	}

	// comment_count matches the seed exactly.
	want := map[int64]int{}
	for _, c := range seed.Test().Comments {
		want[c.ArticleID]++
	}
	all, err := db.ListArticles(context.Background(), repository.ArticleListOptions{Limit: 100})
	require.NoError(t, err)
	require.Len(t, all.Articles, 13)
	for _, a := range all.Articles {
		assert.Equal(t, want[a.ArticleID], a.CommentCount, "article %d", a.ArticleID)
	}
}

func TestListArticles_SortedByEveryColumn(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, col := range repository.SortFields {
		for _, order := range []string{"asc", "desc"} {
			t.Run(col+"_"+order, func(t *testing.T) {
				page, err := db.ListArticles(ctx, repository.ArticleListOptions{
					SortBy: col, Order: order, Limit: 100,
				})
				require.NoError(t, err)
				require.Len(t, page.Articles, 13)

				sorted := sort.SliceIsSorted(page.Articles, func(i, j int) bool {
					less := compareBy(col, page.Articles[i], page.Articles[j])
					if order == "desc" {
						less = -less
					}
					return less < 0
				})
				assert.True(t, sorted, "articles not sorted by %s %s", col, order)
			})
		}
	}
}

// compareBy returns -1, 0 or 1 comparing a and b on the named column.
func compareBy(col string, a, b model.ArticleSummary) int {
	cmpStr := func(x, y string) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	cmpInt := func(x, y int64) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}

	switch col {
	case "article_id":
		return cmpInt(a.ArticleID, b.ArticleID)
	case "title":
		return cmpStr(a.Title, b.Title)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "topic":
		return cmpStr(a.Topic, b.Topic)
	case "author":
		return cmpStr(a.Author, b.Author)
	case "article_img_url":
		return cmpStr(a.ArticleImgURL, b.ArticleImgURL)
	case "votes":
		return cmpInt(int64(a.Votes), int64(b.Votes))
	case "comment_count":
		return cmpInt(int64(a.CommentCount), int64(b.CommentCount))
	}
	panic("unknown column " + col)
}

func TestListArticles_TopicAndPagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	page, err := db.ListArticles(ctx, repository.ArticleListOptions{Topic: "mitch", Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page.Articles, 3)
	assert.Equal(t, 12, page.TotalCount)
	for _, a := range page.Articles {
		assert.Equal(t, "mitch", a.Topic)
	}

	cats, err := db.ListArticles(ctx, repository.ArticleListOptions{Topic: "cats"})
	require.NoError(t, err)
	require.Len(t, cats.Articles, 1)
	assert.Equal(t, int64(5), cats.Articles[0].ArticleID)
	assert.Equal(t, 1, cats.TotalCount)

	paper, err := db.ListArticles(ctx, repository.ArticleListOptions{Topic: "paper"})
	require.NoError(t, err)
	assert.Empty(t, paper.Articles)
	assert.NotNil(t, paper.Articles)
	assert.Equal(t, 0, paper.TotalCount)

	past, err := db.ListArticles(ctx, repository.ArticleListOptions{Topic: "mitch", Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Empty(t, past.Articles)
	assert.Equal(t, 12, past.TotalCount)
}

func TestListArticles_PagesDoNotOverlap(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for offset := 0; offset < 13; offset += 5 {
		page, err := db.ListArticles(ctx, repository.ArticleListOptions{SortBy: "votes", Limit: 5, Offset: offset})
		require.NoError(t, err)
		for _, a := range page.Articles {
			assert.False(t, seen[a.ArticleID], "article %d returned twice", a.ArticleID)
			seen[a.ArticleID] = true
		}
	}
	assert.Len(t, seen, 13)
}

func TestListArticles_InvalidOptions(t *testing.T) {
	db := newTestDB(t)

	_, err := db.ListArticles(context.Background(), repository.ArticleListOptions{SortBy: "body"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreateArticle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a, err := db.CreateArticle(ctx, model.NewArticle{
		Author: "lurker",
		Title:  "Finally speaking up",
		Body:   "Hello.",
		Topic:  "paper",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(14), a.ArticleID)
	assert.Equal(t, 0, a.Votes)
	assert.Equal(t, 0, a.CommentCount)
	assert.Equal(t, model.DefaultArticleImgURL, a.ArticleImgURL)
	assert.False(t, a.CreatedAt.IsZero())

	fetched, err := db.GetArticle(ctx, a.ArticleID)
	require.NoError(t, err)
	assert.Equal(t, "Hello.", fetched.Body)
}

func TestCreateArticle_UnknownReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateArticle(ctx, model.NewArticle{Author: "nobody", Title: "t", Body: "b", Topic: "mitch"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = db.CreateArticle(ctx, model.NewArticle{Author: "lurker", Title: "t", Body: "b", Topic: "dogs"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestIncrementArticleVotes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	tests := []struct {
		delta int
		want  int
	}{
		{delta: 1, want: 101},
		{delta: -50, want: 51},
		{delta: 0, want: 51},
	}
	for _, tt := range tests {
		a, err := db.IncrementArticleVotes(ctx, 1, tt.delta)
		require.NoError(t, err)
		assert.Equal(t, tt.want, a.Votes)
		assert.Equal(t, 11, a.CommentCount)
	}

	_, err := db.IncrementArticleVotes(ctx, 999, 1)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteArticle_CascadesComments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.DeleteArticle(ctx, 1))

	ok, err := db.Exists(ctx, repository.ArticleID, int64(1))
	require.NoError(t, err)
	assert.False(t, ok)

	comments, err := db.ListComments(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, comments)

	ok, err = db.Exists(ctx, repository.CommentID, int64(2))
	require.NoError(t, err)
	assert.False(t, ok, "comment 2 belonged to article 1 and should be gone")

	// Absent ids are not an error at this layer.
	assert.NoError(t, db.DeleteArticle(ctx, 1))
}

// =========================================================================
// COMMENTS
// =========================================================================

func TestListComments(t *testing.T) {
	db := newTestDB(t)

	comments, err := db.ListComments(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, comments, 11)

	for i, c := range comments {
		assert.Equal(t, int64(1), c.ArticleID)
		if i > 0 {
			assert.True(t, c.CreatedAt.After(comments[i-1].CreatedAt), "comments not oldest first at %d", i)
		}
	}

	none, err := db.ListComments(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCreateComment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, err := db.CreateComment(ctx, model.NewComment{ArticleID: 2, Author: "lurker", Body: "first!"})
	require.NoError(t, err)
	assert.Equal(t, int64(19), c.CommentID)
	assert.Equal(t, int64(2), c.ArticleID)
	assert.Equal(t, "lurker", c.Author)
	assert.Equal(t, 0, c.Votes)
	assert.False(t, c.CreatedAt.IsZero())

	a, err := db.GetArticle(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, a.CommentCount)
}

func TestCreateComment_UnknownReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.CreateComment(ctx, model.NewComment{ArticleID: 1, Author: "nobody", Body: "hi"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = db.CreateComment(ctx, model.NewComment{ArticleID: 999, Author: "lurker", Body: "hi"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestIncrementCommentVotes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, err := db.IncrementCommentVotes(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 20, c.Votes)

	c, err = db.IncrementCommentVotes(ctx, 1, -20)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Votes)

	_, err = db.IncrementCommentVotes(ctx, 999, 1)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

// A sum SQLite cannot hold as an integer must not be left in the table.
func TestIncrementVotes_OverflowLeavesRowIntact(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.IncrementCommentVotes(ctx, 1, math.MaxInt64)
	require.Error(t, err)

	comments, err := db.ListComments(ctx, 9)
	require.NoError(t, err, "comments stay readable")
	assert.Equal(t, 16, commentVotes(t, comments, 1))

	_, err = db.IncrementArticleVotes(ctx, 1, math.MaxInt64)
	require.Error(t, err)

	a, err := db.GetArticle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, a.Votes)
}

// commentVotes returns the votes of the comment with the given id.
func commentVotes(t *testing.T, comments []model.Comment, id int64) int {
	t.Helper()
	for _, c := range comments {
		if c.CommentID == id {
			return c.Votes
		}
	}
	t.Fatalf("comment %d not in list", id)
	return 0
}

func TestDeleteComment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.DeleteComment(ctx, 1))

	ok, err := db.Exists(ctx, repository.CommentID, int64(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

// =========================================================================
// RESET
// =========================================================================

func TestReset(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Reset(ctx))

	topics, err := db.ListTopics(ctx)
	require.NoError(t, err)
	assert.Empty(t, topics)

	// Ids restart from 1 after a reset.
	require.NoError(t, db.Seed(ctx, seed.Test()))
	a, err := db.GetArticle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Living in the shadow of a great man", a.Title)
}

func TestParseDriver(t *testing.T) {
	tests := []struct {
		in      string
		want    Driver
		wantErr bool
	}{
		{"", SQLite, false},
		{"sqlite", SQLite, false},
		{"SQLite3", SQLite, false},
		{"postgres", Postgres, false},
		{"postgresql", Postgres, false},
		{"pgx", Postgres, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDriver(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
