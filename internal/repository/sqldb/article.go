package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.ArticleRepository = (*DB)(nil)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(s scanner, a *model.ArticleSummary, extra ...any) error {
	dest := []any{
		&a.ArticleID, &a.Title, &a.Topic, &a.Author,
		timestamp{&a.CreatedAt}, &a.Votes, &a.ArticleImgURL, &a.CommentCount,
	}
	return s.Scan(append(dest, extra...)...)
}

// ListArticles runs the listing and count statements produced by the query
// builder. An invalid sort_by or order fails before either statement runs.
func (db *DB) ListArticles(ctx context.Context, opts repository.ArticleListOptions) (*repository.ArticlePage, error) {
	q, params, err := BuildArticleQuery(opts)
	if err != nil {
		return nil, err
	}

	rows, err := db.query(ctx, q, params...)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing articles: %w", err)
	}
	defer rows.Close()

	articles := make([]model.ArticleSummary, 0)
	for rows.Next() {
		var a model.ArticleSummary
		if err := scanSummary(rows, &a); err != nil {
			return nil, fmt.Errorf("sqldb: scanning article row: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating articles: %w", err)
	}
	// Release the connection before the count query; in-memory SQLite pools
	// hold a single one.
	rows.Close()

	countQ, countParams := BuildArticleCountQuery(opts)
	var total int
	if err := db.queryRow(ctx, countQ, countParams...).Scan(&total); err != nil {
		return nil, fmt.Errorf("sqldb: counting articles: %w", err)
	}

	return &repository.ArticlePage{Articles: articles, TotalCount: total}, nil
}

const getArticleQuery = `SELECT ` + articleSummaryColumns + `, articles.body
FROM articles
LEFT JOIN comments ON comments.article_id = articles.article_id
WHERE articles.article_id = ?
GROUP BY articles.article_id`

// GetArticle returns the article with its body and comment_count, or
// apperror.NotFound.
func (db *DB) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	return db.getArticle(ctx, db.conn, id)
}

// querier is the subset of *sql.DB and *sql.Tx used for reads.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (db *DB) getArticle(ctx context.Context, q querier, id int64) (*model.Article, error) {
	var a model.Article
	err := scanSummary(q.QueryRowContext(ctx, db.rebind(getArticleQuery), id), &a.ArticleSummary, &a.Body)
	if err != nil {
		return nil, translateErr("getting article", "article", strconv.FormatInt(id, 10), err)
	}
	return &a, nil
}

// CreateArticle inserts an article and returns the stored row, including the
// generated id, timestamp, votes, image url and a comment_count of 0.
func (db *DB) CreateArticle(ctx context.Context, in model.NewArticle) (*model.Article, error) {
	img := in.ArticleImgURL
	if img == "" {
		img = model.DefaultArticleImgURL
	}

	a := model.Article{Body: in.Body}
	err := db.queryRow(ctx,
		`INSERT INTO articles (title, topic, author, body, created_at, article_img_url)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING article_id, title, topic, author, created_at, votes, article_img_url`,
		in.Title, in.Topic, in.Author, in.Body, time.Now().UTC(), img,
	).Scan(&a.ArticleID, &a.Title, &a.Topic, &a.Author, timestamp{&a.CreatedAt}, &a.Votes, &a.ArticleImgURL)
	if err != nil {
		return nil, translateErr("creating article", "article", in.Title, err)
	}

	return &a, nil
}

// IncrementArticleVotes adds delta (which may be negative or zero) to the
// article's votes and returns the updated article.
//
// The update is relative, `votes = votes + ?`, so concurrent increments never
// overwrite each other. The re-read happens in the same transaction.
func (db *DB) IncrementArticleVotes(ctx context.Context, id int64, delta int) (*model.Article, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqldb: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	key := strconv.FormatInt(id, 10)

	result, err := tx.ExecContext(ctx,
		db.rebind(`UPDATE articles SET votes = votes + ? WHERE article_id = ?`),
		delta, id,
	)
	if err != nil {
		return nil, translateErr("updating article votes", "article", key, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqldb: checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, translateErr("updating article votes", "article", key, sql.ErrNoRows)
	}

	a, err := db.getArticle(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqldb: committing article votes: %w", err)
	}
	return a, nil
}

// DeleteArticle removes an article and, through ON DELETE CASCADE, its
// comments. Deleting an absent id is not an error here; the service checks
// existence first.
func (db *DB) DeleteArticle(ctx context.Context, id int64) error {
	if _, err := db.exec(ctx, `DELETE FROM articles WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("sqldb: deleting article %d: %w", id, err)
	}
	return nil
}
