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

var _ repository.CommentRepository = (*DB)(nil)

const commentColumns = `comment_id, body, article_id, author, votes, created_at`

func scanComment(s scanner, c *model.Comment) error {
	return s.Scan(&c.CommentID, &c.Body, &c.ArticleID, &c.Author, &c.Votes, timestamp{&c.CreatedAt})
}

// ListComments returns an article's comments oldest first. An unknown article
// yields an empty slice; telling "no comments" from "no article" is the
// service's job.
func (db *DB) ListComments(ctx context.Context, articleID int64) ([]model.Comment, error) {
	rows, err := db.query(ctx,
		`SELECT `+commentColumns+`
		 FROM comments
		 WHERE article_id = ?
		 ORDER BY created_at ASC, comment_id ASC`,
		articleID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing comments for article %d: %w", articleID, err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, fmt.Errorf("sqldb: scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating comments: %w", err)
	}

	return comments, nil
}

// CreateComment inserts a comment. An unknown article or author violates a
// foreign key and comes back as apperror.NotFound.
func (db *DB) CreateComment(ctx context.Context, in model.NewComment) (*model.Comment, error) {
	var c model.Comment
	err := scanComment(db.queryRow(ctx,
		`INSERT INTO comments (body, article_id, author, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING `+commentColumns,
		in.Body, in.ArticleID, in.Author, time.Now().UTC(),
	), &c)
	if err != nil {
		return nil, translateErr("creating comment", "comment", "on article "+strconv.FormatInt(in.ArticleID, 10), err)
	}
	return &c, nil
}

// IncrementCommentVotes adds delta to the comment's votes and returns the
// updated row, or apperror.NotFound.
//
// Like IncrementArticleVotes the update and the re-read share a transaction,
// so a row that cannot be read back is rolled back rather than left behind.
func (db *DB) IncrementCommentVotes(ctx context.Context, id int64, delta int) (*model.Comment, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqldb: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	key := strconv.FormatInt(id, 10)

	result, err := tx.ExecContext(ctx,
		db.rebind(`UPDATE comments SET votes = votes + ? WHERE comment_id = ?`),
		delta, id,
	)
	if err != nil {
		return nil, translateErr("updating comment votes", "comment", key, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqldb: checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, translateErr("updating comment votes", "comment", key, sql.ErrNoRows)
	}

	var c model.Comment
	err = scanComment(tx.QueryRowContext(ctx,
		db.rebind(`SELECT `+commentColumns+` FROM comments WHERE comment_id = ?`),
		id,
	), &c)
	if err != nil {
		return nil, translateErr("reading comment votes", "comment", key, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqldb: committing comment votes: %w", err)
	}
	return &c, nil
}

// DeleteComment removes a comment. Deleting an absent id is not an error here.
func (db *DB) DeleteComment(ctx context.Context, id int64) error {
	if _, err := db.exec(ctx, `DELETE FROM comments WHERE comment_id = ?`, id); err != nil {
		return fmt.Errorf("sqldb: deleting comment %d: %w", id, err)
	}
	return nil
}
