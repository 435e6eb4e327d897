package sqldb

import (
	"context"
	"fmt"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/seed"
)

// Seed inserts a dataset into an empty schema in a single transaction.
//
// Articles are inserted in order so the engine assigns ids 1..n, which is
// what seed.Comment.ArticleID refers to. Call Reset first when the tables may
// already hold rows.
func (db *DB) Seed(ctx context.Context, data seed.Dataset) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqldb: beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range data.Topics {
		if _, err := tx.ExecContext(ctx,
			db.rebind(`INSERT INTO topics (slug, description) VALUES (?, ?)`),
			t.Slug, t.Description,
		); err != nil {
			return fmt.Errorf("sqldb: seeding topic %s: %w", t.Slug, err)
		}
	}

	for _, u := range data.Users {
		if _, err := tx.ExecContext(ctx,
			db.rebind(`INSERT INTO users (username, name, avatar_url) VALUES (?, ?, ?)`),
			u.Username, u.Name, u.AvatarURL,
		); err != nil {
			return fmt.Errorf("sqldb: seeding user %s: %w", u.Username, err)
		}
	}

	for i, a := range data.Articles {
		img := a.ArticleImgURL
		if img == "" {
			img = model.DefaultArticleImgURL
		}
		if _, err := tx.ExecContext(ctx,
			db.rebind(`INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`),
			a.Title, a.Topic, a.Author, a.Body, a.CreatedAt, a.Votes, img,
		); err != nil {
			return fmt.Errorf("sqldb: seeding article %d: %w", i+1, err)
		}
	}

	for i, c := range data.Comments {
		if _, err := tx.ExecContext(ctx,
			db.rebind(`INSERT INTO comments (body, article_id, author, votes, created_at)
			 VALUES (?, ?, ?, ?, ?)`),
			c.Body, c.ArticleID, c.Author, c.Votes, c.CreatedAt,
		); err != nil {
			return fmt.Errorf("sqldb: seeding comment %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqldb: committing seed: %w", err)
	}
	return nil
}
