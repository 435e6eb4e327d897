package sqldb

import "github.com/sakif/nc-news/internal/model"

// schemaFor returns the CREATE statements for one dialect, parents first.
//
// The dialects differ only in the auto-increment key, the timestamp type and
// the "now" default. Keys are 64-bit on both engines to match model ids. comments.article_id cascades so deleting an article
// removes its comments in the same statement.
func schemaFor(d Driver) []string {
	if d == Postgres {
		return []string{
			`CREATE TABLE IF NOT EXISTS topics (
				slug        VARCHAR PRIMARY KEY,
				description VARCHAR NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS users (
				username   VARCHAR PRIMARY KEY,
				name       VARCHAR NOT NULL,
				avatar_url VARCHAR NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS articles (
				article_id      BIGSERIAL PRIMARY KEY,
				title           VARCHAR NOT NULL,
				topic           VARCHAR NOT NULL REFERENCES topics(slug),
				author          VARCHAR NOT NULL REFERENCES users(username),
				body            VARCHAR NOT NULL,
				created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				votes           INT NOT NULL DEFAULT 0,
				article_img_url VARCHAR NOT NULL DEFAULT '` + model.DefaultArticleImgURL + `'
			)`,
			`CREATE TABLE IF NOT EXISTS comments (
				comment_id BIGSERIAL PRIMARY KEY,
				body       VARCHAR NOT NULL,
				article_id BIGINT NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
				author     VARCHAR NOT NULL REFERENCES users(username),
				votes      INT NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic)`,
			`CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id)`,
		}
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS topics (
			slug        TEXT PRIMARY KEY,
			description TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			username   TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			article_id      INTEGER PRIMARY KEY AUTOINCREMENT,
			title           TEXT NOT NULL,
			topic           TEXT NOT NULL REFERENCES topics(slug),
			author          TEXT NOT NULL REFERENCES users(username),
			body            TEXT NOT NULL,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			votes           INTEGER NOT NULL DEFAULT 0,
			article_img_url TEXT NOT NULL DEFAULT '` + model.DefaultArticleImgURL + `'
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			comment_id INTEGER PRIMARY KEY AUTOINCREMENT,
			body       TEXT NOT NULL,
			article_id INTEGER NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
			author     TEXT NOT NULL REFERENCES users(username),
			votes      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_article_id ON comments(article_id)`,
	}
}
