package sqldb

import (
	"context"
	"fmt"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.TopicRepository = (*DB)(nil)

func (db *DB) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := db.query(ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing topics: %w", err)
	}
	defer rows.Close()

	topics := make([]model.Topic, 0)
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("sqldb: scanning topic row: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating topics: %w", err)
	}

	return topics, nil
}

// CreateTopic inserts a topic. A duplicate slug is reported as a conflict.
func (db *DB) CreateTopic(ctx context.Context, topic model.Topic) (*model.Topic, error) {
	var created model.Topic
	err := db.queryRow(ctx,
		`INSERT INTO topics (slug, description) VALUES (?, ?)
		 RETURNING slug, description`,
		topic.Slug, topic.Description,
	).Scan(&created.Slug, &created.Description)
	if err != nil {
		return nil, translateErr("creating topic", "topic", topic.Slug, err)
	}
	return &created, nil
}
