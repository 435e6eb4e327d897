package sqldb

import (
	"context"
	"fmt"

	"github.com/sakif/nc-news/internal/model"
	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.UserRepository = (*DB)(nil)

func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.query(ctx, `SELECT username, name, avatar_url FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.Name, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("sqldb: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating users: %w", err)
	}

	return users, nil
}

// GetUser returns apperror.NotFound when no user has the given username.
func (db *DB) GetUser(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := db.queryRow(ctx,
		`SELECT username, name, avatar_url FROM users WHERE username = ?`,
		username,
	).Scan(&u.Username, &u.Name, &u.AvatarURL)
	if err != nil {
		return nil, translateErr("getting user "+username, "user", username, err)
	}
	return &u, nil
}
