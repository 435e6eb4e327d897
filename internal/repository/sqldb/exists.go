package sqldb

import (
	"context"
	"fmt"

	"github.com/sakif/nc-news/internal/repository"
)

var _ repository.ExistenceChecker = (*DB)(nil)

// Exists reports whether at least one row has key's column equal to value.
//
// The table and column come from a repository.Key, which only the repository
// package can construct, so they are safe to splice into the statement. The
// value is always a placeholder.
func (db *DB) Exists(ctx context.Context, key repository.Key, value any) (bool, error) {
	if !key.Valid() {
		return false, fmt.Errorf("sqldb: exists: unknown key %s.%s", key.Table(), key.Column())
	}

	q := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ?)", key.Table(), key.Column())

	var found bool
	if err := db.queryRow(ctx, q, value).Scan(&found); err != nil {
		return false, fmt.Errorf("sqldb: checking %s %v exists: %w", key.Resource(), value, err)
	}
	return found, nil
}
