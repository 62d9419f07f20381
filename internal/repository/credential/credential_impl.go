package credential

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ytscout/ytscout/internal/repository/common"
)

// Pool is the minimal database interface needed by this repository
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// credentialRepository implements Repository using PostgreSQL
type credentialRepository struct {
	pool Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool Pool) Repository {
	return &credentialRepository{
		pool: pool,
	}
}

// Replace rewrites the api_keys table with the given list inside one
// transaction, preserving list order via the position column.
func (r *credentialRepository) Replace(ctx context.Context, keys []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to begin key replacement")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM api_keys"); err != nil {
		return common.HandlePostgreSQLError(err, "failed to clear stored keys")
	}

	for i, key := range keys {
		sql := "INSERT INTO api_keys (position, key) VALUES ($1, $2)"
		if _, err := tx.Exec(ctx, sql, i, key); err != nil {
			return common.HandlePostgreSQLError(err, "failed to store key")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return common.HandlePostgreSQLError(err, "failed to commit key replacement")
	}
	return nil
}

// Load reads the stored keys back in position order
func (r *credentialRepository) Load(ctx context.Context) ([]string, error) {
	sql := "SELECT key FROM api_keys ORDER BY position"
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to load stored keys")
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan stored key")
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate stored keys")
	}

	return keys, nil
}
