package result

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ytscout/ytscout/internal/model"
	"github.com/ytscout/ytscout/internal/repository/common"
)

const selectColumns = "keyword, title, video_id, video_url, channel_name, channel_id, channel_url, duration, original_duration, view_count, thumbnail, summary"

// Pool is the minimal database interface needed by this repository
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// resultRepository implements Repository using PostgreSQL
type resultRepository struct {
	pool Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool Pool) Repository {
	return &resultRepository{
		pool: pool,
	}
}

// SaveBatch stores records using bulk insert (COPY FROM), first filtering out
// rows whose (video_id, keyword) pair is already stored.
func (r *resultRepository) SaveBatch(ctx context.Context, records []*model.ResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	keywords := distinctKeywords(records)

	// Step 1: Get existing (video_id, keyword) pairs for the keywords involved
	sql := "SELECT video_id, keyword FROM search_results WHERE keyword = ANY($1)"
	rows, err := r.pool.Query(ctx, sql, keywords)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to get existing results")
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var videoID, keyword string
		if err := rows.Scan(&videoID, &keyword); err != nil {
			return common.HandlePostgreSQLError(err, "failed to scan existing result")
		}
		existing[videoID+"\x00"+keyword] = true
	}

	if err := rows.Err(); err != nil {
		return common.HandlePostgreSQLError(err, "failed to iterate existing results")
	}

	// Step 2: Filter out records already stored
	newRecords := make([]*model.ResultRecord, 0, len(records))
	for _, record := range records {
		if !existing[record.VideoID+"\x00"+record.Keyword] {
			newRecords = append(newRecords, record)
		}
	}

	if len(newRecords) == 0 {
		return nil
	}

	// Step 3: Bulk insert the new rows
	copyRows := make([][]any, len(newRecords))
	for i, record := range newRecords {
		copyRows[i] = []any{
			record.VideoID,
			record.Keyword,
			record.Title,
			record.VideoURL,
			record.ChannelName,
			record.ChannelID,
			record.ChannelURL,
			record.Duration,
			record.OriginalDuration,
			record.ViewCount,
			record.Thumbnail,
			record.Summary,
		}
	}

	tableName := pgx.Identifier{"search_results"}
	columnNames := []string{
		"video_id", "keyword", "title", "video_url", "channel_name",
		"channel_id", "channel_url", "duration", "original_duration",
		"view_count", "thumbnail", "summary",
	}

	_, err = r.pool.CopyFrom(ctx, tableName, columnNames, pgx.CopyFromRows(copyRows))
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to save results in batch using COPY FROM")
	}

	return nil
}

// List retrieves saved results with pagination
func (r *resultRepository) List(ctx context.Context, keyword string, limit, offset int) ([]*model.ResultRecord, error) {
	var rows pgx.Rows
	var err error
	if keyword == "" {
		sql := "SELECT " + selectColumns + " FROM search_results ORDER BY created_at DESC, video_id LIMIT $1 OFFSET $2"
		rows, err = r.pool.Query(ctx, sql, limit, offset)
	} else {
		sql := "SELECT " + selectColumns + " FROM search_results WHERE keyword = $1 ORDER BY created_at DESC, video_id LIMIT $2 OFFSET $3"
		rows, err = r.pool.Query(ctx, sql, keyword, limit, offset)
	}
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list results")
	}
	defer rows.Close()

	records := []*model.ResultRecord{}
	for rows.Next() {
		var record model.ResultRecord
		err := rows.Scan(
			&record.Keyword,
			&record.Title,
			&record.VideoID,
			&record.VideoURL,
			&record.ChannelName,
			&record.ChannelID,
			&record.ChannelURL,
			&record.Duration,
			&record.OriginalDuration,
			&record.ViewCount,
			&record.Thumbnail,
			&record.Summary,
		)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan result row")
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate result rows")
	}

	return records, nil
}

func distinctKeywords(records []*model.ResultRecord) []string {
	seen := make(map[string]bool, len(records))
	var keywords []string
	for _, record := range records {
		if seen[record.Keyword] {
			continue
		}
		seen[record.Keyword] = true
		keywords = append(keywords, record.Keyword)
	}
	return keywords
}
