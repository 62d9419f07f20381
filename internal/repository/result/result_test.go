package result

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytscout/ytscout/internal/model"
)

func sampleRecord(videoID, keyword string) *model.ResultRecord {
	return &model.ResultRecord{
		Keyword:          keyword,
		Title:            "Title " + videoID,
		VideoID:          videoID,
		VideoURL:         "https://www.youtube.com/watch?v=" + videoID,
		ChannelName:      "Chan",
		ChannelID:        "UC123",
		ChannelURL:       "https://www.youtube.com/@chan",
		Duration:         "05:00",
		OriginalDuration: "05:00",
		ViewCount:        "1,200 views",
		Summary:          "Chan---Title " + videoID,
	}
}

func TestResultRepository_SaveBatch(t *testing.T) {
	tests := []struct {
		name    string
		records []*model.ResultRecord
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr bool
	}{
		{
			name:    "all rows new",
			records: []*model.ResultRecord{sampleRecord("v1", "go"), sampleRecord("v2", "go")},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT video_id, keyword FROM search_results").
					WithArgs([]string{"go"}).
					WillReturnRows(pgxmock.NewRows([]string{"video_id", "keyword"}))
				mock.ExpectCopyFrom(pgx.Identifier{"search_results"}, []string{
					"video_id", "keyword", "title", "video_url", "channel_name",
					"channel_id", "channel_url", "duration", "original_duration",
					"view_count", "thumbnail", "summary",
				}).WillReturnResult(2)
			},
		},
		{
			name:    "existing rows filtered out",
			records: []*model.ResultRecord{sampleRecord("v1", "go"), sampleRecord("v2", "go")},
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"video_id", "keyword"}).
					AddRow("v1", "go")
				mock.ExpectQuery("SELECT video_id, keyword FROM search_results").
					WithArgs([]string{"go"}).
					WillReturnRows(rows)
				mock.ExpectCopyFrom(pgx.Identifier{"search_results"}, []string{
					"video_id", "keyword", "title", "video_url", "channel_name",
					"channel_id", "channel_url", "duration", "original_duration",
					"view_count", "thumbnail", "summary",
				}).WillReturnResult(1)
			},
		},
		{
			name:    "nothing new skips the bulk insert",
			records: []*model.ResultRecord{sampleRecord("v1", "go")},
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"video_id", "keyword"}).
					AddRow("v1", "go")
				mock.ExpectQuery("SELECT video_id, keyword FROM search_results").
					WithArgs([]string{"go"}).
					WillReturnRows(rows)
			},
		},
		{
			name:    "database error",
			records: []*model.ResultRecord{sampleRecord("v1", "go")},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT video_id, keyword FROM search_results").
					WithArgs([]string{"go"}).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err = repo.SaveBatch(ctx, tt.records)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}

func TestResultRepository_SaveBatchEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	assert.NoError(t, repo.SaveBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepository_List(t *testing.T) {
	columns := []string{
		"keyword", "title", "video_id", "video_url", "channel_name",
		"channel_id", "channel_url", "duration", "original_duration",
		"view_count", "thumbnail", "summary",
	}

	tests := []struct {
		name    string
		keyword string
		setup   func(mock pgxmock.PgxPoolIface)
		want    int
		wantErr bool
	}{
		{
			name:    "filter by keyword",
			keyword: "go",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(columns).
					AddRow("go", "Title v1", "v1", "https://www.youtube.com/watch?v=v1", "Chan",
						"UC123", "https://www.youtube.com/@chan", "05:00", "05:00",
						"1,200 views", "", "Chan---Title v1")
				mock.ExpectQuery("SELECT (.+) FROM search_results WHERE keyword = \\$1").
					WithArgs("go", 20, 0).
					WillReturnRows(rows)
			},
			want: 1,
		},
		{
			name: "all keywords",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(columns).
					AddRow("go", "Title v1", "v1", "https://www.youtube.com/watch?v=v1", "Chan",
						"UC123", "https://www.youtube.com/@chan", "05:00", "05:00",
						"1,200 views", "", "Chan---Title v1").
					AddRow("rust", "Title v2", "v2", "https://www.youtube.com/watch?v=v2", "Chan",
						"UC123", "https://www.youtube.com/@chan", "02:00", "02:00",
						"9 views", "", "Chan---Title v2")
				mock.ExpectQuery("SELECT (.+) FROM search_results ORDER BY").
					WithArgs(20, 0).
					WillReturnRows(rows)
			},
			want: 2,
		},
		{
			name:    "database error",
			keyword: "go",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM search_results WHERE keyword = \\$1").
					WithArgs("go", 20, 0).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := repo.List(ctx, tt.keyword, 20, 0)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, got, tt.want)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "pgxmock expectations were not met")
		})
	}
}
