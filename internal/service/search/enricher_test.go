package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/model"
	"github.com/ytscout/ytscout/internal/service/credential"
	"github.com/ytscout/ytscout/internal/service/summary"
	"github.com/ytscout/ytscout/internal/service/youtube"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(client youtube.Client, pool *credential.Pool) Service {
	return NewServiceWithClock(client, pool, summary.NewComposer(), "US", "en", 0, func() time.Time { return fixedNow })
}

func quotaErr() error {
	return apperrors.New(apperrors.CodeQuotaExhausted, "quotaExceeded")
}

func TestSearch_QuotaRotation(t *testing.T) {
	pool := credential.NewPool([]string{"key1", "key2", "key3"})
	client := &youtube.FakeClient{
		SearchFunc: func(ctx context.Context, key string, req youtube.SearchRequest) ([]model.SearchHit, error) {
			if key != "key3" {
				return nil, quotaErr()
			}
			return []model.SearchHit{{VideoID: "v1", ChannelID: "ch1"}}, nil
		},
		VideoDetailsFunc: func(ctx context.Context, key string, videoIDs []string) ([]*model.VideoDetail, error) {
			return []*model.VideoDetail{{ID: "v1", Title: "Video One", ChannelID: "ch1", Duration: "PT5M"}}, nil
		},
	}
	svc := newTestService(client, pool)

	outcome, err := svc.Search(context.Background(), Request{Keywords: []string{"go"}})
	require.NoError(t, err)
	require.Empty(t, outcome.Errors)
	require.Len(t, outcome.Records, 1)

	// Exactly one attempt per key, ending on the one that worked
	assert.Equal(t, []string{"key1", "key2", "key3"}, client.SearchKeys)
	assert.Equal(t, 2, pool.CurrentIndex())
}

func TestSearch_AllKeysExhausted(t *testing.T) {
	pool := credential.NewPool([]string{"key1", "key2"})
	client := &youtube.FakeClient{
		SearchFunc: func(ctx context.Context, key string, req youtube.SearchRequest) ([]model.SearchHit, error) {
			return nil, quotaErr()
		},
	}
	svc := newTestService(client, pool)

	outcome, err := svc.Search(context.Background(), Request{Keywords: []string{"go"}})
	require.NoError(t, err)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "go", outcome.Errors[0].Keyword)
	assert.True(t, apperrors.IsQuotaExhausted(outcome.Errors[0].Err))
	assert.Len(t, client.SearchKeys, 2)
}

func TestSearch_NonQuotaErrorDoesNotRotate(t *testing.T) {
	pool := credential.NewPool([]string{"key1", "key2"})
	client := &youtube.FakeClient{
		SearchFunc: func(ctx context.Context, key string, req youtube.SearchRequest) ([]model.SearchHit, error) {
			return nil, apperrors.New(apperrors.CodeRequestRejected, "invalidParameter")
		},
	}
	svc := newTestService(client, pool)

	outcome, err := svc.Search(context.Background(), Request{Keywords: []string{"go"}})
	require.NoError(t, err)
	require.Len(t, outcome.Errors, 1)
	assert.Len(t, client.SearchKeys, 1)
	assert.Equal(t, 0, pool.CurrentIndex())
}

func TestSearch_KeywordFailureDoesNotAbortOthers(t *testing.T) {
	pool := credential.NewPool([]string{"key1"})
	client := &youtube.FakeClient{
		SearchFunc: func(ctx context.Context, key string, req youtube.SearchRequest) ([]model.SearchHit, error) {
			if req.Keyword == "bad" {
				return nil, apperrors.New(apperrors.CodeRequestRejected, "Bad Request")
			}
			return []model.SearchHit{{VideoID: "v-" + req.Keyword, ChannelID: "ch1"}}, nil
		},
		VideoDetailsFunc: func(ctx context.Context, key string, videoIDs []string) ([]*model.VideoDetail, error) {
			return []*model.VideoDetail{{ID: videoIDs[0], Title: videoIDs[0], ChannelID: "ch1", Duration: "PT1M"}}, nil
		},
	}
	svc := newTestService(client, pool)

	outcome, err := svc.Search(context.Background(), Request{Keywords: []string{"good", "bad", "also good"}})
	require.NoError(t, err)
	assert.Len(t, outcome.Records, 2)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "bad", outcome.Errors[0].Keyword)
}

func TestSearch_EmptyHitsContributeNothing(t *testing.T) {
	pool := credential.NewPool([]string{"key1"})
	videoCalls := 0
	client := &youtube.FakeClient{
		SearchFunc: func(ctx context.Context, key string, req youtube.SearchRequest) ([]model.SearchHit, error) {
			return nil, nil
		},
		VideoDetailsFunc: func(ctx context.Context, key string, videoIDs []string) ([]*model.VideoDetail, error) {
			videoCalls++
			return nil, nil
		},
	}
	svc := newTestService(client, pool)

	outcome, err := svc.Search(context.Background(), Request{Keywords: []string{"nothing"}})
	require.NoError(t, err)
	assert.Empty(t, outcome.Records)
	assert.Empty(t, outcome.Errors)
	assert.Zero(t, videoCalls)
}

func TestSearch_Enrichment(t *testing.T) {
	pool := credential.NewPool([]string{"key1"})
	var channelRequest []string
	client := &youtube.FakeClient{
		SearchFunc: func(ctx context.Context, key string, req youtube.SearchRequest) ([]model.SearchHit, error) {
			return []model.SearchHit{
				{VideoID: "v1", ChannelID: "ch1"},
				{VideoID: "v2", ChannelID: "ch1"},
				{VideoID: "v3", ChannelID: "ch2"},
			}, nil
		},
		VideoDetailsFunc: func(ctx context.Context, key string, videoIDs []string) ([]*model.VideoDetail, error) {
			assert.Equal(t, []string{"v1", "v2", "v3"}, videoIDs)
			return []*model.VideoDetail{
				{
					ID: "v1", Title: "Fallback Title", ChannelID: "ch1", ChannelTitle: "Chan One",
					Duration: "PT1H2M3S", ViewCount: 1200, HasViewCount: true,
					Localizations: map[string]model.Localization{"en": {Title: "English Title"}},
				},
				{ID: "v2", Title: "Second", ChannelID: "ch1", ChannelTitle: "Chan One", Duration: "PT30S"},
				{ID: "v3", Title: "Third", ChannelID: "ch2", ChannelTitle: "Chan Two", Duration: "bogus"},
			}, nil
		},
		ChannelDetailsFunc: func(ctx context.Context, key string, channelIDs []string) ([]*model.ChannelDetail, error) {
			channelRequest = channelIDs
			return []*model.ChannelDetail{
				{ID: "ch1", Title: "Chan One", CustomURL: "@chanone"},
				{ID: "ch2", Title: "Chan Two"},
			}, nil
		},
	}
	svc := newTestService(client, pool)

	outcome, err := svc.Search(context.Background(), Request{Keywords: []string{"go"}})
	require.NoError(t, err)
	require.Len(t, outcome.Records, 3)

	// One channel call over the distinct channel IDs
	assert.Equal(t, []string{"ch1", "ch2"}, channelRequest)

	first := outcome.Records[0]
	assert.Equal(t, "English Title", first.Title)
	assert.Equal(t, "https://www.youtube.com/@chanone", first.ChannelURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=v1", first.VideoURL)
	assert.Equal(t, "01:02:03", first.Duration)
	assert.Equal(t, "01:02:03", first.OriginalDuration)
	assert.Equal(t, "1,200 views", first.ViewCount)
	assert.NotEmpty(t, first.Summary)

	// No custom URL means the channel-id form
	third := outcome.Records[2]
	assert.Equal(t, "https://www.youtube.com/channel/ch2", third.ChannelURL)
	assert.Equal(t, "00:00", third.Duration)
	assert.Equal(t, "N/A", third.ViewCount)
}

func TestSearch_ChannelLookupFailureDegrades(t *testing.T) {
	pool := credential.NewPool([]string{"key1"})
	client := &youtube.FakeClient{
		SearchFunc: func(ctx context.Context, key string, req youtube.SearchRequest) ([]model.SearchHit, error) {
			return []model.SearchHit{{VideoID: "v1", ChannelID: "ch1"}}, nil
		},
		VideoDetailsFunc: func(ctx context.Context, key string, videoIDs []string) ([]*model.VideoDetail, error) {
			return []*model.VideoDetail{{ID: "v1", Title: "T", ChannelID: "ch1", ChannelTitle: "Chan", Duration: "PT1M"}}, nil
		},
		ChannelDetailsFunc: func(ctx context.Context, key string, channelIDs []string) ([]*model.ChannelDetail, error) {
			return nil, apperrors.New(apperrors.CodeNetwork, "Network error")
		},
	}
	svc := newTestService(client, pool)

	outcome, err := svc.Search(context.Background(), Request{Keywords: []string{"go"}})
	require.NoError(t, err)
	require.Len(t, outcome.Records, 1)
	assert.Equal(t, "https://www.youtube.com/channel/ch1", outcome.Records[0].ChannelURL)
	assert.Equal(t, "Chan", outcome.Records[0].ChannelName)
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "channel lookup failed")
}

func TestSearch_InputValidation(t *testing.T) {
	client := &youtube.FakeClient{}

	t.Run("no keywords", func(t *testing.T) {
		svc := newTestService(client, credential.NewPool([]string{"key1"}))
		_, err := svc.Search(context.Background(), Request{})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidArg))
	})

	t.Run("empty pool", func(t *testing.T) {
		svc := newTestService(client, credential.NewPool(nil))
		_, err := svc.Search(context.Background(), Request{Keywords: []string{"go"}})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNoCredentials))
	})
}

func TestSearch_CountCappedToAPIMaximum(t *testing.T) {
	pool := credential.NewPool([]string{"key1"})
	var gotMax int64
	client := &youtube.FakeClient{
		SearchFunc: func(ctx context.Context, key string, req youtube.SearchRequest) ([]model.SearchHit, error) {
			gotMax = req.MaxResults
			return nil, nil
		},
	}
	svc := newTestService(client, pool)

	_, err := svc.Search(context.Background(), Request{Keywords: []string{"go"}, Count: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(50), gotMax)
}
