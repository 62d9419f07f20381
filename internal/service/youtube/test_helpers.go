package youtube

import (
	"context"

	"github.com/ytscout/ytscout/internal/model"
)

// FakeClient is a scriptable Client implementation for tests. Each call is
// delegated to the corresponding function field and the credential used is
// recorded, so tests can assert on rotation behavior.
type FakeClient struct {
	SearchFunc         func(ctx context.Context, key string, req SearchRequest) ([]model.SearchHit, error)
	VideoDetailsFunc   func(ctx context.Context, key string, videoIDs []string) ([]*model.VideoDetail, error)
	ChannelDetailsFunc func(ctx context.Context, key string, channelIDs []string) ([]*model.ChannelDetail, error)
	CommentPageFunc    func(ctx context.Context, key, videoID string, pageSize int64, cursor string) (*model.CommentPage, error)

	SearchKeys      []string
	CommentPageKeys []string
}

func (f *FakeClient) Search(ctx context.Context, key string, req SearchRequest) ([]model.SearchHit, error) {
	f.SearchKeys = append(f.SearchKeys, key)
	if f.SearchFunc == nil {
		return nil, nil
	}
	return f.SearchFunc(ctx, key, req)
}

func (f *FakeClient) VideoDetails(ctx context.Context, key string, videoIDs []string) ([]*model.VideoDetail, error) {
	if f.VideoDetailsFunc == nil {
		return nil, nil
	}
	return f.VideoDetailsFunc(ctx, key, videoIDs)
}

func (f *FakeClient) ChannelDetails(ctx context.Context, key string, channelIDs []string) ([]*model.ChannelDetail, error) {
	if f.ChannelDetailsFunc == nil {
		return nil, nil
	}
	return f.ChannelDetailsFunc(ctx, key, channelIDs)
}

func (f *FakeClient) CommentPage(ctx context.Context, key, videoID string, pageSize int64, cursor string) (*model.CommentPage, error) {
	f.CommentPageKeys = append(f.CommentPageKeys, key)
	if f.CommentPageFunc == nil {
		return &model.CommentPage{}, nil
	}
	return f.CommentPageFunc(ctx, key, videoID, pageSize, cursor)
}
