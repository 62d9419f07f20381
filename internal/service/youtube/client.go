package youtube

import (
	"context"

	"github.com/ytscout/ytscout/internal/model"
)

// SearchRequest carries one translated search call: the keyword, the capped
// result count, the regional/language hints and the optional filters already
// mapped to their Data API parameter values.
type SearchRequest struct {
	Keyword           string
	MaxResults        int64
	RegionCode        string
	RelevanceLanguage string
	Type              string // video (default), channel, playlist
	Order             string // relevance, date, viewCount, rating
	PublishedAfter    string // RFC3339 timestamp threshold
	VideoDuration     string // short, medium, long
	EventType         string // live
	VideoDefinition   string // high
	VideoCaption      string // closedCaption
	VideoLicense      string // creativeCommon
	VideoDimension    string // 3d
}

// Client is the narrow surface of the YouTube Data API v3 that the tool
// consumes. Every method takes the credential to bill the call against, so
// the caller owns rotation policy. Implementations classify failures via
// the errors package (quota vs. rejected vs. network).
type Client interface {
	// Search performs the primary search-by-keyword call.
	Search(ctx context.Context, key string, req SearchRequest) ([]model.SearchHit, error)
	// VideoDetails batches one detail lookup for all given video IDs.
	VideoDetails(ctx context.Context, key string, videoIDs []string) ([]*model.VideoDetail, error)
	// ChannelDetails batches one detail lookup for all given channel IDs.
	ChannelDetails(ctx context.Context, key string, channelIDs []string) ([]*model.ChannelDetail, error)
	// CommentPage fetches one page of top-level comments for a video.
	CommentPage(ctx context.Context, key, videoID string, pageSize int64, cursor string) (*model.CommentPage, error)
}
