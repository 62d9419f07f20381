package youtube

import (
	"context"
	"regexp"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/model"
)

// apiClient implements Client against the real YouTube Data API v3.
// One *youtube.Service is built per credential (the key is baked into the
// service via option.WithAPIKey) and cached for the process lifetime.
// The cache is not guarded: the pipeline issues calls strictly sequentially.
type apiClient struct {
	services map[string]*youtube.Service
}

// NewClient creates a Data API v3 client
func NewClient() Client {
	return &apiClient{
		services: make(map[string]*youtube.Service),
	}
}

func (c *apiClient) serviceFor(ctx context.Context, key string) (*youtube.Service, error) {
	if key == "" {
		return nil, apperrors.New(apperrors.CodeNoCredentials, "no API key available")
	}
	if svc, ok := c.services[key]; ok {
		return svc, nil
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create YouTube service")
	}
	c.services[key] = svc
	return svc, nil
}

// Search performs the primary search-by-keyword call
func (c *apiClient) Search(ctx context.Context, key string, req SearchRequest) ([]model.SearchHit, error) {
	svc, err := c.serviceFor(ctx, key)
	if err != nil {
		return nil, err
	}

	searchType := req.Type
	if searchType == "" {
		searchType = "video"
	}

	call := svc.Search.List([]string{"snippet"}).
		Q(req.Keyword).
		Type(searchType).
		MaxResults(req.MaxResults)

	if req.RegionCode != "" {
		call = call.RegionCode(req.RegionCode)
	}
	if req.RelevanceLanguage != "" {
		call = call.RelevanceLanguage(req.RelevanceLanguage)
	}
	if req.Order != "" {
		call = call.Order(req.Order)
	}
	if req.PublishedAfter != "" {
		call = call.PublishedAfter(req.PublishedAfter)
	}
	if req.VideoDuration != "" {
		call = call.VideoDuration(req.VideoDuration)
	}
	if req.EventType != "" {
		call = call.EventType(req.EventType)
	}
	if req.VideoDefinition != "" {
		call = call.VideoDefinition(req.VideoDefinition)
	}
	if req.VideoCaption != "" {
		call = call.VideoCaption(req.VideoCaption)
	}
	if req.VideoLicense != "" {
		call = call.VideoLicense(req.VideoLicense)
	}
	if req.VideoDimension != "" {
		call = call.VideoDimension(req.VideoDimension)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, apperrors.FromAPIError(err)
	}

	hits := make([]model.SearchHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		hits = append(hits, model.SearchHit{
			VideoID:   item.Id.VideoId,
			ChannelID: item.Snippet.ChannelId,
		})
	}

	return hits, nil
}

// VideoDetails batches one detail lookup for all given video IDs
func (c *apiClient) VideoDetails(ctx context.Context, key string, videoIDs []string) ([]*model.VideoDetail, error) {
	svc, err := c.serviceFor(ctx, key)
	if err != nil {
		return nil, err
	}

	call := svc.Videos.List([]string{"snippet", "contentDetails", "liveStreamingDetails", "statistics", "localizations"}).
		Id(videoIDs...).
		Hl("en")

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, apperrors.FromAPIError(err)
	}

	details := make([]*model.VideoDetail, 0, len(resp.Items))
	for _, video := range resp.Items {
		if video.Snippet == nil {
			continue
		}

		detail := &model.VideoDetail{
			ID:           video.Id,
			Title:        video.Snippet.Title,
			ChannelID:    video.Snippet.ChannelId,
			ChannelTitle: video.Snippet.ChannelTitle,
			Thumbnail:    bestThumbnail(video.Snippet.Thumbnails),
		}
		if video.ContentDetails != nil {
			detail.Duration = video.ContentDetails.Duration
		}
		if video.Statistics != nil {
			detail.ViewCount = video.Statistics.ViewCount
			detail.HasViewCount = true
		}
		if video.LiveStreamingDetails != nil {
			detail.Live = liveDetails(video.LiveStreamingDetails)
		}
		if len(video.Localizations) > 0 {
			detail.Localizations = make(map[string]model.Localization, len(video.Localizations))
			for lang, loc := range video.Localizations {
				detail.Localizations[lang] = model.Localization{
					Title:       loc.Title,
					Description: loc.Description,
				}
			}
		}

		details = append(details, detail)
	}

	return details, nil
}

// ChannelDetails batches one detail lookup for all given channel IDs
func (c *apiClient) ChannelDetails(ctx context.Context, key string, channelIDs []string) ([]*model.ChannelDetail, error) {
	svc, err := c.serviceFor(ctx, key)
	if err != nil {
		return nil, err
	}

	call := svc.Channels.List([]string{"snippet", "localizations"}).
		Id(channelIDs...).
		Hl("en")

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, apperrors.FromAPIError(err)
	}

	details := make([]*model.ChannelDetail, 0, len(resp.Items))
	for _, channel := range resp.Items {
		if channel.Snippet == nil {
			continue
		}

		detail := &model.ChannelDetail{
			ID:        channel.Id,
			Title:     channel.Snippet.Title,
			CustomURL: channel.Snippet.CustomUrl,
		}
		if len(channel.Localizations) > 0 {
			detail.Localizations = make(map[string]model.Localization, len(channel.Localizations))
			for lang, loc := range channel.Localizations {
				detail.Localizations[lang] = model.Localization{
					Title:       loc.Title,
					Description: loc.Description,
				}
			}
		}

		details = append(details, detail)
	}

	return details, nil
}

// CommentPage fetches one page of top-level comments ordered by relevance
func (c *apiClient) CommentPage(ctx context.Context, key, videoID string, pageSize int64, cursor string) (*model.CommentPage, error) {
	svc, err := c.serviceFor(ctx, key)
	if err != nil {
		return nil, err
	}

	call := svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(pageSize).
		Order("relevance")
	if cursor != "" {
		call = call.PageToken(cursor)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, apperrors.FromAPIError(err)
	}

	page := &model.CommentPage{
		Comments:   make([]*model.CommentRecord, 0, len(resp.Items)),
		NextCursor: resp.NextPageToken,
	}
	if resp.PageInfo != nil {
		page.Total = resp.PageInfo.TotalResults
	}

	for _, thread := range resp.Items {
		if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil || thread.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		top := thread.Snippet.TopLevelComment.Snippet

		publishedAt, _ := time.Parse(time.RFC3339, top.PublishedAt)
		page.Comments = append(page.Comments, &model.CommentRecord{
			Author:      top.AuthorDisplayName,
			AvatarURL:   top.AuthorProfileImageUrl,
			Text:        NormalizeCommentText(top.TextDisplay),
			LikeCount:   top.LikeCount,
			PublishedAt: publishedAt,
			ReplyCount:  thread.Snippet.TotalReplyCount,
		})
	}

	return page, nil
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// NormalizeCommentText collapses internal newlines and repeated whitespace
// into single spaces and trims the result.
func NormalizeCommentText(text string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

func bestThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.Medium != nil {
		return thumbnails.Medium.Url
	}
	if thumbnails.Default != nil {
		return thumbnails.Default.Url
	}
	return ""
}

func liveDetails(details *youtube.VideoLiveStreamingDetails) *model.LiveDetails {
	if details.ActualStartTime == "" {
		return nil
	}
	live := &model.LiveDetails{
		ConcurrentViewers: details.ConcurrentViewers,
	}
	if start, err := time.Parse(time.RFC3339, details.ActualStartTime); err == nil {
		live.ActualStart = &start
	}
	if details.ActualEndTime != "" {
		if end, err := time.Parse(time.RFC3339, details.ActualEndTime); err == nil {
			live.ActualEnd = &end
		}
	}
	if live.ActualStart == nil {
		return nil
	}
	return live
}
