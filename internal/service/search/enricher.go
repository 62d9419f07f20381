package search

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/model"
	"github.com/ytscout/ytscout/internal/service/credential"
	"github.com/ytscout/ytscout/internal/service/summary"
	"github.com/ytscout/ytscout/internal/service/youtube"
)

const (
	// interKeywordDelay spaces out consecutive keyword searches
	interKeywordDelay = 200 * time.Millisecond

	// maxResultsPerCall is the Data API's per-call result ceiling
	maxResultsPerCall = 50

	defaultResultCount = 10

	channelURLBase = "https://www.youtube.com/channel/"
	handleURLBase  = "https://www.youtube.com/@"
	watchURLBase   = "https://www.youtube.com/watch?v="
)

// Request is one multi-keyword search invocation
type Request struct {
	Keywords []string
	Count    int64 // per keyword; capped to the API maximum
	Filters  Filters
	Summary  summary.Options
}

// KeywordError records a keyword whose search step failed terminally. Other
// keywords keep running; the caller decides how to present the failures.
type KeywordError struct {
	Keyword string
	Err     error
}

// Outcome is the accumulated result set of one search invocation plus the
// per-keyword failures and non-fatal degradations encountered along the way.
type Outcome struct {
	Records  []*model.ResultRecord
	Errors   []KeywordError
	Warnings []string
}

// Service runs the search → detail-enrichment pipeline across keywords
type Service interface {
	Search(ctx context.Context, req Request) (*Outcome, error)
}

type service struct {
	client   youtube.Client
	pool     *credential.Pool
	composer *summary.Composer

	regionCode        string
	relevanceLanguage string

	delay time.Duration
	now   func() time.Time
}

// NewService creates a search service with the default inter-keyword delay
// and wall clock.
func NewService(client youtube.Client, pool *credential.Pool, composer *summary.Composer, regionCode, relevanceLanguage string) Service {
	return &service{
		client:            client,
		pool:              pool,
		composer:          composer,
		regionCode:        regionCode,
		relevanceLanguage: relevanceLanguage,
		delay:             interKeywordDelay,
		now:               time.Now,
	}
}

// NewServiceWithClock creates a search service with an injected delay and
// clock (for testing).
func NewServiceWithClock(client youtube.Client, pool *credential.Pool, composer *summary.Composer, regionCode, relevanceLanguage string, delay time.Duration, now func() time.Time) Service {
	return &service{
		client:            client,
		pool:              pool,
		composer:          composer,
		regionCode:        regionCode,
		relevanceLanguage: relevanceLanguage,
		delay:             delay,
		now:               now,
	}
}

// Search runs the keywords strictly sequentially, one in-flight call at a
// time, so credential rotation stays race-free. A keyword that fails is
// recorded in the outcome and the remaining keywords still run.
func (s *service) Search(ctx context.Context, req Request) (*Outcome, error) {
	if len(req.Keywords) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "no keywords given")
	}
	if s.pool.Len() == 0 {
		return nil, apperrors.New(apperrors.CodeNoCredentials, "no API keys configured. Run 'ytscout keys add' first")
	}

	count := req.Count
	if count <= 0 {
		count = defaultResultCount
	}
	if count > maxResultsPerCall {
		count = maxResultsPerCall
	}

	outcome := &Outcome{}
	for i, keyword := range req.Keywords {
		records, warnings, err := s.searchKeyword(ctx, keyword, count, req.Filters, req.Summary)
		if err != nil {
			outcome.Errors = append(outcome.Errors, KeywordError{Keyword: keyword, Err: err})
		} else {
			outcome.Records = append(outcome.Records, records...)
		}
		outcome.Warnings = append(outcome.Warnings, warnings...)

		if i < len(req.Keywords)-1 {
			select {
			case <-ctx.Done():
				return outcome, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}
	return outcome, nil
}

func (s *service) searchKeyword(ctx context.Context, keyword string, count int64, filters Filters, opts summary.Options) ([]*model.ResultRecord, []string, error) {
	searchReq := youtube.SearchRequest{
		Keyword:           keyword,
		MaxResults:        count,
		RegionCode:        s.regionCode,
		RelevanceLanguage: s.relevanceLanguage,
	}
	if err := filters.apply(&searchReq, s.now()); err != nil {
		return nil, nil, err
	}

	hits, err := s.searchWithRotation(ctx, searchReq)
	if err != nil {
		return nil, nil, err
	}
	if len(hits) == 0 {
		return nil, nil, nil
	}
	return s.enrich(ctx, keyword, hits, opts)
}

// searchWithRotation issues the primary search call, rotating to the next
// credential and retrying only on quota-class errors, at most once per key
// in the pool. Any other error escalates immediately.
func (s *service) searchWithRotation(ctx context.Context, req youtube.SearchRequest) ([]model.SearchHit, error) {
	var lastErr error
	for attempt := 0; attempt < s.pool.Len(); attempt++ {
		key, ok := s.pool.Current()
		if !ok {
			return nil, apperrors.New(apperrors.CodeNoCredentials, "no API keys configured")
		}

		hits, err := s.client.Search(ctx, key, req)
		if err == nil {
			return hits, nil
		}
		if !apperrors.IsQuotaExhausted(err) {
			return nil, err
		}
		lastErr = err
		if !s.pool.Rotate() {
			break
		}
	}
	return nil, apperrors.Wrap(lastErr, apperrors.CodeQuotaExhausted, "all API keys exhausted")
}

// enrich batches one video-detail call for all hits and one channel-detail
// call for their distinct channels, then builds a record per video. A failed
// channel lookup degrades to channel-id URLs instead of failing the keyword.
func (s *service) enrich(ctx context.Context, keyword string, hits []model.SearchHit, opts summary.Options) ([]*model.ResultRecord, []string, error) {
	key, ok := s.pool.Current()
	if !ok {
		return nil, nil, apperrors.New(apperrors.CodeNoCredentials, "no API keys configured")
	}

	videoIDs := make([]string, 0, len(hits))
	for _, hit := range hits {
		videoIDs = append(videoIDs, hit.VideoID)
	}
	videos, err := s.client.VideoDetails(ctx, key, videoIDs)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	channels := make(map[string]*model.ChannelDetail)
	channelIDs := distinctChannelIDs(videos)
	if len(channelIDs) > 0 {
		details, err := s.client.ChannelDetails(ctx, key, channelIDs)
		if err != nil {
			warnings = append(warnings, "channel lookup failed for keyword \""+keyword+"\": "+apperrors.TranslateError(err))
		} else {
			for _, ch := range details {
				channels[ch.ID] = ch
			}
		}
	}

	now := s.now()
	records := make([]*model.ResultRecord, 0, len(videos))
	for _, video := range videos {
		record, err := s.buildRecord(keyword, video, channels[video.ChannelID], now, opts)
		if err != nil {
			return nil, warnings, err
		}
		records = append(records, record)
	}
	return records, warnings, nil
}

func (s *service) buildRecord(keyword string, video *model.VideoDetail, channel *model.ChannelDetail, now time.Time, opts summary.Options) (*model.ResultRecord, error) {
	duration := FormatDuration(video.Duration, video.Live, now)

	record := &model.ResultRecord{
		Keyword:          keyword,
		Title:            preferEnglish(video.Localizations, video.Title),
		VideoID:          video.ID,
		VideoURL:         watchURLBase + video.ID,
		ChannelName:      channelName(video, channel),
		ChannelID:        video.ChannelID,
		ChannelURL:       channelURL(video.ChannelID, channel),
		Duration:         duration,
		OriginalDuration: duration,
		ViewCount:        FormatViewCount(video),
		Thumbnail:        video.Thumbnail,
	}

	composed, err := s.composer.Compose(record, opts)
	if err != nil {
		return nil, err
	}
	record.Summary = composed
	return record, nil
}

// channelName prefers the channel record's English localization, then its
// default title, then the name the video itself carries.
func channelName(video *model.VideoDetail, channel *model.ChannelDetail) string {
	if channel != nil {
		if name := preferEnglish(channel.Localizations, channel.Title); name != "" {
			return name
		}
	}
	return video.ChannelTitle
}

// channelURL prefers a handle-style URL when the channel resolved a custom
// URL, falling back to the channel-id form.
func channelURL(channelID string, channel *model.ChannelDetail) string {
	if channel != nil && channel.CustomURL != "" {
		return handleURLBase + strings.TrimPrefix(channel.CustomURL, "@")
	}
	return channelURLBase + channelID
}

// preferEnglish returns the English localization's title when present and
// non-empty, else the fallback.
func preferEnglish(localizations map[string]model.Localization, fallback string) string {
	if loc, ok := localizations["en"]; ok && loc.Title != "" {
		return loc.Title
	}
	return fallback
}

func distinctChannelIDs(videos []*model.VideoDetail) []string {
	seen := make(map[string]bool, len(videos))
	var ids []string
	for _, video := range videos {
		if video.ChannelID == "" || seen[video.ChannelID] {
			continue
		}
		seen[video.ChannelID] = true
		ids = append(ids, video.ChannelID)
	}
	return ids
}
