package model

import "time"

// SearchHit is a lightweight result from the search endpoint, carrying just
// the identifiers needed for the detail-enrichment calls.
type SearchHit struct {
	VideoID   string `json:"video_id"`
	ChannelID string `json:"channel_id"`
}

// LiveDetails holds the live-streaming fields of a video. A non-nil
// ActualStart marks the video as a live or was-live broadcast.
type LiveDetails struct {
	ActualStart       *time.Time `json:"actual_start,omitempty"`
	ActualEnd         *time.Time `json:"actual_end,omitempty"`
	ConcurrentViewers uint64     `json:"concurrent_viewers,omitempty"`
}

// Localization is a localized title variant for a video or channel.
type Localization struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// VideoDetail is the enriched per-video record from the batch detail lookup.
type VideoDetail struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	ChannelID     string                  `json:"channel_id"`
	ChannelTitle  string                  `json:"channel_title"`
	Duration      string                  `json:"duration"` // ISO-8601 token, e.g. PT1H2M3S
	ViewCount     uint64                  `json:"view_count"`
	HasViewCount  bool                    `json:"has_view_count"`
	Thumbnail     string                  `json:"thumbnail"`
	Live          *LiveDetails            `json:"live,omitempty"`
	Localizations map[string]Localization `json:"localizations,omitempty"`
}

// ChannelDetail is the per-channel record from the batch channel lookup.
type ChannelDetail struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	CustomURL     string                  `json:"custom_url,omitempty"` // handle, possibly with a leading "@"
	Localizations map[string]Localization `json:"localizations,omitempty"`
}

// ResultRecord is one row of the search result set. Owned exclusively by the
// result set; mutated in place only when summaries are recomposed.
type ResultRecord struct {
	Keyword          string `json:"keyword" db:"keyword"`
	Title            string `json:"title" db:"title"`
	VideoID          string `json:"video_id" db:"video_id"`
	VideoURL         string `json:"video_url" db:"video_url"`
	ChannelName      string `json:"channel_name" db:"channel_name"`
	ChannelID        string `json:"channel_id" db:"channel_id"`
	ChannelURL       string `json:"channel_url" db:"channel_url"`
	Duration         string `json:"duration" db:"duration"`
	OriginalDuration string `json:"original_duration" db:"original_duration"`
	ViewCount        string `json:"view_count" db:"view_count"`
	Thumbnail        string `json:"thumbnail" db:"thumbnail"`
	Summary          string `json:"summary" db:"summary"`
}

// CommentRecord is a single top-level comment. Immutable once produced; the
// display text has internal newlines and repeated whitespace collapsed.
type CommentRecord struct {
	Author      string    `json:"author"`
	AvatarURL   string    `json:"avatar_url"`
	Text        string    `json:"text"`
	LikeCount   int64     `json:"like_count"`
	PublishedAt time.Time `json:"published_at"`
	ReplyCount  int64     `json:"reply_count"`
}

// CommentPage is one page of the cursor-based comment feed. A null cursor is
// ambiguous between "start" and "exhausted"; callers must use the paginator's
// explicit hasMore flag rather than cursor emptiness.
type CommentPage struct {
	Comments   []*CommentRecord `json:"comments"`
	NextCursor string           `json:"next_cursor,omitempty"`
	Total      int64            `json:"total,omitempty"`
}

// ValidityResult is the cached outcome of probing one credential.
type ValidityResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
