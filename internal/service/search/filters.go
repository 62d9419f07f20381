package search

import (
	"time"

	apperrors "github.com/ytscout/ytscout/internal/errors"
	"github.com/ytscout/ytscout/internal/service/youtube"
)

// Filters is the user-facing filter vocabulary, translated onto the Data
// API's search parameters by apply.
type Filters struct {
	Published     string // hour, today, week, month, year
	Type          string // video, channel, playlist
	VideoDuration string // short, medium, long
	Feature       string // live, 4k, hd, hdr, cc, 360, creativeCommons
	Order         string // relevance, date, viewCount, rating
}

// publishedWindows maps each recency bucket to its lookback span
var publishedWindows = map[string]time.Duration{
	"hour":  time.Hour,
	"today": 24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
	"year":  365 * 24 * time.Hour,
}

// apply translates the filters onto req. The recency window becomes an
// absolute publishedAfter threshold relative to now. The 4k/hd/hdr features
// all collapse onto the API's single high-definition flag; the upstream
// filter vocabulary has nothing finer.
func (f Filters) apply(req *youtube.SearchRequest, now time.Time) error {
	if f.Published != "" {
		window, ok := publishedWindows[f.Published]
		if !ok {
			return apperrors.New(apperrors.CodeInvalidArg, "unknown publish window: "+f.Published)
		}
		req.PublishedAfter = now.Add(-window).UTC().Format(time.RFC3339)
	}

	switch f.Type {
	case "", "video", "channel", "playlist":
		req.Type = f.Type
	default:
		return apperrors.New(apperrors.CodeInvalidArg, "unknown result type: "+f.Type)
	}

	switch f.VideoDuration {
	case "", "short", "medium", "long":
		req.VideoDuration = f.VideoDuration
	default:
		return apperrors.New(apperrors.CodeInvalidArg, "unknown duration bucket: "+f.VideoDuration)
	}

	switch f.Feature {
	case "":
	case "live":
		req.EventType = "live"
	case "4k", "hd", "hdr":
		req.VideoDefinition = "high"
	case "cc":
		req.VideoCaption = "closedCaption"
	case "360":
		req.VideoDimension = "3d"
	case "creativeCommons":
		req.VideoLicense = "creativeCommon"
	default:
		return apperrors.New(apperrors.CodeInvalidArg, "unknown feature filter: "+f.Feature)
	}

	switch f.Order {
	case "", "relevance", "date", "viewCount", "rating":
		req.Order = f.Order
	default:
		return apperrors.New(apperrors.CodeInvalidArg, "unknown sort order: "+f.Order)
	}

	return nil
}
