package search

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ytscout/ytscout/internal/model"
)

// liveMarker is appended to the elapsed time of a currently-live broadcast
const liveMarker = " (Live)"

var isoDurationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatDuration renders a video duration as HH:MM:SS, dropping the hour
// component when it is zero. Broadcasts with an actual start time use elapsed
// wall time instead of the content duration: finished ones render end minus
// start, ongoing ones render now minus start with a live marker. A malformed
// ISO-8601 token renders as "00:00".
func FormatDuration(iso string, live *model.LiveDetails, now time.Time) string {
	if live != nil && live.ActualStart != nil {
		if live.ActualEnd != nil {
			return formatClock(live.ActualEnd.Sub(*live.ActualStart))
		}
		return formatClock(now.Sub(*live.ActualStart)) + liveMarker
	}

	match := isoDurationRE.FindStringSubmatch(iso)
	if match == nil {
		return "00:00"
	}
	hours := parseComponent(match[1])
	minutes := parseComponent(match[2])
	seconds := parseComponent(match[3])
	return formatParts(hours, minutes, seconds)
}

// FormatViewCount renders the audience figure for a video: concurrent
// viewers while live, total views once a broadcast has ended, plain views
// for regular videos, and "N/A" when no statistic is available.
func FormatViewCount(detail *model.VideoDetail) string {
	isLive := detail.Live != nil && detail.Live.ActualStart != nil
	if isLive && detail.Live.ActualEnd == nil && detail.Live.ConcurrentViewers > 0 {
		return humanize.Comma(int64(detail.Live.ConcurrentViewers)) + " currently watching"
	}
	if isLive && detail.HasViewCount {
		return humanize.Comma(int64(detail.ViewCount)) + " views (ended live)"
	}
	if detail.HasViewCount {
		return humanize.Comma(int64(detail.ViewCount)) + " views"
	}
	return "N/A"
}

func parseComponent(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

func formatClock(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	total := int(elapsed.Seconds())
	return formatParts(total/3600, (total%3600)/60, total%60)
}

func formatParts(hours, minutes, seconds int) string {
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
