package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ytscout/ytscout/internal/model"
)

func TestFormatDuration(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		iso  string
		live *model.LiveDetails
		want string
	}{
		{name: "hours minutes seconds", iso: "PT1H2M3S", want: "01:02:03"},
		{name: "minutes only pads seconds", iso: "PT5M", want: "05:00"},
		{name: "seconds only", iso: "PT45S", want: "00:45"},
		{name: "hours only", iso: "PT2H", want: "02:00:00"},
		{name: "empty components", iso: "PT", want: "00:00"},
		{name: "malformed token", iso: "garbage", want: "00:00"},
		{name: "empty string", iso: "", want: "00:00"},
		{
			name: "ended broadcast uses elapsed wall time",
			live: &model.LiveDetails{
				ActualStart: timePtr(now.Add(-90 * time.Minute)),
				ActualEnd:   timePtr(now),
			},
			want: "01:30:00",
		},
		{
			name: "short ended broadcast drops hour component",
			live: &model.LiveDetails{
				ActualStart: timePtr(now.Add(-42 * time.Minute)),
				ActualEnd:   timePtr(now),
			},
			want: "42:00",
		},
		{
			name: "ongoing broadcast gets live marker",
			iso:  "PT0S",
			live: &model.LiveDetails{
				ActualStart: timePtr(now.Add(-10 * time.Minute)),
			},
			want: "10:00 (Live)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.iso, tt.live, now))
		})
	}
}

func TestFormatViewCount(t *testing.T) {
	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name   string
		detail *model.VideoDetail
		want   string
	}{
		{
			name: "ongoing live with concurrent viewers",
			detail: &model.VideoDetail{
				Live: &model.LiveDetails{ActualStart: &start, ConcurrentViewers: 12345},
			},
			want: "12,345 currently watching",
		},
		{
			name: "ended live with view statistic",
			detail: &model.VideoDetail{
				ViewCount:    1000000,
				HasViewCount: true,
				Live:         &model.LiveDetails{ActualStart: &start, ActualEnd: &end},
			},
			want: "1,000,000 views (ended live)",
		},
		{
			name: "live without concurrent viewers uses the view statistic",
			detail: &model.VideoDetail{
				ViewCount:    500,
				HasViewCount: true,
				Live:         &model.LiveDetails{ActualStart: &start},
			},
			want: "500 views (ended live)",
		},
		{
			name:   "regular video",
			detail: &model.VideoDetail{ViewCount: 9876, HasViewCount: true},
			want:   "9,876 views",
		},
		{
			name:   "no statistic at all",
			detail: &model.VideoDetail{},
			want:   "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatViewCount(tt.detail))
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
