package textparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1,234 views", 1234},
		{"  42  ", 42},
		{"1,000,000", 1000000},
		{"abc", 0},
		{"", 0},
		{"12 videos", 12},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Numeric(tt.in))
		})
	}
}

func TestMultiplied(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1.5K", 1500},
		{"2M", 2000000},
		{"1.2M", 1200000},
		{"2.3M subscribers", 2300000},
		{"3B", 3000000000},
		{"950", 950},
		{"K", 0},
		{"x.yK", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Multiplied(tt.in))
		})
	}
}

func TestViewCount(t *testing.T) {
	views, hidden := ViewCount("No views", true)
	assert.Equal(t, int64(0), views)
	assert.False(t, hidden)

	views, hidden = ViewCount("", false)
	assert.Equal(t, int64(0), views)
	assert.True(t, hidden)

	views, hidden = ViewCount("1,234 views", true)
	assert.Equal(t, int64(1234), views)
	assert.False(t, hidden)

	views, hidden = ViewCount("garbage", true)
	assert.Equal(t, int64(0), views)
	assert.False(t, hidden)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3:25", 205, true},
		{"1:02:03", 3723, true},
		{"0:07", 7, true},
		{"12", 0, false},
		{"1:2:3:4", 0, false},
		{"a:bc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Duration(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Duration
	}{
		{"33 seconds ago", 33 * time.Second},
		{"1 minute ago", time.Minute},
		{"10 hours ago", 10 * time.Hour},
		{"2 days ago", 48 * time.Hour},
		{"3 weeks ago", 21 * 24 * time.Hour},
		{"1 month ago", 30 * 24 * time.Hour},
		{"9 years ago", 9 * 365 * 24 * time.Hour},
		{"  2 Days Ago ", 48 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := RelativeTime(tt.in, now)
			assert.True(t, ok)
			assert.Equal(t, now.Add(-tt.want), got)
		})
	}

	for _, bad := range []string{"yesterday", "2 fortnights ago", "ago", "Streamed 2 days ago", "300 years ago", "99999999999999999999 seconds ago"} {
		_, ok := RelativeTime(bad, now)
		assert.False(t, ok, bad)
	}
}

func TestJoinedDate(t *testing.T) {
	got, ok := JoinedDate("Joined Feb 19, 2012")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2012, 2, 19, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, int64(1329609600000), got.UnixMilli())

	_, ok = JoinedDate("Joined sometime")
	assert.False(t, ok)
}
