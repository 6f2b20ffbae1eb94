package domain

import "time"

type Video struct {
	VideoID           string     `json:"video_id" db:"video_id"`
	Views             int64      `json:"views" db:"views"`
	HiddenViewCount   bool       `json:"hidden_view_count" db:"hidden_view_count"`
	Badge             *string    `json:"badge,omitempty" db:"badge"`
	LengthSeconds     *int       `json:"length_seconds,omitempty" db:"length_seconds"`
	ApproxPublishedAt *time.Time `json:"approx_published_at,omitempty" db:"approx_published_at"`
}

// WatchNext is one recommendation shown next to a video.
type WatchNext struct {
	UserID  string `json:"user_id"`
	VideoID string `json:"video_id"`
}
