package domain

import "time"

// CrawlState is the per-channel checkpoint of the uploads walk.
type CrawlState struct {
	ID            int64     `db:"id"`
	ChannelID     string    `db:"channel_id"`
	Continuation  string    `db:"continuation"`
	LastCrawledAt time.Time `db:"last_crawled_at"`
	Completed     bool      `db:"completed"`
	TotalVideos   int64     `db:"total_videos"`
}

// CrawlStats holds statistics about one crawl run.
type CrawlStats struct {
	Channels  int
	Pages     int
	Videos    int
	New       int
	Errors    int
	Rotations int
	Published int
	Duration  time.Duration
}

// Merge folds another run's counters into s.
func (s *CrawlStats) Merge(o *CrawlStats) {
	if o == nil {
		return
	}
	s.Channels += o.Channels
	s.Pages += o.Pages
	s.Videos += o.Videos
	s.New += o.New
	s.Errors += o.Errors
	s.Rotations += o.Rotations
	s.Published += o.Published
}
