package scheduler

import (
	"context"
	"log/slog"
	"time"

	"tubeharvest/internal/domain"
)

// Crawler runs one pass over the configured channels.
type Crawler interface {
	CrawlAll(ctx context.Context) (*domain.CrawlStats, error)
}

type Scheduler struct {
	crawler    Crawler
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(crawler Crawler, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	if runTimeout <= 0 || runTimeout > interval {
		runTimeout = interval
	}
	return &Scheduler{
		crawler:    crawler,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger.With("component", "scheduler"),
	}
}

// Start runs a crawl immediately and then on every tick until ctx is done.
// A run that outlives the interval delays the next one; ticks are not queued.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "run_timeout", s.runTimeout)

	s.runCrawl(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCrawl(ctx)
		}
	}
}

func (s *Scheduler) runCrawl(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	stats, err := s.crawler.CrawlAll(runCtx)
	if err != nil {
		s.logger.Error("crawl run failed", "error", err)
	}
	if stats != nil && stats.Errors > 0 {
		s.logger.Warn("crawl run finished with errors", "errors", stats.Errors, "channels", stats.Channels)
	}
}
