package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"tubeharvest/internal/domain"
	"tubeharvest/internal/metrics"
)

// Harvester fans a channel list out over a fixed set of workers. Each worker
// owns one upstream client, so at most len(workers) crawls run at once.
type Harvester struct {
	workers  chan *Worker
	size     int
	channels []string
	logger   *slog.Logger
}

func NewHarvester(svc *CrawlService, sources []ChannelSource, channels []string, logger *slog.Logger) *Harvester {
	workers := make(chan *Worker, len(sources))
	for _, src := range sources {
		workers <- svc.NewWorker(src)
	}
	return &Harvester{
		workers:  workers,
		size:     len(sources),
		channels: channels,
		logger:   logger.With("component", "harvester"),
	}
}

// CrawlAll crawls every configured channel once. Per-channel failures are
// joined into the returned error; the stats cover every channel attempted.
func (h *Harvester) CrawlAll(ctx context.Context) (*domain.CrawlStats, error) {
	start := time.Now()
	total := &domain.CrawlStats{}

	if h.size == 0 {
		return total, errors.New("no workers configured")
	}

	var (
		mu   sync.Mutex
		errs []error
	)

	p := pool.New().WithMaxGoroutines(h.size)
	for _, channelID := range h.channels {
		channelID := channelID
		p.Go(func() {
			var w *Worker
			select {
			case w = <-h.workers:
			case <-ctx.Done():
				mu.Lock()
				errs = append(errs, fmt.Errorf("crawl %s: %w", channelID, ctx.Err()))
				mu.Unlock()
				return
			}
			metrics.Metrics.WorkersBusy.Inc()
			defer func() {
				metrics.Metrics.WorkersBusy.Dec()
				h.workers <- w
			}()

			stats, err := w.Crawl(ctx, channelID)

			mu.Lock()
			defer mu.Unlock()
			total.Merge(stats)
			if err != nil {
				errs = append(errs, fmt.Errorf("crawl %s: %w", channelID, err))
			}
		})
	}
	p.Wait()

	total.Duration = time.Since(start)

	h.logger.Info("crawl run completed",
		"channels", total.Channels,
		"pages", total.Pages,
		"videos", total.Videos,
		"new", total.New,
		"rotations", total.Rotations,
		"errors", total.Errors,
		"duration", total.Duration,
	)

	return total, errors.Join(errs...)
}
