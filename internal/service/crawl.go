package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"tubeharvest/internal/config"
	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube"
	"tubeharvest/internal/metrics"
)

type CrawlService struct {
	channels  ChannelStore
	tags      TagStore
	videos    VideoStore
	state     CrawlStateStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
	config    config.CrawlConfig
	now       func() time.Time
}

func NewCrawlService(
	channels ChannelStore,
	tags TagStore,
	videos VideoStore,
	state CrawlStateStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.CrawlConfig,
) *CrawlService {
	return &CrawlService{
		channels:  channels,
		tags:      tags,
		videos:    videos,
		state:     state,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "crawler"),
		config:    cfg,
		now:       time.Now,
	}
}

// Worker pairs the service with one upstream client and its pacing.
type Worker struct {
	svc     *CrawlService
	source  ChannelSource
	limiter *rate.Limiter
}

func (s *CrawlService) NewWorker(source ChannelSource) *Worker {
	limit := rate.Inf
	if s.config.RequestsPerSec > 0 {
		limit = rate.Limit(s.config.RequestsPerSec)
	}
	return &Worker{
		svc:     s,
		source:  source,
		limiter: rate.NewLimiter(limit, max(s.config.Burst, 1)),
	}
}

// Crawl refreshes one channel and walks up to MaxPagesPerCrawl pages of its
// uploads, resuming from the stored cursor. A rate-limited call rotates the
// worker's egress address before the error is returned.
func (w *Worker) Crawl(ctx context.Context, channelID string) (*domain.CrawlStats, error) {
	s := w.svc
	start := time.Now()
	stats := &domain.CrawlStats{Channels: 1}
	logger := s.logger.With("channel_id", channelID)

	defer func() {
		stats.Duration = time.Since(start)
		metrics.Metrics.CrawlDuration.Observe(stats.Duration.Seconds())
	}()

	state, err := s.state.Get(ctx, channelID)
	if err != nil {
		return stats, fmt.Errorf("get crawl state: %w", err)
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return stats, err
	}
	ch, err := w.source.FetchChannel(ctx, channelID)
	if err != nil {
		return stats, w.fail(stats, logger, err)
	}

	enriched := false
	if ch.Available() && !s.config.SkipAbout {
		if err := w.enrich(ctx, ch); err != nil {
			stats.Errors++
			logger.Warn("about page unavailable, keeping stored metadata", "error", err)
			if errors.Is(err, innertube.ErrRateLimited) {
				w.rotate(stats, logger)
			}
		} else {
			enriched = true
		}
	}
	if !enriched {
		s.keepStoredAbout(ctx, ch, logger)
	}

	isNew, err := s.saveChannel(ctx, ch)
	if err != nil {
		stats.Errors++
		return stats, fmt.Errorf("save channel: %w", err)
	}
	s.publishChannel(ctx, ch, isNew, stats, logger)

	if !ch.Available() {
		logger.Info("channel unavailable",
			"deleted", ch.Deleted,
			"hidden", ch.Hidden,
			"terminated", ch.Terminated,
		)
		state.ChannelID = channelID
		state.Continuation = ""
		state.Completed = true
		state.LastCrawledAt = s.now()
		if err := s.state.Update(ctx, state); err != nil {
			return stats, fmt.Errorf("update crawl state: %w", err)
		}
		return stats, nil
	}

	crawlErr := w.walkUploads(ctx, ch, state, stats, logger)

	state.ChannelID = channelID
	state.LastCrawledAt = s.now()
	if err := s.state.Update(ctx, state); err != nil {
		return stats, errors.Join(crawlErr, fmt.Errorf("update crawl state: %w", err))
	}

	logger.Info("channel crawled",
		"pages", stats.Pages,
		"videos", stats.Videos,
		"new", stats.New,
		"completed", state.Completed,
		"errors", stats.Errors,
	)

	return stats, crawlErr
}

func (w *Worker) enrich(ctx context.Context, ch *domain.Channel) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	return w.source.EnrichChannel(ctx, ch)
}

// keepStoredAbout fills the about fields of a profile-only record from the
// stored one, so the upsert does not clear them.
func (s *CrawlService) keepStoredAbout(ctx context.Context, ch *domain.Channel, logger *slog.Logger) {
	prev, err := s.channels.Get(ctx, ch.UserID)
	if err != nil {
		logger.Warn("load stored channel failed", "error", err)
		return
	}
	if prev != nil {
		carryAbout(ch, prev)
	}
}

func (w *Worker) walkUploads(ctx context.Context, ch *domain.Channel, state *domain.CrawlState, stats *domain.CrawlStats, logger *slog.Logger) error {
	s := w.svc
	pager := w.source.Uploads(ch.ChannelID(), state.Continuation)

	for page := 0; page < s.config.MaxPagesPerCrawl && !pager.Done(); page++ {
		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}

		videos, err := pager.Next(ctx)
		if err != nil {
			if innertube.IsTerminal(err) {
				logger.Warn("dropping unusable cursor", "error", err)
				state.Continuation = ""
				state.Completed = false
			}
			return w.fail(stats, logger, err)
		}

		stats.Pages++
		metrics.Metrics.CrawlPages.Inc()

		state.Continuation = pager.Cursor()
		state.Completed = pager.Done()

		var inserted int
		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			n, err := s.videos.UpsertBatch(txCtx, ch.UserID, videos)
			if err != nil {
				return fmt.Errorf("upsert videos: %w", err)
			}
			inserted = n
			state.TotalVideos += int64(n)
			state.LastCrawledAt = s.now()
			if err := s.state.Update(txCtx, state); err != nil {
				return fmt.Errorf("checkpoint cursor: %w", err)
			}
			return nil
		})
		if err != nil {
			stats.Errors++
			return fmt.Errorf("save page %d: %w", page, err)
		}

		stats.Videos += len(videos)
		stats.New += inserted
		metrics.Metrics.CrawlVideos.WithLabelValues(strconv.FormatBool(true)).Add(float64(inserted))
		metrics.Metrics.CrawlVideos.WithLabelValues(strconv.FormatBool(false)).Add(float64(len(videos) - inserted))

		logger.Debug("page stored",
			"page", page,
			"videos", len(videos),
			"new", inserted,
			"more", !pager.Done(),
		)

		if len(videos) > 0 && s.publisher != nil {
			if err := s.publisher.PublishVideos(ctx, ch.UserID, videos); err != nil {
				stats.Errors++
				logger.Warn("publish videos failed", "error", err)
			} else {
				stats.Published++
			}
		}
	}

	return nil
}

func (w *Worker) fail(stats *domain.CrawlStats, logger *slog.Logger, err error) error {
	stats.Errors++
	if errors.Is(err, innertube.ErrRateLimited) {
		w.rotate(stats, logger)
	}
	return err
}

func (w *Worker) rotate(stats *domain.CrawlStats, logger *slog.Logger) {
	addr := w.source.Rotate()
	stats.Rotations++
	logger.Warn("rate limited, egress rotated", "local_addr", addr)
}

func (s *CrawlService) saveChannel(ctx context.Context, ch *domain.Channel) (bool, error) {
	var isNew bool
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.channels.Upsert(txCtx, ch)
		if err != nil {
			return fmt.Errorf("upsert channel: %w", err)
		}
		isNew = created

		if err := s.tags.ReplaceForChannel(txCtx, ch.UserID, ch.Tags); err != nil {
			return fmt.Errorf("replace tags: %w", err)
		}
		return nil
	})
	return isNew, err
}

func (s *CrawlService) publishChannel(ctx context.Context, ch *domain.Channel, isNew bool, stats *domain.CrawlStats, logger *slog.Logger) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishChannel(ctx, ch, isNew); err != nil {
		stats.Errors++
		logger.Warn("publish channel failed", "error", err)
		return
	}
	stats.Published++
}

// carryAbout copies about-page fields from a stored profile onto a fresh one
// whose about page was not fetched.
func carryAbout(ch, prev *domain.Channel) {
	if ch.Handle == nil {
		ch.Handle = prev.Handle
	}
	if ch.Subscribers == nil {
		ch.Subscribers = prev.Subscribers
	}
	if ch.Views == nil {
		ch.Views = prev.Views
	}
	if ch.Videos == nil {
		ch.Videos = prev.Videos
	}
	if ch.Country == nil {
		ch.Country = prev.Country
	}
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = prev.CreatedAt
	}
	if len(ch.Links) == 0 {
		ch.Links = prev.Links
	}
	ch.HasBusinessEmail = ch.HasBusinessEmail || prev.HasBusinessEmail
}
