package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"tubeharvest/internal/domain"
)

type CrawlStateStore struct {
	db *sqlx.DB
}

func NewCrawlStateStore(db *sqlx.DB) *CrawlStateStore {
	return &CrawlStateStore{db: db}
}

func (s *CrawlStateStore) Get(ctx context.Context, channelID string) (*domain.CrawlState, error) {
	var state domain.CrawlState
	query := `
		SELECT id, channel_id, continuation, last_crawled_at, completed, total_videos
		FROM crawl_state
		WHERE channel_id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		// never crawled
		return &domain.CrawlState{ChannelID: channelID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *CrawlStateStore) Update(ctx context.Context, state *domain.CrawlState) error {
	query := `
		INSERT INTO crawl_state (channel_id, continuation, last_crawled_at, completed, total_videos)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (channel_id) DO UPDATE SET
			continuation = EXCLUDED.continuation,
			last_crawled_at = EXCLUDED.last_crawled_at,
			completed = EXCLUDED.completed,
			total_videos = EXCLUDED.total_videos
		RETURNING id`

	return GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		state.ChannelID,
		state.Continuation,
		state.LastCrawledAt,
		state.Completed,
		state.TotalVideos,
	).Scan(&state.ID)
}
