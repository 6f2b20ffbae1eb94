package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"net/netip"

	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube"
)

type ChannelStore interface {
	Upsert(ctx context.Context, channel *domain.Channel) (bool, error)
	Get(ctx context.Context, userID string) (*domain.Channel, error)
}

type TagStore interface {
	ReplaceForChannel(ctx context.Context, userID string, tags []string) error
}

type VideoStore interface {
	UpsertBatch(ctx context.Context, userID string, videos []domain.Video) (int, error)
}

type CrawlStateStore interface {
	Get(ctx context.Context, channelID string) (*domain.CrawlState, error)
	Update(ctx context.Context, state *domain.CrawlState) error
}

// ChannelSource is one upstream client. Implementations are not shared
// between goroutines.
type ChannelSource interface {
	FetchChannel(ctx context.Context, channelID string) (*domain.Channel, error)
	EnrichChannel(ctx context.Context, channel *domain.Channel) error
	Uploads(channelID, cursor string) innertube.VideoPager
	Rotate() netip.Addr
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	PublishChannel(ctx context.Context, channel *domain.Channel, isNew bool) error
	PublishVideos(ctx context.Context, userID string, videos []domain.Video) error
	Close() error
}
