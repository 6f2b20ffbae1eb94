package innertube

import (
	"context"
	"fmt"

	"tubeharvest/internal/domain"
)

// FetchChannel sends a channel profile request.
func (c *Client) FetchChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	ch, err := c.Channel(channelID).Send(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
	return ch, nil
}

// EnrichChannel adds the about page to ch.
func (c *Client) EnrichChannel(ctx context.Context, ch *domain.Channel) error {
	if _, err := c.ChannelAbout(ch).Send(ctx); err != nil {
		return fmt.Errorf("fetch about %s: %w", ch.ChannelID(), err)
	}
	return nil
}

// Uploads returns a walk over a channel's uploads, resumed from cursor when
// one is given.
func (c *Client) Uploads(channelID, cursor string) VideoPager {
	if cursor != "" {
		return c.ResumeUploads(cursor)
	}
	return c.UploadsPager(channelID, TabVideos)
}

// VideoPager is the part of Pager the crawl loop needs.
type VideoPager interface {
	Next(ctx context.Context) ([]domain.Video, error)
	Done() bool
	Cursor() string
}
