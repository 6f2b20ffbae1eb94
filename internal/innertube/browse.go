package innertube

import (
	"context"
	"errors"

	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube/extract"
	"tubeharvest/internal/innertube/tree"
	"tubeharvest/internal/innertube/wire"
)

// ChannelTab selects which uploads listing to walk.
type ChannelTab int

const (
	TabVideos ChannelTab = iota
	TabLive
)

func (t ChannelTab) params() string {
	if t == TabLive {
		return liveTabParams
	}
	return videosTabParams
}

func (t ChannelTab) String() string {
	if t == TabLive {
		return "live"
	}
	return "videos"
}

// Channel fetches the profile of a channel. A channel in a terminal state
// is returned with the matching flag set, not as an error.
func (c *Client) Channel(channelID string) Request[*domain.Channel] {
	userID, err := channelUserID(channelID)
	if err != nil {
		return invalidRequest[*domain.Channel](c, OpChannel, err)
	}
	payload := wire.NewPayload().
		Set("browseId", channelID).
		Set("params", videosTabParams)
	return newRequest(c, OpChannel, payload, func(root tree.Node) (*domain.Channel, error) {
		return extract.Channel(root, userID), nil
	})
}

// ChannelAbout enriches ch in place with its about page and returns it.
func (c *Client) ChannelAbout(ch *domain.Channel) Request[*domain.Channel] {
	if ch == nil || ch.UserID == "" {
		return invalidRequest[*domain.Channel](c, OpChannelAbout, errors.New("channel without user id"))
	}
	payload := wire.NewPayload().
		Set("continuation", wire.SynthesizeContinuation(ch.ChannelID(), aboutRouting))
	return newRequest(c, OpChannelAbout, payload, func(root tree.Node) (*domain.Channel, error) {
		extract.EnrichAbout(root, ch)
		return ch, nil
	})
}

// Videos fetches the first page of a channel tab.
func (c *Client) Videos(channelID string, tab ChannelTab) Request[extract.VideoPage] {
	if channelID == "" {
		return invalidRequest[extract.VideoPage](c, OpVideos, errors.New("empty channel id"))
	}
	payload := wire.NewPayload().
		Set("browseId", channelID).
		Set("params", tab.params())
	return newRequest(c, OpVideos, payload, func(root tree.Node) (extract.VideoPage, error) {
		return extract.TabPage(root, c.now()), nil
	})
}

// PopularVideos fetches the first page of a channel's uploads ordered by
// popularity, opened through a synthesized continuation.
func (c *Client) PopularVideos(channelID string) Request[extract.VideoPage] {
	if channelID == "" {
		return invalidRequest[extract.VideoPage](c, OpPopularVideos, errors.New("empty channel id"))
	}
	payload := wire.NewPayload().
		Set("continuation", wire.SynthesizeContinuation(channelID, popularRouting))
	return newRequest(c, OpPopularVideos, payload, func(root tree.Node) (extract.VideoPage, error) {
		return extract.ReloadPage(root, c.now()), nil
	})
}

// VideosContinuation fetches the page a continuation points at.
func (c *Client) VideosContinuation(continuation string) Request[extract.VideoPage] {
	if continuation == "" {
		return invalidRequest[extract.VideoPage](c, OpVideosContinuation, errors.New("empty continuation"))
	}
	payload := wire.NewPayload().Set("continuation", continuation)
	return newRequest(c, OpVideosContinuation, payload, func(root tree.Node) (extract.VideoPage, error) {
		return extract.ContinuationPage(root, c.now()), nil
	})
}

// HasPublicSubscriptions reports whether a channel shows its subscriptions.
func (c *Client) HasPublicSubscriptions(channelID string) Request[bool] {
	if channelID == "" {
		return invalidRequest[bool](c, OpPublicSubscriptions, errors.New("empty channel id"))
	}
	payload := wire.NewPayload().Set("browseId", channelID)
	return newRequest(c, OpPublicSubscriptions, payload, func(root tree.Node) (bool, error) {
		return extract.HasPublicSubscriptions(root), nil
	})
}

func (c *Client) nextVideos(ctx context.Context, continuation string) (Page[domain.Video], error) {
	page, err := c.VideosContinuation(continuation).Send(ctx)
	if err != nil {
		return Page[domain.Video]{}, err
	}
	return Page[domain.Video]{Items: page.Videos, Continuation: page.Continuation}, nil
}

// UploadsPager walks every upload of a channel tab.
func (c *Client) UploadsPager(channelID string, tab ChannelTab) *Pager[domain.Video] {
	return NewPager(func(ctx context.Context) (Page[domain.Video], error) {
		page, err := c.Videos(channelID, tab).Send(ctx)
		if err != nil {
			return Page[domain.Video]{}, err
		}
		return Page[domain.Video]{Items: page.Videos, Continuation: page.Continuation}, nil
	}, c.nextVideos)
}

// PopularPager walks a channel's uploads by popularity.
func (c *Client) PopularPager(channelID string) *Pager[domain.Video] {
	return NewPager(func(ctx context.Context) (Page[domain.Video], error) {
		page, err := c.PopularVideos(channelID).Send(ctx)
		if err != nil {
			return Page[domain.Video]{}, err
		}
		return Page[domain.Video]{Items: page.Videos, Continuation: page.Continuation}, nil
	}, c.nextVideos)
}

// ResumeUploads continues an uploads walk from a checkpointed cursor.
func (c *Client) ResumeUploads(cursor string) *Pager[domain.Video] {
	return ResumePager(cursor, c.nextVideos)
}

// IsTerminal reports whether err means the listing cannot continue for
// reasons a retry will not fix.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrContinuationReplayed)
}
