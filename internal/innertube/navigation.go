package innertube

import (
	"errors"
	"fmt"
	"net/url"

	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube/extract"
	"tubeharvest/internal/innertube/tree"
	"tubeharvest/internal/innertube/wire"
)

// ResolveURL maps a public URL to the browse id or URL it points at. An
// unknown URL resolves to nil.
func (c *Client) ResolveURL(rawURL string) Request[*domain.ResolvedURL] {
	if rawURL == "" {
		return invalidRequest[*domain.ResolvedURL](c, OpResolveURL, errors.New("empty url"))
	}
	payload := wire.NewPayload().Set("url", rawURL)
	return newRequest(c, OpResolveURL, payload, func(root tree.Node) (*domain.ResolvedURL, error) {
		return extract.ResolvedURL(root), nil
	})
}

// WatchNext lists the recommendations shown beside a video. A video whose
// recommendations are unavailable fails with ErrRequiredFieldMissing.
func (c *Client) WatchNext(videoID string) Request[[]domain.WatchNext] {
	if videoID == "" {
		return invalidRequest[[]domain.WatchNext](c, OpWatchNext, errors.New("empty video id"))
	}
	payload := wire.NewPayload().Set("videoId", videoID)
	return newRequest(c, OpWatchNext, payload, extract.WatchNext)
}

// ConditionalRedirect browses a channel from the network location of proxy.
// nil means the channel is served there as usual.
func (c *Client) ConditionalRedirect(proxy, channelID string) Request[*domain.ConditionalRedirect] {
	if channelID == "" {
		return invalidRequest[*domain.ConditionalRedirect](c, OpConditionalRedirect, errors.New("empty channel id"))
	}
	proxyURL, err := parseProxy(proxy)
	if err != nil {
		return invalidRequest[*domain.ConditionalRedirect](c, OpConditionalRedirect, err)
	}
	payload := wire.NewPayload().Set("browseId", channelID)
	r := newRequest(c, OpConditionalRedirect, payload, func(root tree.Node) (*domain.ConditionalRedirect, error) {
		return extract.ConditionalRedirect(root), nil
	})
	r.proxy = proxyURL
	return r
}

// DetectCountry reports the country the upstream places proxy in.
func (c *Client) DetectCountry(proxy string) Request[string] {
	proxyURL, err := parseProxy(proxy)
	if err != nil {
		return invalidRequest[string](c, OpDetectCountry, err)
	}
	payload := wire.NewPayload().Set("browseId", countryBrowseID)
	r := newRequest(c, OpDetectCountry, payload, extract.Country)
	r.proxy = proxyURL
	return r
}

func parseProxy(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("empty proxy url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy url %q needs a scheme and host", raw)
	}
	return u, nil
}
