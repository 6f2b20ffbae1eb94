package extract

import (
	"errors"

	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube/tree"
)

var (
	ErrNoRecommendations = errors.New("recommendations container missing")
	ErrNoTopbar          = errors.New("topbar renderer missing")
)

// WatchNext lists the recommendations beside a video in upstream order.
// The container itself is required; an empty container is zero items.
func WatchNext(root tree.Node) ([]domain.WatchNext, error) {
	container := root.Get("contents", "twoColumnWatchNextResults", "secondaryResults", "secondaryResults")
	if !container.Exists() {
		return nil, ErrNoRecommendations
	}

	var out []domain.WatchNext
	for _, result := range container.Get("results").Items() {
		r := result.Get("compactVideoRenderer")
		vid, okVideo := videoID(r.Get("videoId"))
		browseID, okBrowse := r.Get("shortBylineText", "runs", "navigationEndpoint", "browseEndpoint", "browseId").String()
		if !okVideo || !okBrowse {
			continue
		}
		uid, ok := userID(browseID)
		if !ok {
			continue
		}
		out = append(out, domain.WatchNext{UserID: uid, VideoID: vid})
	}
	return out, nil
}

// ResolvedURL returns nil when the endpoint names neither a browse id nor
// a URL.
func ResolvedURL(root tree.Node) *domain.ResolvedURL {
	var res domain.ResolvedURL
	if id, ok := root.Get("endpoint", "browseEndpoint", "browseId").String(); ok {
		res.BrowseID = &id
	}
	if u, ok := root.Get("endpoint", "urlEndpoint", "url").String(); ok {
		res.URL = &u
	}
	if res.BrowseID == nil && res.URL == nil {
		return nil
	}
	return &res
}

const subscriptionsShelf = "Subscriptions"

// HasPublicSubscriptions reports whether the TV channel page shows a
// subscriptions shelf.
func HasPublicSubscriptions(root tree.Node) bool {
	shelves := root.Get("contents", "tvBrowseRenderer", "content", "tvSurfaceContentRenderer",
		"content", "sectionListRenderer", "contents")
	for _, s := range shelves.Items() {
		title := s.Get("shelfRenderer", "headerRenderer", "shelfHeaderRenderer", "avatarLockup",
			"avatarLockupRenderer", "title", "simpleText").Text()
		if title == subscriptionsShelf {
			return true
		}
	}
	return false
}

// ConditionalRedirect reads a channel browse made from a specific network
// location. nil means the channel is served normally.
func ConditionalRedirect(root tree.Node) *domain.ConditionalRedirect {
	for _, a := range root.Get("alerts").Items() {
		if a.Get("alertRenderer", "text", "simpleText").Text() == alertHidden {
			return &domain.ConditionalRedirect{Blocked: true}
		}
	}
	for _, action := range root.Get("onResponseReceivedActions").Items() {
		if id, ok := action.Get("navigateAction", "endpoint", "browseEndpoint", "browseId").String(); ok {
			return &domain.ConditionalRedirect{ChannelID: id}
		}
	}
	return nil
}

const defaultCountry = "US"

// Country reads the requester's country from the home page topbar.
func Country(root tree.Node) (string, error) {
	topbar := root.Get("topbar", "desktopTopbarRenderer")
	if !topbar.Exists() {
		return "", ErrNoTopbar
	}
	if code, ok := topbar.Get("countryCode").String(); ok {
		return code, nil
	}
	return defaultCountry, nil
}
