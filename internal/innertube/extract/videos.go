package extract

import (
	"time"

	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube/tree"
	"tubeharvest/internal/textparse"
)

var ignoredBadges = map[string]struct{}{
	"360°":       {},
	"VR180":      {},
	"Fundraiser": {},
}

// VideoPage is one page of an uploads listing.
type VideoPage struct {
	Videos       []domain.Video
	Continuation string
}

// TabPage reads the first page of a channel tab.
func TabPage(root tree.Node, now time.Time) VideoPage {
	var page VideoPage
	for _, tab := range root.Get("contents", "twoColumnBrowseResultsRenderer", "tabs").Items() {
		items := tab.Get("tabRenderer", "content", "richGridRenderer", "contents")
		page.merge(gridItems(items, now))
	}
	return page
}

// ReloadPage reads a page delivered by a reload command, as served for a
// synthesized continuation.
func ReloadPage(root tree.Node, now time.Time) VideoPage {
	var page VideoPage
	for _, action := range root.Get("onResponseReceivedActions").Items() {
		page.merge(gridItems(action.Get("reloadContinuationItemsCommand", "continuationItems"), now))
	}
	return page
}

// ContinuationPage reads a page appended by a continuation.
func ContinuationPage(root tree.Node, now time.Time) VideoPage {
	var page VideoPage
	for _, action := range root.Get("onResponseReceivedActions").Items() {
		page.merge(gridItems(action.Get("appendContinuationItemsAction", "continuationItems"), now))
	}
	return page
}

func (p *VideoPage) merge(o VideoPage) {
	p.Videos = append(p.Videos, o.Videos...)
	if o.Continuation != "" {
		p.Continuation = o.Continuation
	}
}

func gridItems(items tree.Node, now time.Time) VideoPage {
	var page VideoPage
	for _, item := range items.Items() {
		if r := item.Get("richItemRenderer", "content", "videoRenderer"); r.Exists() {
			if v, ok := video(r, now); ok {
				page.Videos = append(page.Videos, v)
			}
		}
		token := item.Get("continuationItemRenderer", "continuationEndpoint", "continuationCommand", "token")
		if t, ok := token.String(); ok {
			page.Continuation = t
		}
	}
	return page
}

func video(r tree.Node, now time.Time) (domain.Video, bool) {
	id, ok := videoID(r.Get("videoId"))
	if !ok || r.Get("upcomingEventData").Exists() {
		return domain.Video{}, false
	}

	viewCount := r.Get("viewCountText")
	v := domain.Video{VideoID: id}
	v.Views, v.HiddenViewCount = textparse.ViewCount(viewCount.Get("simpleText").Text(), viewCount.Exists())

	for _, b := range r.Get("badges").Items() {
		label, ok := b.Get("metadataBadgeRenderer", "label").String()
		if !ok {
			continue
		}
		if _, skip := ignoredBadges[label]; skip {
			continue
		}
		v.Badge = &label
		break
	}

	if length, ok := r.Get("lengthText", "simpleText").String(); ok {
		if secs, ok := textparse.Duration(length); ok {
			v.LengthSeconds = &secs
		}
	}

	if published, ok := r.Get("publishedTimeText", "simpleText").String(); ok {
		if t, ok := textparse.RelativeTime(published, now); ok {
			v.ApproxPublishedAt = &t
		}
	}

	return v, true
}
