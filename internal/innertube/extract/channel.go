package extract

import (
	"net/url"
	"strings"

	"tubeharvest/internal/countries"
	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube/tree"
	"tubeharvest/internal/textparse"
)

const (
	badgeVerified = "CHECK_CIRCLE_FILLED"
	badgeArtist   = "MUSIC_FILLED"

	alertHidden  = "This channel is not available."
	alertDeleted = "This channel does not exist."
)

// Channel builds the profile of userID from a browse response.
func Channel(root tree.Node, userID string) *domain.Channel {
	ch := domain.NewChannel(userID)

	for _, tab := range root.Get("contents", "twoColumnBrowseResultsRenderer", "tabs").Items() {
		if title, ok := tab.Get("tabRenderer", "title").String(); ok {
			ch.ChannelTabs = append(ch.ChannelTabs, title)
		}
	}

	header := root.Get("header")
	viewModel := header.Get("pageHeaderRenderer", "content", "pageHeaderViewModel")

	imageName := viewModel.Get("title", "dynamicTextViewModel", "text", "attachmentRuns",
		"element", "type", "imageType", "image", "sources", "clientResource", "imageName").Text()
	switch imageName {
	case badgeVerified:
		ch.Verified = true
	case badgeArtist:
		ch.OAC = true
	}

	if meta := root.Get("metadata", "channelMetadataRenderer"); meta.Exists() {
		ch.DisplayName = meta.Get("title").Text()
		ch.Description = meta.Get("description").Text()
		if src, ok := meta.Get("avatar", "thumbnails", "url").String(); ok {
			if p, ok := assetPath(src, pageAssetHost); ok {
				ch.ProfilePicture = &p
			}
		}
	}

	sources := viewModel.Get("banner", "imageBannerViewModel", "image", "sources").Items()
	if len(sources) > 0 {
		if src, ok := sources[0].Get("url").String(); ok {
			if p, ok := assetPath(src, pageAssetHost); ok {
				ch.Banner = &p
			}
		}
	}

	ch.HasCarousel = header.Get("carouselHeaderRenderer").Exists()

	if mf := root.Get("microformat", "microformatDataRenderer"); mf.Exists() {
		ch.NoIndex, _ = mf.Get("noindex").Bool()
		ch.Unlisted, _ = mf.Get("unlisted").Bool()
		if v, ok := mf.Get("familySafe").Bool(); ok {
			ch.FamilySafe = v
		}
		ch.AddTags(mf.Get("tags").Strings()...)
		ch.BlockedCountries = countries.Blocked(mf.Get("availableCountries").Strings())
	}

	if alert, ok := root.Get("alerts", "alertRenderer", "text", "simpleText").String(); ok {
		applyAlert(ch, alert)
	}

	return ch
}

func applyAlert(ch *domain.Channel, alert string) {
	switch alert {
	case alertHidden:
		ch.Hidden = true
	case alertDeleted:
		ch.Deleted = true
	default:
		ch.Terminated = true
		ch.TerminationReason = alert
	}
}

const canonicalPrefix = "http://www.youtube.com/"

// EnrichAbout copies the about page metadata onto ch. Fields absent from the
// response are left as they are.
func EnrichAbout(root tree.Node, ch *domain.Channel) {
	vm := root.Get("onResponseReceivedEndpoints", "appendContinuationItemsAction", "continuationItems",
		"aboutChannelRenderer", "metadata", "aboutChannelViewModel")
	if !vm.Exists() {
		return
	}

	if text, ok := vm.Get("subscriberCountText").String(); ok {
		n := textparse.Multiplied(strings.TrimSpace(strings.TrimSuffix(text, " subscribers")))
		ch.Subscribers = &n
	}

	if canonical, ok := vm.Get("canonicalChannelUrl").String(); ok {
		if h, ok := handleFromURL(canonical); ok {
			ch.Handle = &h
		}
	}

	if text, ok := vm.Get("viewCountText").String(); ok {
		n := textparse.Numeric(strings.TrimSuffix(text, " views"))
		ch.Views = &n
	}

	if text, ok := vm.Get("videoCountText").String(); ok {
		text = strings.TrimSuffix(strings.TrimSuffix(text, " videos"), " video")
		n := textparse.Numeric(text)
		ch.Videos = &n
	}

	if name, ok := vm.Get("country").String(); ok {
		if code, ok := countries.CodeFor(name); ok {
			ch.Country = &code
		}
	}

	if vm.Get("signInForBusinessEmail").Exists() {
		ch.HasBusinessEmail = true
	}

	var links []domain.Link
	for _, l := range vm.Get("links").Items() {
		link := l.Get("channelExternalLinkViewModel")
		name, okName := link.Get("title", "content").String()
		target, okTarget := link.Get("link", "content").String()
		if okName && okTarget {
			links = append(links, domain.Link{Name: name, URL: target})
		}
	}
	if len(links) > 0 {
		ch.Links = links
	}

	if joined, ok := vm.Get("joinedDateText", "content").String(); ok {
		if t, ok := textparse.JoinedDate(joined); ok {
			ch.CreatedAt = t
		}
	}
}

func handleFromURL(canonical string) (string, bool) {
	path, ok := strings.CutPrefix(canonical, canonicalPrefix)
	if !ok {
		return "", false
	}
	handle, ok := strings.CutPrefix(path, "@")
	if !ok {
		return "", false
	}
	decoded, err := url.PathUnescape(handle)
	if err != nil {
		return "", false
	}
	return decoded, true
}
