package extract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube/tree"
	"tubeharvest/testdata/utils"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixture(t *testing.T, name string) tree.Node {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	n, err := tree.Parse(raw)
	require.NoError(t, err)
	return n
}

func parse(t *testing.T, doc string) tree.Node {
	t.Helper()
	n, err := tree.Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

func TestChannel_Verified(t *testing.T) {
	ch := Channel(fixture(t, "channel_verified.json"), "abc")

	assert.Equal(t, "abc", ch.UserID)
	assert.Equal(t, "Example Channel", ch.DisplayName)
	assert.Equal(t, "We make videos.", ch.Description)
	assert.True(t, ch.Verified)
	assert.False(t, ch.OAC)
	assert.Equal(t, utils.Ptr("avatar-asset"), ch.ProfilePicture)
	assert.Equal(t, utils.Ptr("banner-asset"), ch.Banner)
	assert.Equal(t, []string{"Home", "Videos", "Shorts"}, ch.ChannelTabs)
	assert.Equal(t, []string{"music", "live"}, ch.Tags)
	assert.True(t, ch.FamilySafe)
	assert.False(t, ch.HasCarousel)
	assert.Len(t, ch.BlockedCountries, 246)
	assert.NotContains(t, ch.BlockedCountries, "US")
	assert.Contains(t, ch.BlockedCountries, "FR")
	assert.True(t, ch.Available())
}

func TestChannel_Terminated(t *testing.T) {
	ch := Channel(fixture(t, "channel_terminated.json"), "abc")

	assert.True(t, ch.Terminated)
	assert.False(t, ch.Hidden)
	assert.False(t, ch.Deleted)
	assert.Contains(t, ch.TerminationReason, "terminated")
	assert.False(t, ch.Available())
	assert.Empty(t, ch.DisplayName)
	assert.Nil(t, ch.BlockedCountries)
}

func TestChannel_AlertMapping(t *testing.T) {
	hidden := Channel(parse(t, `{"alerts":{"alertRenderer":{"text":{"simpleText":"This channel is not available."}}}}`), "x")
	assert.True(t, hidden.Hidden)
	assert.False(t, hidden.Terminated)
	assert.Empty(t, hidden.TerminationReason)

	deleted := Channel(parse(t, `{"alerts":{"alertRenderer":{"text":{"simpleText":"This channel does not exist."}}}}`), "x")
	assert.True(t, deleted.Deleted)
	assert.False(t, deleted.Hidden)
}

func TestChannel_ArtistBadge(t *testing.T) {
	doc := `{"header":{"pageHeaderRenderer":{"content":{"pageHeaderViewModel":{"title":{"dynamicTextViewModel":{"text":{"attachmentRuns":{"element":{"type":{"imageType":{"image":{"sources":{"clientResource":{"imageName":"MUSIC_FILLED"}}}}}}}}}}}}}}}`
	ch := Channel(parse(t, doc), "x")

	assert.True(t, ch.OAC)
	assert.False(t, ch.Verified)
}

func TestChannel_CarouselAndMicroformat(t *testing.T) {
	ch := Channel(fixture(t, "channel_carousel.json"), "x")

	assert.True(t, ch.HasCarousel)
	assert.True(t, ch.NoIndex)
	assert.True(t, ch.Unlisted)
	assert.False(t, ch.FamilySafe)
	assert.Nil(t, ch.ProfilePicture)
	assert.Len(t, ch.BlockedCountries, 249)
}

func TestChannel_EmptyResponse(t *testing.T) {
	ch := Channel(parse(t, `{}`), "x")

	assert.Equal(t, domain.NewChannel("x"), ch)
}

func TestEnrichAbout(t *testing.T) {
	ch := Channel(fixture(t, "channel_verified.json"), "abc")
	EnrichAbout(fixture(t, "about.json"), ch)

	assert.Equal(t, utils.Ptr(int64(1500000)), ch.Subscribers)
	assert.Equal(t, utils.Ptr(int64(61943233845)), ch.Views)
	assert.Equal(t, utils.Ptr(int64(823)), ch.Videos)
	assert.Equal(t, utils.Ptr("caféshow"), ch.Handle)
	assert.Equal(t, utils.Ptr("US"), ch.Country)
	assert.True(t, ch.HasBusinessEmail)
	assert.Equal(t, []domain.Link{{Name: "Shop", URL: "shop.example.com"}}, ch.Links)
	assert.Equal(t, int64(1329609600000), ch.CreatedAt.UnixMilli())

	assert.Equal(t, "Example Channel", ch.DisplayName)
	assert.True(t, ch.Verified)
}

func TestEnrichAbout_NeverClears(t *testing.T) {
	ch := domain.NewChannel("abc")
	ch.Handle = utils.Ptr("kept")
	ch.Country = utils.Ptr("GB")
	ch.HasBusinessEmail = true
	ch.Links = []domain.Link{{Name: "a", URL: "b"}}

	EnrichAbout(fixture(t, "about_hidden_subscribers.json"), ch)

	assert.Nil(t, ch.Subscribers)
	assert.Equal(t, utils.Ptr(int64(1)), ch.Views)
	assert.Equal(t, utils.Ptr(int64(1)), ch.Videos)
	assert.Equal(t, utils.Ptr("kept"), ch.Handle)
	assert.Equal(t, utils.Ptr("GB"), ch.Country)
	assert.True(t, ch.HasBusinessEmail)
	assert.Len(t, ch.Links, 1)
	assert.True(t, ch.CreatedAt.IsZero())
}

func TestEnrichAbout_MissingViewModel(t *testing.T) {
	ch := domain.NewChannel("abc")
	EnrichAbout(parse(t, `{"onResponseReceivedEndpoints":[]}`), ch)
	assert.Equal(t, domain.NewChannel("abc"), ch)
}

func TestTabPage(t *testing.T) {
	page := TabPage(fixture(t, "videos_tab.json"), now)

	require.Len(t, page.Videos, 3)
	assert.Equal(t, "page-2", page.Continuation)

	first := page.Videos[0]
	assert.Equal(t, "dQw4w9WgXcQ", first.VideoID)
	assert.Equal(t, int64(1234), first.Views)
	assert.False(t, first.HiddenViewCount)
	assert.Equal(t, utils.Ptr("4K"), first.Badge)
	assert.Equal(t, utils.Ptr(213), first.LengthSeconds)
	assert.Equal(t, utils.Ptr(now.Add(-48*time.Hour)), first.ApproxPublishedAt)

	noViews := page.Videos[1]
	assert.Equal(t, int64(0), noViews.Views)
	assert.False(t, noViews.HiddenViewCount)
	assert.Nil(t, noViews.LengthSeconds)
	assert.Nil(t, noViews.ApproxPublishedAt)

	hidden := page.Videos[2]
	assert.Equal(t, "bbbbbbbbbbb", hidden.VideoID)
	assert.Equal(t, int64(0), hidden.Views)
	assert.True(t, hidden.HiddenViewCount)
}

func TestTabPage_Terminal(t *testing.T) {
	page := TabPage(fixture(t, "channel_terminated.json"), now)

	assert.Empty(t, page.Videos)
	assert.Empty(t, page.Continuation)
}

func TestContinuationPage(t *testing.T) {
	page := ContinuationPage(fixture(t, "videos_continuation.json"), now)

	require.Len(t, page.Videos, 1)
	assert.Equal(t, "ddddddddddd", page.Videos[0].VideoID)
	assert.Equal(t, int64(12), page.Videos[0].Views)
	assert.Nil(t, page.Videos[0].Badge)
	assert.Empty(t, page.Continuation)
}

func TestContinuationPage_TokenOnly(t *testing.T) {
	doc := `{"onResponseReceivedActions":[{"appendContinuationItemsAction":{"continuationItems":[
		{"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"next"}}}}]}}]}`
	page := ContinuationPage(parse(t, doc), now)

	assert.Empty(t, page.Videos)
	assert.Equal(t, "next", page.Continuation)
}

func TestReloadPage(t *testing.T) {
	page := ReloadPage(fixture(t, "videos_popular.json"), now)

	require.Len(t, page.Videos, 1)
	assert.Equal(t, int64(9999999), page.Videos[0].Views)
	assert.Equal(t, utils.Ptr("CC"), page.Videos[0].Badge)
	assert.Equal(t, "popular-2", page.Continuation)
}

func TestWatchNext(t *testing.T) {
	recs, err := WatchNext(fixture(t, "watch_next.json"))
	require.NoError(t, err)

	assert.Equal(t, []domain.WatchNext{
		{UserID: "aaaaaaaaaaaaaaaaaaaaaa", VideoID: "fffffffffff"},
		{UserID: "bbbbbbbbbbbbbbbbbbbbbb", VideoID: "ggggggggggg"},
	}, recs)
}

func TestWatchNext_SkipsNonChannelBylines(t *testing.T) {
	doc := `{"contents":{"twoColumnWatchNextResults":{"secondaryResults":{"secondaryResults":{"results":[
		{"compactVideoRenderer":{"videoId":"fffffffffff","shortBylineText":{"runs":[{"navigationEndpoint":{"browseEndpoint":{"browseId":"FEmusic_channel_xyzxyzxyz"}}}]}}},
		{"compactVideoRenderer":{"videoId":"ggggggggggg","shortBylineText":{"runs":[{"navigationEndpoint":{"browseEndpoint":{"browseId":"VLPLxyz"}}}]}}}
	]}}}}}`

	recs, err := WatchNext(parse(t, doc))

	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCreatorChannels_SkipsNonChannelIDs(t *testing.T) {
	chans := CreatorChannels(parse(t, `{"channels":[{"channelId":"HCxyz","title":"x"},{"channelId":"UCabc","title":"y"}]}`))

	require.Len(t, chans, 1)
	assert.Equal(t, "abc", chans[0].UserID)
}

func TestVideoIDShape(t *testing.T) {
	var ids []string
	for _, page := range []VideoPage{
		TabPage(fixture(t, "videos_tab.json"), now),
		ContinuationPage(fixture(t, "videos_continuation.json"), now),
		ReloadPage(fixture(t, "videos_popular.json"), now),
	} {
		for _, v := range page.Videos {
			ids = append(ids, v.VideoID)
		}
	}
	recs, err := WatchNext(fixture(t, "watch_next.json"))
	require.NoError(t, err)
	for _, r := range recs {
		ids = append(ids, r.VideoID)
	}

	require.NotEmpty(t, ids)
	for _, id := range ids {
		assert.Regexp(t, `^[A-Za-z0-9_-]{11}$`, id)
	}
}

func TestContinuationPage_SkipsMalformedVideoIDs(t *testing.T) {
	doc := `{"onResponseReceivedActions":[{"appendContinuationItemsAction":{"continuationItems":[
		{"richItemRenderer":{"content":{"videoRenderer":{"videoId":"short"}}}},
		{"richItemRenderer":{"content":{"videoRenderer":{"videoId":"abc/def?ghi"}}}},
		{"richItemRenderer":{"content":{"videoRenderer":{"videoId":"A-b_C9d8E7f"}}}}]}}]}`
	page := ContinuationPage(parse(t, doc), now)

	require.Len(t, page.Videos, 1)
	assert.Equal(t, "A-b_C9d8E7f", page.Videos[0].VideoID)

	recs, err := WatchNext(parse(t, `{"contents":{"twoColumnWatchNextResults":{"secondaryResults":{"secondaryResults":{"results":[
		{"compactVideoRenderer":{"videoId":"toolongvideoid","shortBylineText":{"runs":[{"navigationEndpoint":{"browseEndpoint":{"browseId":"UCabc"}}}]}}}
	]}}}}}`))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestWatchNext_ContainerRules(t *testing.T) {
	_, err := WatchNext(parse(t, `{"contents":{"twoColumnWatchNextResults":{}}}`))
	assert.ErrorIs(t, err, ErrNoRecommendations)

	recs, err := WatchNext(parse(t, `{"contents":{"twoColumnWatchNextResults":{"secondaryResults":{"secondaryResults":{}}}}}`))
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestResolvedURL(t *testing.T) {
	res := ResolvedURL(parse(t, `{"endpoint":{"browseEndpoint":{"browseId":"UCabc"}}}`))
	require.NotNil(t, res)
	assert.Equal(t, utils.Ptr("UCabc"), res.BrowseID)
	assert.Nil(t, res.URL)

	res = ResolvedURL(parse(t, `{"endpoint":{"urlEndpoint":{"url":"https://example.com"}}}`))
	require.NotNil(t, res)
	assert.Equal(t, utils.Ptr("https://example.com"), res.URL)

	assert.Nil(t, ResolvedURL(parse(t, `{}`)))
	assert.Nil(t, ResolvedURL(tree.Missing()))
}

func TestHasPublicSubscriptions(t *testing.T) {
	doc := `{"contents":{"tvBrowseRenderer":{"content":{"tvSurfaceContentRenderer":{"content":{"sectionListRenderer":{"contents":[
		{"shelfRenderer":{"headerRenderer":{"shelfHeaderRenderer":{"avatarLockup":{"avatarLockupRenderer":{"title":{"simpleText":"Uploads"}}}}}}},
		{"shelfRenderer":{"headerRenderer":{"shelfHeaderRenderer":{"avatarLockup":{"avatarLockupRenderer":{"title":{"simpleText":"Subscriptions"}}}}}}}
	]}}}}}}}`
	assert.True(t, HasPublicSubscriptions(parse(t, doc)))
	assert.False(t, HasPublicSubscriptions(parse(t, `{}`)))
}

func TestConditionalRedirect(t *testing.T) {
	blocked := ConditionalRedirect(parse(t, `{"alerts":[{"alertRenderer":{"text":{"simpleText":"This channel is not available."}}}]}`))
	assert.Equal(t, &domain.ConditionalRedirect{Blocked: true}, blocked)

	redirect := ConditionalRedirect(parse(t, `{"onResponseReceivedActions":[{"navigateAction":{"endpoint":{"browseEndpoint":{"browseId":"UCother"}}}}]}`))
	assert.Equal(t, &domain.ConditionalRedirect{ChannelID: "UCother"}, redirect)

	assert.Nil(t, ConditionalRedirect(parse(t, `{}`)))
}

func TestCountry(t *testing.T) {
	code, err := Country(parse(t, `{"topbar":{"desktopTopbarRenderer":{"countryCode":"DE"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "DE", code)

	code, err = Country(parse(t, `{"topbar":{"desktopTopbarRenderer":{}}}`))
	require.NoError(t, err)
	assert.Equal(t, "US", code)

	_, err = Country(parse(t, `{}`))
	assert.ErrorIs(t, err, ErrNoTopbar)
}

func TestCreatorSearch(t *testing.T) {
	ids := CreatorSearch(parse(t, `{"channels":[{"channelId":"UCone"},{"channelId":"U"},{"channelId":"UCtwo"}]}`))
	assert.Equal(t, []string{"one", "two"}, ids)

	assert.Empty(t, CreatorSearch(parse(t, `{}`)))
}

func TestCreatorChannels(t *testing.T) {
	chans := CreatorChannels(fixture(t, "creator_channels.json"))
	require.Len(t, chans, 2)

	c := chans[0]
	assert.Equal(t, "cccccccccccccccccccccc", c.UserID)
	assert.Equal(t, "Creator", c.DisplayName)
	assert.True(t, c.Verified)
	assert.Equal(t, utils.Ptr("creator"), c.Handle)
	assert.Equal(t, utils.Ptr("creator-avatar"), c.ProfilePicture)
	assert.Equal(t, utils.Ptr(int64(1200)), c.Subscribers)
	assert.Equal(t, utils.Ptr(int64(98765)), c.Views)
	assert.Equal(t, utils.Ptr(int64(42)), c.Videos)
	assert.Equal(t, int64(1329609600000), c.CreatedAt.UnixMilli())
	require.NotNil(t, c.CMSAssociation)
	assert.Equal(t, "cms-1", c.CMSAssociation.CMSID)
	assert.True(t, c.CMSAssociation.CanWebClaim)

	assert.Nil(t, chans[1].ProfilePicture)
	assert.Nil(t, chans[1].Subscribers)
}

func TestHiddenUsers(t *testing.T) {
	users := HiddenUsers(fixture(t, "hidden_users.json"))

	assert.Equal(t, []domain.HiddenUser{
		{DisplayName: "Troll", ChannelID: "UCeeeeeeeeeeeeeeeeeeeeee", AvatarURL: utils.Ptr("troll")},
		{DisplayName: "Quiet", ChannelID: "UCffffffffffffffffffffff"},
	}, users)

	assert.Empty(t, HiddenUsers(parse(t, `{}`)))
}
