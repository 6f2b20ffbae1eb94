package innertube

const (
	apiHost    = "youtubei.googleapis.com"
	studioHost = "studio.youtube.com"
	webHost    = "www.youtube.com"
)

// ClientIdentity is the (client name, client version) pair sent in every
// request context. The upstream tailors response shapes to it.
type ClientIdentity struct {
	Name    int
	Version string
}

var (
	ClientWeb            = ClientIdentity{Name: 1, Version: "2.20240614.01.00"}
	ClientTV             = ClientIdentity{Name: 7, Version: "7.20250126.17.00"}
	ClientStudio         = ClientIdentity{Name: 62, Version: "1.20250527.06.00"}
	ClientStudioComments = ClientIdentity{Name: 62, Version: "1.20250731.01.00"}
)

type OperationID int

const (
	OpChannel OperationID = iota
	OpChannelAbout
	OpVideos
	OpPopularVideos
	OpVideosContinuation
	OpResolveURL
	OpWatchNext
	OpPublicSubscriptions
	OpSearchCreators
	OpCreatorChannels
	OpHiddenUsers
	OpHideUser
	OpConditionalRedirect
	OpDetectCountry
)

// Format selects how one side of a call is serialized.
type Format int

const (
	// FormatCodec defers to the client's configured codec.
	FormatCodec Format = iota
	FormatJSON
	// FormatBase64Codec is the codec's encoding wrapped in standard base64.
	FormatBase64Codec
	// FormatNone means the body is ignored.
	FormatNone
)

type Credential uint8

const (
	NeedsAuthorization Credential = 1 << iota
	NeedsCookie
)

type Operation struct {
	Name      string
	Path      string
	Host      string
	Origin    string
	Client    ClientIdentity
	FieldMask string

	// Fully qualified schema names, used by binary codecs.
	RequestMessage  string
	ResponseMessage string

	RequestFormat  Format
	ResponseFormat Format
	Requires       Credential
	Headers        map[string]string

	// NotFoundIsEmpty turns a 404 into an empty result.
	NotFoundIsEmpty bool
	// Direct operations go to Host through a caller proxy instead of the
	// client's target and egress address.
	Direct bool
}

const (
	videosTabParams = "EgZ2aWRlb3PyBgQKAjoA"
	liveTabParams   = "EgdzdHJlYW1z8gYECgJ6AA=="

	popularRouting = "8gYuGix6KhImCiQ2N2Y1N2IwZi0wMDAwLTJjNjctODA4OC0zYzI4NmQzZTJkYjIgAg%3D%3D"
	aboutRouting   = "8gYrGimaASYKJDY3M2UzYjY0LTAwMDAtMjRmMy04ZjMyLTU4MjQyOWM2ODNjOA%3D%3D"

	countryBrowseID = "FEwhat_to_watch"
)

const (
	browseRequest  = "youtube.innertube.BrowseRequest"
	browseResponse = "youtube.innertube.BrowseResponse"
)

var operations = map[OperationID]Operation{
	OpChannel: {
		Name:   "channel",
		Path:   "/youtubei/v1/browse",
		Host:   apiHost,
		Client: ClientWeb,
		FieldMask: "contents.twoColumnBrowseResultsRenderer.tabs.tabRenderer.title," +
			"header.pageHeaderRenderer.content.pageHeaderViewModel(title.dynamicTextViewModel.text.attachmentRuns.element.type.imageType.image.sources.clientResource.imageName,banner.imageBannerViewModel.image.sources.url)," +
			"metadata.channelMetadataRenderer(title,description,avatar.thumbnails.url,facebookProfileId)," +
			"microformat.microformatDataRenderer(noindex,unlisted,familySafe,tags,availableCountries)," +
			"alerts.alertRenderer.text.simpleText," +
			"header(carouselHeaderRenderer.contents.carouselItemRenderer.carouselItems.defaultPromoPanelRenderer.title.runs.text,pageHeaderRenderer)",
		RequestMessage:  browseRequest,
		ResponseMessage: browseResponse,
	},
	OpChannelAbout: {
		Name:   "channel_about",
		Path:   "/youtubei/v1/browse",
		Host:   apiHost,
		Client: ClientWeb,
		FieldMask: "onResponseReceivedEndpoints.appendContinuationItemsAction.continuationItems.aboutChannelRenderer.metadata.aboutChannelViewModel(" +
			"country,subscriberCountText,viewCountText,joinedDateText.content,canonicalChannelUrl,videoCountText," +
			"signInForBusinessEmail.content,links.channelExternalLinkViewModel(title.content,link.content))",
		RequestMessage:  browseRequest,
		ResponseMessage: browseResponse,
	},
	OpVideos: {
		Name:   "videos",
		Path:   "/youtubei/v1/browse",
		Host:   apiHost,
		Client: ClientWeb,
		FieldMask: "contents.twoColumnBrowseResultsRenderer.tabs.tabRenderer.content.richGridRenderer.contents(" +
			"richItemRenderer.content.videoRenderer(videoId,viewCountText.simpleText,lengthText.simpleText,publishedTimeText.simpleText,badges,upcomingEventData)," +
			"continuationItemRenderer.continuationEndpoint.continuationCommand.token)",
		RequestMessage:  browseRequest,
		ResponseMessage: browseResponse,
	},
	OpPopularVideos: {
		Name:   "popular_videos",
		Path:   "/youtubei/v1/browse",
		Host:   apiHost,
		Client: ClientWeb,
		FieldMask: "onResponseReceivedActions.reloadContinuationItemsCommand.continuationItems(" +
			"richItemRenderer.content.videoRenderer(videoId,viewCountText.simpleText,lengthText.simpleText,publishedTimeText.simpleText,badges,upcomingEventData)," +
			"continuationItemRenderer.continuationEndpoint.continuationCommand.token)",
		RequestMessage:  browseRequest,
		ResponseMessage: browseResponse,
	},
	OpVideosContinuation: {
		Name:   "videos_continuation",
		Path:   "/youtubei/v1/browse",
		Host:   apiHost,
		Client: ClientWeb,
		FieldMask: "onResponseReceivedActions.appendContinuationItemsAction.continuationItems(" +
			"richItemRenderer.content.videoRenderer(videoId,viewCountText.simpleText,lengthText.simpleText,publishedTimeText.simpleText,badges,upcomingEventData)," +
			"continuationItemRenderer.continuationEndpoint.continuationCommand.token)",
		RequestMessage:  browseRequest,
		ResponseMessage: browseResponse,
	},
	OpResolveURL: {
		Name:            "resolve_url",
		Path:            "/youtubei/v1/navigation/resolve_url",
		Host:            apiHost,
		Client:          ClientWeb,
		FieldMask:       "endpoint.browseEndpoint.browseId,endpoint.urlEndpoint.url",
		RequestMessage:  "youtube.innertube.ResolveUrlRequest",
		ResponseMessage: "youtube.innertube.ResolveUrlResponse",
		NotFoundIsEmpty: true,
	},
	OpWatchNext: {
		Name:            "watch_next",
		Path:            "/youtubei/v1/next",
		Host:            apiHost,
		Client:          ClientWeb,
		FieldMask:       "contents.twoColumnWatchNextResults(secondaryResults.secondaryResults.results(compactVideoRenderer(videoId,shortBylineText.runs(navigationEndpoint.browseEndpoint.browseId))))",
		RequestMessage:  "youtube.innertube.NextRequest",
		ResponseMessage: "youtube.innertube.NextResponse",
	},
	OpPublicSubscriptions: {
		Name:            "public_subscriptions",
		Path:            "/youtubei/v1/browse",
		Host:            apiHost,
		Client:          ClientTV,
		FieldMask:       "contents.tvBrowseRenderer.content.tvSurfaceContentRenderer.content.sectionListRenderer.contents.shelfRenderer.headerRenderer.shelfHeaderRenderer.avatarLockup.avatarLockupRenderer.title.simpleText",
		RequestMessage:  browseRequest,
		ResponseMessage: browseResponse,
	},
	OpSearchCreators: {
		Name:            "search_creators",
		Path:            "/youtubei/v1/creator/search_public_creator_entities?alt=json",
		Host:            studioHost,
		Origin:          "https://" + studioHost,
		Client:          ClientStudio,
		FieldMask:       "channels(channelId)",
		RequestMessage:  "youtube.innertube.SearchPublicCreatorEntitiesRequest",
		ResponseFormat:  FormatJSON,
		ResponseMessage: "youtube.innertube.SearchPublicCreatorEntitiesResponse",
	},
	OpCreatorChannels: {
		Name:            "creator_channels",
		Path:            "/youtubei/v1/creator/get_creator_channels",
		Host:            apiHost,
		Client:          ClientWeb,
		FieldMask:       "channels(channelId,title,thumbnailDetails.thumbnails.url,metric,timeCreatedSeconds,contentOwnerAssociation,isNameVerified,channelHandle)",
		RequestMessage:  "youtube.innertube.GetCreatorChannelsRequest",
		ResponseMessage: "youtube.innertube.GetCreatorChannelsResponse",
		ResponseFormat:  FormatBase64Codec,
		Requires:        NeedsAuthorization,
	},
	OpHiddenUsers: {
		Name:            "hidden_users",
		Path:            "/youtubei/v1/creator/get_creator_channels?alt=json",
		Host:            studioHost,
		Origin:          "https://" + studioHost,
		Client:          ClientStudioComments,
		FieldMask:       "channels.commentsSettings.hiddenUsers",
		RequestFormat:   FormatJSON,
		ResponseFormat:  FormatJSON,
		RequestMessage:  "youtube.innertube.GetCreatorChannelsRequest",
		ResponseMessage: "youtube.innertube.GetCreatorChannelsResponse",
	},
	OpHideUser: {
		Name:           "hide_user",
		Path:           "/youtubei/v1/flag/flag",
		Host:           webHost,
		Origin:         "https://" + webHost,
		Client:         ClientWeb,
		RequestMessage: "youtube.innertube.FlagRequest",
		ResponseFormat: FormatNone,
		Requires:       NeedsAuthorization | NeedsCookie,
		Headers: map[string]string{
			"X-Goog-Encode-Response-If-Executable": "base64",
		},
	},
	OpConditionalRedirect: {
		Name:            "conditional_redirect",
		Path:            "/youtubei/v1/browse",
		Host:            apiHost,
		Client:          ClientWeb,
		FieldMask:       "alerts,onResponseReceivedActions.navigateAction.endpoint.browseEndpoint",
		RequestMessage:  browseRequest,
		ResponseMessage: browseResponse,
		Direct:          true,
	},
	OpDetectCountry: {
		Name:            "detect_country",
		Path:            "/youtubei/v1/browse",
		Host:            apiHost,
		Client:          ClientWeb,
		FieldMask:       "topbar.desktopTopbarRenderer.countryCode",
		RequestMessage:  browseRequest,
		ResponseMessage: browseResponse,
		Direct:          true,
	},
}

// Lookup returns the table entry for an operation.
func Lookup(id OperationID) (Operation, bool) {
	op, ok := operations[id]
	return op, ok
}
