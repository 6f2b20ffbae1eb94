package domain

import "time"

type Channel struct {
	UserID           string    `json:"user_id" db:"user_id"` // channel id without the "UC" prefix
	Handle           *string   `json:"handle,omitempty" db:"handle"`
	DisplayName      string    `json:"display_name" db:"display_name"`
	Description      string    `json:"description" db:"description"`
	ProfilePicture   *string   `json:"profile_picture,omitempty" db:"profile_picture"`
	Banner           *string   `json:"banner,omitempty" db:"banner"`
	Verified         bool      `json:"verified" db:"verified"`
	OAC              bool      `json:"oac" db:"oac"`
	Subscribers      *int64    `json:"subscribers,omitempty" db:"subscribers"`
	Views            *int64    `json:"views,omitempty" db:"views"`
	Videos           *int64    `json:"videos,omitempty" db:"videos"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	Country          *string   `json:"country,omitempty" db:"country"`
	HasBusinessEmail bool      `json:"has_business_email" db:"has_business_email"`
	Links            []Link    `json:"links,omitempty" db:"-"`
	Tags             []string  `json:"tags,omitempty" db:"-"`

	Deleted           bool   `json:"deleted" db:"deleted"`
	Hidden            bool   `json:"hidden" db:"hidden"`
	Terminated        bool   `json:"terminated" db:"terminated"`
	TerminationReason string `json:"termination_reason,omitempty" db:"termination_reason"`

	NoIndex          bool     `json:"no_index" db:"no_index"`
	Unlisted         bool     `json:"unlisted" db:"unlisted"`
	FamilySafe       bool     `json:"family_safe" db:"family_safe"`
	BlockedCountries []string `json:"blocked_countries,omitempty" db:"-"`
	ChannelTabs      []string `json:"channel_tabs,omitempty" db:"-"`
	HasCarousel      bool     `json:"has_carousel" db:"has_carousel"`

	CMSAssociation *ContentOwnerAssociation `json:"cms_association,omitempty" db:"-"`
}

// NewChannel returns a channel with the defaults of an empty profile.
func NewChannel(userID string) *Channel {
	return &Channel{UserID: userID, FamilySafe: true}
}

// Available reports whether the channel is in none of the terminal states.
func (c *Channel) Available() bool {
	return !c.Deleted && !c.Hidden && !c.Terminated
}

// ChannelID is the full browse id of the channel.
func (c *Channel) ChannelID() string {
	return "UC" + c.UserID
}

// AddTags appends tags not already present, keeping first-seen order.
func (c *Channel) AddTags(tags ...string) {
	seen := make(map[string]struct{}, len(c.Tags))
	for _, t := range c.Tags {
		seen[t] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		c.Tags = append(c.Tags, t)
	}
}

type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ContentOwnerAssociation struct {
	CMSID                     string `json:"cms_id"`
	CreatedAt                 int64  `json:"created_at"`
	ActivatedAt               int64  `json:"activated_at"`
	CanWebClaim               bool   `json:"can_web_claim"`
	CanViewRevenue            bool   `json:"can_view_revenue"`
	CanEnableCID              bool   `json:"can_enable_cid"`
	DisableAdBlockingSettings bool   `json:"disable_ad_blocking_settings"`
	DefaultChannel            bool   `json:"default_channel"`
}

// HiddenUser is an account hidden from a creator's comment sections.
type HiddenUser struct {
	DisplayName string  `json:"display_name"`
	ChannelID   string  `json:"channel_id"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type ResolvedURL struct {
	BrowseID *string
	URL      *string
}

// ConditionalRedirect is what a channel browse looks like from a specific
// network location: blocked outright or redirected to another channel.
type ConditionalRedirect struct {
	Blocked   bool
	ChannelID string
}
