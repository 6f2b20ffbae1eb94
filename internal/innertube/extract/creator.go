package extract

import (
	"strings"
	"time"

	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube/tree"
)

// CreatorSearch returns the user ids of the matched channels.
func CreatorSearch(root tree.Node) []string {
	var ids []string
	for _, c := range root.Get("channels").Items() {
		id, ok := c.Get("channelId").String()
		if !ok || len(id) < 2 {
			continue
		}
		ids = append(ids, id[2:])
	}
	return ids
}

// CreatorChannels reads channel records from the creator API.
func CreatorChannels(root tree.Node) []domain.Channel {
	var out []domain.Channel
	for _, c := range root.Get("channels").Items() {
		id, ok := c.Get("channelId").String()
		if !ok {
			continue
		}
		uid, ok := userID(id)
		if !ok {
			continue
		}
		ch := domain.NewChannel(uid)
		ch.DisplayName = c.Get("title").Text()
		ch.Verified, _ = c.Get("isNameVerified").Bool()

		if h, ok := c.Get("channelHandle").String(); ok {
			h = strings.TrimPrefix(h, "@")
			ch.Handle = &h
		}

		thumbs := c.Get("thumbnailDetails", "thumbnails").Items()
		if len(thumbs) > 0 {
			if p, ok := creatorAsset(thumbs[0].Get("url").Text()); ok {
				ch.ProfilePicture = &p
			}
		}

		if m := c.Get("metric"); m.Exists() {
			subs, _ := m.Get("subscriberCount").Int()
			views, _ := m.Get("totalVideoViewCount").Int()
			videos, _ := m.Get("videoCount").Int()
			ch.Subscribers, ch.Views, ch.Videos = &subs, &views, &videos
		}

		if secs, ok := c.Get("timeCreatedSeconds").Int(); ok {
			ch.CreatedAt = time.UnixMilli(secs * 1000).UTC()
		}

		if a := c.Get("contentOwnerAssociation"); a.Exists() {
			ch.CMSAssociation = ownerAssociation(a)
		}

		out = append(out, *ch)
	}
	return out
}

func ownerAssociation(a tree.Node) *domain.ContentOwnerAssociation {
	assoc := &domain.ContentOwnerAssociation{
		CMSID: a.Get("externalContentOwnerId").Text(),
	}
	assoc.CreatedAt, _ = a.Get("createdAt").Int()
	assoc.ActivatedAt, _ = a.Get("activatedAt").Int()
	assoc.CanWebClaim, _ = a.Get("canWebClaim").Bool()
	assoc.CanViewRevenue, _ = a.Get("canViewRevenue").Bool()
	assoc.CanEnableCID, _ = a.Get("canEnableContentId").Bool()
	assoc.DisableAdBlockingSettings, _ = a.Get("disableAdBlockingSettings").Bool()
	assoc.DefaultChannel, _ = a.Get("isDefaultChannel").Bool()
	return assoc
}

// HiddenUsers lists the accounts hidden on the first returned channel.
func HiddenUsers(root tree.Node) []domain.HiddenUser {
	channels := root.Get("channels").Items()
	if len(channels) == 0 {
		return nil
	}

	var out []domain.HiddenUser
	for _, u := range channels[0].Get("commentsSettings", "hiddenUsers").Items() {
		hu := domain.HiddenUser{
			DisplayName: u.Get("displayName").Text(),
			ChannelID:   u.Get("externalChannelId").Text(),
		}
		thumbs := u.Get("avatarThumbnail", "thumbnails").Items()
		if len(thumbs) > 0 {
			if p, ok := creatorAsset(thumbs[0].Get("url").Text()); ok {
				hu.AvatarURL = &p
			}
		}
		out = append(out, hu)
	}
	return out
}
