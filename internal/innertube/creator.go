package innertube

import (
	"errors"

	"tubeharvest/internal/domain"
	"tubeharvest/internal/innertube/extract"
	"tubeharvest/internal/innertube/tree"
	"tubeharvest/internal/innertube/wire"
)

const restrictToChannels = 10

// SearchCreators finds channels by name and returns their user ids.
func (c *Client) SearchCreators(query string) Request[[]string] {
	if query == "" {
		return invalidRequest[[]string](c, OpSearchCreators, errors.New("empty query"))
	}
	payload := wire.NewPayload().
		Set("query", query).
		Set("filter.restrictResultType", restrictToChannels)
	return newRequest(c, OpSearchCreators, payload, func(root tree.Node) ([]string, error) {
		return extract.CreatorSearch(root), nil
	})
}

// CreatorChannels fetches channel records from the creator API. It needs an
// authorization credential.
func (c *Client) CreatorChannels(channelIDs ...string) Request[[]domain.Channel] {
	if len(channelIDs) == 0 {
		return invalidRequest[[]domain.Channel](c, OpCreatorChannels, errors.New("no channel ids"))
	}
	payload := wire.NewPayload().
		Set("channelIds", channelIDs).
		Set("mask.channelId", true).
		Set("mask.title", true).
		Set("mask.thumbnailDetails.all", true).
		Set("mask.metric.all", true).
		Set("mask.timeCreatedSeconds", true).
		Set("mask.isNameVerified", true).
		Set("mask.channelHandle", true)
	return newRequest(c, OpCreatorChannels, payload, func(root tree.Node) ([]domain.Channel, error) {
		return extract.CreatorChannels(root), nil
	})
}

// HiddenUsers lists the accounts a creator has hidden from comments.
func (c *Client) HiddenUsers(channelID string) Request[[]domain.HiddenUser] {
	if channelID == "" {
		return invalidRequest[[]domain.HiddenUser](c, OpHiddenUsers, errors.New("empty channel id"))
	}
	payload := wire.NewPayload().
		Set("channelIds", []string{channelID}).
		Set("mask.commentsSettings.hiddenUsers.all", true)
	return newRequest(c, OpHiddenUsers, payload, func(root tree.Node) ([]domain.HiddenUser, error) {
		return extract.HiddenUsers(root), nil
	})
}

// HideUser hides or unhides an account from the caller's comment sections.
// It needs both a cookie and an authorization credential.
func (c *Client) HideUser(channelID string, hide bool) Request[struct{}] {
	userID, err := channelUserID(channelID)
	if err != nil {
		return invalidRequest[struct{}](c, OpHideUser, err)
	}
	opt := wire.HideUser
	if !hide {
		opt = wire.UnhideUser
	}
	payload := wire.NewPayload().Set("action", wire.HideUserAction(userID, opt))
	return newRequest(c, OpHideUser, payload, func(tree.Node) (struct{}, error) {
		return struct{}{}, nil
	})
}
