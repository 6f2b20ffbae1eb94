// Package extract normalizes decoded upstream trees into domain records.
// Every walk checks presence before descending; a missing branch leaves
// the corresponding field at its default.
package extract

import (
	"regexp"
	"strings"

	"tubeharvest/internal/innertube/tree"
)

const (
	pageAssetHost    = ".googleusercontent.com/"
	creatorAssetHost = ".ggpht.com/"
)

// assetPath strips a CDN URL down to its asset path: everything up to and
// including the host marker goes, as does the sizing suffix from '='.
func assetPath(url, hostMarker string) (string, bool) {
	i := strings.Index(url, hostMarker)
	if i < 0 {
		return "", false
	}
	path := url[i+len(hostMarker):]
	if j := strings.IndexByte(path, '='); j >= 0 {
		path = path[:j]
	}
	return path, true
}

// creatorAsset applies the creator API rules, where URLs on the yt* hosts
// are default placeholders.
func creatorAsset(url string) (string, bool) {
	if strings.HasPrefix(url, "https://yt") {
		return "", false
	}
	return assetPath(url, creatorAssetHost)
}

// userID drops the "UC" prefix of a channel id. Ids without it do not name
// a channel.
func userID(channelID string) (string, bool) {
	return strings.CutPrefix(channelID, "UC")
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// videoID reads an 11-character video id; anything else is dropped.
func videoID(n tree.Node) (string, bool) {
	id, ok := n.String()
	if !ok || !videoIDPattern.MatchString(id) {
		return "", false
	}
	return id, true
}
