package ingest

import (
	"errors"
	"regexp"
	"strings"
)

// Platform identifies the source site a video was submitted from.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformTikTok  Platform = "tiktok"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported platform: only YouTube and TikTok URLs are accepted")
	ErrVideoIDNotFound     = errors.New("could not extract video ID from URL")
)

// Classification is the result of platform detection on a submitted URL.
type Classification struct {
	Platform Platform
	VideoID  string

	// TikTokUsername is the @handle from the URL path, when present. It is
	// informational only: normalization uses it for fallback attribution,
	// and its absence never fails classification.
	TikTokUsername string
}

// Ordered: first match wins. The 11-character token patterns cover the
// classic URL shapes; shorts came later and gets its own pattern.
var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

var (
	tiktokIDPattern       = regexp.MustCompile(`/video/(\d+)`)
	tiktokUsernamePattern = regexp.MustCompile(`tiktok\.com/@([\w.]+)`)
)

// Classify detects the platform for a user-pasted URL and extracts the
// platform-native video ID. Detection is a lowercase substring match on the
// known host fragments, so it tolerates mobile hosts, shortlinks and missing
// schemes the same way the submit form does.
func Classify(rawURL string) (Classification, error) {
	rawURL = strings.TrimSpace(rawURL)
	lower := strings.ToLower(rawURL)

	switch {
	case strings.Contains(lower, "youtube.com"), strings.Contains(lower, "youtu.be"):
		for _, p := range youtubeIDPatterns {
			if m := p.FindStringSubmatch(rawURL); m != nil {
				return Classification{Platform: PlatformYouTube, VideoID: m[1]}, nil
			}
		}
		return Classification{}, ErrVideoIDNotFound

	case strings.Contains(lower, "tiktok.com"):
		m := tiktokIDPattern.FindStringSubmatch(rawURL)
		if m == nil {
			return Classification{}, ErrVideoIDNotFound
		}
		c := Classification{Platform: PlatformTikTok, VideoID: m[1]}
		if um := tiktokUsernamePattern.FindStringSubmatch(rawURL); um != nil {
			c.TikTokUsername = um[1]
		}
		return c, nil
	}

	return Classification{}, ErrUnsupportedPlatform
}

// EmbedURL synthesizes the iframe source for a classified video. The embed
// URL is always built locally from the platform and ID, never taken from an
// oEmbed response, so the player origin stays under our control.
func EmbedURL(platform Platform, videoID string) string {
	switch platform {
	case PlatformYouTube:
		return "https://www.youtube.com/embed/" + videoID
	case PlatformTikTok:
		return "https://www.tiktok.com/embed/v2/" + videoID
	}
	return ""
}

// DefaultThumbnailURL returns the platform fallback thumbnail for videos whose
// oEmbed response carried none. YouTube exposes a predictable CDN path keyed
// by video ID; TikTok has no equivalent, so a static placeholder is used.
func DefaultThumbnailURL(platform Platform, videoID string) string {
	if platform == PlatformYouTube {
		return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
	}
	return "/tiktok-placeholder.svg"
}
