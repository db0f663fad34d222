package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_YouTubeFormats(t *testing.T) {
	for _, url := range []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=120",
	} {
		cls, err := Classify(url)
		require.NoError(t, err, url)
		require.Equal(t, PlatformYouTube, cls.Platform, url)
		require.Equal(t, "dQw4w9WgXcQ", cls.VideoID, url)
		require.Empty(t, cls.TikTokUsername, url)
	}
}

func TestClassify_TikTok(t *testing.T) {
	cls, err := Classify("https://www.tiktok.com/@user123/video/7123456789012345678")
	require.NoError(t, err)
	require.Equal(t, PlatformTikTok, cls.Platform)
	require.Equal(t, "7123456789012345678", cls.VideoID)
	require.Equal(t, "user123", cls.TikTokUsername)
}

func TestClassify_TikTok_UsernameIsOptional(t *testing.T) {
	cls, err := Classify("https://www.tiktok.com/video/7123456789012345678")
	require.NoError(t, err)
	require.Equal(t, PlatformTikTok, cls.Platform)
	require.Equal(t, "7123456789012345678", cls.VideoID)
	require.Empty(t, cls.TikTokUsername)
}

func TestClassify_UnsupportedPlatform(t *testing.T) {
	for _, url := range []string{
		"https://vimeo.com/123456",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"not a url at all",
	} {
		_, err := Classify(url)
		require.ErrorIs(t, err, ErrUnsupportedPlatform, url)
	}
}

func TestClassify_VideoIDNotFound(t *testing.T) {
	for _, url := range []string{
		"https://www.youtube.com/feed/subscriptions",
		"https://www.youtube.com/watch?v=tooshort",
		"https://www.tiktok.com/@user123",
	} {
		_, err := Classify(url)
		require.ErrorIs(t, err, ErrVideoIDNotFound, url)
	}
}

func TestEmbedURL(t *testing.T) {
	require.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", EmbedURL(PlatformYouTube, "dQw4w9WgXcQ"))
	require.Equal(t, "https://www.tiktok.com/embed/v2/7123456789012345678", EmbedURL(PlatformTikTok, "7123456789012345678"))
}

func TestDefaultThumbnailURL(t *testing.T) {
	require.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", DefaultThumbnailURL(PlatformYouTube, "dQw4w9WgXcQ"))
	require.Equal(t, "/tiktok-placeholder.svg", DefaultThumbnailURL(PlatformTikTok, "7123456789012345678"))
}
