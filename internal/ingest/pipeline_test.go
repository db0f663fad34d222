package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive_TikTok_EndToEnd(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"title":       "Caught my sister #prank #funny #prank",
			"author_name": "user123",
			"author_url":  "https://www.tiktok.com/@user123",
		})
	})
	p := NewPipeline(c)

	v, err := p.Derive(context.Background(), Submission{
		SourceURL: "https://www.tiktok.com/@user123/video/7123456789012345678",
	})
	require.NoError(t, err)
	require.Equal(t, PlatformTikTok, v.Platform)
	require.Equal(t, "7123456789012345678", v.VideoID)
	require.Equal(t, "Caught my sister #prank #funny #prank", v.Title)
	require.Equal(t, "Caught my sister", v.DisplayTitle)
	require.Equal(t, []string{"prank", "funny"}, v.Tags)
	require.Regexp(t, `^caught-my-sister-[a-z0-9]{6}$`, v.Slug)
	require.Equal(t, "https://www.tiktok.com/embed/v2/7123456789012345678", v.EmbedURL)
	require.Equal(t, "user123", v.OriginalAuthor)
}

func TestDerive_YouTube_TitlePassesThrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"title":       "Prank #compilation 2025",
			"author_name": "Some Channel",
		})
	})
	p := NewPipeline(c)

	v, err := p.Derive(context.Background(), Submission{
		SourceURL: "https://youtu.be/dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	require.Equal(t, PlatformYouTube, v.Platform)
	require.Equal(t, "Prank #compilation 2025", v.DisplayTitle, "YouTube titles bypass hashtag parsing")
	require.Empty(t, v.Tags)
}

func TestDerive_CallerFieldsWin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"title":         "Derived Title",
			"author_name":   "Derived Author",
			"thumbnail_url": "https://example.com/derived.jpg",
		})
	})
	p := NewPipeline(c)

	v, err := p.Derive(context.Background(), Submission{
		SourceURL:      "https://youtu.be/dQw4w9WgXcQ",
		Title:          "Caller Title",
		OriginalAuthor: "Caller Author",
	})
	require.NoError(t, err)
	require.Equal(t, "Caller Title", v.Title)
	require.Equal(t, "Caller Author", v.OriginalAuthor)
	require.Equal(t, "https://example.com/derived.jpg", v.ThumbnailURL, "missing fields are still filled from oEmbed")
}

func TestDerive_SkipsFetchWhenTitleAndThumbnailSupplied(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusInternalServerError)
	})
	p := NewPipeline(c)

	v, err := p.Derive(context.Background(), Submission{
		SourceURL:      "https://youtu.be/dQw4w9WgXcQ",
		Title:          "Caller Title",
		ThumbnailURL:   "https://example.com/thumb.jpg",
		OriginalAuthor: "Caller Author",
	})
	require.NoError(t, err)
	require.False(t, called)
	require.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", v.EmbedURL, "embed URL synthesized without a fetch")
}

func TestDerive_RejectsWhenAuthorMissing(t *testing.T) {
	// Fetch is skipped (title+thumbnail supplied) so no author can be derived.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected oEmbed fetch")
	})
	p := NewPipeline(c)

	_, err := p.Derive(context.Background(), Submission{
		SourceURL:    "https://youtu.be/dQw4w9WgXcQ",
		Title:        "Caller Title",
		ThumbnailURL: "https://example.com/thumb.jpg",
	})
	require.ErrorIs(t, err, ErrAuthorUnresolved)
}

func TestDerive_ClassificationErrorsAbort(t *testing.T) {
	p := NewPipeline(NewClient(0))

	_, err := p.Derive(context.Background(), Submission{SourceURL: "https://vimeo.com/123"})
	require.ErrorIs(t, err, ErrUnsupportedPlatform)

	_, err = p.Derive(context.Background(), Submission{SourceURL: "https://www.youtube.com/account"})
	require.ErrorIs(t, err, ErrVideoIDNotFound)
}

func TestDerive_TikTokOEmbedFailureFallsBackToUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(0)
	c.tiktokBase = srv.URL
	p := NewPipeline(c)

	v, err := p.Derive(context.Background(), Submission{
		SourceURL: "https://www.tiktok.com/@user123/video/7123456789012345678",
	})
	require.NoError(t, err)
	require.Equal(t, "@user123", v.OriginalAuthor)
	require.Equal(t, "TikTok Video", v.Title)
	require.Equal(t, "TikTok Video", v.DisplayTitle)
}

func TestReslug_ChangesOnlyTheSuffix(t *testing.T) {
	p := NewPipeline(NewClient(0))
	v := Video{DisplayTitle: "My Crazy Prank!!", Slug: "my-crazy-prank-abc123"}
	p.Reslug(&v)
	require.Regexp(t, `^my-crazy-prank-[a-z0-9]{6}$`, v.Slug)
	require.NotEqual(t, "my-crazy-prank-abc123", v.Slug)
}
