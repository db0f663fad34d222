package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultOEmbedTimeout = 8 * time.Second

	oembedUserAgent     = "Mozilla/5.0 (compatible; PranksBot/1.0)"
	untitledVideoTitle  = "Untitled Video"
	fallbackTikTokTitle = "TikTok Video"

	defaultYouTubeOEmbedBase = "https://www.youtube.com"
	defaultTikTokOEmbedBase  = "https://www.tiktok.com"
)

var (
	ErrOEmbedFetchFailed = errors.New("failed to fetch video information")
	ErrAuthorUnresolved  = errors.New("could not determine video author")
)

// Client fetches oEmbed metadata from the public YouTube and TikTok
// endpoints and maps the responses into a canonical Metadata record.
//
// Exactly one GET is issued per call, with a bounded timeout and no retry.
// Responses are third-party and unstable: fields may be missing and TikTok's
// endpoint is flaky enough that it gets a dedicated fallback path.
type Client struct {
	http        *http.Client
	policy      *bluemonday.Policy
	youtubeBase string
	tiktokBase  string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultOEmbedTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		policy:      bluemonday.StrictPolicy(),
		youtubeBase: defaultYouTubeOEmbedBase,
		tiktokBase:  defaultTikTokOEmbedBase,
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Description  string `json:"description"`
}

// Metadata is the normalized, platform-independent subset of a video record
// derived from oEmbed plus the local synthesis rules.
type Metadata struct {
	Title             string
	Description       string
	EmbedURL          string
	Platform          Platform
	ThumbnailURL      string
	OriginalAuthor    string
	OriginalAuthorURL string
}

// Normalize fetches oEmbed data for the classified video and builds canonical
// metadata.
//
// A failed fetch is fatal for YouTube. For TikTok with an extractable
// username it degrades to a synthesized record attributed to @username,
// because TikTok's public oEmbed endpoint is unreliable and a bad response
// does not mean a bad URL. Timeouts count as fetch failures and take the
// same paths.
func (c *Client) Normalize(ctx context.Context, cls Classification, sourceURL string) (Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.oembedURL(cls.Platform, sourceURL), nil)
	if err != nil {
		return Metadata{}, err
	}
	req.Header.Set("User-Agent", oembedUserAgent)

	var data oembedResponse
	fetched := false

	resp, err := c.http.Do(req)
	if err == nil {
		func() {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				err = fmt.Errorf("%w: unexpected status %d", ErrOEmbedFetchFailed, resp.StatusCode)
				return
			}
			if decErr := json.NewDecoder(resp.Body).Decode(&data); decErr != nil {
				err = fmt.Errorf("%w: %v", ErrOEmbedFetchFailed, decErr)
				return
			}
			fetched = true
		}()
	}

	if !fetched {
		if cls.Platform == PlatformTikTok && cls.TikTokUsername != "" {
			data = oembedResponse{
				Title:      fallbackTikTokTitle,
				AuthorName: "@" + cls.TikTokUsername,
				AuthorURL:  "https://www.tiktok.com/@" + cls.TikTokUsername,
			}
		} else {
			if errors.Is(err, ErrOEmbedFetchFailed) {
				return Metadata{}, err
			}
			return Metadata{}, fmt.Errorf("%w: %v", ErrOEmbedFetchFailed, err)
		}
	}

	author := strings.TrimSpace(data.AuthorName)
	if author == "" && cls.TikTokUsername != "" {
		author = "@" + cls.TikTokUsername
	}
	if author == "" {
		return Metadata{}, ErrAuthorUnresolved
	}

	title := c.plainText(data.Title)
	if title == "" {
		title = untitledVideoTitle
	}

	thumbnail := strings.TrimSpace(data.ThumbnailURL)
	if thumbnail == "" {
		thumbnail = DefaultThumbnailURL(cls.Platform, cls.VideoID)
	}

	return Metadata{
		Title:             title,
		Description:       c.plainText(data.Description),
		EmbedURL:          EmbedURL(cls.Platform, cls.VideoID),
		Platform:          cls.Platform,
		ThumbnailURL:      thumbnail,
		OriginalAuthor:    author,
		OriginalAuthorURL: strings.TrimSpace(data.AuthorURL),
	}, nil
}

func (c *Client) oembedURL(platform Platform, sourceURL string) string {
	encoded := url.QueryEscape(sourceURL)
	if platform == PlatformTikTok {
		return c.tiktokBase + "/oembed?url=" + encoded
	}
	return c.youtubeBase + "/oembed?url=" + encoded + "&format=json"
}

// plainText strips any markup an oEmbed field smuggled in, then unescapes the
// entities the sanitizer produced so benign text ("AT&T") round-trips intact.
func (c *Client) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}
