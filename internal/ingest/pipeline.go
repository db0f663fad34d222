package ingest

import (
	"context"
)

// Submission is the caller-supplied side of a video submission. SourceURL is
// required; every other field is an optional override that takes precedence
// over the value the pipeline would derive.
type Submission struct {
	SourceURL         string
	Title             string
	Description       string
	EmbedURL          string
	Platform          Platform
	ThumbnailURL      string
	OriginalAuthor    string
	OriginalAuthorURL string
}

// Video is the canonical metadata record produced by the pipeline. It is
// derived once at submission time; after that only the moderation status
// changes.
type Video struct {
	Platform          Platform
	VideoID           string
	Title             string
	DisplayTitle      string
	Tags              []string
	Slug              string
	Description       string
	SourceURL         string
	EmbedURL          string
	ThumbnailURL      string
	OriginalAuthor    string
	OriginalAuthorURL string
}

// Pipeline sequences classification, oEmbed normalization, title parsing and
// slug generation for incoming submissions. It is a single pass with no
// retries: any step failure aborts the submission with the originating error
// and no record is produced.
type Pipeline struct {
	oembed *Client
}

func NewPipeline(oembed *Client) *Pipeline {
	return &Pipeline{oembed: oembed}
}

// Derive runs a submission through the full pipeline.
//
// The merge rule is fill-only-missing: caller-supplied fields always win over
// derived ones, field by field. The oEmbed fetch is skipped entirely when the
// caller already supplied both a title and a thumbnail, since those are the
// only facts the pipeline cannot synthesize locally besides the author.
func (p *Pipeline) Derive(ctx context.Context, sub Submission) (Video, error) {
	cls, err := Classify(sub.SourceURL)
	if err != nil {
		return Video{}, err
	}

	v := Video{
		Platform:          cls.Platform,
		VideoID:           cls.VideoID,
		Title:             sub.Title,
		Description:       sub.Description,
		SourceURL:         sub.SourceURL,
		EmbedURL:          sub.EmbedURL,
		ThumbnailURL:      sub.ThumbnailURL,
		OriginalAuthor:    sub.OriginalAuthor,
		OriginalAuthorURL: sub.OriginalAuthorURL,
	}
	if sub.Platform != "" {
		v.Platform = sub.Platform
	}

	if v.Title == "" || v.ThumbnailURL == "" {
		meta, err := p.oembed.Normalize(ctx, cls, sub.SourceURL)
		if err != nil {
			return Video{}, err
		}
		fillMissing(&v, meta)
	}

	if v.EmbedURL == "" {
		v.EmbedURL = EmbedURL(v.Platform, cls.VideoID)
	}

	// The author is the single external fact the pipeline cannot invent.
	if v.OriginalAuthor == "" {
		return Video{}, ErrAuthorUnresolved
	}

	if v.Platform == PlatformTikTok {
		v.DisplayTitle, v.Tags = ParseTikTokTitle(v.Title)
	} else {
		v.DisplayTitle = v.Title
		v.Tags = []string{}
	}

	v.Slug = NewSlug(v.DisplayTitle)

	return v, nil
}

// Reslug regenerates the random suffix on a video after a slug collision at
// the storage layer.
func (p *Pipeline) Reslug(v *Video) {
	v.Slug = NewSlug(v.DisplayTitle)
}

// fillMissing applies derived metadata underneath the caller-supplied fields.
// The precedence rule lives here and nowhere else.
func fillMissing(v *Video, meta Metadata) {
	if v.Title == "" {
		v.Title = meta.Title
	}
	if v.Description == "" {
		v.Description = meta.Description
	}
	if v.EmbedURL == "" {
		v.EmbedURL = meta.EmbedURL
	}
	if v.Platform == "" {
		v.Platform = meta.Platform
	}
	if v.ThumbnailURL == "" {
		v.ThumbnailURL = meta.ThumbnailURL
	}
	if v.OriginalAuthor == "" {
		v.OriginalAuthor = meta.OriginalAuthor
	}
	if v.OriginalAuthorURL == "" {
		v.OriginalAuthorURL = meta.OriginalAuthorURL
	}
}
