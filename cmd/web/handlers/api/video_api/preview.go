package video_api

import (
	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/internal/ingest"
)

type previewResponse struct {
	Title             string   `json:"title"`
	DisplayTitle      string   `json:"displayTitle"`
	Tags              []string `json:"tags"`
	Slug              string   `json:"slug"`
	Description       string   `json:"description,omitempty"`
	SourceURL         string   `json:"sourceUrl"`
	EmbedURL          string   `json:"embedUrl"`
	Platform          string   `json:"platform"`
	VideoID           string   `json:"videoId"`
	ThumbnailURL      string   `json:"thumbnailUrl"`
	OriginalAuthor    string   `json:"originalAuthor"`
	OriginalAuthorURL string   `json:"originalAuthorUrl,omitempty"`
}

// HandlePreview derives the metadata a submission would produce without
// persisting anything.
func HandlePreview(p *ingest.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bindSubmission(c)
		if err != nil {
			return err
		}

		v, err := p.Derive(c.Request().Context(), req.submission())
		if err != nil {
			return deriveError(err)
		}

		return c.JSON(200, previewResponse{
			Title:             v.Title,
			DisplayTitle:      v.DisplayTitle,
			Tags:              v.Tags,
			Slug:              v.Slug,
			Description:       v.Description,
			SourceURL:         v.SourceURL,
			EmbedURL:          v.EmbedURL,
			Platform:          string(v.Platform),
			VideoID:           v.VideoID,
			ThumbnailURL:      v.ThumbnailURL,
			OriginalAuthor:    v.OriginalAuthor,
			OriginalAuthorURL: v.OriginalAuthorURL,
		})
	}
}
