// package video_api provides video-related API handlers.
package video_api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/ingest"
)

var validate = validator.New()

// SubmissionRequest is the JSON body for submit and preview. Only the source
// URL is required; everything else overrides what the pipeline would derive.
type SubmissionRequest struct {
	SourceURL         string `json:"sourceUrl" validate:"required,url"`
	Title             string `json:"title" validate:"max=500"`
	Description       string `json:"description" validate:"max=5000"`
	EmbedURL          string `json:"embedUrl" validate:"omitempty,url"`
	Platform          string `json:"platform" validate:"omitempty,oneof=youtube tiktok"`
	ThumbnailURL      string `json:"thumbnailUrl" validate:"omitempty,url"`
	OriginalAuthor    string `json:"originalAuthor" validate:"max=200"`
	OriginalAuthorURL string `json:"originalAuthorUrl" validate:"omitempty,url"`
}

func (r SubmissionRequest) submission() ingest.Submission {
	return ingest.Submission{
		SourceURL:         r.SourceURL,
		Title:             r.Title,
		Description:       r.Description,
		EmbedURL:          r.EmbedURL,
		Platform:          ingest.Platform(r.Platform),
		ThumbnailURL:      r.ThumbnailURL,
		OriginalAuthor:    r.OriginalAuthor,
		OriginalAuthorURL: r.OriginalAuthorURL,
	}
}

func bindSubmission(c echo.Context) (SubmissionRequest, error) {
	var req SubmissionRequest
	if err := c.Bind(&req); err != nil {
		return req, common.ErrBadRequest("invalid json")
	}
	if err := validate.Struct(req); err != nil {
		return req, common.ErrBadRequest("A valid source URL is required")
	}
	return req, nil
}

// deriveError maps pipeline failures onto 400s with their user-facing
// messages; anything else stays an internal error.
func deriveError(err error) error {
	switch {
	case errors.Is(err, ingest.ErrUnsupportedPlatform),
		errors.Is(err, ingest.ErrVideoIDNotFound),
		errors.Is(err, ingest.ErrOEmbedFetchFailed),
		errors.Is(err, ingest.ErrAuthorUnresolved):
		return common.ErrBadRequest(err.Error())
	}
	return common.ErrInternal("failed to process video")
}
