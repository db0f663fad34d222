package video_api

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/auth"
	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
	"github.com/jmorf/pranks/internal/ingest"
)

// slug collisions are vanishingly rare with a random suffix, so a handful of
// retries is plenty.
const maxSlugAttempts = 3

// HandleSubmit runs a submission through the ingestion pipeline and persists
// the derived record with status pending.
func HandleSubmit(sm *auth.SessionManager, dbc *db.DatabaseConnection, p *ingest.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		req, err := bindSubmission(c)
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		v, err := p.Derive(ctx, req.submission())
		if err != nil {
			return deriveError(err)
		}

		q := dbc.Queries(ctx)
		params := db.CreateVideoParams{
			Title:             v.Title,
			DisplayTitle:      v.DisplayTitle,
			Tags:              v.Tags,
			Slug:              v.Slug,
			Description:       v.Description,
			SourceURL:         v.SourceURL,
			EmbedURL:          v.EmbedURL,
			Platform:          string(v.Platform),
			ThumbnailURL:      v.ThumbnailURL,
			OriginalAuthor:    v.OriginalAuthor,
			OriginalAuthorURL: v.OriginalAuthorURL,
			SubmittedBy:       userID,
		}

		var created *db.Video
		for attempt := 0; attempt < maxSlugAttempts; attempt++ {
			params.Slug = v.Slug
			created, err = q.CreateVideo(ctx, params)
			if err == nil {
				break
			}
			if !errors.Is(err, db.ErrSlugTaken) {
				slog.Error("failed to create video", "error", err, "source_url", v.SourceURL)
				return common.ErrInternal("failed to save video")
			}
			p.Reslug(&v)
		}
		if created == nil {
			slog.Error("exhausted slug attempts", "slug", v.Slug)
			return common.ErrInternal("failed to save video")
		}

		slog.Info("video submitted",
			"id", common.UUIDString(created.ID),
			"platform", created.Platform,
			"slug", created.Slug)

		return c.JSON(201, common.NewVideoResponse(created))
	}
}
