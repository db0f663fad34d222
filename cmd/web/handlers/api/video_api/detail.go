package video_api

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

// HandleDetail returns a single video by ID. Pending and rejected videos are
// only visible to admins.
func HandleDetail(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		video, err := dbc.Queries(ctx).GetVideoByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("video not found")
			}
			slog.Error("failed to fetch video", "error", err)
			return common.ErrInternal("failed to fetch video")
		}

		return respondVideo(c, video)
	}
}

// HandleDetailBySlug returns a single video by its public slug.
func HandleDetailBySlug(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")
		if slug == "" {
			return common.ErrBadRequest("missing slug")
		}

		ctx := c.Request().Context()
		video, err := dbc.Queries(ctx).GetVideoBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("video not found")
			}
			slog.Error("failed to fetch video", "error", err)
			return common.ErrInternal("failed to fetch video")
		}

		return respondVideo(c, video)
	}
}

func respondVideo(c echo.Context, video *db.Video) error {
	if video.Status != db.StatusApproved && !common.IsAdmin(c) {
		// Unreviewed videos do not exist as far as the public is concerned.
		return common.ErrNotFound("video not found")
	}
	return c.JSON(200, common.NewVideoResponse(video))
}
