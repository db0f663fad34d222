// package admin provides moderation handlers. Every route in this package is
// mounted behind the admin middleware.
package admin

import (
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

type queueResponse struct {
	Videos     []common.VideoResponse `json:"videos"`
	TotalItems int64                  `json:"totalItems"`
}

// HandleVideosIndex lists videos in any moderation state for review.
// Defaults to the pending queue.
func HandleVideosIndex(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := db.ModerationStatus(c.QueryParam("status"))
		if status == "" {
			status = db.StatusPending
		}
		if !status.Valid() {
			return common.ErrBadRequest("unknown status")
		}

		limit := 50
		if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 && n <= 200 {
			limit = n
		}
		offset := 0
		if n, err := strconv.Atoi(c.QueryParam("offset")); err == nil && n > 0 {
			offset = n
		}

		ctx := c.Request().Context()
		rows, err := dbc.Queries(ctx).ListVideos(ctx, db.ListVideosParams{
			Status: status,
			Limit:  int32(limit),
			Offset: int32(offset),
		})
		if err != nil {
			slog.Error("failed to list videos for review", "error", err)
			return common.ErrInternal("failed to list videos")
		}

		var total int64
		if len(rows) > 0 {
			total = rows[0].TotalCount
		}

		videos := make([]common.VideoResponse, 0, len(rows))
		for _, r := range rows {
			videos = append(videos, common.NewVideoResponse(&r.Video))
		}
		return c.JSON(200, queueResponse{Videos: videos, TotalItems: total})
	}
}
