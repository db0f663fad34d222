package video_api

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

// HandleView bumps the view counter. No auth: the player fires this for
// anyone it renders a video to.
func HandleView(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		if err := dbc.Queries(ctx).IncrementViewCount(ctx, id); err != nil {
			slog.Error("failed to increment view count", "error", err, "video_id", common.UUIDString(id))
			return common.ErrInternal("failed to record view")
		}

		return c.NoContent(204)
	}
}
