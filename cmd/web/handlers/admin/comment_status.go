package admin

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

// HandleCommentStatus flips a comment's moderation state, e.g. to pull an
// auto-approved comment the validator let through.
func HandleCommentStatus(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		status, err := bindStatus(c)
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		if err := dbc.Queries(ctx).SetCommentStatus(ctx, id, status); err != nil {
			slog.Error("failed to set comment status", "error", err, "comment_id", common.UUIDString(id))
			return common.ErrNotFound("comment not found")
		}

		return c.NoContent(204)
	}
}
