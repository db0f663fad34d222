package admin

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

type statusRequest struct {
	Status string `json:"status"`
}

func bindStatus(c echo.Context) (db.ModerationStatus, error) {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return "", common.ErrBadRequest("invalid json")
	}
	status := db.ModerationStatus(req.Status)
	if !status.Valid() {
		return "", common.ErrBadRequest("status must be pending, approved or rejected")
	}
	return status, nil
}

// HandleVideoStatus moves a video through the moderation workflow. This is
// the only mutation of a video record after ingestion besides the view
// counter.
func HandleVideoStatus(dbc *db.DatabaseConnection) echo.HandlerFunc {
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
		if err := dbc.Queries(ctx).SetVideoStatus(ctx, id, status); err != nil {
			slog.Error("failed to set video status", "error", err, "video_id", common.UUIDString(id))
			return common.ErrNotFound("video not found")
		}

		slog.Info("video status changed", "video_id", common.UUIDString(id), "status", status)
		return c.NoContent(204)
	}
}
