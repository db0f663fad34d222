// package comment_api provides comment-related API handlers.
package comment_api

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/auth"
	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

// HandleDelete removes a comment. Allowed for the comment's author and for
// admins.
func HandleDelete(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		commentID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		q := dbc.Queries(ctx)

		comment, err := q.GetCommentByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("comment not found")
			}
			slog.Error("failed to fetch comment", "error", err)
			return common.ErrInternal("failed to fetch comment")
		}

		isAuthor := comment.AuthorID == userID
		if !isAuthor && !common.IsAdmin(c) {
			return common.ErrForbidden()
		}

		if err := q.DeleteComment(ctx, commentID); err != nil {
			slog.Error("failed to delete comment", "error", err)
			return common.ErrInternal("failed to delete comment")
		}

		return c.NoContent(204)
	}
}
