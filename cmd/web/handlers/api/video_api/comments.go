package video_api

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/auth"
	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
	"github.com/jmorf/pranks/internal/moderation"
)

// HandleComments lists a video's approved comments, newest first.
func HandleComments(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		comments, err := dbc.Queries(ctx).ListCommentsForVideo(ctx, videoID, 50)
		if err != nil {
			slog.Error("failed to list comments", "error", err)
			return common.ErrInternal("failed to list comments")
		}

		out := make([]common.CommentResponse, 0, len(comments))
		for _, cm := range comments {
			out = append(out, common.NewCommentResponse(cm))
		}
		return c.JSON(200, out)
	}
}

// HandleCommentCreate validates and stores a comment from the session user.
// Validation failures come back as 400s with the validator's message.
func HandleCommentCreate(sm *auth.SessionManager, dbc *db.DatabaseConnection, mv *moderation.Validator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		videoID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := c.Bind(&req); err != nil {
			return common.ErrBadRequest("invalid json")
		}

		sanitized, err := mv.Validate(req.Content)
		if err != nil {
			var rej *moderation.RejectionError
			if errors.As(err, &rej) {
				return common.ErrBadRequest(rej.Message)
			}
			slog.Error("comment validation failed", "error", err)
			return common.ErrInternal("failed to validate comment")
		}

		ctx := c.Request().Context()
		comment, err := dbc.Queries(ctx).CreateComment(ctx, db.CreateCommentParams{
			VideoID:   videoID,
			AuthorID:  userID,
			Content:   sanitized,
			IPAddress: common.ClientIP(c),
			UserAgent: c.Request().UserAgent(),
		})
		if err != nil {
			slog.Error("failed to create comment", "error", err)
			return common.ErrInternal("failed to save comment")
		}

		return c.JSON(201, common.NewCommentResponse(comment))
	}
}
