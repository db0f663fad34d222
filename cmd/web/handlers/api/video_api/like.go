package video_api

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/auth"
	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

type likeStatusResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// HandleLike records a like for the session user. One like per user per
// video; a duplicate is a 400.
func HandleLike(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		videoID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		q := dbc.Queries(ctx)
		if _, err := q.CreateLike(ctx, videoID, userID); err != nil {
			if errors.Is(err, db.ErrAlreadyLiked) {
				return common.ErrBadRequest("Already liked")
			}
			slog.Error("failed to create like", "error", err)
			return common.ErrInternal("failed to like video")
		}

		likes, err := q.CountLikes(ctx, videoID)
		if err != nil {
			slog.Error("failed to count likes", "error", err)
			return common.ErrInternal("failed to like video")
		}

		return c.JSON(201, likeStatusResponse{Liked: true, Likes: likes})
	}
}

// HandleUnlike removes the session user's like.
func HandleUnlike(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, _, err := common.RequireSessionUser(c, sm)
		if err != nil {
			return err
		}

		videoID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		q := dbc.Queries(ctx)
		if err := q.DeleteLike(ctx, videoID, userID); err != nil {
			if errors.Is(err, db.ErrNotLiked) {
				return common.ErrBadRequest("Not liked")
			}
			slog.Error("failed to delete like", "error", err)
			return common.ErrInternal("failed to unlike video")
		}

		likes, err := q.CountLikes(ctx, videoID)
		if err != nil {
			slog.Error("failed to count likes", "error", err)
			return common.ErrInternal("failed to unlike video")
		}

		return c.JSON(200, likeStatusResponse{Liked: false, Likes: likes})
	}
}

// HandleLikeStatus reports whether the session user has liked the video and
// the total like count. Works unauthenticated; Liked is then always false.
func HandleLikeStatus(sm *auth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		q := dbc.Queries(ctx)

		var liked bool
		if userID, _, err := common.RequireSessionUser(c, sm); err == nil {
			liked, err = q.HasLiked(ctx, videoID, userID)
			if err != nil {
				slog.Error("failed to check like", "error", err)
				return common.ErrInternal("failed to check like status")
			}
		}

		likes, err := q.CountLikes(ctx, videoID)
		if err != nil {
			slog.Error("failed to count likes", "error", err)
			return common.ErrInternal("failed to check like status")
		}

		return c.JSON(200, likeStatusResponse{Liked: liked, Likes: likes})
	}
}
