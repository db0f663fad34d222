package admin

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

// currentAdminUUID reads the admin's user ID stored by the admin group
// middleware.
func currentAdminUUID(c echo.Context) (pgtype.UUID, error) {
	id, ok := c.Get("currentUserUUID").(pgtype.UUID)
	if !ok {
		return pgtype.UUID{}, common.ErrUnauthorized()
	}
	return id, nil
}

// HandleUserRole promotes or demotes a user. Admins cannot demote
// themselves; that guarantees at least one admin always remains.
func HandleUserRole(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentID, err := currentAdminUUID(c)
		if err != nil {
			return err
		}

		targetID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		var req struct {
			Role string `json:"role"`
		}
		if err := c.Bind(&req); err != nil {
			return common.ErrBadRequest("invalid json")
		}
		role := db.UserRole(req.Role)
		if role != db.UserRoleUser && role != db.UserRoleAdmin {
			return common.ErrBadRequest("role must be user or admin")
		}

		if targetID == currentID && role != db.UserRoleAdmin {
			return common.ErrBadRequest("You cannot demote yourself")
		}

		ctx := c.Request().Context()
		q := dbc.Queries(ctx)

		if _, err := q.SelectUserByID(ctx, targetID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrNotFound("user not found")
			}
			slog.Error("failed to fetch user", "error", err)
			return common.ErrInternal("failed to update role")
		}

		if err := q.SetUserRole(ctx, targetID, role); err != nil {
			slog.Error("failed to update user role", "error", err)
			return common.ErrInternal("failed to update role")
		}

		slog.Info("user role changed", "user_id", common.UUIDString(targetID), "role", role)
		return c.NoContent(204)
	}
}

// HandleUserEnabled toggles whether a user may sign in.
func HandleUserEnabled(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		currentID, err := currentAdminUUID(c)
		if err != nil {
			return err
		}

		targetID, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		var req struct {
			Enabled *bool `json:"enabled"`
		}
		if err := c.Bind(&req); err != nil || req.Enabled == nil {
			return common.ErrBadRequest("enabled is required")
		}

		if targetID == currentID && !*req.Enabled {
			return common.ErrBadRequest("You cannot disable yourself")
		}

		ctx := c.Request().Context()
		if err := dbc.Queries(ctx).SetUserEnabled(ctx, targetID, *req.Enabled); err != nil {
			slog.Error("failed to update user", "error", err)
			return common.ErrInternal("failed to update user")
		}

		return c.NoContent(204)
	}
}
