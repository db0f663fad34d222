// package auth provides registration and session handlers.
package auth

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	webauth "github.com/jmorf/pranks/cmd/web/auth"
	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
	"github.com/jmorf/pranks/pkg/utils/passwords"
)

type sessionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func accessLevelFor(role db.UserRole) webauth.AccessLevel {
	if role == db.UserRoleAdmin {
		return webauth.AccessAdmin
	}
	return webauth.AccessUser
}

func HandleLogin(sm *webauth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.Bind(&req); err != nil {
			return common.ErrBadRequest("invalid json")
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Password == "" {
			return common.ErrBadRequest("Email and password are required")
		}

		ctx := c.Request().Context()
		user, err := dbc.Queries(ctx).SelectUserByEmail(ctx, email)
		if err != nil {
			return common.ErrUnauthorized()
		}

		matches, err := user.Password.ComparePasswordAndHash(passwords.PasswordInput{Password: req.Password})
		if err != nil || !matches {
			return common.ErrUnauthorized()
		}

		if !user.Enabled {
			return common.ErrForbidden()
		}

		userID := uuid.UUID(user.ID.Bytes).String()
		if err := sm.SaveSession(c.Response().Writer, c.Request(), userID, user.Email, accessLevelFor(user.Role)); err != nil {
			slog.Error("failed to save session", "error", err)
			return common.ErrInternal("failed to save session")
		}

		return c.JSON(200, sessionResponse{
			ID:    userID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		})
	}
}
