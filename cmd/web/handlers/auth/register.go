package auth

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	webauth "github.com/jmorf/pranks/cmd/web/auth"
	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

func HandleRegister(sm *webauth.SessionManager, dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			Email    string `json:"email"`
			Name     string `json:"name"`
			Password string `json:"password"`
		}
		if err := c.Bind(&req); err != nil {
			return common.ErrBadRequest("invalid json")
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		name := strings.TrimSpace(req.Name)
		if email == "" || name == "" || req.Password == "" {
			return common.ErrBadRequest("Email, name and password are required")
		}
		if len(req.Password) < 8 {
			return common.ErrBadRequest("Password must be at least 8 characters")
		}

		// Registration runs in one transaction under an advisory lock: it
		// serializes the first-user-becomes-admin election and closes the
		// window between the email check and the insert.
		ctx := c.Request().Context()
		q, tx, err := dbc.NewWithTX(ctx)
		if err != nil {
			slog.Error("failed to begin registration", "error", err)
			return common.ErrInternal("failed to register")
		}
		defer tx.Rollback(ctx)

		if err := q.LockRegistration(ctx); err != nil {
			slog.Error("failed to lock registration", "error", err)
			return common.ErrInternal("failed to register")
		}

		registered, err := q.EmailRegistered(ctx, email)
		if err != nil {
			slog.Error("failed to check email", "error", err)
			return common.ErrInternal("failed to register")
		}
		if registered {
			return common.ErrBadRequest("Email is already registered")
		}

		// The first account on a fresh instance is the admin.
		role := db.UserRoleUser
		count, err := q.CountUsers(ctx)
		if err != nil {
			slog.Error("failed to count users", "error", err)
			return common.ErrInternal("failed to register")
		}
		if count == 0 {
			role = db.UserRoleAdmin
		}

		user, err := q.NewUser(ctx, db.NewUserParams{
			Email:    email,
			Name:     name,
			Password: req.Password,
			Role:     role,
		})
		if err != nil {
			if errors.Is(err, db.ErrEmailTaken) {
				return common.ErrBadRequest("Email is already registered")
			}
			slog.Error("failed to create user", "error", err)
			return common.ErrInternal("failed to register")
		}

		if err := tx.Commit(ctx); err != nil {
			slog.Error("failed to commit registration", "error", err)
			return common.ErrInternal("failed to register")
		}

		userID := uuid.UUID(user.ID.Bytes).String()
		if err := sm.SaveSession(c.Response().Writer, c.Request(), userID, user.Email, accessLevelFor(user.Role)); err != nil {
			slog.Error("failed to save session", "error", err)
			return common.ErrInternal("account created but login failed")
		}

		return c.JSON(201, sessionResponse{
			ID:    userID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		})
	}
}
