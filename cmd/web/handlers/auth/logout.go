package auth

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	webauth "github.com/jmorf/pranks/cmd/web/auth"
)

func HandleLogout(sm *webauth.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := sm.ClearSession(c.Response().Writer, c.Request()); err != nil {
			slog.Error("failed to clear session", "error", err)
		}
		return c.NoContent(204)
	}
}
