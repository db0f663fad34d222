package common

import (
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/auth"
	"github.com/jmorf/pranks/cmd/web/ctxkeys"
)

// IsAdmin reports whether the access-level middleware marked this request as
// coming from an admin session.
func IsAdmin(c echo.Context) bool {
	level, _ := c.Request().Context().Value(ctxkeys.AccessLevel).(string)
	return auth.AccessLevel(level) == auth.AccessAdmin
}

// RequireUUIDParam extracts a UUID route parameter or returns a 400 error.
func RequireUUIDParam(c echo.Context, param string) (pgtype.UUID, error) {
	var u pgtype.UUID
	if err := u.Scan(c.Param(param)); err != nil {
		return u, echo.NewHTTPError(http.StatusBadRequest, "invalid "+param)
	}
	return u, nil
}

// RequireSessionUser extracts the user UUID and email from the session.
// Returns 401 if not authenticated, 500 if the session user ID is corrupt.
func RequireSessionUser(c echo.Context, sm *auth.SessionManager) (pgtype.UUID, string, error) {
	userID, email, err := sm.GetSession(c.Request())
	if err != nil {
		return pgtype.UUID{}, "", echo.NewHTTPError(http.StatusUnauthorized)
	}
	var u pgtype.UUID
	if err := u.Scan(userID); err != nil {
		return pgtype.UUID{}, "", echo.NewHTTPError(http.StatusInternalServerError, "invalid session")
	}
	return u, email, nil
}

// ClientIP reports the requester's address, preferring the usual proxy
// headers over the socket peer.
func ClientIP(c echo.Context) string {
	if ip := strings.TrimSpace(strings.Split(c.Request().Header.Get("X-Forwarded-For"), ",")[0]); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(c.Request().Header.Get("X-Real-Ip")); ip != "" {
		return ip
	}
	return c.RealIP()
}
