package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func adminContext(t *testing.T, body string, current pgtype.UUID, targetID string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(targetID)
	if current.Valid {
		c.Set("currentUserUUID", current)
	}
	return c
}

func TestHandleUserRoleRejectsSelfDemotion(t *testing.T) {
	self := pgtype.UUID{Bytes: uuid.New(), Valid: true}
	c := adminContext(t, `{"role": "user"}`, self, uuid.UUID(self.Bytes).String())

	// The guard fires before any query runs, so no connection is needed.
	err := HandleUserRole(nil)(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
	require.Contains(t, httpErr.Message, "demote yourself")
}

func TestHandleUserRoleRequiresGateUUID(t *testing.T) {
	c := adminContext(t, `{"role": "admin"}`, pgtype.UUID{}, uuid.New().String())

	err := HandleUserRole(nil)(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestHandleUserEnabledRejectsSelfDisable(t *testing.T) {
	self := pgtype.UUID{Bytes: uuid.New(), Valid: true}
	c := adminContext(t, `{"enabled": false}`, self, uuid.UUID(self.Bytes).String())

	err := HandleUserEnabled(nil)(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
}
