package video_api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/jmorf/pranks/cmd/web/auth"
	"github.com/jmorf/pranks/cmd/web/ctxkeys"
	"github.com/jmorf/pranks/internal/db"
)

func detailContext(level auth.AccessLevel) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/videos/x", nil)
	ctx := context.WithValue(req.Context(), ctxkeys.AccessLevel, string(level))
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRespondVideoHidesPendingFromPublic(t *testing.T) {
	c, _ := detailContext(auth.AccessUser)
	video := &db.Video{Title: "Pending", Status: db.StatusPending}

	err := respondVideo(c, video)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestRespondVideoShowsPendingToAdmin(t *testing.T) {
	c, rec := detailContext(auth.AccessAdmin)
	video := &db.Video{Title: "Pending", Status: db.StatusPending}

	require.NoError(t, respondVideo(c, video))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Pending")
}

func TestRespondVideoShowsApprovedToEveryone(t *testing.T) {
	c, rec := detailContext(auth.AccessUnauthenticated)
	video := &db.Video{Title: "Live", Status: db.StatusApproved}

	require.NoError(t, respondVideo(c, video))
	require.Equal(t, http.StatusOK, rec.Code)
}
