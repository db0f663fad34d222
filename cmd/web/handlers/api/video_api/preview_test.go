package video_api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/jmorf/pranks/internal/ingest"
)

func performPreview(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/videos/preview", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := ingest.NewPipeline(ingest.NewClient(time.Second))
	err := HandlePreview(p)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestHandlePreviewDerivesWithoutFetch(t *testing.T) {
	// Title, thumbnail and author are all supplied, so no oEmbed request is
	// needed and the handler works offline.
	rec := performPreview(t, `{
		"sourceUrl": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"title": "Office Chair Prank",
		"thumbnailUrl": "https://example.com/thumb.jpg",
		"originalAuthor": "PrankChannel"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "youtube", resp.Platform)
	require.Equal(t, "dQw4w9WgXcQ", resp.VideoID)
	require.Equal(t, "Office Chair Prank", resp.DisplayTitle)
	require.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", resp.EmbedURL)
	require.True(t, strings.HasPrefix(resp.Slug, "office-chair-prank-"))
}

func TestHandlePreviewRejectsUnsupportedPlatform(t *testing.T) {
	rec := performPreview(t, `{
		"sourceUrl": "https://vimeo.com/12345",
		"title": "Nope",
		"thumbnailUrl": "https://example.com/thumb.jpg",
		"originalAuthor": "Someone"
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "only YouTube and TikTok")
}

func TestHandlePreviewRequiresSourceURL(t *testing.T) {
	rec := performPreview(t, `{"title": "Missing URL"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePreviewRejectsInvalidJSON(t *testing.T) {
	rec := performPreview(t, `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
