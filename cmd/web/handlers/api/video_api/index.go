package video_api

import (
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jmorf/pranks/cmd/web/handlers/common"
	"github.com/jmorf/pranks/internal/db"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// Caps the int32 offset math; nothing legitimate pages this deep.
	maxPage = 10000
)

type listResponse struct {
	Videos     []common.VideoResponse `json:"videos"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalItems int64                  `json:"totalItems"`
	TotalPages int                    `json:"totalPages"`
}

// parsePagination reads and bounds the page and pageSize query parameters.
// Out-of-range values fall back to the defaults so the offset math below
// stays inside int32.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 && p <= maxPage {
		page = p
	}
	pageSize = defaultPageSize
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= maxPageSize {
		pageSize = ps
	}
	return page, pageSize
}

// HandleIndex returns the public listing: approved videos only, filtered by
// platform and tag, sorted newest or popular, paginated.
func HandleIndex(dbc *db.DatabaseConnection) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, pageSize := parsePagination(c)

		sort := c.QueryParam("sort")
		if sort != "popular" {
			sort = "newest"
		}

		platform := c.QueryParam("platform")
		switch platform {
		case "", "youtube", "tiktok":
		default:
			return common.ErrBadRequest("unknown platform")
		}

		ctx := c.Request().Context()
		rows, err := dbc.Queries(ctx).ListVideos(ctx, db.ListVideosParams{
			Status:   db.StatusApproved,
			Platform: platform,
			Tag:      c.QueryParam("tag"),
			Sort:     sort,
			Limit:    int32(pageSize),
			Offset:   int32((page - 1) * pageSize),
		})
		if err != nil {
			slog.Error("failed to list videos", "error", err)
			return common.ErrInternal("failed to list videos")
		}

		var total int64
		if len(rows) > 0 {
			total = rows[0].TotalCount
		}
		totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
		if totalPages < 1 {
			totalPages = 1
		}

		videos := make([]common.VideoResponse, 0, len(rows))
		for _, r := range rows {
			videos = append(videos, common.NewVideoResponse(&r.Video))
		}

		return c.JSON(200, listResponse{
			Videos:     videos,
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		})
	}
}
