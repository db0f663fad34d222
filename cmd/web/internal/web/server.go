package web

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jmorf/pranks/cmd/web/auth"
	"github.com/jmorf/pranks/cmd/web/ctxkeys"
	"github.com/jmorf/pranks/cmd/web/handlers/admin"
	"github.com/jmorf/pranks/cmd/web/handlers/api/comment_api"
	"github.com/jmorf/pranks/cmd/web/handlers/api/video_api"
	authhandlers "github.com/jmorf/pranks/cmd/web/handlers/auth"
	"github.com/jmorf/pranks/internal/db"
	"github.com/jmorf/pranks/internal/ingest"
	"github.com/jmorf/pranks/internal/moderation"
)

type Webserver struct {
	*echo.Echo
	sessionManager *auth.SessionManager
	dbc            *db.DatabaseConnection
	pipeline       *ingest.Pipeline
	commentGate    *moderation.Validator
}

func NewWebserver(dbc *db.DatabaseConnection, sessionManager *auth.SessionManager, pipeline *ingest.Pipeline) (*Webserver, error) {
	webserver := &Webserver{
		Echo:           echo.New(),
		sessionManager: sessionManager,
		dbc:            dbc,
		pipeline:       pipeline,
		commentGate:    moderation.NewValidator(),
	}

	if err := webserver.registerRoutes(); err != nil {
		return nil, err
	}
	if err := webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	return webserver, nil
}

func (s *Webserver) setupMiddleware() error {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit("1M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	// Middleware to set the access level in the request context. The level is
	// read from the signed session cookie; for authenticated users the account
	// is re-checked against the DB so disabled accounts drop out immediately.
	s.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accessLevel := s.sessionManager.GetAccessLevel(c.Request())

			if accessLevel != auth.AccessUnauthenticated {
				userID, _, _ := s.sessionManager.GetSession(c.Request())
				var uid pgtype.UUID
				if err := uid.Scan(userID); err == nil {
					q := s.dbc.Queries(c.Request().Context())
					user, err := q.SelectUserByID(c.Request().Context(), uid)
					if err != nil {
						slog.Warn("session user lookup failed", "user_id", userID, "error", err)
						s.sessionManager.ClearSession(c.Response().Writer, c.Request())
						accessLevel = auth.AccessUnauthenticated
					} else if !user.Enabled {
						slog.Info("disabled user session cleared", "user_id", userID)
						s.sessionManager.ClearSession(c.Response().Writer, c.Request())
						accessLevel = auth.AccessUnauthenticated
					}
				}
			}

			ctx := context.WithValue(c.Request().Context(), ctxkeys.AccessLevel, string(accessLevel))
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	})

	return nil
}

func (s *Webserver) registerRoutes() error {
	adminGroup := s.Group("/admin")
	adminGroup.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _, err := s.sessionManager.GetSession(c.Request())
			if err != nil {
				return c.String(401, "unauthorized")
			}

			if s.sessionManager.GetAccessLevel(c.Request()) != auth.AccessAdmin {
				return c.String(403, "forbidden")
			}

			var userUUID pgtype.UUID
			if err := userUUID.Scan(userID); err != nil {
				return c.String(500, "invalid session")
			}

			c.Set("currentUserUUID", userUUID)
			return next(c)
		}
	})

	adminGroup.GET("/videos", admin.HandleVideosIndex(s.dbc))
	adminGroup.POST("/videos/:id/status", admin.HandleVideoStatus(s.dbc))
	adminGroup.POST("/comments/:id/status", admin.HandleCommentStatus(s.dbc))
	adminGroup.POST("/users/:id/role", admin.HandleUserRole(s.dbc))
	adminGroup.POST("/users/:id/enabled", admin.HandleUserEnabled(s.dbc))

	apiGroup := s.Group("/api")
	apiGroup.GET("/videos", video_api.HandleIndex(s.dbc))
	apiGroup.POST("/videos", video_api.HandleSubmit(s.sessionManager, s.dbc, s.pipeline))
	apiGroup.POST("/videos/preview", video_api.HandlePreview(s.pipeline))
	apiGroup.GET("/videos/by-slug/:slug", video_api.HandleDetailBySlug(s.dbc))
	apiGroup.GET("/videos/:id", video_api.HandleDetail(s.dbc))
	apiGroup.POST("/videos/:id/view", video_api.HandleView(s.dbc))
	apiGroup.POST("/videos/:id/like", video_api.HandleLike(s.sessionManager, s.dbc))
	apiGroup.DELETE("/videos/:id/like", video_api.HandleUnlike(s.sessionManager, s.dbc))
	apiGroup.GET("/videos/:id/like-status", video_api.HandleLikeStatus(s.sessionManager, s.dbc))
	apiGroup.GET("/videos/:id/comments", video_api.HandleComments(s.dbc))
	apiGroup.POST("/videos/:id/comments", video_api.HandleCommentCreate(s.sessionManager, s.dbc, s.commentGate))
	apiGroup.DELETE("/comments/:id", comment_api.HandleDelete(s.sessionManager, s.dbc))

	apiGroup.POST("/auth/register", authhandlers.HandleRegister(s.sessionManager, s.dbc))
	apiGroup.POST("/auth/login", authhandlers.HandleLogin(s.sessionManager, s.dbc))
	apiGroup.POST("/auth/logout", authhandlers.HandleLogout(s.sessionManager))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	return nil
}
