// routes.go - Route registration helpers
package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/DailyInvestors/Network-Repairs/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store   storage.Store
	Logger  *zap.Logger
	Version string

	// AuthToken, when non-empty, is required as a bearer token on file routes.
	AuthToken string

	BodyLimit      string
	RequestLogging bool
	ExposeDetails  bool
}

// Handlers holds all handler instances
type Handlers struct {
	Health HealthHandler
	Upload UploadHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Version, deps.Store),
		Upload: NewUploadHandler(deps.Store, deps.Logger),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers, authToken string) {
	e.GET("/health", handlers.Health.HandleHealth)

	var guard []echo.MiddlewareFunc
	if authToken != "" {
		guard = append(guard, BearerAuth(authToken))
	}

	// The bare path is the one clients are configured with by default.
	e.POST("/upload", handlers.Upload.HandleUpload, guard...)

	uploadGroup := e.Group("/api/files", guard...)
	uploadGroup.POST("/upload", handlers.Upload.HandleUpload)
	uploadGroup.GET("/recent", handlers.Upload.HandleGetRecentFiles)
	uploadGroup.GET("/:id", handlers.Upload.HandleGetFile)
	uploadGroup.GET("/:id/content", handlers.Upload.HandleDownloadFile)
	uploadGroup.DELETE("/:id", handlers.Upload.HandleDeleteFile)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, deps *Dependencies) {
	logger := deps.Logger
	e.HTTPErrorHandler = NewErrorHandler(logger, deps.ExposeDetails)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return !deps.RequestLogging || strings.HasSuffix(c.Request().URL.Path, "/health")
		},
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	if deps.BodyLimit != "" {
		e.Use(middleware.BodyLimit(deps.BodyLimit))
	}
}

// NewServer builds a fully wired Echo instance for the reference endpoint
func NewServer(deps *Dependencies) *echo.Echo {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	SetupMiddleware(e, deps)
	RegisterRoutes(e, NewHandlers(deps), deps.AuthToken)

	return e
}
