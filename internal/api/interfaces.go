// interfaces.go - Handler interface definitions
package api

import (
	"github.com/labstack/echo/v4"
)

// UploadHandler handles file upload operations
type UploadHandler interface {
	HandleUpload(c echo.Context) error
	HandleGetRecentFiles(c echo.Context) error
	HandleGetFile(c echo.Context) error
	HandleDownloadFile(c echo.Context) error
	HandleDeleteFile(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
