// handlers_upload.go - File upload operation handlers
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/DailyInvestors/Network-Repairs/internal/models"
	"github.com/DailyInvestors/Network-Repairs/internal/storage"
)

// MIMEApplicationMsgpack is the content type for MessagePack replies.
const MIMEApplicationMsgpack = "application/msgpack"

// UploadFieldName is the multipart field uploads arrive in.
const UploadFieldName = "file"

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	store  storage.Store
	logger *zap.Logger
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(store storage.Store, logger *zap.Logger) UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandlerImpl{
		store:  store,
		logger: logger,
	}
}

// uploadResponse is the body returned for a stored upload.
type uploadResponse struct {
	Status string           `json:"status" msgpack:"status"`
	File   *models.FileInfo `json:"file" msgpack:"file"`
}

// HandleUpload accepts a multipart/form-data upload and saves it to storage
func (h *UploadHandlerImpl) HandleUpload(c echo.Context) error {
	file, err := c.FormFile(UploadFieldName)
	if err != nil {
		return NewBadRequestError("no file provided", err)
	}

	src, err := file.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	info, err := h.store.Save(file.Filename, src)
	if err != nil {
		return NewInternalError("failed to save file", err)
	}

	h.logger.Info("file stored",
		zap.String("id", info.ID),
		zap.String("name", info.Name),
		zap.Int64("size", info.Size),
		zap.String("request_id", c.Request().Header.Get("X-Request-ID")),
	)

	return respond(c, http.StatusCreated, uploadResponse{Status: "ok", File: info})
}

// HandleGetRecentFiles returns a list of recently uploaded files
func (h *UploadHandlerImpl) HandleGetRecentFiles(c echo.Context) error {
	files, err := h.store.List(20)
	if err != nil {
		return NewInternalError("failed to list files", err)
	}
	if files == nil {
		files = []*models.FileInfo{}
	}

	return respond(c, http.StatusOK, files)
}

// HandleGetFile returns metadata for a specific file
func (h *UploadHandlerImpl) HandleGetFile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("file", id)
	}

	return respond(c, http.StatusOK, info)
}

// HandleDownloadFile streams a stored upload back under its original name
func (h *UploadHandlerImpl) HandleDownloadFile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("file", id)
	}
	path, err := h.store.GetFilePath(id)
	if err != nil {
		return NewNotFoundError("file", id)
	}

	return c.Attachment(path, info.Name)
}

// HandleDeleteFile deletes a stored file
func (h *UploadHandlerImpl) HandleDeleteFile(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.store.Delete(id); err != nil {
		return NewNotFoundError("file", id)
	}

	return c.NoContent(http.StatusNoContent)
}

// respond writes v as MessagePack when the client asks for it, JSON otherwise.
func respond(c echo.Context, status int, v interface{}) error {
	if wantsMsgpack(c.Request().Header.Get(echo.HeaderAccept)) {
		body, err := msgpack.Marshal(v)
		if err != nil {
			return NewInternalError("failed to encode response", err)
		}
		return c.Blob(status, MIMEApplicationMsgpack, body)
	}
	return c.JSON(status, v)
}

func wantsMsgpack(accept string) bool {
	accept = strings.ToLower(accept)
	return strings.Contains(accept, "application/msgpack") || strings.Contains(accept, "application/x-msgpack")
}
