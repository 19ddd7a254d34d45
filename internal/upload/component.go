// Package upload holds the upload component: a selected file, the response of
// the latest attempt, and the handlers that change them.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/DailyInvestors/Network-Repairs/internal/models"
)

// DefaultFieldName is the multipart form field the file travels under.
const DefaultFieldName = "file"

// Target names where uploads go and how they authenticate.
type Target struct {
	Endpoint  string
	Token     string
	FieldName string
}

// Component owns the selected file and the latest response.
type Component struct {
	transport Transport
	target    Target
	logger    *zap.Logger

	mu       sync.Mutex
	file     models.SelectedFile
	response models.Response
}

// NewComponent creates a component that uploads through transport.
func NewComponent(transport Transport, target Target, logger *zap.Logger) *Component {
	if target.FieldName == "" {
		target.FieldName = DefaultFieldName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Component{
		transport: transport,
		target:    target,
		logger:    logger,
	}
}

// HandleFileChange stores the first of files as the selection. An empty
// list, or an empty first entry, leaves the current selection alone.
func (c *Component) HandleFileChange(files []models.SelectedFile) {
	if len(files) == 0 || files[0].IsZero() {
		return
	}

	c.mu.Lock()
	c.file = files[0]
	c.mu.Unlock()

	c.logger.Debug("file selected",
		zap.String("name", files[0].Name),
		zap.Int64("size", files[0].Size),
		zap.String("content_type", files[0].ContentType),
	)
}

// SelectPath reads a local file and selects it.
func (c *Component) SelectPath(path string) error {
	f, err := ReadFile(path)
	if err != nil {
		return err
	}
	c.HandleFileChange([]models.SelectedFile{f})
	return nil
}

// ReadFile loads path into a SelectedFile, sniffing its MIME type.
func ReadFile(path string) (models.SelectedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.SelectedFile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return models.SelectedFile{
		Name:        filepath.Base(path),
		Size:        int64(len(content)),
		ContentType: mimetype.Detect(content).String(),
		Content:     content,
	}, nil
}

// SelectedFile returns the current selection.
func (c *Component) SelectedFile() (models.SelectedFile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file, !c.file.IsZero()
}

// Response returns the response of the most recently settled attempt.
func (c *Component) Response() models.Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.response
}

// Upload posts the selected file and stores the outcome. It reports false,
// without touching the network or the stored response, when nothing is
// selected. Failures are stored as the response, never returned.
func (c *Component) Upload(ctx context.Context) (models.Response, bool) {
	c.mu.Lock()
	file := c.file
	c.mu.Unlock()

	if file.IsZero() {
		return models.Response{}, false
	}

	var resp models.Response
	data, err := c.send(ctx, file)
	if err != nil {
		c.logger.Warn("upload failed",
			zap.String("file", file.Name),
			zap.Error(err),
		)
		resp = models.NewErrorResponse(err.Error())
	} else {
		c.logger.Info("upload complete", zap.String("file", file.Name))
		resp = models.NewDataResponse(data)
	}

	// Whichever attempt settles last wins.
	c.mu.Lock()
	c.response = resp
	c.mu.Unlock()

	return resp, true
}

// UploadAsync runs Upload on its own goroutine. The channel yields the
// settled response, or closes empty when nothing was selected.
func (c *Component) UploadAsync(ctx context.Context) <-chan models.Response {
	ch := make(chan models.Response, 1)
	go func() {
		defer close(ch)
		if resp, ok := c.Upload(ctx); ok {
			ch <- resp
		}
	}()
	return ch
}

// Close drops the selection and the stored response.
func (c *Component) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.file = models.SelectedFile{}
	c.response = models.Response{}
}

func (c *Component) send(ctx context.Context, file models.SelectedFile) (any, error) {
	raw, err := c.transport.Post(ctx, Request{
		Endpoint:  c.target.Endpoint,
		Token:     c.target.Token,
		FieldName: c.target.FieldName,
		File:      file,
	})
	if err != nil {
		return nil, err
	}

	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		return nil, &RequestError{StatusCode: raw.StatusCode, Body: raw.Body}
	}

	return decodeBody(raw.ContentType, raw.Body), nil
}
