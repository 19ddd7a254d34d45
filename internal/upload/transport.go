package upload

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"
	"go.uber.org/zap"

	"github.com/DailyInvestors/Network-Repairs/internal/models"
)

// HeaderRequestID carries a per-attempt id so client and server logs line up.
const HeaderRequestID = "X-Request-ID"

// Request is a single multipart upload.
type Request struct {
	Endpoint  string
	Token     string
	FieldName string
	File      models.SelectedFile
}

// RawResponse is what came back from the endpoint before decoding.
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Transport sends one upload request. Implementations must not retry.
type Transport interface {
	Post(ctx context.Context, r Request) (*RawResponse, error)
}

// TransportOptions tunes the HTTP client.
type TransportOptions struct {
	// Timeout of zero keeps the client library default.
	Timeout            time.Duration
	UserAgent          string
	InsecureSkipVerify bool
	// Dump writes full request/response dumps to stdout.
	Dump bool
}

// HTTPTransport posts uploads over HTTP with req.
type HTTPTransport struct {
	client *req.Client
	logger *zap.Logger
}

// NewHTTPTransport builds a transport from opts.
func NewHTTPTransport(opts TransportOptions, logger *zap.Logger) *HTTPTransport {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := req.C()
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		client.SetUserAgent(opts.UserAgent)
	}
	if opts.InsecureSkipVerify {
		client.EnableInsecureSkipVerify()
	}
	if opts.Dump {
		client.EnableDumpAll()
	}

	return &HTTPTransport{
		client: client,
		logger: logger,
	}
}

// Post sends r as multipart/form-data with a bearer token.
func (t *HTTPTransport) Post(ctx context.Context, r Request) (*RawResponse, error) {
	requestID := uuid.NewString()
	content := r.File.Content

	t.logger.Debug("posting upload",
		zap.String("request_id", requestID),
		zap.String("endpoint", r.Endpoint),
		zap.String("file", r.File.Name),
		zap.Int64("size", r.File.Size),
	)

	resp, err := t.client.R().
		SetContext(ctx).
		SetBearerAuthToken(r.Token).
		SetHeader(HeaderRequestID, requestID).
		SetFileUpload(req.FileUpload{
			ParamName: r.FieldName,
			FileName:  r.File.Name,
			GetFileContent: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(content)), nil
			},
			FileSize:    int64(len(content)),
			ContentType: r.File.ContentType,
		}).
		Post(r.Endpoint)
	if err != nil {
		t.logger.Debug("upload transport error",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, err
	}

	raw := &RawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.GetContentType(),
		Body:        resp.Bytes(),
	}

	t.logger.Debug("upload response",
		zap.String("request_id", requestID),
		zap.Int("status", raw.StatusCode),
		zap.Int("bytes", len(raw.Body)),
	)

	return raw, nil
}
