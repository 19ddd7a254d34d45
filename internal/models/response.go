package models

import (
	"bytes"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

// Response is the outcome of the most recent upload attempt: either decoded
// result data or an error description.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`

	// set distinguishes a stored response from the zero value.
	set bool
}

// NewDataResponse wraps decoded response data.
func NewDataResponse(data any) Response {
	return Response{Data: data, set: true}
}

// NewErrorResponse wraps a failure message.
func NewErrorResponse(msg string) Response {
	return Response{Error: msg, set: true}
}

// IsSet reports whether an upload attempt has stored this response.
func (r Response) IsSet() bool {
	return r.set
}

// IsError reports whether the response holds a failure message.
func (r Response) IsError() bool {
	return r.set && r.Error != ""
}

// Render returns the display text: error messages verbatim, data as JSON
// indented by two spaces. Empty when there is nothing to show.
//
// Raw JSON keeps its key order and is not HTML-escaped.
func (r Response) Render() string {
	if !r.set {
		return ""
	}
	if r.Error != "" {
		return r.Error
	}

	if raw, ok := r.Data.(json.RawMessage); ok {
		return renderRaw(raw)
	}

	if isFalsy(r.Data) {
		return ""
	}
	return renderValue(r.Data)
}

func renderRaw(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	if isFalsy(v) {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func renderValue(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err.Error()
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// isFalsy matches the values a result display skips: null, "", false and zero.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	}
	return false
}
