package upload

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
)

// decodeBody turns a response body into display data. MessagePack is decoded
// when the content type says so. Valid JSON is kept as raw bytes so the
// server's key order survives rendering; anything else is kept as text.
func decodeBody(contentType string, body []byte) any {
	if len(body) == 0 {
		return ""
	}

	if isMsgpack(contentType) {
		var v any
		if err := msgpack.Unmarshal(body, &v); err == nil {
			return v
		}
		return string(body)
	}

	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return string(body)
	}
	return json.RawMessage(append([]byte(nil), trimmed...))
}

func isMsgpack(contentType string) bool {
	ct := strings.ToLower(contentType)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(ct)
	return ct == "application/msgpack" || ct == "application/x-msgpack" || ct == "application/vnd.msgpack"
}
