package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestResponse_Render(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{
			name: "unset",
			resp: Response{},
			want: "",
		},
		{
			name: "object data",
			resp: NewDataResponse(map[string]any{"status": "ok"}),
			want: "{\n  \"status\": \"ok\"\n}",
		},
		{
			name: "nested data",
			resp: NewDataResponse(map[string]any{"file": map[string]any{"id": "a"}}),
			want: "{\n  \"file\": {\n    \"id\": \"a\"\n  }\n}",
		},
		{
			name: "string data is quoted",
			resp: NewDataResponse("uploaded"),
			want: `"uploaded"`,
		},
		{
			name: "error message verbatim",
			resp: NewErrorResponse("Network Error"),
			want: "Network Error",
		},
		{
			name: "null data",
			resp: NewDataResponse(nil),
			want: "",
		},
		{
			name: "empty string data",
			resp: NewDataResponse(""),
			want: "",
		},
		{
			name: "zero number",
			resp: NewDataResponse(float64(0)),
			want: "",
		},
		{
			name: "small msgpack integers",
			resp: NewDataResponse(int8(0)),
			want: "",
		},
		{
			name: "unsigned zero",
			resp: NewDataResponse(uint16(0)),
			want: "",
		},
		{
			name: "nonzero small integer",
			resp: NewDataResponse(int8(7)),
			want: "7",
		},
		{
			name: "decoded value is not html escaped",
			resp: NewDataResponse(map[string]any{"name": "a<b>&.txt"}),
			want: "{\n  \"name\": \"a<b>&.txt\"\n}",
		},
		{
			name: "raw json keeps key order",
			resp: NewDataResponse(json.RawMessage(`{"status":"ok","file":{"name":"a<b>&.txt","size":3}}`)),
			want: "{\n  \"status\": \"ok\",\n  \"file\": {\n    \"name\": \"a<b>&.txt\",\n    \"size\": 3\n  }\n}",
		},
		{
			name: "raw json null",
			resp: NewDataResponse(json.RawMessage(`null`)),
			want: "",
		},
		{
			name: "raw json false",
			resp: NewDataResponse(json.RawMessage(`false`)),
			want: "",
		},
		{
			name: "raw json zero",
			resp: NewDataResponse(json.RawMessage(`0`)),
			want: "",
		},
		{
			name: "raw json empty string",
			resp: NewDataResponse(json.RawMessage(`""`)),
			want: "",
		},
		{
			name: "raw json array",
			resp: NewDataResponse(json.RawMessage(`[1,2]`)),
			want: "[\n  1,\n  2\n]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resp.Render())
		})
	}
}

func TestResponse_State(t *testing.T) {
	var zero Response
	assert.False(t, zero.IsSet())
	assert.False(t, zero.IsError())

	ok := NewDataResponse(map[string]any{})
	assert.True(t, ok.IsSet())
	assert.False(t, ok.IsError())

	failed := NewErrorResponse("boom")
	assert.True(t, failed.IsSet())
	assert.True(t, failed.IsError())
}

func TestSelectedFile_IsZero(t *testing.T) {
	assert.True(t, SelectedFile{}.IsZero())
	assert.False(t, SelectedFile{Name: "a.txt"}.IsZero())
	assert.False(t, SelectedFile{Content: []byte{}}.IsZero())
}
