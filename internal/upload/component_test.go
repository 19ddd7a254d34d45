package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/DailyInvestors/Network-Repairs/internal/models"
)

// fakeTransport records requests and answers through respond.
type fakeTransport struct {
	mu       sync.Mutex
	requests []Request
	respond  func(call int, r Request) (*RawResponse, error)
}

func (f *fakeTransport) Post(ctx context.Context, r Request) (*RawResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	call := len(f.requests)
	f.mu.Unlock()
	return f.respond(call, r)
}

func (f *fakeTransport) calls() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

func okJSON(body string) func(int, Request) (*RawResponse, error) {
	return func(int, Request) (*RawResponse, error) {
		return &RawResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(body)}, nil
	}
}

func testFile(name, content string) models.SelectedFile {
	return models.SelectedFile{
		Name:        name,
		Size:        int64(len(content)),
		ContentType: "text/plain; charset=utf-8",
		Content:     []byte(content),
	}
}

func newTestComponent(tr Transport) *Component {
	return NewComponent(tr, Target{Endpoint: "https://api.example.com/upload", Token: "YOUR_API_KEY"}, nil)
}

func TestComponent_UploadWithoutFile(t *testing.T) {
	tr := &fakeTransport{respond: okJSON(`{"status":"ok"}`)}
	c := newTestComponent(tr)

	resp, attempted := c.Upload(context.Background())

	assert.False(t, attempted)
	assert.False(t, resp.IsSet())
	assert.Empty(t, tr.calls())
	assert.False(t, c.Response().IsSet())
}

func TestComponent_UploadSendsSelectedFile(t *testing.T) {
	tr := &fakeTransport{respond: okJSON(`{"status":"ok"}`)}
	c := newTestComponent(tr)
	c.HandleFileChange([]models.SelectedFile{testFile("report.csv", "a,b,c")})

	_, attempted := c.Upload(context.Background())
	require.True(t, attempted)

	calls := tr.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://api.example.com/upload", calls[0].Endpoint)
	assert.Equal(t, "YOUR_API_KEY", calls[0].Token)
	assert.Equal(t, "file", calls[0].FieldName)
	assert.Equal(t, "report.csv", calls[0].File.Name)
	assert.Equal(t, []byte("a,b,c"), calls[0].File.Content)
}

func TestComponent_UploadSuccessRendersJSON(t *testing.T) {
	tr := &fakeTransport{respond: okJSON(`{"status":"ok"}`)}
	c := newTestComponent(tr)
	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})

	resp, _ := c.Upload(context.Background())

	assert.False(t, resp.IsError())
	assert.Equal(t, "{\n  \"status\": \"ok\"\n}", c.Response().Render())
}

func TestComponent_UploadRendersServerKeyOrder(t *testing.T) {
	tr := &fakeTransport{respond: okJSON(`{"status":"ok","file":{"name":"a<b>&.txt"}}`)}
	c := newTestComponent(tr)
	c.HandleFileChange([]models.SelectedFile{testFile("a<b>&.txt", "a")})

	c.Upload(context.Background())

	assert.Equal(t, "{\n  \"status\": \"ok\",\n  \"file\": {\n    \"name\": \"a<b>&.txt\"\n  }\n}", c.Response().Render())
}

func TestComponent_UploadNetworkError(t *testing.T) {
	tr := &fakeTransport{respond: func(int, Request) (*RawResponse, error) {
		return nil, errors.New("Network Error")
	}}
	c := newTestComponent(tr)
	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})

	resp, attempted := c.Upload(context.Background())

	assert.True(t, attempted)
	assert.True(t, resp.IsError())
	assert.Equal(t, "Network Error", c.Response().Render())
	assert.Len(t, tr.calls(), 1, "no retry")
}

func TestComponent_UploadStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{name: "unauthorized", status: 401, want: "Request failed with status code 401"},
		{name: "not found", status: 404, want: "Request failed with status code 404"},
		{name: "server error", status: 500, want: "Request failed with status code 500"},
		{name: "redirect not followed", status: 304, want: "Request failed with status code 304"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTransport{respond: func(int, Request) (*RawResponse, error) {
				return &RawResponse{StatusCode: tt.status, Body: []byte(`{"error":"x"}`)}, nil
			}}
			c := newTestComponent(tr)
			c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})

			c.Upload(context.Background())

			assert.Equal(t, tt.want, c.Response().Render())
		})
	}
}

func TestComponent_LastSelectionWins(t *testing.T) {
	tr := &fakeTransport{respond: okJSON(`{}`)}
	c := newTestComponent(tr)

	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "AAA")})
	c.HandleFileChange([]models.SelectedFile{testFile("b.txt", "BBB"), testFile("c.txt", "CCC")})
	c.Upload(context.Background())

	calls := tr.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "b.txt", calls[0].File.Name)
	assert.Equal(t, []byte("BBB"), calls[0].File.Content)
}

func TestComponent_EmptyFileChangeKeepsSelection(t *testing.T) {
	c := newTestComponent(&fakeTransport{respond: okJSON(`{}`)})
	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})
	c.HandleFileChange(nil)

	f, ok := c.SelectedFile()
	require.True(t, ok)
	assert.Equal(t, "a.txt", f.Name)
}

func TestComponent_ZeroFileChangeKeepsSelection(t *testing.T) {
	tr := &fakeTransport{respond: okJSON(`{}`)}
	c := newTestComponent(tr)
	c.HandleFileChange([]models.SelectedFile{{}})

	_, ok := c.SelectedFile()
	assert.False(t, ok)
	_, attempted := c.Upload(context.Background())
	assert.False(t, attempted)
	assert.Empty(t, tr.calls())

	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})
	c.HandleFileChange([]models.SelectedFile{{}, testFile("b.txt", "b")})

	f, ok := c.SelectedFile()
	require.True(t, ok)
	assert.Equal(t, "a.txt", f.Name)
}

func TestComponent_ResponseOverwrittenEachAttempt(t *testing.T) {
	tr := &fakeTransport{respond: func(call int, _ Request) (*RawResponse, error) {
		if call == 1 {
			return nil, errors.New("Network Error")
		}
		return &RawResponse{StatusCode: 201, Body: []byte(`{"status":"ok"}`)}, nil
	}}
	c := newTestComponent(tr)
	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})

	c.Upload(context.Background())
	assert.True(t, c.Response().IsError())

	c.Upload(context.Background())
	assert.False(t, c.Response().IsError())
	assert.Equal(t, "{\n  \"status\": \"ok\"\n}", c.Response().Render())
}

func TestComponent_LastSettledUploadWins(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	releaseFirst := make(chan struct{})
	tr := &fakeTransport{respond: func(call int, _ Request) (*RawResponse, error) {
		if call == 1 {
			<-releaseFirst
			return &RawResponse{StatusCode: 200, Body: []byte(`{"attempt":"first"}`)}, nil
		}
		return &RawResponse{StatusCode: 200, Body: []byte(`{"attempt":"second"}`)}, nil
	}}
	c := newTestComponent(tr)
	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})

	first := c.UploadAsync(context.Background())
	require.Eventually(t, func() bool { return len(tr.calls()) == 1 }, time.Second, time.Millisecond)

	second := c.UploadAsync(context.Background())
	got := <-second
	assert.Equal(t, "{\n  \"attempt\": \"second\"\n}", got.Render())
	assert.Equal(t, "{\n  \"attempt\": \"second\"\n}", c.Response().Render())

	close(releaseFirst)
	<-first

	assert.Equal(t, "{\n  \"attempt\": \"first\"\n}", c.Response().Render())
}

func TestComponent_UploadAsyncWithoutFile(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	tr := &fakeTransport{respond: okJSON(`{}`)}
	c := newTestComponent(tr)

	_, ok := <-c.UploadAsync(context.Background())

	assert.False(t, ok)
	assert.Empty(t, tr.calls())
}

func TestComponent_SelectPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	c := newTestComponent(&fakeTransport{respond: okJSON(`{}`)})
	require.NoError(t, c.SelectPath(path))

	f, ok := c.SelectedFile()
	require.True(t, ok)
	assert.Equal(t, "notes.txt", f.Name)
	assert.Equal(t, int64(11), f.Size)
	assert.Equal(t, "text/plain; charset=utf-8", f.ContentType)
	assert.Equal(t, []byte("hello world"), f.Content)
}

func TestComponent_SelectPathMissing(t *testing.T) {
	c := newTestComponent(&fakeTransport{respond: okJSON(`{}`)})
	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})

	err := c.SelectPath(filepath.Join(t.TempDir(), "missing.bin"))

	assert.Error(t, err)
	f, ok := c.SelectedFile()
	require.True(t, ok)
	assert.Equal(t, "a.txt", f.Name, "failed read keeps the previous selection")
}

func TestComponent_Close(t *testing.T) {
	c := newTestComponent(&fakeTransport{respond: okJSON(`{"status":"ok"}`)})
	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})
	c.Upload(context.Background())

	c.Close()

	_, ok := c.SelectedFile()
	assert.False(t, ok)
	assert.False(t, c.Response().IsSet())
}

func TestNewComponent_CustomFieldName(t *testing.T) {
	tr := &fakeTransport{respond: okJSON(`{}`)}
	c := NewComponent(tr, Target{Endpoint: "http://x", FieldName: "function"}, nil)
	c.HandleFileChange([]models.SelectedFile{testFile("a.txt", "a")})
	c.Upload(context.Background())

	require.Len(t, tr.calls(), 1)
	assert.Equal(t, "function", tr.calls()[0].FieldName)
}
