package httpclient

import (
	"context"
	"net/http"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// FilePart is a single file sent in a multipart/form-data body.
type FilePart struct {
	Field    string
	FileName string
	Content  []byte
}

// Request describes one outgoing call. At most one body kind (Form, JSON, File) is expected.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   map[string]string
	Form    map[string]string
	JSON    any
	File    *FilePart
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	Do(ctx context.Context, req Request) (Response, error)
}
