package cassette

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"
)

// Recorder passes requests to an inner transport and keeps every exchange for Close.
type Recorder struct {
	file  string
	inner http.RoundTripper

	mu        sync.Mutex
	exchanges []Exchange
}

var _ http.RoundTripper = (*Recorder)(nil)

func NewRecorder(file string, inner http.RoundTripper) *Recorder {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &Recorder{file: file, inner: inner}
}

func (r *Recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.inner.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	ex := Exchange{
		Request: Request{
			URL:     req.URL.String(),
			Headers: redact(req.Header),
			Method:  req.Method,
		},
		Response: Response{
			Headers:    resp.Header.Clone(),
			StatusCode: resp.StatusCode,
		},
	}
	if utf8.Valid(body) {
		ex.Response.BodyString = string(body)
	} else {
		ex.Response.BodyBytes = body
	}

	r.mu.Lock()
	r.exchanges = append(r.exchanges, ex)
	r.mu.Unlock()

	// Put the body back for the caller.
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// Len reports how many exchanges were recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.exchanges)
}

// Close writes the recorded exchanges as indented JSON.
func (r *Recorder) Close() error {
	if dir := filepath.Dir(r.file); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(r.file)
	if err != nil {
		return err
	}
	defer f.Close()

	r.mu.Lock()
	defer r.mu.Unlock()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r.exchanges)
}

func redact(h http.Header) http.Header {
	out := h.Clone()
	if out == nil {
		out = http.Header{}
	}
	for _, key := range redactedHeaders {
		if out.Get(key) != "" {
			out.Set(key, redacted)
		}
	}
	return out
}
