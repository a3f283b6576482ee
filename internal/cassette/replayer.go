package cassette

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
)

// ErrExhausted is returned when more requests arrive than were recorded.
var ErrExhausted = errors.New("no exchanges remain to replay")

// Replayer serves recorded exchanges in order.
type Replayer struct {
	mu        sync.Mutex
	exchanges []Exchange
	matcher   func(*http.Request, Request) bool
}

var _ http.RoundTripper = (*Replayer)(nil)

func NewReplayer(file string) (*Replayer, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var exchanges []Exchange
	if err := json.NewDecoder(f).Decode(&exchanges); err != nil {
		return nil, fmt.Errorf("decode cassette %s: %w", file, err)
	}

	return &Replayer{
		exchanges: exchanges,
		matcher:   DefaultMatcher,
	}, nil
}

func (r *Replayer) RoundTrip(req *http.Request) (*http.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.exchanges) == 0 {
		return nil, ErrExhausted
	}

	ex := r.exchanges[0]
	if !r.matcher(req, ex.Request) {
		return nil, fmt.Errorf("cassette mismatch: got %s %s, want %s %s",
			req.Method, req.URL.String(), ex.Request.Method, ex.Request.URL)
	}
	r.exchanges = r.exchanges[1:]

	var body io.Reader
	if len(ex.Response.BodyBytes) > 0 {
		body = bytes.NewReader(ex.Response.BodyBytes)
	} else {
		body = strings.NewReader(ex.Response.BodyString)
	}
	header := ex.Response.Headers.Clone()
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		Status:     fmt.Sprintf("%d %s", ex.Response.StatusCode, http.StatusText(ex.Response.StatusCode)),
		StatusCode: ex.Response.StatusCode,
		Header:     header,
		Body:       io.NopCloser(body),
		Request:    req,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
	}, nil
}

// Remaining reports how many exchanges have not been replayed.
func (r *Replayer) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.exchanges)
}

// DefaultMatcher compares method and full URL. Headers are ignored because credentials are redacted.
func DefaultMatcher(req *http.Request, stored Request) bool {
	return req.Method == stored.Method && req.URL.String() == stored.URL
}
