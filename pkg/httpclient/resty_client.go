package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient. A zero timeout keeps resty's default (none).
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout, nil)}
}

// NewRestyClientWithTransport creates a RestyClient that sends requests through rt.
func NewRestyClientWithTransport(timeout time.Duration, rt http.RoundTripper) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout, rt)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout, nil)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout and transport.
func newRestyBaseClient(timeout time.Duration, rt http.RoundTripper) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	if rt != nil {
		c.SetTransport(rt)
	}
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.Do(ctx, Request{Method: http.MethodGet, URL: url, Headers: headers})
}

// Do executes req and returns the raw response. Non-2xx statuses are not errors.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, fmt.Errorf("request url is empty")
	}

	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if len(req.Query) > 0 {
		rr.SetQueryParams(req.Query)
	}

	switch {
	case req.File != nil:
		rr.SetFileReader(req.File.Field, req.File.FileName, bytes.NewReader(req.File.Content))
		if len(req.Form) > 0 {
			rr.SetMultipartFormData(req.Form)
		}
	case len(req.Form) > 0:
		rr.SetFormData(req.Form)
	case req.JSON != nil:
		rr.SetHeader("Content-Type", "application/json")
		rr.SetBody(req.JSON)
	}

	resp, err := rr.Execute(method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
