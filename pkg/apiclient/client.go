// Package apiclient is the reusable client the contract checks use to call the Cat API.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/samvad-hq/catapi-contract/pkg/httpclient"
)

// APIKeyHeader carries the credential on authenticated requests.
const APIKeyHeader = "x-api-key"

// Logger is the logging surface the client relies on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
}

// Params holds query or form values. Numbers render in plain decimal form, other values with fmt semantics.
type Params map[string]any

// Strings renders the params into the string map the transport expects.
func (p Params) Strings() map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		switch val := v.(type) {
		case string:
			out[k] = val
		case bool:
			out[k] = strconv.FormatBool(val)
		case int:
			out[k] = strconv.Itoa(val)
		case int64:
			out[k] = strconv.FormatInt(val, 10)
		case float64:
			// JSON suite files decode every number as float64.
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case nil:
			out[k] = ""
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

// Response wraps the transport response with the accessors checks assert on.
type Response struct {
	raw httpclient.Response
}

func (r *Response) StatusCode() int     { return r.raw.StatusCode() }
func (r *Response) Header() http.Header { return r.raw.Header() }
func (r *Response) Body() []byte        { return r.raw.Body() }
func (r *Response) Text() string        { return string(r.raw.Body()) }

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.raw.Body(), v); err != nil {
		return fmt.Errorf("decode %d response: %w", r.raw.StatusCode(), err)
	}
	return nil
}

// Snippet is a short preview of the body for failure messages.
func (r *Response) Snippet() string { return httpclient.Snippet(r.raw) }

// Client sends requests relative to a base URL with a fixed header set.
type Client struct {
	baseURL string
	headers map[string]string
	apiKey  bool
	http    httpclient.Client
	log     Logger
}

// BaseURL returns the URL endpoints are appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() map[string]string { return copyHeaders(c.headers) }

// Authorized reports whether an API key was requested for this client.
func (c *Client) Authorized() bool { return c.apiKey }

// Get requests baseURL+endpoint. An empty endpoint targets the base URL itself.
func (c *Client) Get(ctx context.Context, endpoint string, params Params) (*Response, error) {
	return c.do(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    c.url(endpoint),
		Query:  params.Strings(),
	})
}

// Post sends data as form fields and/or payload as a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, data Params, payload any) (*Response, error) {
	return c.do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.url(endpoint),
		Form:   data.Strings(),
		JSON:   payload,
	})
}

// Upload posts a multipart/form-data body with one file part and extra text fields.
func (c *Client) Upload(ctx context.Context, endpoint string, file httpclient.FilePart, fields Params) (*Response, error) {
	if file.Field == "" {
		file.Field = "file"
	}
	return c.do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.url(endpoint),
		Form:   fields.Strings(),
		File:   &file,
	})
}

// Delete sends a DELETE with optional query params.
func (c *Client) Delete(ctx context.Context, endpoint string, params Params) (*Response, error) {
	return c.do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		URL:    c.url(endpoint),
		Query:  params.Strings(),
	})
}

func (c *Client) url(endpoint string) string {
	if endpoint == "" {
		return c.baseURL
	}
	return c.baseURL + endpoint
}

func (c *Client) do(ctx context.Context, req httpclient.Request) (*Response, error) {
	c.log.InfoObj("testing endpoint url", "request", map[string]any{
		"method": req.Method,
		"url":    req.URL,
	})
	req.Headers = c.headers
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Response{raw: resp}, nil
}

func copyHeaders(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
