package httpclient

import (
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"
)

type stubResponse struct {
	body   []byte
	status int
	header http.Header
}

func (s stubResponse) Body() []byte        { return s.body }
func (s stubResponse) StatusCode() int     { return s.status }
func (s stubResponse) Header() http.Header { return s.header }

func TestSnippetReducesHTMLErrorPages(t *testing.T) {
	resp := stubResponse{
		status: 404,
		header: http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		body: []byte(`<!DOCTYPE html>
<html lang="en"><head><title>Error</title></head>
<body><pre>Cannot GET /v1/nope</pre></body></html>`),
	}
	if got := Snippet(resp); got != "Error: Cannot GET /v1/nope" {
		t.Fatalf("Snippet = %q", got)
	}
}

func TestSnippetTruncatesAndCollapses(t *testing.T) {
	body := strings.Repeat("a  b\n", 200)
	got := snippet("text/plain", []byte(body), 10)
	if got != "a b a b a ..." {
		t.Fatalf("snippet = %q", got)
	}
	if got := snippet("", nil, 10); got != "<empty>" {
		t.Fatalf("empty snippet = %q", got)
	}
	if got := Snippet(nil); got != "<no response>" {
		t.Fatalf("nil snippet = %q", got)
	}
}

func TestSnippetTruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", 9) + "é tail"
	got := snippet("text/plain", []byte(body), 10)
	if !utf8.ValidString(got) {
		t.Fatalf("snippet is not valid utf-8: %q", got)
	}
	if got != strings.Repeat("a", 9)+"..." {
		t.Fatalf("snippet = %q", got)
	}
}
