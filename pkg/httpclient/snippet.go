package httpclient

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const defaultSnippetLen = 512

// Snippet renders a short, single-line preview of a response body for failure messages.
// HTML bodies (error pages from proxies and the API gateway) are reduced to their text.
func Snippet(resp Response) string {
	if resp == nil {
		return "<no response>"
	}
	return snippet(resp.Header().Get("Content-Type"), resp.Body(), defaultSnippetLen)
}

func snippet(contentType string, body []byte, maxLen int) string {
	text := strings.TrimSpace(string(body))
	if isHTML(contentType, body) {
		if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
			text = htmlText(doc)
		}
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "<empty>"
	}
	if maxLen > 0 && len(text) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		return text[:cut] + "..."
	}
	return text
}

func isHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := bytes.ToLower(bytes.TrimSpace(body))
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// htmlText prefers <title> and <pre> (express error pages) before falling back to the body text.
func htmlText(doc *goquery.Document) string {
	parts := make([]string, 0, 2)
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		parts = append(parts, title)
	}
	if pre := strings.TrimSpace(doc.Find("pre").First().Text()); pre != "" {
		parts = append(parts, pre)
	}
	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return strings.TrimSpace(doc.Find("body").Text())
}
