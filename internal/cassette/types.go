package cassette

import "net/http"

// Exchange is one recorded request/response pair.
type Exchange struct {
	Request  Request  `json:"request"`
	Response Response `json:"response"`
}

type Request struct {
	URL     string      `json:"url"`
	Headers http.Header `json:"headers"`
	Method  string      `json:"method"`
}

type Response struct {
	Headers    http.Header `json:"headers"`
	BodyString string      `json:"body_string,omitempty"`
	BodyBytes  []byte      `json:"body_bytes,omitempty"`
	StatusCode int         `json:"status_code"`
}

// redactedHeaders are replaced before an exchange is written to disk.
var redactedHeaders = []string{"X-Api-Key", "Authorization"}

const redacted = "REDACTED"
