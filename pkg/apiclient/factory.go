package apiclient

import (
	"strings"

	"github.com/samvad-hq/catapi-contract/pkg/httpclient"
)

// FactoryConfig is the process-wide configuration every client is built from.
type FactoryConfig struct {
	BaseURL string
	APIKey  string
}

// Factory builds a fresh Client per test.
type Factory struct {
	cfg  FactoryConfig
	http httpclient.Client
	log  Logger
}

// NewFactory returns a Factory sending requests through transport.
func NewFactory(cfg FactoryConfig, transport httpclient.Client, log Logger) *Factory {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if transport == nil {
		transport = httpclient.NewRestyClient(0)
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Factory{cfg: cfg, http: transport, log: log}
}

// New creates a Client with a copy of headers. When withKey is set the configured
// API key is attached; a missing key is logged and the client proceeds unauthenticated.
func (f *Factory) New(headers map[string]string, withKey bool) *Client {
	h := copyHeaders(headers)
	if withKey {
		if f.cfg.APIKey != "" {
			h[APIKeyHeader] = f.cfg.APIKey
			f.log.InfoObj("CAT_API_KEY environment variable found", "auth", map[string]any{
				"header": APIKeyHeader,
			})
		} else {
			f.log.WarnObj("CAT_API_KEY environment variable is not set, request proceeds unauthenticated", "auth", map[string]any{
				"header": APIKeyHeader,
			})
		}
	}
	return &Client{
		baseURL: f.cfg.BaseURL,
		headers: h,
		apiKey:  withKey,
		http:    f.http,
		log:     f.log,
	}
}

// HasAPIKey reports whether clients built with withKey will actually authenticate.
func (f *Factory) HasAPIKey() bool { return f.cfg.APIKey != "" }

type nopLogger struct{}

func (nopLogger) InfoObj(string, string, interface{}) {}
func (nopLogger) WarnObj(string, string, interface{}) {}

// BaseURL returns the URL every client targets.
func (f *Factory) BaseURL() string { return f.cfg.BaseURL }
