package contract

import (
	"context"

	"github.com/samvad-hq/catapi-contract/pkg/apiclient"
	"github.com/samvad-hq/catapi-contract/pkg/fixtures"
	"github.com/samvad-hq/catapi-contract/pkg/suites"
)

// Logger is the logging surface checks rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// UploadRecorder remembers images created by the harness so they can be cleaned up.
type UploadRecorder interface {
	RecordUpload(id string) error
}

// Env carries the shared, read-only collaborators of every case.
type Env struct {
	Clients  *apiclient.Factory
	Fixtures *fixtures.Loader
	Uploads  UploadRecorder
	SubID    string
	Log      Logger
}

// client builds a fresh client for one case from the suite's headers and auth flag.
func (e *Env) client(s suites.Suite) *apiclient.Client {
	return e.Clients.New(s.Headers, s.APIKey)
}

// Check turns a suite definition into runnable cases.
// Concrete implementations live in the checks_*.go files.
type Check interface {
	Type() string
	Cases(s suites.Suite) ([]Case, error)
}

// CheckRegistry resolves the check implementation for a suite.
type CheckRegistry interface {
	CheckFor(s suites.Suite) (Check, error)
}

// Case is one executable contract assertion.
type Case struct {
	ID    string
	Name  string
	Suite suites.Suite
	run   func(ctx context.Context, env *Env) error
}

// Run executes the case against env.
func (c Case) Run(ctx context.Context, env *Env) error {
	return c.run(ctx, env)
}
