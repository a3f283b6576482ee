package publishers

import (
	"time"

	"github.com/samvad-hq/catapi-contract/internal/domain"
)

// Run verdicts carried on every event.
const (
	VerdictPass = "pass"
	VerdictFail = "fail"
)

// Event is the payload published after a contract run.
type Event struct {
	RunID       string        `json:"run_id"`
	BaseURL     string        `json:"base_url"`
	Verdict     string        `json:"verdict"`
	Report      domain.Report `json:"report"`
	PublishedAt time.Time     `json:"published_at"`
}

// NewEvent wraps report for publishing.
func NewEvent(report domain.Report) Event {
	verdict := VerdictPass
	if report.Summary.Failed > 0 {
		verdict = VerdictFail
	}
	return Event{
		RunID:       report.RunID,
		BaseURL:     report.BaseURL,
		Verdict:     verdict,
		Report:      report,
		PublishedAt: time.Now().UTC(),
	}
}

// attributes are the routing attributes attached by queue sinks.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"run_id":  e.RunID,
		"verdict": e.Verdict,
	}
}
