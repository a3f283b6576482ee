package domain

import (
	"errors"
	"fmt"
	"time"
)

// Case outcomes.
const (
	StatusPass       = "pass"
	StatusFail       = "fail"
	StatusKnownIssue = "known_issue"
	StatusSkipped    = "skipped"
)

// Result is the outcome of one case.
type Result struct {
	CaseID     string `json:"case_id"`
	SuiteID    string `json:"suite_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Summary counts results per status.
type Summary struct {
	Total      int `json:"total"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	KnownIssue int `json:"known_issue"`
	Skipped    int `json:"skipped"`
}

// Report is the record of one contract run. It is what report sinks publish.
type Report struct {
	RunID      string    `json:"run_id"`
	BaseURL    string    `json:"base_url"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Summary    Summary   `json:"summary"`
	Results    []Result  `json:"results"`
}

func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
	r.Summary.Total++
	switch res.Status {
	case StatusPass:
		r.Summary.Passed++
	case StatusFail:
		r.Summary.Failed++
	case StatusKnownIssue:
		r.Summary.KnownIssue++
	case StatusSkipped:
		r.Summary.Skipped++
	}
}

// Failed returns the results with status fail.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFail {
			out = append(out, res)
		}
	}
	return out
}

// Err joins every failure into one error, or returns nil when the run passed.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, res := range failed {
		errs = append(errs, fmt.Errorf("%s: %s", res.CaseID, res.Error))
	}
	return errors.Join(errs...)
}
