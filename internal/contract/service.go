package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/catapi-contract/internal/domain"
	"github.com/samvad-hq/catapi-contract/internal/logger"
	"github.com/samvad-hq/catapi-contract/pkg/suites"
)

// Service expands suites into cases and runs them one after another.
type Service struct {
	registry CheckRegistry
	env      *Env
	log      Logger
	now      func() time.Time
}

// NewService wires a runner with the check registry and shared environment.
func NewService(reg CheckRegistry, env *Env, log Logger) *Service {
	log = logger.Ensure(log)
	if env != nil && env.Log == nil {
		env.Log = log
	}
	return &Service{
		registry: reg,
		env:      env,
		log:      log,
		now:      time.Now,
	}
}

// Cases resolves the check of every suite and expands it into cases, in suite order.
func (s *Service) Cases(list []suites.Suite) ([]Case, error) {
	if s == nil || s.registry == nil {
		return nil, fmt.Errorf("contract service is not initialized")
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no suites configured")
	}

	var (
		out  []Case
		errs []error
	)
	for _, suite := range list {
		check, err := s.registry.CheckFor(suite)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cases, err := check.Cases(suite)
		if err != nil {
			errs = append(errs, fmt.Errorf("expand suite %s: %w", suite.ID, err))
			continue
		}
		out = append(out, cases...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Run executes every case of list. Case failures land in the report; the returned
// error is reserved for suites that cannot be expanded.
func (s *Service) Run(ctx context.Context, list []suites.Suite) (domain.Report, error) {
	cases, err := s.Cases(list)
	if err != nil {
		return domain.Report{}, err
	}
	if s.env == nil || s.env.Clients == nil {
		return domain.Report{}, fmt.Errorf("contract environment has no client factory")
	}

	report := domain.Report{
		RunID:     uuid.NewString(),
		BaseURL:   s.env.Clients.BaseURL(),
		StartedAt: s.now().UTC(),
		Results:   make([]domain.Result, 0, len(cases)),
	}
	for _, c := range cases {
		report.Add(s.runCase(ctx, c))
	}
	report.FinishedAt = s.now().UTC()

	s.log.InfoObj("contract run completed", "summary", report.Summary)
	return report, nil
}

func (s *Service) runCase(ctx context.Context, c Case) domain.Result {
	res := domain.Result{CaseID: c.ID, SuiteID: c.Suite.ID, Name: c.Name}
	if err := ctx.Err(); err != nil {
		res.Status = domain.StatusSkipped
		res.Error = err.Error()
		return res
	}

	start := s.now()
	err := c.Run(ctx, s.env)
	res.DurationMs = s.now().Sub(start).Milliseconds()

	switch {
	case err == nil:
		res.Status = domain.StatusPass
	case c.Suite.KnownIssue:
		res.Status = domain.StatusKnownIssue
		res.Error = err.Error()
		s.log.WarnObj("known issue case failed", "case_result", res)
		return res
	default:
		res.Status = domain.StatusFail
		res.Error = err.Error()
		s.log.ErrorObj("contract case failed", "case_result", res)
		return res
	}

	s.log.InfoObj("contract case passed", "case_result", res)
	return res
}
