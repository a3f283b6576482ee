package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samvad-hq/catapi-contract/internal/config"
	"github.com/samvad-hq/catapi-contract/internal/contract"
	"github.com/samvad-hq/catapi-contract/internal/domain"
	"github.com/samvad-hq/catapi-contract/internal/logger"
	"github.com/samvad-hq/catapi-contract/internal/storage"
	"github.com/samvad-hq/catapi-contract/pkg/fixtures"
	"github.com/samvad-hq/catapi-contract/pkg/publishers"
	"github.com/samvad-hq/catapi-contract/pkg/suites"
)

// Runner executes one contract run: it expands the configured suites, runs every
// case against the API, and publishes the report to the configured sinks.
type Runner struct {
	cfg      *config.Config
	suites   *suites.Registry
	service  *contract.Service
	env      *contract.Env
	fanout   *publishers.Fanout
	store    storage.Store
	cassette io.Closer
	log      logger.Logger
}

// NewRunner builds a runner from config files.
func NewRunner(ctx context.Context, cfg *config.Config, log logger.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}
	if !cfg.EnvFileLoaded {
		log.WarnObj("env file not found, only unauthenticated requests will succeed", "env_file", cfg.EnvFile)
	}

	suiteReg, err := suites.LoadOrDefault(cfg.SuitesFile)
	if err != nil {
		return nil, fmt.Errorf("load suites: %w", err)
	}
	log.InfoObj("suites loaded", "suites_meta", map[string]any{
		"count": len(suiteReg.All()),
		"file":  cfg.SuitesFile,
	})

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg, log)
	if err != nil {
		fanout.Close()
		return nil, err
	}

	factory, cassetteCloser, err := newClientFactory(cfg, log)
	if err != nil {
		store.Close()
		fanout.Close()
		return nil, err
	}

	data := fixtures.Open(cfg.TestDataDir, cfg.UploadImage)
	env := &contract.Env{
		Clients:  factory,
		Fixtures: data,
		Uploads:  store,
		SubID:    cfg.UploadSubID,
		Log:      log,
	}

	return &Runner{
		cfg:      cfg,
		suites:   suiteReg,
		service:  contract.NewService(contract.DefaultCheckRegistry(), env, log),
		env:      env,
		fanout:   fanout,
		store:    store,
		cassette: cassetteCloser,
		log:      log,
	}, nil
}

func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if cfg.PublishersFile == "" {
		log.InfoObj("no publishers file configured, reports are only logged", "publishers_file", "")
		return publishers.NewFanout(nil, log), nil
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{"id": pubCfg.ID, "type": pubCfg.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients, log), nil
}

// Suites returns the enabled suites, or the named ones when ids are given.
func (r *Runner) Suites(ids ...string) ([]suites.Suite, error) {
	return r.suites.Enabled(ids...)
}

// Run executes the selected suites once and publishes the report. The returned error
// is non-nil when any case failed; publisher failures are only logged.
func (r *Runner) Run(ctx context.Context, ids ...string) (domain.Report, error) {
	if r == nil || r.service == nil {
		return domain.Report{}, fmt.Errorf("runner is not initialized")
	}

	list, err := r.Suites(ids...)
	if err != nil {
		return domain.Report{}, err
	}
	for _, s := range list {
		if s.Type != suites.TypeUpload {
			continue
		}
		if image := contract.UploadImage(s); r.env.Fixtures.IsPlaceholderImage(image) {
			r.log.WarnObj("upload suite uses the bundled placeholder image, the live API rejects it; set UPLOAD_IMAGE or TEST_DATA_DIR to a real cat photo", "suite", s.ID)
		}
	}
	r.log.InfoObj("contract run starting", "run_meta", map[string]any{
		"base_url":     r.cfg.BaseURL,
		"suites_count": len(list),
		"api_key":      r.cfg.HasAPIKey(),
	})

	report, err := r.service.Run(ctx, list)
	if err != nil {
		return domain.Report{}, err
	}

	delivered, perr := r.fanout.Publish(ctx, publishers.NewEvent(report))
	if perr != nil {
		r.log.ErrorObj("report publishing incomplete", "publish_error", map[string]any{
			"run_id":    report.RunID,
			"delivered": delivered,
			"error":     perr.Error(),
		})
	}

	return report, report.Err()
}

// Close flushes the cassette and releases the store and publishers.
func (r *Runner) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, c := range []io.Closer{r.cassette, r.store, r.fanout} {
		if c == nil {
			continue
		}
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
