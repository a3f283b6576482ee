package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/samvad-hq/catapi-contract/internal/config"
	"github.com/samvad-hq/catapi-contract/internal/logger"
	"github.com/samvad-hq/catapi-contract/internal/storage"
	"github.com/samvad-hq/catapi-contract/pkg/apiclient"
)

// CleanupResult counts what a janitor pass did.
type CleanupResult struct {
	Deleted int `json:"deleted"`
	Missing int `json:"missing"`
	Failed  int `json:"failed"`
}

// Janitor deletes images recorded in the upload ledger.
type Janitor struct {
	store    storage.Store
	clients  *apiclient.Factory
	cassette io.Closer
	log      logger.Logger
}

// NewJanitor builds a janitor from config.
func NewJanitor(cfg *config.Config, log logger.Logger) (*Janitor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if !cfg.HasAPIKey() {
		return nil, fmt.Errorf("cleanup requires CAT_API_KEY")
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}
	factory, closer, err := newClientFactory(cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &Janitor{store: store, clients: factory, cassette: closer, log: log}, nil
}

// Run issues DELETE /images/{id} for every recorded upload. Ids are forgotten once the
// API confirms the delete or reports the image gone.
func (j *Janitor) Run(ctx context.Context) (CleanupResult, error) {
	var res CleanupResult
	ids, err := j.store.Uploads()
	if err != nil {
		return res, fmt.Errorf("list uploads: %w", err)
	}
	if len(ids) == 0 {
		j.log.InfoObj("no uploads to clean up", "cleanup", res)
		return res, nil
	}

	client := j.clients.New(nil, true)
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		resp, err := client.Delete(ctx, "/images/"+id, nil)
		if err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("delete %s: %w", id, err))
			continue
		}

		status := resp.StatusCode()
		switch {
		case status >= 200 && status < 300:
			res.Deleted++
		case status == http.StatusNotFound:
			res.Missing++
		default:
			res.Failed++
			errs = append(errs, fmt.Errorf("delete %s: status %d (body: %s)", id, status, resp.Snippet()))
			continue
		}
		if err := j.store.ForgetUpload(id); err != nil {
			errs = append(errs, fmt.Errorf("forget %s: %w", id, err))
		}
	}

	j.log.InfoObj("upload cleanup completed", "cleanup", res)
	return res, errors.Join(errs...)
}

// Close flushes the cassette and closes the ledger.
func (j *Janitor) Close() error {
	if j == nil {
		return nil
	}
	return errors.Join(j.cassette.Close(), j.store.Close())
}
