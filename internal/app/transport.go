package app

import (
	"fmt"
	"io"
	"net/http"

	"github.com/samvad-hq/catapi-contract/internal/cassette"
	"github.com/samvad-hq/catapi-contract/internal/config"
	"github.com/samvad-hq/catapi-contract/internal/logger"
	"github.com/samvad-hq/catapi-contract/internal/storage"
	"github.com/samvad-hq/catapi-contract/pkg/apiclient"
	"github.com/samvad-hq/catapi-contract/pkg/httpclient"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newClientFactory builds the API client factory, routing traffic through a cassette
// when cassette_mode asks for it. The returned closer flushes recordings.
func newClientFactory(cfg *config.Config, log logger.Logger) (*apiclient.Factory, io.Closer, error) {
	var (
		rt     http.RoundTripper
		closer io.Closer = nopCloser{}
	)
	switch cfg.CassetteMode {
	case config.CassetteRecord:
		rec := cassette.NewRecorder(cfg.CassettePath, nil)
		rt, closer = rec, rec
	case config.CassetteReplay:
		rep, err := cassette.NewReplayer(cfg.CassettePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open cassette: %w", err)
		}
		rt = rep
	}
	if cfg.CassetteMode != config.CassetteOff {
		log.InfoObj("cassette transport enabled", "cassette", map[string]any{
			"mode": cfg.CassetteMode,
			"path": cfg.CassettePath,
		})
	}

	factory := apiclient.NewFactory(
		apiclient.FactoryConfig{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey},
		httpclient.NewRestyClientWithTransport(cfg.RequestTimeout, rt),
		log,
	)
	return factory, closer, nil
}

func openStore(cfg *config.Config, log logger.Logger) (storage.Store, error) {
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		UploadTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"upload_ttl_seconds":       int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})
	return store, nil
}
