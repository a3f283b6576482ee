package contract

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/catapi-contract/internal/catapitest"
	"github.com/samvad-hq/catapi-contract/internal/config"
	"github.com/samvad-hq/catapi-contract/internal/logger"
	"github.com/samvad-hq/catapi-contract/internal/storage"
	"github.com/samvad-hq/catapi-contract/pkg/apiclient"
	"github.com/samvad-hq/catapi-contract/pkg/fixtures"
	"github.com/samvad-hq/catapi-contract/pkg/httpclient"
	"go.uber.org/zap/zaptest"
)

// fromModuleRoot resolves a relative path from .env against the module root, since
// tests run from this package directory.
func fromModuleRoot(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join("..", "..", p)
}

// newConfiguredEnv builds the Env a live run uses, including the upload ledger the
// cleanup command reads. The ledger is closed when the test ends.
func newConfiguredEnv(t *testing.T, cfg *config.Config, log logger.Logger) (*Env, storage.Store) {
	t.Helper()
	store, err := storage.NewStore(cfg.StorageType, fromModuleRoot(cfg.BBoltPath), storage.Options{
		UploadTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		t.Fatalf("open upload ledger: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close upload ledger: %v", err)
		}
	})

	env := &Env{
		Clients: apiclient.NewFactory(
			apiclient.FactoryConfig{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey},
			httpclient.NewRestyClient(cfg.RequestTimeout),
			log,
		),
		Fixtures: fixtures.Open(fromModuleRoot(cfg.TestDataDir), fromModuleRoot(cfg.UploadImage)),
		Uploads:  store,
		SubID:    cfg.UploadSubID,
		Log:      log,
	}
	return env, store
}

func TestConfiguredEnvRecordsUploads(t *testing.T) {
	srv := catapitest.NewServer(testKey)
	defer srv.Close()

	t.Setenv("CAT_URL", srv.BaseURL())
	t.Setenv("CAT_API_KEY", testKey)
	t.Setenv("STORAGE_TYPE", "bbolt")
	t.Setenv("BBOLT_PATH", filepath.Join(t.TempDir(), "uploads.db"))
	cfg, err := config.LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	log := logger.FromZap(zaptest.NewLogger(t))
	env, store := newConfiguredEnv(t, cfg, log)
	report, err := NewService(DefaultCheckRegistry(), env, log).Run(context.Background(), suitesByID(t, "images-upload"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	ids, err := store.Uploads()
	if err != nil {
		t.Fatalf("Uploads: %v", err)
	}
	if len(ids) != 1 || !srv.Uploaded(ids[0]) {
		t.Fatalf("expected the uploaded id in the ledger, got %v", ids)
	}
}

func TestFromModuleRoot(t *testing.T) {
	for in, want := range map[string]string{
		"":                  "",
		"/tmp/uploads.db":   "/tmp/uploads.db",
		"./data/uploads.db": filepath.Join("..", "..", "data", "uploads.db"),
	} {
		if got := fromModuleRoot(in); got != want {
			t.Errorf("fromModuleRoot(%q) = %q, want %q", in, got, want)
		}
	}
}
