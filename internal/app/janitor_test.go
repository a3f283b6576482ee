package app

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/samvad-hq/catapi-contract/internal/catapitest"
	"github.com/samvad-hq/catapi-contract/internal/logger"
	"github.com/samvad-hq/catapi-contract/internal/storage"
	"github.com/samvad-hq/catapi-contract/pkg/apiclient"
	"github.com/samvad-hq/catapi-contract/pkg/httpclient"
	"go.uber.org/zap/zaptest"
)

func newTestJanitor(t *testing.T, srv *catapitest.Server, ids ...string) (*Janitor, storage.Store) {
	t.Helper()
	store, err := storage.NewStore("bbolt", filepath.Join(t.TempDir(), "uploads.db"), storage.Options{UploadTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	for _, id := range ids {
		if err := store.RecordUpload(id); err != nil {
			t.Fatalf("RecordUpload: %v", err)
		}
	}
	log := logger.FromZap(zaptest.NewLogger(t))
	factory := apiclient.NewFactory(
		apiclient.FactoryConfig{BaseURL: srv.BaseURL(), APIKey: testKey},
		httpclient.NewRestyClient(5*time.Second),
		log,
	)
	j := &Janitor{store: store, clients: factory, cassette: nopCloser{}, log: log}
	t.Cleanup(func() { j.Close() })
	return j, store
}

func TestJanitorDeletesRecordedUploads(t *testing.T) {
	srv := catapitest.NewServer(testKey)
	defer srv.Close()
	srv.AddUpload("owned")

	j, store := newTestJanitor(t, srv, "owned", "gone")
	res, err := j.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Deleted != 1 || res.Missing != 1 || res.Failed != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if srv.Uploaded("owned") {
		t.Fatalf("expected owned image deleted on the server")
	}
	if ids, _ := store.Uploads(); len(ids) != 0 {
		t.Fatalf("expected ledger emptied, got %v", ids)
	}
	for _, req := range srv.Requests() {
		if req.Method == http.MethodDelete && !req.Authorized {
			t.Fatalf("cleanup must authenticate: %+v", req)
		}
	}
}

func TestJanitorKeepsIDsThatFailToDelete(t *testing.T) {
	srv := catapitest.NewServer(testKey)
	defer srv.Close()
	srv.SetOverride(func(w http.ResponseWriter, r *http.Request) bool {
		if r.Method != http.MethodDelete {
			return false
		}
		http.Error(w, "try later", http.StatusServiceUnavailable)
		return true
	})

	j, store := newTestJanitor(t, srv, "stuck")
	res, err := j.Run(context.Background())
	if err == nil || res.Failed != 1 {
		t.Fatalf("expected failure, got %+v (%v)", res, err)
	}
	if ids, _ := store.Uploads(); len(ids) != 1 || ids[0] != "stuck" {
		t.Fatalf("failed id must stay in the ledger, got %v", ids)
	}
}

func TestNewJanitorRequiresAPIKey(t *testing.T) {
	cfg := testConfig(t, "https://cats.example/v1", "")
	if _, err := NewJanitor(cfg, nil); err == nil {
		t.Fatalf("expected error without api key")
	}
}
