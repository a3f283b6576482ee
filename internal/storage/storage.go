package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps a local ledger of images this harness uploaded to the API.

// Store tracks uploaded image IDs until they are cleaned up or expire.
type Store interface {
	Close() error
	RecordUpload(id string) error
	Uploads() ([]string, error)
	ForgetUpload(id string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	UploadTTL       time.Duration
	CleanupInterval time.Duration
}

const (
	defaultUploadTTL       = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.UploadTTL <= 0 {
		opts.UploadTTL = defaultUploadTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error               { return nil }
func (noopStore) RecordUpload(string) error  { return nil }
func (noopStore) Uploads() ([]string, error) { return nil, nil }
func (noopStore) ForgetUpload(string) error  { return nil }
