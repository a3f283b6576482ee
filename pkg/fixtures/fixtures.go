// Package fixtures resolves test data files (JSON documents and images) by logical name.
package fixtures

import (
	"embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyName is returned when a fixture is requested without a name.
var ErrEmptyName = errors.New("fixture name must be provided")

//go:embed data
var embedded embed.FS

// DefaultUploadImage is the image the upload suite sends unless configured otherwise.
const DefaultUploadImage = "kitty.jpg"

// Loader reads fixtures from a single directory.
type Loader struct {
	fsys     fs.FS
	embedded bool
	images   map[string]string
}

// NewLoader reads fixtures from dir on disk.
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir)}
}

// NewLoaderFS reads fixtures from the root of fsys.
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Embedded returns a loader over the fixtures compiled into the binary.
func Embedded() *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// "data" is a constant embedded directory.
		panic(err)
	}
	return &Loader{fsys: sub, embedded: true}
}

// Open returns the loader for dir, or the embedded fixtures when dir is empty. A
// non-empty uploadImage replaces DefaultUploadImage with that file.
func Open(dir, uploadImage string) *Loader {
	l := Embedded()
	if dir != "" {
		l = NewLoader(dir)
	}
	if uploadImage != "" {
		l = l.WithImage(DefaultUploadImage, uploadImage)
	}
	return l
}

// WithImage returns a copy of l that serves the image fixture name from the file at
// filePath. Other fixtures still come from l.
func (l *Loader) WithImage(name, filePath string) *Loader {
	out := &Loader{fsys: l.fsys, embedded: l.embedded, images: make(map[string]string, len(l.images)+1)}
	for k, v := range l.images {
		out.images[k] = v
	}
	out.images[strings.TrimSpace(name)] = filePath
	return out
}

// IsPlaceholderImage reports whether name would be served from the compiled-in data.
// The bundled kitty.jpg is a 1x1 placeholder that only the fake API accepts; the live
// API classifies uploads and rejects it.
func (l *Loader) IsPlaceholderImage(name string) bool {
	if l == nil || !l.embedded {
		return false
	}
	_, overridden := l.images[strings.TrimSpace(name)]
	return !overridden
}

// LoadJSON loads <name>.json and returns the parsed document. A ".json" suffix on name is optional.
func (l *Loader) LoadJSON(name string) (any, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".json")
	if name == "" {
		return nil, ErrEmptyName
	}
	file := name + ".json"
	raw, err := l.read(file)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode json fixture %q: %w", file, err)
	}
	return doc, nil
}

type unmarshalFn func([]byte, any) error

var decoders = map[string]unmarshalFn{
	".json": json.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
}

// Decode reads a JSON or YAML fixture into v. Names without an extension resolve to JSON.
func (l *Loader) Decode(name string, v any) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	ext := strings.ToLower(path.Ext(name))
	fn, ok := decoders[ext]
	if !ok {
		name += ".json"
		ext = ".json"
		fn = json.Unmarshal
	}

	raw, err := l.read(name)
	if err != nil {
		return err
	}
	if err := fn(raw, v); err != nil {
		return fmt.Errorf("decode %s fixture %q: %w", strings.TrimPrefix(ext, "."), name, err)
	}
	return nil
}

// ImageBytes returns the raw content of an image fixture. name includes the extension.
func (l *Loader) ImageBytes(name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if filePath, ok := l.images[name]; ok {
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read image %q: %w", name, err)
		}
		return raw, nil
	}
	return l.read(name)
}

// ImageBase64 returns the standard base64 encoding of an image fixture.
func (l *Loader) ImageBase64(name string) (string, error) {
	raw, err := l.ImageBytes(name)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (l *Loader) read(name string) ([]byte, error) {
	if l == nil || l.fsys == nil {
		return nil, fmt.Errorf("fixture loader is not initialized")
	}
	clean := path.Clean(strings.TrimPrefix(name, "/"))
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("invalid fixture name %q", name)
	}
	raw, err := fs.ReadFile(l.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("read fixture %q: %w", name, err)
	}
	return raw, nil
}
