package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/samvad-hq/catapi-contract/pkg/apiclient"
)

// imageKeys must be present and truthy on every image object.
var imageKeys = []string{"id", "url", "width", "height"}

var imageURLPattern = regexp.MustCompile(`(?i)^https://.*\.(jpg|jpeg|png|gif|bmp|webp|svg|tiff|tif|apng|ico)$`)

// expectations accumulates assertion failures for one case.
type expectations struct {
	errs []error
}

func (e *expectations) fail(format string, args ...any) {
	e.errs = append(e.errs, fmt.Errorf(format, args...))
}

func (e *expectations) that(ok bool, format string, args ...any) {
	if !ok {
		e.fail(format, args...)
	}
}

func (e *expectations) add(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

func (e *expectations) err() error {
	return errors.Join(e.errs...)
}

func expectStatus(resp *apiclient.Response, want int) error {
	if got := resp.StatusCode(); got != want {
		return fmt.Errorf("status = %d, want %d (body: %s)", got, want, resp.Snippet())
	}
	return nil
}

func expectContentType(resp *apiclient.Response, want string) error {
	if got := resp.Header().Get("Content-Type"); got != want {
		return fmt.Errorf("Content-Type = %q, want %q", got, want)
	}
	return nil
}

// decodeDocument parses the body keeping numbers as json.Number so integer checks stay exact.
func decodeDocument(resp *apiclient.Response) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json body: %w (body: %s)", err, resp.Snippet())
	}
	return doc, nil
}

func decodeList(resp *apiclient.Response) ([]any, error) {
	doc, err := decodeDocument(resp)
	if err != nil {
		return nil, err
	}
	list, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("body is %T, want a JSON list", doc)
	}
	return list, nil
}

func decodeObject(resp *apiclient.Response) (map[string]any, error) {
	doc, err := decodeDocument(resp)
	if err != nil {
		return nil, err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("body is %T, want a JSON object", doc)
	}
	return obj, nil
}

// truthy mirrors the usual "present and non-empty" notion for decoded JSON values.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

// positiveInt reports whether v is an integral JSON number above zero.
func positiveInt(v any) (int64, bool) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func numberAtLeast(v any, min float64) bool {
	num, ok := v.(json.Number)
	if !ok {
		return false
	}
	f, err := num.Float64()
	return err == nil && f >= min
}

// checkImage verifies the shape of one image object.
func checkImage(e *expectations, idx int, item any) {
	img, ok := item.(map[string]any)
	if !ok {
		e.fail("image[%d] is %T, want an object", idx, item)
		return
	}
	for _, key := range imageKeys {
		e.that(truthy(img[key]), "image[%d] key %q missing or empty", idx, key)
	}
	url, _ := img["url"].(string)
	e.that(imageURLPattern.MatchString(url), "image[%d] url %q is not an https image url", idx, url)
	if _, ok := positiveInt(img["width"]); !ok {
		e.fail("image[%d] width %v is not a positive integer", idx, img["width"])
	}
	if _, ok := positiveInt(img["height"]); !ok {
		e.fail("image[%d] height %v is not a positive integer", idx, img["height"])
	}
}

// remarshal converts a decoded JSON value into a typed struct.
func remarshal(in any, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %T: %w", out, err)
	}
	return nil
}
