package contract

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/samvad-hq/catapi-contract/internal/domain"
	"github.com/samvad-hq/catapi-contract/pkg/apiclient"
	"github.com/samvad-hq/catapi-contract/pkg/fixtures"
	"github.com/samvad-hq/catapi-contract/pkg/httpclient"
	"github.com/samvad-hq/catapi-contract/pkg/suites"
)

// Upload encodings understood by uploadCheck.
const (
	UploadMultipart  = "multipart"
	UploadBase64Form = "base64_form"

	configEncodingKey = "encoding"
)

// imageByIDCheck fetches an image whose id comes from a JSON fixture.
type imageByIDCheck struct{}

func (imageByIDCheck) Type() string { return suites.TypeImageByID }

func (imageByIDCheck) Cases(s suites.Suite) ([]Case, error) {
	fixture := suites.ConfigString(s, suites.ConfigFixtureKey, "cat_sample")
	return single(s, func(ctx context.Context, env *Env) error {
		var sample domain.Image
		if err := env.Fixtures.Decode(fixture, &sample); err != nil {
			return fmt.Errorf("load fixture %s: %w", fixture, err)
		}
		if sample.ID == "" {
			return fmt.Errorf("fixture %s has no id", fixture)
		}

		resp, err := env.client(s).Get(ctx, "/images/"+sample.ID, nil)
		if err != nil {
			return err
		}
		if err := expectStatus(resp, http.StatusOK); err != nil {
			return err
		}
		obj, err := decodeObject(resp)
		if err != nil {
			return err
		}
		if got, _ := obj["id"].(string); got != sample.ID {
			return fmt.Errorf("id = %q, want %q", got, sample.ID)
		}
		return nil
	}), nil
}

// UploadImage returns the image fixture an upload suite sends.
func UploadImage(s suites.Suite) string {
	return suites.ConfigString(s, suites.ConfigImageKey, fixtures.DefaultUploadImage)
}

// uploadCheck uploads an image fixture and records the created id for cleanup.
type uploadCheck struct{}

func (uploadCheck) Type() string { return suites.TypeUpload }

func (uploadCheck) Cases(s suites.Suite) ([]Case, error) {
	image := UploadImage(s)
	encoding := strings.ToLower(suites.ConfigString(s, configEncodingKey, UploadMultipart))
	if encoding != UploadMultipart && encoding != UploadBase64Form {
		return nil, fmt.Errorf("suite %q: unknown upload encoding %q", s.ID, encoding)
	}

	return single(s, func(ctx context.Context, env *Env) error {
		subID := suites.ConfigString(s, suites.ConfigSubIDKey, env.SubID)
		if subID == "" {
			subID = "catapi-contract-" + uuid.NewString()
		}

		var (
			resp *apiclient.Response
			err  error
		)
		switch encoding {
		case UploadBase64Form:
			encoded, lerr := env.Fixtures.ImageBase64(image)
			if lerr != nil {
				return fmt.Errorf("load image %s: %w", image, lerr)
			}
			resp, err = env.client(s).Post(ctx, "/images/upload", apiclient.Params{
				"file":   encoded,
				"sub_id": subID,
			}, nil)
		default:
			raw, lerr := env.Fixtures.ImageBytes(image)
			if lerr != nil {
				return fmt.Errorf("load image %s: %w", image, lerr)
			}
			resp, err = env.client(s).Upload(ctx, "/images/upload", httpclient.FilePart{
				Field:    "file",
				FileName: path.Base(image),
				Content:  raw,
			}, apiclient.Params{"sub_id": subID})
		}
		if err != nil {
			return err
		}
		if err := expectStatus(resp, http.StatusCreated); err != nil {
			return err
		}

		var created domain.UploadResult
		if err := resp.JSON(&created); err != nil {
			return err
		}
		if created.ID == "" {
			return fmt.Errorf("upload response has no id (body: %s)", resp.Snippet())
		}
		env.Log.InfoObj("image uploaded", "upload", map[string]any{"id": created.ID, "sub_id": subID})
		if env.Uploads != nil {
			if err := env.Uploads.RecordUpload(created.ID); err != nil {
				env.Log.WarnObj("record upload failed", "error", err.Error())
			}
		}
		return nil
	}), nil
}

// deleteForeignBreedCheck tries to detach a breed from an image owned by someone else.
type deleteForeignBreedCheck struct{}

func (deleteForeignBreedCheck) Type() string { return suites.TypeDeleteForeignBreed }

func (deleteForeignBreedCheck) Cases(s suites.Suite) ([]Case, error) {
	return single(s, func(ctx context.Context, env *Env) error {
		c := env.client(s)
		_, list, err := searchList(ctx, c, apiclient.Params{"has_breeds": true})
		if err != nil {
			return fmt.Errorf("find image with breeds: %w", err)
		}
		if len(list) == 0 {
			return fmt.Errorf("search with has_breeds returned no images")
		}

		var img domain.Image
		if err := remarshal(list[0], &img); err != nil {
			return err
		}
		if img.ID == "" || len(img.Breeds) == 0 || img.Breeds[0].ID == "" {
			return fmt.Errorf("first image %q carries no breed id", img.ID)
		}

		resp, err := c.Delete(ctx, fmt.Sprintf("/images/%s/breeds/%s", img.ID, img.Breeds[0].ID), nil)
		if err != nil {
			return err
		}
		if err := expectStatus(resp, http.StatusUnauthorized); err != nil {
			return err
		}
		if got := resp.Text(); got != domain.ForeignBreedEdit {
			return fmt.Errorf("body = %q, want %q", got, domain.ForeignBreedEdit)
		}
		return nil
	}), nil
}
