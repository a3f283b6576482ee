package contract

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samvad-hq/catapi-contract/internal/domain"
	"github.com/samvad-hq/catapi-contract/pkg/apiclient"
	"github.com/samvad-hq/catapi-contract/pkg/suites"
)

// single wraps one run function as the only case of a suite.
func single(s suites.Suite, run func(ctx context.Context, env *Env) error) []Case {
	return []Case{{ID: s.ID, Name: s.Name, Suite: s, run: run}}
}

// baseCheck asserts the API root answers with its identification document.
type baseCheck struct{}

func (baseCheck) Type() string { return suites.TypeBase }

func (baseCheck) Cases(s suites.Suite) ([]Case, error) {
	return single(s, func(ctx context.Context, env *Env) error {
		resp, err := env.client(s).Get(ctx, "", nil)
		if err != nil {
			return err
		}
		if err := expectStatus(resp, http.StatusOK); err != nil {
			return err
		}

		var e expectations
		e.add(expectContentType(resp, domain.JSONContentType))
		var info domain.APIInfo
		if err := resp.JSON(&info); err != nil {
			e.add(err)
			return e.err()
		}
		e.that(info.Message == domain.APIMessage, "message = %q, want %q", info.Message, domain.APIMessage)
		e.that(info.Version != "", "version is empty")
		return e.err()
	}), nil
}

// breedsCheck lists breeds and checks every entry is described.
type breedsCheck struct{}

func (breedsCheck) Type() string { return suites.TypeBreeds }

func (breedsCheck) Cases(s suites.Suite) ([]Case, error) {
	limit, err := suites.ConfigInt(s, suites.ConfigLimitKey, 15)
	if err != nil {
		return nil, err
	}
	return single(s, func(ctx context.Context, env *Env) error {
		resp, err := env.client(s).Get(ctx, "/breeds", apiclient.Params{"limit": limit})
		if err != nil {
			return err
		}
		if err := expectStatus(resp, http.StatusOK); err != nil {
			return err
		}
		list, err := decodeList(resp)
		if err != nil {
			return err
		}

		var e expectations
		e.that(len(list) == limit, "got %d breeds, want %d", len(list), limit)
		for i, item := range list {
			breed, ok := item.(map[string]any)
			if !ok {
				e.fail("breed[%d] is %T, want an object", i, item)
				continue
			}
			for _, key := range []string{"id", "name", "description"} {
				e.that(truthy(breed[key]), "breed[%d] key %q missing or empty", i, key)
			}
		}
		return e.err()
	}), nil
}

func caseID(s suites.Suite, param string, value any) string {
	return fmt.Sprintf("%s/%s=%v", s.ID, param, value)
}
