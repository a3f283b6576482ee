package contract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/samvad-hq/catapi-contract/internal/domain"
	"github.com/samvad-hq/catapi-contract/pkg/apiclient"
	"github.com/samvad-hq/catapi-contract/pkg/suites"
)

const searchEndpoint = "/images/search"

// searchList runs a search and returns the decoded list after the status check.
func searchList(ctx context.Context, c *apiclient.Client, params apiclient.Params) (*apiclient.Response, []any, error) {
	resp, err := c.Get(ctx, searchEndpoint, params)
	if err != nil {
		return nil, nil, err
	}
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return resp, nil, err
	}
	list, err := decodeList(resp)
	if err != nil {
		return resp, nil, err
	}
	return resp, list, nil
}

// searchRandomCheck asks for one random image and validates its shape.
type searchRandomCheck struct{}

func (searchRandomCheck) Type() string { return suites.TypeSearchRandom }

func (searchRandomCheck) Cases(s suites.Suite) ([]Case, error) {
	return single(s, func(ctx context.Context, env *Env) error {
		resp, list, err := searchList(ctx, env.client(s), nil)
		if err != nil {
			return err
		}
		var e expectations
		e.add(expectContentType(resp, domain.JSONContentType))
		e.that(len(list) == 1, "got %d images, want 1", len(list))
		for i, item := range list {
			checkImage(&e, i, item)
		}
		return e.err()
	}), nil
}

// searchLimitCheck expands one case per requested limit. Without expect_count the
// response must contain exactly limit images.
type searchLimitCheck struct{}

func (searchLimitCheck) Type() string { return suites.TypeSearchLimit }

func (searchLimitCheck) Cases(s suites.Suite) ([]Case, error) {
	limits, err := suites.ConfigInts(s, suites.ConfigLimitsKey)
	if err != nil {
		return nil, err
	}
	if len(limits) == 0 {
		return nil, fmt.Errorf("suite %q: %s is required", s.ID, suites.ConfigLimitsKey)
	}
	expect, err := suites.ConfigInt(s, suites.ConfigExpectCountKey, 0)
	if err != nil {
		return nil, err
	}

	cases := make([]Case, 0, len(limits))
	for _, limit := range limits {
		want := limit
		if expect > 0 {
			want = expect
		}
		cases = append(cases, Case{
			ID:    caseID(s, "limit", limit),
			Name:  fmt.Sprintf("%s (limit=%d)", s.Name, limit),
			Suite: s,
			run: func(ctx context.Context, env *Env) error {
				_, list, err := searchList(ctx, env.client(s), apiclient.Params{"limit": limit})
				if err != nil {
					return err
				}
				if len(list) != want {
					return fmt.Errorf("limit=%d: got %d images, want %d", limit, len(list), want)
				}
				return nil
			},
		})
	}
	return cases, nil
}

// searchPayloadCheck sends a fixed filter set and checks the images honour it.
type searchPayloadCheck struct{}

func (searchPayloadCheck) Type() string { return suites.TypeSearchPayload }

func (searchPayloadCheck) Cases(s suites.Suite) ([]Case, error) {
	params := suites.ConfigParams(s, suites.ConfigParamsKey)
	expect, err := suites.ConfigInt(s, suites.ConfigExpectCountKey, 0)
	if err != nil {
		return nil, err
	}
	minDim, err := suites.ConfigInt(s, suites.ConfigMinDimensionKey, 0)
	if err != nil {
		return nil, err
	}
	suffix := strings.ToLower(suites.ConfigString(s, suites.ConfigURLSuffixKey, ""))

	return single(s, func(ctx context.Context, env *Env) error {
		_, list, err := searchList(ctx, env.client(s), apiclient.Params(params))
		if err != nil {
			return err
		}

		var e expectations
		if expect > 0 {
			e.that(len(list) == expect, "got %d images, want %d", len(list), expect)
		}
		for i, item := range list {
			img, ok := item.(map[string]any)
			if !ok {
				e.fail("image[%d] is %T, want an object", i, item)
				continue
			}
			e.that(numberAtLeast(img["width"], float64(minDim)), "image[%d] width %v below %d", i, img["width"], minDim)
			e.that(numberAtLeast(img["height"], float64(minDim)), "image[%d] height %v below %d", i, img["height"], minDim)
			if suffix != "" {
				url, _ := img["url"].(string)
				e.that(strings.HasSuffix(strings.ToLower(url), suffix), "image[%d] url %q does not end with %s", i, url, suffix)
			}
		}
		return e.err()
	}), nil
}

// searchSourceCheck requests the raw image instead of JSON.
type searchSourceCheck struct{}

func (searchSourceCheck) Type() string { return suites.TypeSearchSource }

func (searchSourceCheck) Cases(s suites.Suite) ([]Case, error) {
	return single(s, func(ctx context.Context, env *Env) error {
		resp, err := env.client(s).Get(ctx, searchEndpoint, apiclient.Params{"format": "src"})
		if err != nil {
			return err
		}
		if err := expectStatus(resp, http.StatusOK); err != nil {
			return err
		}
		if len(resp.Body()) == 0 {
			return fmt.Errorf("format=src returned an empty body")
		}
		return nil
	}), nil
}

// searchBreedsCheck only accepts images that carry breed information.
type searchBreedsCheck struct{}

func (searchBreedsCheck) Type() string { return suites.TypeSearchBreeds }

func (searchBreedsCheck) Cases(s suites.Suite) ([]Case, error) {
	limit, err := suites.ConfigInt(s, suites.ConfigLimitKey, 15)
	if err != nil {
		return nil, err
	}
	return single(s, func(ctx context.Context, env *Env) error {
		_, list, err := searchList(ctx, env.client(s), apiclient.Params{"has_breeds": true, "limit": limit})
		if err != nil {
			return err
		}
		var e expectations
		e.that(len(list) == limit, "got %d images, want %d", len(list), limit)
		for i, item := range list {
			img, _ := item.(map[string]any)
			e.that(truthy(img["breeds"]), "image[%d] has no breeds", i)
		}
		return e.err()
	}), nil
}

// searchPaginationCheck requests a later page and checks the pagination headers.
type searchPaginationCheck struct{}

func (searchPaginationCheck) Type() string { return suites.TypeSearchPagination }

func (searchPaginationCheck) Cases(s suites.Suite) ([]Case, error) {
	page, err := suites.ConfigInt(s, suites.ConfigPageKey, 2)
	if err != nil {
		return nil, err
	}
	limit, err := suites.ConfigInt(s, suites.ConfigLimitKey, domain.AuthenticatedSearchLimit)
	if err != nil {
		return nil, err
	}
	return single(s, func(ctx context.Context, env *Env) error {
		resp, list, err := searchList(ctx, env.client(s), apiclient.Params{"page": page, "limit": limit})
		if err != nil {
			return err
		}
		var e expectations
		e.that(len(list) == limit, "got %d images, want %d", len(list), limit)
		for _, h := range []string{domain.HeaderPaginationCount, domain.HeaderPaginationPage, domain.HeaderPaginationLimit} {
			_, ok := resp.Header()[http.CanonicalHeaderKey(h)]
			e.that(ok, "header %s missing", h)
		}
		got := resp.Header().Get(domain.HeaderPaginationPage)
		e.that(got == fmt.Sprint(page), "%s = %q, want %d", domain.HeaderPaginationPage, got, page)
		return e.err()
	}), nil
}
