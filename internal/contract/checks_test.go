package contract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/samvad-hq/catapi-contract/internal/catapitest"
	"github.com/samvad-hq/catapi-contract/internal/domain"
)

// cannedResponse answers requests for path with a fixed response.
type cannedResponse struct {
	path   string
	status int
	header map[string]string
	body   string
}

func (c cannedResponse) install(srv *catapitest.Server) {
	srv.SetOverride(func(w http.ResponseWriter, r *http.Request) bool {
		if r.URL.Path != c.path {
			return false
		}
		for k, v := range c.header {
			w.Header().Set(k, v)
		}
		status := c.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(c.body))
		return true
	})
}

var jsonHeader = map[string]string{"Content-Type": domain.JSONContentType}

func imagesJSON(n int, format string) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(format, i)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestChecksReportContractViolations(t *testing.T) {
	tests := []struct {
		name     string
		suite    string
		apiKey   string
		response cannedResponse
		wantErrs []string
	}{
		{
			name:  "base content type",
			suite: "base-no-key",
			response: cannedResponse{
				path:   "/v1",
				header: map[string]string{"Content-Type": "text/plain"},
				body:   `{"message":"The Cat API","version":"1.3.9"}`,
			},
			wantErrs: []string{`Content-Type = "text/plain", want "application/json; charset=utf-8"`},
		},
		{
			name:  "base message and version",
			suite: "base-no-key",
			response: cannedResponse{
				path:   "/v1",
				header: jsonHeader,
				body:   `{"message":"The Dog API"}`,
			},
			wantErrs: []string{`message = "The Dog API", want "The Cat API"`, "version is empty"},
		},
		{
			name:  "random image content type",
			suite: "search-random-no-key",
			response: cannedResponse{
				path:   "/v1/images/search",
				header: map[string]string{"Content-Type": "application/json"},
				body:   `[{"id":"x","url":"https://cdn2.thecatapi.com/images/x.jpg","width":500,"height":400}]`,
			},
			wantErrs: []string{`Content-Type = "application/json", want "application/json; charset=utf-8"`},
		},
		{
			name:  "random image shape",
			suite: "search-random-no-key",
			response: cannedResponse{
				path:   "/v1/images/search",
				header: jsonHeader,
				body:   `[{"id":"x","url":"http://a/b.txt","width":1.5,"height":0}]`,
			},
			wantErrs: []string{
				"image[0] width 1.5 is not a positive integer",
				"image[0] height 0 is not a positive integer",
				`image[0] key "height" missing or empty`,
				`image[0] url "http://a/b.txt" is not an https image url`,
			},
		},
		{
			name:  "random image missing keys",
			suite: "search-random-no-key",
			response: cannedResponse{
				path:   "/v1/images/search",
				header: jsonHeader,
				body:   `[{"url":"https://cdn2.thecatapi.com/images/x.jpg","height":400}]`,
			},
			wantErrs: []string{
				`image[0] key "id" missing or empty`,
				`image[0] key "width" missing or empty`,
				"image[0] width <nil> is not a positive integer",
			},
		},
		{
			name:  "random image count",
			suite: "search-random-no-key",
			response: cannedResponse{
				path:   "/v1/images/search",
				header: jsonHeader,
				body:   `[]`,
			},
			wantErrs: []string{"got 0 images, want 1"},
		},
		{
			name:  "payload dimensions and suffix",
			suite: "search-allowed-payload-no-key",
			response: cannedResponse{
				path:   "/v1/images/search",
				header: jsonHeader,
				body:   imagesJSON(10, `{"id":"i%d","url":"https://cdn2.thecatapi.com/images/a.jpg","width":200,"height":300}`),
			},
			wantErrs: []string{
				"image[0] width 200 below 300",
				`image[9] url "https://cdn2.thecatapi.com/images/a.jpg" does not end with .png`,
			},
		},
		{
			name:  "src format empty body",
			suite: "search-src-no-key",
			response: cannedResponse{
				path:   "/v1/images/search",
				header: map[string]string{"Content-Type": "image/jpeg"},
			},
			wantErrs: []string{"format=src returned an empty body"},
		},
		{
			name:   "pagination headers",
			suite:  "search-pagination-key",
			apiKey: testKey,
			response: cannedResponse{
				path:   "/v1/images/search",
				header: map[string]string{"Content-Type": domain.JSONContentType, "Pagination-Page": "3"},
				body:   imagesJSON(100, `{"id":"i%d","url":"https://cdn2.thecatapi.com/images/a.jpg","width":500,"height":400}`),
			},
			wantErrs: []string{
				"header Pagination-Count missing",
				"header Pagination-Limit missing",
				`Pagination-Page = "3", want 2`,
			},
		},
		{
			name:   "breeds without descriptions",
			suite:  "breeds",
			apiKey: testKey,
			response: cannedResponse{
				path:   "/v1/breeds",
				header: jsonHeader,
				body:   `[{"id":"abys","name":""}]`,
			},
			wantErrs: []string{
				"got 1 breeds, want 15",
				`breed[0] key "name" missing or empty`,
				`breed[0] key "description" missing or empty`,
			},
		},
		{
			name:   "breeds search without breed data",
			suite:  "search-with-breeds-key",
			apiKey: testKey,
			response: cannedResponse{
				path:   "/v1/images/search",
				header: jsonHeader,
				body:   imagesJSON(15, `{"id":"i%d","breeds":[]}`),
			},
			wantErrs: []string{"image[0] has no breeds", "image[14] has no breeds"},
		},
		{
			name:   "search body is not a list",
			suite:  "search-up-to-100-key",
			apiKey: testKey,
			response: cannedResponse{
				path:   "/v1/images/search",
				header: jsonHeader,
				body:   `{"message":"nope"}`,
			},
			wantErrs: []string{"body is map[string]interface {}, want a JSON list"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := catapitest.NewServer(testKey)
			defer srv.Close()
			tc.response.install(srv)

			svc := newTestService(t, srv, tc.apiKey, nil)
			report, err := svc.Run(context.Background(), suitesByID(t, tc.suite))
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			res := report.Results[0]
			if res.Status != domain.StatusFail {
				t.Fatalf("expected failure, got %+v", res)
			}
			for _, want := range tc.wantErrs {
				if !strings.Contains(res.Error, want) {
					t.Errorf("error %q does not mention %q", res.Error, want)
				}
			}
		})
	}
}
