package suites

// Suite types resolved by the contract check registry.
const (
	TypeBase               = "base"
	TypeSearchRandom       = "search_random"
	TypeSearchLimit        = "search_limit"
	TypeSearchPayload      = "search_payload"
	TypeSearchSource       = "search_src"
	TypeImageByID          = "image_by_id"
	TypeSearchBreeds       = "search_breeds"
	TypeSearchPagination   = "search_pagination"
	TypeBreeds             = "breeds"
	TypeUpload             = "upload"
	TypeDeleteForeignBreed = "delete_foreign_breed"
)

var knownTypes = map[string]struct{}{
	TypeBase:               {},
	TypeSearchRandom:       {},
	TypeSearchLimit:        {},
	TypeSearchPayload:      {},
	TypeSearchSource:       {},
	TypeImageByID:          {},
	TypeSearchBreeds:       {},
	TypeSearchPagination:   {},
	TypeBreeds:             {},
	TypeUpload:             {},
	TypeDeleteForeignBreed: {},
}

func knownType(typ string) bool {
	_, ok := knownTypes[typ]
	return ok
}

// DefaultSuites is the built-in contract for The Cat API.
func DefaultSuites() []Suite {
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	return []Suite{
		{ID: "base-no-key", Name: "base URL opens without API key", Type: TypeBase},
		{ID: "base-key", Name: "base URL opens with API key", Type: TypeBase, APIKey: true},

		{ID: "search-random-no-key", Name: "random image without API key", Type: TypeSearchRandom},
		{
			ID:         "search-up-to-10-no-key",
			Name:       "search up to 10 images without API key",
			Type:       TypeSearchLimit,
			KnownIssue: true,
			Config:     map[string]any{ConfigLimitsKey: []any{1, 2, 6, 10}},
		},
		{
			ID:   "search-more-than-10-no-key",
			Name: "search more than 10 images without API key returns 10",
			Type: TypeSearchLimit,
			Config: map[string]any{
				ConfigLimitsKey:      []any{11, 52, 100, 101},
				ConfigExpectCountKey: 10,
			},
		},
		{
			ID:   "search-allowed-payload-no-key",
			Name: "search with allowed payload without API key",
			Type: TypeSearchPayload,
			Config: map[string]any{
				ConfigParamsKey: map[string]any{
					"size":       "med",
					"mime_types": "png",
					"format":     "json",
					"limit":      10,
				},
				ConfigExpectCountKey:  10,
				ConfigMinDimensionKey: 300,
				ConfigURLSuffixKey:    ".png",
			},
		},
		{ID: "search-src-no-key", Name: "search with src format without API key", Type: TypeSearchSource},
		{
			ID:     "image-by-id-no-key",
			Name:   "search image by id without API key",
			Type:   TypeImageByID,
			Config: map[string]any{ConfigFixtureKey: "cat_sample"},
		},

		{ID: "search-random-key", Name: "random image with API key", Type: TypeSearchRandom, APIKey: true},
		{
			ID:     "search-up-to-100-key",
			Name:   "search up to 100 images with API key",
			Type:   TypeSearchLimit,
			APIKey: true,
			Config: map[string]any{ConfigLimitsKey: []any{11, 25, 50, 100}},
		},
		{
			ID:     "search-more-than-100-key",
			Name:   "search more than 100 images with API key returns 100",
			Type:   TypeSearchLimit,
			APIKey: true,
			Config: map[string]any{
				ConfigLimitsKey:      []any{101, 105, 203},
				ConfigExpectCountKey: 100,
			},
		},
		{
			ID:     "search-with-breeds-key",
			Name:   "search images with breed info",
			Type:   TypeSearchBreeds,
			APIKey: true,
			Config: map[string]any{ConfigLimitKey: 15},
		},
		{
			ID:     "search-pagination-key",
			Name:   "search images with pagination",
			Type:   TypeSearchPagination,
			APIKey: true,
			Config: map[string]any{ConfigPageKey: 2, ConfigLimitKey: 100},
		},

		{
			ID:      "breeds",
			Name:    "list breeds",
			Type:    TypeBreeds,
			APIKey:  true,
			Headers: jsonHeaders,
			Config:  map[string]any{ConfigLimitKey: 15},
		},
		{
			ID:      "images-upload",
			Name:    "upload image",
			Type:    TypeUpload,
			APIKey:  true,
			Headers: map[string]string{"Content-Type": "multipart/form-data"},
			Config:  map[string]any{ConfigImageKey: "kitty.jpg"},
		},
		{
			ID:      "images-delete-not-owned",
			Name:    "cannot edit breed of image from another account",
			Type:    TypeDeleteForeignBreed,
			APIKey:  true,
			Headers: jsonHeaders,
		},
	}
}
