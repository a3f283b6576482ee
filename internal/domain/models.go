package domain

// Domain contains the Cat API payloads the contract checks decode.

// APIInfo is the body served at the base URL.
type APIInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type Image struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Breeds []Breed `json:"breeds,omitempty"`
}

type Breed struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Origin      string `json:"origin,omitempty"`
	Temperament string `json:"temperament,omitempty"`
}

// UploadResult is returned by POST /images/upload.
type UploadResult struct {
	ID               string `json:"id"`
	URL              string `json:"url"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	SubID            string `json:"sub_id"`
	OriginalFilename string `json:"original_filename"`
	Pending          int    `json:"pending"`
	Approved         int    `json:"approved"`
}

const (
	APIMessage       = "The Cat API"
	JSONContentType  = "application/json; charset=utf-8"
	ForeignBreedEdit = "AUTHENTICATION_ERROR - you can only edit the breed for images belonging to your account"

	HeaderPaginationCount = "Pagination-Count"
	HeaderPaginationPage  = "Pagination-Page"
	HeaderPaginationLimit = "Pagination-Limit"

	UnauthenticatedSearchLimit = 10
	AuthenticatedSearchLimit   = 100
)
