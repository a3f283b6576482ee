// Package catapitest provides an in-process fake of The Cat API for tests.
package catapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/samvad-hq/catapi-contract/internal/domain"
)

// Version is what the fake reports at the base URL.
const Version = "1.7.2"

// JPEG is a minimal image served for format=src searches.
var JPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0xFF, 0xD9}

// RecordedRequest is what the fake saw for one call.
type RecordedRequest struct {
	Method     string
	Path       string
	Query      url.Values
	Header     http.Header
	Authorized bool
}

// Override intercepts requests before routing. It returns true when it handled the request.
type Override func(w http.ResponseWriter, r *http.Request) bool

// Server is an httptest server emulating the Cat API under /v1.
type Server struct {
	*httptest.Server

	apiKey string

	mu       sync.Mutex
	uploads  map[string]bool
	nextID   int
	requests []RecordedRequest
	override Override
}

// NewServer starts a fake that accepts apiKey in the x-api-key header.
func NewServer(apiKey string) *Server {
	s := &Server{
		apiKey:  apiKey,
		uploads: make(map[string]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1", s.handleRoot)
	mux.HandleFunc("GET /v1/images/search", s.handleSearch)
	mux.HandleFunc("GET /v1/images/{id}", s.handleImage)
	mux.HandleFunc("POST /v1/images/upload", s.handleUpload)
	mux.HandleFunc("DELETE /v1/images/{id}", s.handleDeleteImage)
	mux.HandleFunc("DELETE /v1/images/{id}/breeds/{breed}", s.handleDeleteBreed)
	mux.HandleFunc("GET /v1/breeds", s.handleBreeds)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:     r.Method,
			Path:       r.URL.Path,
			Query:      r.URL.Query(),
			Header:     r.Header.Clone(),
			Authorized: s.authorized(r),
		})
		override := s.override
		s.mu.Unlock()

		if override != nil && override(w, r) {
			return
		}
		mux.ServeHTTP(w, r)
	}))
	return s
}

// BaseURL is the value to configure as CAT_URL.
func (s *Server) BaseURL() string { return s.URL + "/v1" }

// SetOverride installs fn ahead of the routes; nil removes it.
func (s *Server) SetOverride(fn Override) {
	s.mu.Lock()
	s.override = fn
	s.mu.Unlock()
}

// Requests returns a copy of the calls received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Uploaded returns whether id was uploaded and not yet deleted.
func (s *Server) Uploaded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads[id]
}

// AddUpload marks id as belonging to the caller's account.
func (s *Server) AddUpload(id string) {
	s.mu.Lock()
	s.uploads[id] = true
	s.mu.Unlock()
}

func (s *Server) authorized(r *http.Request) bool {
	return s.apiKey != "" && r.Header.Get("x-api-key") == s.apiKey
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.APIInfo{Message: domain.APIMessage, Version: Version})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("format") == "src" {
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(JPEG)
		return
	}

	limit := intParam(q, "limit", 1)
	if limit < 1 {
		limit = 1
	}
	maxLimit := domain.UnauthenticatedSearchLimit
	if s.authorized(r) {
		maxLimit = domain.AuthenticatedSearchLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	page := intParam(q, "page", 0)

	ext := "jpg"
	if mt := strings.ToLower(strings.TrimSpace(q.Get("mime_types"))); mt != "" {
		ext = strings.Split(mt, ",")[0]
	}
	withBreeds := truthy(q.Get("has_breeds"))

	images := make([]domain.Image, 0, limit)
	for i := 0; i < limit; i++ {
		id := fmt.Sprintf("p%di%d", page, i)
		img := domain.Image{
			ID:     id,
			URL:    fmt.Sprintf("https://cdn2.thecatapi.com/images/%s.%s", id, ext),
			Width:  500 + i,
			Height: 400 + i,
		}
		if withBreeds {
			img.Breeds = []domain.Breed{breeds[i%len(breeds)]}
		}
		images = append(images, img)
	}

	w.Header().Set("Pagination-Count", "1000")
	w.Header().Set("Pagination-Page", strconv.Itoa(page))
	w.Header().Set("Pagination-Limit", strconv.Itoa(limit))
	writeJSON(w, http.StatusOK, images)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	writeJSON(w, http.StatusOK, domain.Image{
		ID:     id,
		URL:    fmt.Sprintf("https://cdn2.thecatapi.com/images/%s.jpg", id),
		Width:  1204,
		Height: 1445,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeText(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR - you need to send your API Key as the 'x-api-key' header")
		return
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeText(w, http.StatusBadRequest, "multipart body required")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeText(w, http.StatusBadRequest, "file is required")
		return
	}
	file.Close()

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("upl%d", s.nextID)
	s.uploads[id] = true
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, domain.UploadResult{
		ID:               id,
		URL:              fmt.Sprintf("https://cdn2.thecatapi.com/images/%s.jpg", id),
		Width:            1,
		Height:           1,
		SubID:            r.FormValue("sub_id"),
		OriginalFilename: hdr.Filename,
		Pending:          0,
		Approved:         1,
	})
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeText(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR")
		return
	}
	id := r.PathValue("id")

	s.mu.Lock()
	owned := s.uploads[id]
	delete(s.uploads, id)
	s.mu.Unlock()

	if !owned {
		writeText(w, http.StatusNotFound, "NOT_FOUND")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBreed(w http.ResponseWriter, r *http.Request) {
	if s.authorized(r) && s.Uploaded(r.PathValue("id")) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeText(w, http.StatusUnauthorized, domain.ForeignBreedEdit)
}

func (s *Server) handleBreeds(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r.URL.Query(), "limit", len(breeds))
	if limit < 0 || limit > len(breeds) {
		limit = len(breeds)
	}
	writeJSON(w, http.StatusOK, breeds[:limit])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", domain.JSONContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func intParam(q url.Values, key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil {
		return fallback
	}
	return n
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
