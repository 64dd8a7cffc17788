package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vamartid/swapi-mirror/pkg/model"
	"github.com/vamartid/swapi-mirror/pkg/server"
	"github.com/vamartid/swapi-mirror/pkg/store"
)

// ListResponse is the envelope for paginated list results.
type ListResponse struct {
	Count   int64          `json:"count"`
	Page    int            `json:"page"`
	Results []model.Record `json:"results"`
}

// RegisterCategoryEndpoints registers CRUD routes for every mirrored
// category.
func RegisterCategoryEndpoints(s *server.Server) {
	router := s.Router

	apiRouter := router.PathPrefix("/api").Subrouter()

	// GET /api/{category} - List records with pagination and search
	apiRouter.HandleFunc("/{category}", handleListRecords(s)).Methods("GET")

	// POST /api/{category} - Create or replace a record
	apiRouter.HandleFunc("/{category}", handleCreateRecord(s)).Methods("POST")

	// GET /api/{category}/{key} - Fetch a single record by natural key
	apiRouter.HandleFunc("/{category}/{key:.+}", handleGetRecord(s)).Methods("GET")

	// PUT/PATCH /api/{category}/{key} - Update a record
	apiRouter.HandleFunc("/{category}/{key:.+}", handleUpdateRecord(s)).Methods("PUT", "PATCH")

	// DELETE /api/{category}/{key} - Delete a record
	apiRouter.HandleFunc("/{category}/{key:.+}", handleDeleteRecord(s)).Methods("DELETE")
}

// categoryFromRequest parses the category path variable. Unknown
// categories are a 404, the route space only contains the six known
// ones.
func categoryFromRequest(w http.ResponseWriter, r *http.Request) (model.Category, bool) {
	name := mux.Vars(r)["category"]
	category, err := model.ParseCategory(name)
	if err != nil {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("unknown category %q", name))
		return "", false
	}
	return category, true
}

// keyFromRequest recovers the natural key from the encoded path. Keys
// are URLs, they carry slashes and arrive percent-encoded.
func keyFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	key, err := url.PathUnescape(mux.Vars(r)["key"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed record key")
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "record key is required")
		return "", false
	}
	return key, true
}

func handleListRecords(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := categoryFromRequest(w, r)
		if !ok {
			return
		}

		opts, err := listOptionsFromRequest(s, r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		records, count, err := s.Stores[category].List(r.Context(), opts)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		if records == nil {
			records = []model.Record{}
		}

		respondWithJSON(w, http.StatusOK, ListResponse{
			Count:   count,
			Page:    opts.Page,
			Results: records,
		})
	}
}

func listOptionsFromRequest(s *server.Server, r *http.Request) (store.ListOptions, error) {
	opts := store.ListOptions{
		Page:     1,
		PageSize: s.Config.PageSizeDefault,
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return opts, fmt.Errorf("page must be a positive integer, got %q", raw)
		}
		opts.Page = page
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return opts, fmt.Errorf("page_size must be a positive integer, got %q", raw)
		}
		if size > s.Config.PageSizeMax {
			size = s.Config.PageSizeMax
		}
		opts.PageSize = size
	}

	return opts, nil
}

func handleGetRecord(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := categoryFromRequest(w, r)
		if !ok {
			return
		}
		key, ok := keyFromRequest(w, r)
		if !ok {
			return
		}

		record, err := s.Stores[category].Get(r.Context(), key)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, record)
	}
}

func handleCreateRecord(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := categoryFromRequest(w, r)
		if !ok {
			return
		}

		record := model.New(category)
		if err := json.NewDecoder(r.Body).Decode(record); err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if strings.TrimSpace(record.GetURL()) == "" {
			respondWithError(w, http.StatusBadRequest, "record url is required")
			return
		}
		record.SetID(0)

		if err := s.Stores[category].Upsert(r.Context(), record); err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, record)
	}
}

func handleUpdateRecord(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := categoryFromRequest(w, r)
		if !ok {
			return
		}
		key, ok := keyFromRequest(w, r)
		if !ok {
			return
		}

		// The record must exist, updates never create.
		existing, err := s.Stores[category].Get(r.Context(), key)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		record := model.New(category)
		if err := json.NewDecoder(r.Body).Decode(record); err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		// The path names the record; the body cannot move it.
		record.SetURL(existing.GetURL())
		record.SetID(existing.GetID())

		if err := s.Stores[category].Upsert(r.Context(), record); err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, record)
	}
}

func handleDeleteRecord(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := categoryFromRequest(w, r)
		if !ok {
			return
		}
		key, ok := keyFromRequest(w, r)
		if !ok {
			return
		}

		if err := s.Stores[category].Delete(r.Context(), key); err != nil {
			respondWithStoreError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
