package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
)

// pathID extracts a positive integer id from a chi URL parameter.
// Non-numeric and non-positive values are rejected before any query runs.
func pathID(r *http.Request, name, resource string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s ID must be a positive integer", resource)
	}
	return id, nil
}

// pageParams parses and validates limit/offset query parameters.
// limit must be 1..100, offset must be >= 0; defaults are limit=10, offset=0.
func pageParams(r *http.Request) (domain.PageParams, error) {
	q := r.URL.Query()

	var limit, offset *int
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			return domain.PageParams{}, errors.New("limit must be an integer between 1 and 100")
		}
		limit = &v
	}
	if raw := q.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return domain.PageParams{}, errors.New("offset must be a non-negative integer")
		}
		offset = &v
	}
	return domain.NewPageParams(limit, offset), nil
}

// queryDate parses an optional YYYY-MM-DD query parameter.
// Returns nil when the parameter is absent.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format. Use YYYY-MM-DD", name)
	}
	return &t, nil
}

// queryInt64 parses an optional positive integer query parameter.
// Returns 0 when the parameter is absent. A literal 0 is rejected rather than
// treated as absent, so a zero id filter never silently matches everything.
func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}

// errBodyTooLarge marks a body read cut short by the size-cap middleware.
var errBodyTooLarge = errors.New("request body too large")

// decodeJSON decodes the request body into dst, rejecting unknown fields so
// typos in payloads fail loudly instead of being silently dropped.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return errors.New("invalid request body")
	}
	return nil
}
