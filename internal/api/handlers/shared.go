package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps the size of a decoded request body.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into a value of type T.
// An empty body, trailing data after the JSON value and bodies over 1 MiB are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is required")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, errors.New("request body is required")
		}
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	if decoder.More() {
		return req, errors.New("request body must contain a single JSON value")
	}
	return req, nil
}
