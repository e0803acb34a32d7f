package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorBody is the JSON error envelope returned by every endpoint.
type ErrorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON writes a JSON response with the given status code. Token and
// account payloads must never be cached, so no-store headers are always set.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard JSON error envelope.
func WriteError(w http.ResponseWriter, code int, err, desc string) {
	WriteJSON(w, code, ErrorBody{Error: err, Description: desc})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON reads a JSON request body into dst, rejecting unknown fields
// and trailing garbage.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("httpx: unexpected data after JSON body")
	}
	return nil
}
