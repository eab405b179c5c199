// Package httputil holds small JSON helpers shared by HTTP handlers.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "organledger/pkg/domain-errors"
)

// maxBodyBytes bounds request bodies so a hostile client cannot exhaust
// memory with one request.
const maxBodyBytes = 1 << 20

// WriteJSON serializes v with the given status. Encoding failures after the
// header is written cannot be reported to the client, so they are dropped.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode parses the request body into T. Malformed or oversized bodies come
// back as CodeInvalidInput so handlers can hand them straight to the error
// writer.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		return v, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed request body")
	}
	return v, nil
}
