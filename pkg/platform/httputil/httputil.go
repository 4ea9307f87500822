// Package httputil centralizes JSON encoding and domain error translation so
// every handler emits the same envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into an HTTP response. The body always
// carries the machine code under "error" and a human-readable "message";
// internal errors get a generic message so causes never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{
		"error":   string(code),
		"message": dErrors.MessageOf(err),
	}
	if code == dErrors.CodeInternal {
		body["message"] = "internal server error"
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
