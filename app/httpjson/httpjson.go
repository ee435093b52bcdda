// Package httpjson writes JSON responses for the HTTP handlers.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Write encodes v as the response body with the given status code.
func Write(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg}.
func Error(w http.ResponseWriter, code int, msg string) {
	Write(w, code, map[string]string{"error": msg})
}
