// Package res writes JSON responses.
package res

import (
	"encoding/json"
	"net/http"
)

// Json writes data as a JSON body with statusCode.
func Json(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes {"error": msg} with statusCode.
func Error(w http.ResponseWriter, msg string, statusCode int) {
	Json(w, map[string]any{"error": msg}, statusCode)
}
