package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it as the HTTP response body.
//
// The "Content-Type" header is set to "application/json" and statusCode is
// written before the body. Every handler reply in this server goes through
// this helper so response headers stay consistent.
//
// If marshaling fails the response degrades to 500 Internal Server Error and
// a wrapped error is returned; otherwise the byte count from the underlying
// Write is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
