package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
)

// maxBodyBytes caps request bodies read by the JSON handlers.
const maxBodyBytes = 1 << 20

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode JSON response", "error", err)
	}
}

// queryInt returns the integer query parameter, or 0 when absent or invalid.
func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.FromContext(r.Context()).Warn("Invalid integer query parameter, using default", "param", key, "value", raw)
		return 0
	}
	return n
}
