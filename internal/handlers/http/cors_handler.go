// internal/handlers/http/cors_handler.go
package http

import "net/http"

// PreflightHandler returns an empty 200 for OPTIONS.
func PreflightHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
