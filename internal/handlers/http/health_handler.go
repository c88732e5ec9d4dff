// internal/handlers/http/health_handler.go
// Liveness/readiness check

package http

import (
	"net/http"
)

type healthResp struct {
	Status string `json:"status"`
	App    string `json:"app,omitempty"`
	Env    string `json:"env,omitempty"`
}

func NewHealthHandler(app, env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResp{Status: "ok", App: app, Env: env})
	}
}
