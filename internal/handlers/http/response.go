// internal/handlers/http/response.go
package http

import (
	"encoding/json"
	"net/http"

	"aps-bridge/internal/util"
)

// ResultHeader flags responses built from placeholder results.
const ResultHeader = "X-APS-Result"

type errorResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	ae := util.AsAppError(err)
	msg := ae.Message
	if ae.Code == "internal" {
		msg = "internal error"
	}
	writeJSON(w, ae.HTTPStatus(), errorResp{Success: false, Error: msg, Code: ae.Code})
}

// NotFoundHandler and MethodNotAllowedHandler keep router errors in JSON.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, util.NotFound("no route for "+r.URL.Path))
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, util.MethodNotAllowed(r.Method+" not allowed on "+r.URL.Path))
}
