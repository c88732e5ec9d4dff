// internal/handlers/http/translate_handler.go
package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"aps-bridge/internal/services"
)

type TranslateResponse struct {
	Success bool   `json:"success"`
	URN     string `json:"urn"`
	JobID   string `json:"jobId"`
}

type TranslateDeps struct {
	Translator   services.Translator
	MaxBodyBytes int64
	Log          logrus.FieldLogger
}

type implementedChecker interface{ Implemented() bool }

func (d TranslateDeps) placeholder() bool {
	c, ok := d.Translator.(implementedChecker)
	return ok && !c.Implemented()
}

// NewTranslateHandler serves POST /api/forge/translate.
func NewTranslateHandler(deps TranslateDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.TranslateRequest
		if err := decodeJSON(w, r, deps.MaxBodyBytes, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, err)
			return
		}

		job, err := deps.Translator.StartTranslation(r.Context(), req)
		if err != nil {
			deps.Log.WithError(err).WithField("urn", req.URN).Error("translate failed")
			writeError(w, err)
			return
		}
		if deps.placeholder() {
			w.Header().Set(ResultHeader, "not-implemented")
			deps.Log.WithField("job_id", job.JobID).Warn("translate returned placeholder job")
		}
		writeJSON(w, http.StatusOK, TranslateResponse{Success: true, URN: job.URN, JobID: job.JobID})
	}
}

// NewTranslationStatusHandler serves GET /api/forge/translate/{jobId}.
func NewTranslationStatusHandler(deps TranslateDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := deps.Translator.TranslationStatus(r.Context(), mux.Vars(r)["jobId"])
		if err != nil {
			writeError(w, err)
			return
		}
		if deps.placeholder() {
			w.Header().Set(ResultHeader, "not-implemented")
		}
		writeJSON(w, http.StatusOK, job)
	}
}
