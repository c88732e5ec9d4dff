// internal/handlers/http/upload_step_handler.go
package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"aps-bridge/internal/services"
	"aps-bridge/internal/util"
)

type UploadResponse struct {
	Success bool   `json:"success"`
	URN     string `json:"urn"`
}

type UploadStepDeps struct {
	Uploader     services.StepUploader
	MaxBodyBytes int64
	Log          logrus.FieldLogger
}

// NewUploadStepHandler serves POST /api/aps/v2/upload-step.
// Field types are not validated: a body that is a JSON object always gets
// the uploader's result.
func NewUploadStepHandler(deps UploadStepDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.UploadRequest
		if err := decodeJSON(w, r, deps.MaxBodyBytes, &req); err != nil {
			writeError(w, err)
			return
		}
		req.Normalize()

		res, err := deps.Uploader.UploadStep(r.Context(), req)
		if err != nil {
			deps.Log.WithError(err).WithField("file_url", req.FileURL).Error("upload-step failed")
			writeError(w, util.Upstream("aps upload failed", err))
			return
		}

		if !res.Implemented() {
			w.Header().Set(ResultHeader, "not-implemented")
			entry := deps.Log.WithFields(logrus.Fields{
				"file_url": req.FileURL,
				"scopes":   req.Scopes,
				"urn":      res.URN(),
			})
			if rs, ok := res.(interface{ Reason() error }); ok {
				entry = entry.WithError(rs.Reason())
			}
			entry.Warn("upload-step returned placeholder urn")
		}

		writeJSON(w, http.StatusOK, UploadResponse{Success: true, URN: res.URN()})
	}
}
