// internal/app/routes.go
package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"aps-bridge/internal/config"
	hh "aps-bridge/internal/handlers/http"
	"aps-bridge/internal/services"
)

const UploadStepPath = "/api/aps/v2/upload-step"

type RegisterDeps struct {
	Config     *config.Config
	Log        logrus.FieldLogger
	Metrics    *hh.Metrics
	Uploader   services.StepUploader
	Translator services.Translator
}

// RegisterRoutesWithDeps adds every HTTP route to r.
func RegisterRoutesWithDeps(r *mux.Router, deps RegisterDeps) {
	cfg := deps.Config
	r.NotFoundHandler = http.HandlerFunc(hh.NotFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(hh.MethodNotAllowedHandler)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	health := hh.NewHealthHandler(cfg.AppName, cfg.AppEnv)

	// --- no prefix ---
	r.HandleFunc("/healthz", health).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health).Methods(http.MethodGet)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	// --- /api prefix ---
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/healthz", health).Methods(http.MethodGet)
	api.HandleFunc("/readyz", health).Methods(http.MethodGet)

	api.HandleFunc("/aps/v2/upload-step", hh.NewUploadStepHandler(hh.UploadStepDeps{
		Uploader:     deps.Uploader,
		MaxBodyBytes: cfg.Upload.MaxBodyBytes,
		Log:          deps.Log,
	})).Methods(http.MethodPost)
	// The Origin Gate answers OPTIONS first; this keeps the bare router honest.
	api.HandleFunc("/aps/v2/upload-step", hh.PreflightHandler).Methods(http.MethodOptions)

	tr := hh.TranslateDeps{
		Translator:   deps.Translator,
		MaxBodyBytes: cfg.Upload.MaxBodyBytes,
		Log:          deps.Log,
	}
	api.HandleFunc("/forge/translate", hh.NewTranslateHandler(tr)).Methods(http.MethodPost)
	api.HandleFunc("/forge/translate/{jobId}", hh.NewTranslationStatusHandler(tr)).Methods(http.MethodGet)
}
