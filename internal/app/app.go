// internal/app/app.go
package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"aps-bridge/internal/config"
	hh "aps-bridge/internal/handlers/http"
	"aps-bridge/internal/middleware"
	"aps-bridge/internal/services"
)

// App holds the router and everything the routes depend on.
type App struct {
	Router  *mux.Router
	cfg     *config.Config
	log     logrus.FieldLogger
	handler http.Handler
}

// Option replaces a default dependency (used by tests and future real backends).
type Option func(*RegisterDeps)

func WithUploader(u services.StepUploader) Option {
	return func(d *RegisterDeps) { d.Uploader = u }
}

func WithTranslator(t services.Translator) Option {
	return func(d *RegisterDeps) { d.Translator = t }
}

// New builds the router and the middleware chain:
// RequestID -> AccessLog -> Recover -> OriginGate -> router.
func New(cfg *config.Config, log logrus.FieldLogger, opts ...Option) *App {
	r := mux.NewRouter()
	metrics := hh.NewMetrics(cfg.AppName)

	deps := RegisterDeps{
		Config:     cfg,
		Log:        log,
		Metrics:    metrics,
		Uploader:   services.NewPlaceholderUploader(cfg.Upload.PlaceholderURN),
		Translator: services.PlaceholderTranslator{},
	}
	for _, o := range opts {
		o(&deps)
	}
	RegisterRoutesWithDeps(r, deps)

	gate := middleware.NewOriginGate(cfg.CORS, cfg.Debug, log)

	var h http.Handler = r
	h = gate.Handler(h)
	h = middleware.Recover(log)(h)
	h = middleware.AccessLog(log)(h)
	h = middleware.RequestID(h)

	return &App{Router: r, cfg: cfg, log: log, handler: h}
}

// Handler is the fully wrapped handler to serve.
func (a *App) Handler() http.Handler { return a.handler }

// Run serves on cfg.Addr() until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a.handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithFields(logrus.Fields{"addr": ln.Addr().String(), "debug": a.cfg.Debug}).Info("API running")
		if a.cfg.Debug {
			a.log.Warn("debug mode enabled, not suitable for production")
		}
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down server...")
	sctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
