// internal/middleware/cors.go
// Origin Gate: CORS decoration for every request, preflights answered here.

package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"aps-bridge/internal/config"
)

// OriginGate decorates responses for allow-listed origins and answers every
// OPTIONS request itself with an empty 200, whatever the origin.
// Denial of unlisted origins is left to the browser: their requests are still
// served, only without the Access-Control-* headers.
type OriginGate struct {
	c       *cors.Cors
	methods map[string]bool
	allowM  string
	allowH  string
	maxAge  int
	log     logrus.FieldLogger
}

func NewOriginGate(cfg config.CORSConfig, debug bool, log logrus.FieldLogger) *OriginGate {
	opts := cors.Options{
		AllowedOrigins:       cfg.AllowedOrigins,
		AllowedMethods:       cfg.AllowedMethods,
		AllowedHeaders:       cfg.AllowedHeaders,
		AllowCredentials:     false,
		MaxAge:               cfg.MaxAge,
		OptionsSuccessStatus: http.StatusOK,
	}
	if debug && log != nil {
		opts.Debug = true
		opts.Logger = corsLogger{log}
	}

	methods := make(map[string]bool, len(cfg.AllowedMethods))
	for _, m := range cfg.AllowedMethods {
		methods[strings.ToUpper(m)] = true
	}
	return &OriginGate{
		c:       cors.New(opts),
		methods: methods,
		allowM:  strings.Join(cfg.AllowedMethods, ", "),
		allowH:  strings.Join(cfg.AllowedHeaders, ", "),
		maxAge:  cfg.MaxAge,
		log:     log,
	}
}

// Allowed reports whether the request's Origin is on the allow-list.
func (g *OriginGate) Allowed(r *http.Request) bool {
	return g.c.OriginAllowed(r)
}

func (g *OriginGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			g.preflight(w, r)
			return
		}

		// rs/cors sets Allow-Origin and Vary for allowed origins on actual requests.
		g.c.HandlerFunc(w, r)
		if g.methods[r.Method] && g.Allowed(r) {
			h := w.Header()
			h.Set("Access-Control-Allow-Methods", g.allowM)
			h.Set("Access-Control-Allow-Headers", g.allowH)
		}
		next.ServeHTTP(w, r)
	})
}

// preflight never consults route logic. Allowed origins get the full policy,
// anything else gets a bare 200.
func (g *OriginGate) preflight(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" && g.Allowed(r) {
		h := w.Header()
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", g.allowM)
		h.Set("Access-Control-Allow-Headers", g.allowH)
		if g.maxAge > 0 {
			h.Set("Access-Control-Max-Age", strconv.Itoa(g.maxAge))
		}
	} else if g.log != nil {
		g.log.WithFields(logrus.Fields{"origin": origin, "path": r.URL.Path}).
			Debug("preflight from unlisted origin")
	}
	w.WriteHeader(http.StatusOK)
}

// corsLogger adapts logrus to the Printf logger rs/cors expects.
type corsLogger struct{ l logrus.FieldLogger }

func (c corsLogger) Printf(format string, v ...interface{}) {
	c.l.WithField("component", "cors").Debugf(format, v...)
}
