// internal/middleware/recover.go
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// Recover turns a handler panic into a 500 instead of a dropped connection.
func Recover(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log.WithFields(logrus.Fields{
						"panic":      p,
						"path":       r.URL.Path,
						"request_id": RequestIDFrom(r.Context()),
						"stack":      string(debug.Stack()),
					}).Error("handler panic")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"success":false,"error":"internal error","code":"internal"}` + "\n"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
