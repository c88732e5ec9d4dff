// internal/handlers/http/metrics_handler.go
// Prometheus metrics on a private registry owned by the app.

package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg      *prometheus.Registry
	requests *prometheus.CounterVec
}

func NewMetrics(appName string) *Metrics {
	reg := prometheus.NewRegistry()
	up := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "app_up",
		Help:        "1 if the app is up",
		ConstLabels: prometheus.Labels{"app": appName},
	})
	up.Set(1)
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route template, method and status code.",
	}, []string{"route", "method", "code"})
	reg.MustRegister(up, requests)
	return &Metrics{reg: reg, requests: requests}
}

// Middleware counts requests per matched mux route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		counter := m.requests.MustCurryWith(prometheus.Labels{"route": route})
		promhttp.InstrumentHandlerCounter(counter, next).ServeHTTP(w, r)
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
