// Package metrics holds the Prometheus instruments for the service and the
// HTTP middleware that feeds the request metrics.
//
// Metrics registered here:
//
//	sports_http_requests_total            counter: requests by method/route/status
//	sports_http_request_duration_seconds  histogram: latency by method/route
//	sports_feed_notifications_total       counter: change notifications by kind
//	sports_view_refreshes_total           counter: view reloads by view/result
//	sports_views_active                   gauge: live views by view
//	sports_store_errors_total             counter: store failures by kind/op
package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sports_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "sports_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

var FeedNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sports_feed_notifications_total",
	Help: "Change notifications dispatched to subscribers, by record kind.",
}, []string{"kind"})

var ViewRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sports_view_refreshes_total",
	Help: "View reloads by view and result.",
}, []string{"view", "result"})

var ActiveViews = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "sports_views_active",
	Help: "Number of activated views.",
}, []string{"view"})

var StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sports_store_errors_total",
	Help: "Store failures by record kind and operation.",
}, []string{"kind", "op"})

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency. The route label is the chi
// route pattern so path parameters do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := routePattern(r)
		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack keeps websocket upgrades working through the wrapper.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(rw.ResponseWriter).Hijack()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
