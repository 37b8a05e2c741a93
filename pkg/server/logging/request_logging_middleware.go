package logging

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/boothworks/crm-manager/pkg/logger"
	"github.com/boothworks/crm-manager/pkg/logging"
	"github.com/boothworks/crm-manager/pkg/metrics"
)

// RequestLoggingMiddleware logs every request and response pair and records
// the request metrics. Route names are the logical operation names set in
// the route loader.
func RequestLoggingMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if current := mux.CurrentRoute(r); current != nil && current.GetName() != "" {
			route = logging.NewLogEventFromString(current.GetName()).Type
		}

		ulog := logger.New(r.Context())
		ulog.V(2).Infof("request received: %s %s", r.Method, r.URL.Path)

		writer := newResponseWriter(w)
		before := time.Now()
		handler.ServeHTTP(writer, r)
		elapsed := time.Since(before)

		metrics.IncRequestCount(route, r.Method, strconv.Itoa(writer.StatusCode()))
		metrics.ObserveRequestDuration(route, elapsed)
		ulog.Infof("%s %s route=%s status=%d elapsed=%s",
			r.Method, r.URL.Path, route, writer.StatusCode(), elapsed)
	})
}
