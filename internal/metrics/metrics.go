package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "path", "status"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker", Name: "handler_errors_total", Help: "Handler errors",
	})
	StudentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker", Name: "students_created_total", Help: "Students created",
	})
	ShortageWarnings = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker", Name: "shortage_warnings_total", Help: "Attendance shortage warnings emitted",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tracker", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HandlerErrors, StudentsCreated, ShortageWarnings, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
