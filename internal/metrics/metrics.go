// Package metrics собирает метрики Prometheus для HTTP-слоя и доменных операций.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "healthmate"

// Результаты операций для меток.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics набор коллекторов со своим реестром. Методы безопасны для nil.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight     prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	authAttempts     *prometheus.CounterVec
	reportUploads    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	reportDeletes    prometheus.Counter
	vitalsEntries    prometheus.Counter
}

// New создаёт и регистрирует все коллекторы.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"method", "route"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Signup and login attempts by result.",
		}, []string{"action", "result"}),
		reportUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "uploads_total",
			Help:      "Report uploads by result.",
		}, []string{"result"}),
		analysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analyzer",
			Name:      "request_duration_seconds",
			Help:      "Duration of AI analysis calls.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9),
		}, []string{"result"}),
		reportDeletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "deletes_total",
			Help:      "Deleted reports.",
		}),
		vitalsEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vitals",
			Name:      "entries_total",
			Help:      "Created vitals entries.",
		}),
	}

	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.authAttempts,
		m.reportUploads,
		m.analysisDuration,
		m.reportDeletes,
		m.vitalsEntries,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler отдаёт метрики реестра.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler считает запросы по шаблону маршрута chi, а не по сырому пути.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		method := strings.ToUpper(r.Method)

		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordAuth учитывает попытку action (signup, login).
func (m *Metrics) RecordAuth(action string, success bool) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(action, result(success)).Inc()
}

// RecordUpload учитывает загрузку отчёта.
func (m *Metrics) RecordUpload(success bool) {
	if m == nil {
		return
	}
	m.reportUploads.WithLabelValues(result(success)).Inc()
}

// RecordAnalysis учитывает длительность вызова AI.
func (m *Metrics) RecordAnalysis(duration time.Duration, success bool) {
	if m == nil {
		return
	}
	m.analysisDuration.WithLabelValues(result(success)).Observe(duration.Seconds())
}

// RecordReportDelete учитывает удаление отчёта.
func (m *Metrics) RecordReportDelete() {
	if m == nil {
		return
	}
	m.reportDeletes.Inc()
}

// RecordVitals учитывает новую запись показателей.
func (m *Metrics) RecordVitals() {
	if m == nil {
		return
	}
	m.vitalsEntries.Inc()
}

func result(success bool) string {
	if success {
		return ResultSuccess
	}
	return ResultFailure
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
