// Package metrics define los collectors Prometheus del proceso. Vive aparte de
// internal/http para que stores y servicios puedan registrar eventos sin ciclos.
package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "Requests en vuelo",
	})

	// result: created | duplicate | amount_mismatch
	SubscriptionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_subscriptions_total",
		Help: "Intentos de alta de suscripción por resultado",
	}, []string{"result"})

	AssignmentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_trainer_assignments_total",
		Help: "Asignaciones de trainer creadas, y si reemplazaron una activa",
	}, []string{"replaced"})

	// result: ok | failed | rolled_back
	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_uploads_total",
		Help: "Subidas de imágenes por carpeta y resultado",
	}, []string{"folder", "result"})

	RateLimitRejects = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limit_rejects_total",
		Help: "Requests rechazadas por rate limit",
	}, []string{"path"})

	// result: hit | miss | not_found
	TenantLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tenant_lookups_total",
		Help: "Resoluciones de tenant por resultado",
	}, []string{"result"})
)

var (
	mu       sync.Mutex
	poolDesc = struct{ acquired, idle, total *prometheus.Desc }{
		acquired: prometheus.NewDesc("pg_pool_acquired_conns", "Conexiones adquiridas", nil, nil),
		idle:     prometheus.NewDesc("pg_pool_idle_conns", "Conexiones inactivas", nil, nil),
		total:    prometheus.NewDesc("pg_pool_total_conns", "Conexiones totales", nil, nil),
	}
)

// Register registra los collectors en reg (default si nil), ignorando duplicados.
func Register(reg prometheus.Registerer) error {
	mu.Lock()
	defer mu.Unlock()
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal, HTTPRequestDuration, HTTPInflight,
		SubscriptionsTotal, AssignmentsTotal, UploadsTotal,
		RateLimitRejects, TenantLookups,
	} {
		if err := registerCollector(reg, c); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPool expone gauges del pool pgx.
func RegisterPool(reg prometheus.Registerer, pool *pgxpool.Pool) error {
	if pool == nil {
		return nil
	}
	return registerCollector(reg, poolCollector{pool: pool})
}

// Handler sirve /metrics desde el gatherer default.
func Handler() http.Handler { return promhttp.Handler() }

func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

type poolCollector struct{ pool *pgxpool.Pool }

func (c poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- poolDesc.acquired
	ch <- poolDesc.idle
	ch <- poolDesc.total
}

func (c poolCollector) Collect(ch chan<- prometheus.Metric) {
	stat := c.pool.Stat()
	ch <- prometheus.MustNewConstMetric(poolDesc.acquired, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(poolDesc.idle, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(poolDesc.total, prometheus.GaugeValue, float64(stat.TotalConns()))
}

var (
	uuidSegmentRE = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F-]{4}-[0-9a-fA-F-]{4,}$`)
	hexSegmentRE  = regexp.MustCompile(`^[0-9a-fA-F]{16,}$`)
)

// NormalizePath reemplaza segmentos dinámicos (uuid, hex, números) por :param
// para acotar la cardinalidad cuando no hay route pattern.
func NormalizePath(p string) string {
	clean := strings.SplitN(p, "?", 2)[0]
	var out []string
	for _, seg := range strings.Split(clean, "/") {
		if seg == "" {
			continue
		}
		if isDynamicSegment(seg) {
			seg = ":param"
		}
		out = append(out, seg)
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/")
}

func isDynamicSegment(seg string) bool {
	if len(seg) > 48 || uuidSegmentRE.MatchString(seg) || hexSegmentRE.MatchString(seg) {
		return true
	}
	_, err := strconv.Atoi(seg)
	return err == nil
}
