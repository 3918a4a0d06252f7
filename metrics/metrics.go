package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "werkzeug"

// Collector 后端调用与看板状态的指标
type Collector struct {
	gatherer prometheus.Gatherer

	backendRequests *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec

	activeCheckouts   prometheus.Gauge
	overdueCheckouts  prometheus.Gauge
	dueTodayCheckouts prometheus.Gauge
	maintenanceDue    prometheus.Gauge
}

// New 在 reg 上注册全部指标；reg 为 nil 时用独立 registry
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		gatherer: reg,
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Requests sent to the record backend.",
		}, []string{"collection", "method", "code"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of record backend requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection", "method"}),
		activeCheckouts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_checkouts",
			Help:      "Checkouts without a return at the last dashboard load.",
		}),
		overdueCheckouts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_checkouts",
			Help:      "Active checkouts past their planned return day.",
		}),
		dueTodayCheckouts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "due_today_checkouts",
			Help:      "Active checkouts due today.",
		}),
		maintenanceDue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tools_maintenance_due",
			Help:      "Tools whose next maintenance falls within two weeks.",
		}),
	}
	reg.MustRegister(
		c.backendRequests, c.backendLatency,
		c.activeCheckouts, c.overdueCheckouts, c.dueTodayCheckouts, c.maintenanceDue,
	)
	return c
}

// ObserveBackend status 为 0 表示请求没有拿到响应
func (c *Collector) ObserveBackend(collection, method string, status int, d time.Duration) {
	if c == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	c.backendRequests.WithLabelValues(collection, method, code).Inc()
	c.backendLatency.WithLabelValues(collection, method).Observe(d.Seconds())
}

func (c *Collector) SetDashboard(active, overdue, dueToday, maintenance int) {
	if c == nil {
		return
	}
	c.activeCheckouts.Set(float64(active))
	c.overdueCheckouts.Set(float64(overdue))
	c.dueTodayCheckouts.Set(float64(dueToday))
	c.maintenanceDue.Set(float64(maintenance))
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
