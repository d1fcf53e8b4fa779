package monitor

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSucceeded = "succeeded"
	StatusInvalid   = "invalid"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Monitor 记录自动排班运行情况的 Prometheus 指标
type Monitor struct {
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	bestFitness prometheus.Gauge
	gatherer    prometheus.Gatherer
}

// New 在 reg 上注册指标，reg 为 nil 时使用默认的 registry
// 如果指标已经注册过，则复用已有的 collector
func New(reg *prometheus.Registry) (*Monitor, error) {
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "guard_scheduler_runs_total",
		Help: "Total number of scheduling runs by outcome",
	}, []string{"status"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "guard_scheduler_run_duration_seconds",
		Help:    "Wall time of successful scheduling runs",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	})
	bestFitness := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "guard_scheduler_best_fitness",
		Help: "Fitness of the best schedule of the latest successful run",
	})

	var err error
	if runs, err = register(registerer, runs); err != nil {
		return nil, err
	}
	if duration, err = register(registerer, duration); err != nil {
		return nil, err
	}
	if bestFitness, err = register(registerer, bestFitness); err != nil {
		return nil, err
	}

	return &Monitor{runs: runs, duration: duration, bestFitness: bestFitness, gatherer: gatherer}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordSuccess 记录一次成功的运行
func (m *Monitor) RecordSuccess(elapsed time.Duration, bestFitness int) {
	m.runs.WithLabelValues(StatusSucceeded).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.bestFitness.Set(float64(bestFitness))
}

// RecordFailure 记录一次没有产生结果的运行，status 为 invalid、failed 或 cancelled
func (m *Monitor) RecordFailure(status string) {
	m.runs.WithLabelValues(status).Inc()
}

// Handler 以 Prometheus 文本格式暴露指标
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
