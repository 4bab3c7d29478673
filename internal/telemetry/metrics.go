// SPDX-License-Identifier: MIT

// Package telemetry exports engine activity as Prometheus metrics.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/diffusionx/montecarlo"
)

// Metrics implements montecarlo.Observer on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// samples counts provider invocations by operation
	samples *prometheus.CounterVec

	// sampleErrors counts failed provider invocations by operation
	sampleErrors *prometheus.CounterVec

	// estimateSeconds tracks wall time of public engine operations
	estimateSeconds *prometheus.HistogramVec
}

var _ montecarlo.Observer = (*Metrics)(nil)

// New registers the diffusionx metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		samples: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diffusionx_samples_total",
			Help: "Total provider invocations by engine operation",
		}, []string{"op"}),
		sampleErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diffusionx_sample_errors_total",
			Help: "Total failed provider invocations by engine operation",
		}, []string{"op"}),
		estimateSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diffusionx_estimate_seconds",
			Help:    "Estimate duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
		}, []string{"op"}),
	}
}

// ObserveSample implements montecarlo.Observer.
func (m *Metrics) ObserveSample(op string, err error) {
	m.samples.WithLabelValues(op).Inc()
	if err != nil {
		m.sampleErrors.WithLabelValues(op).Inc()
	}
}

// ObserveEstimate implements montecarlo.Observer.
func (m *Metrics) ObserveEstimate(op string, elapsed time.Duration, _ error) {
	m.estimateSeconds.WithLabelValues(op).Observe(elapsed.Seconds())
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done. It returns once the
// listener is bound; serving continues in the background.
func (m *Metrics) Serve(ctx context.Context, addr string, log *slog.Logger) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "err", err)
		}
	}()
	log.Info("serving metrics", "addr", ln.Addr().String())

	return ln.Addr(), nil
}
