// Package metrics exposes simulation progress to Prometheus.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const namespace = "termlife"

// Collector holds the run's metrics on a private registry
type Collector struct {
	registry *prometheus.Registry

	generations   prometheus.Counter
	population    prometheus.Gauge
	advanceTime   prometheus.Histogram
	renderTime    prometheus.Histogram
	renderFailure prometheus.Counter
}

// NewCollector registers the simulation metrics plus the Go runtime collector
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generations advanced since start",
		}),
		population: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "population",
			Help:      "Living cells in the current generation",
		}),
		advanceTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "advance_duration_seconds",
			Help:      "Time spent computing one generation",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		renderTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent drawing one frame",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		renderFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_failures_total",
			Help:      "Frames the renderer failed to draw",
		}),
	}

	c.registry.MustRegister(
		c.generations,
		c.population,
		c.advanceTime,
		c.renderTime,
		c.renderFailure,
		collectors.NewGoCollector(),
	)
	return c
}

// ObserveAdvance records one computed generation
func (c *Collector) ObserveAdvance(d time.Duration) {
	c.generations.Inc()
	c.advanceTime.Observe(d.Seconds())
}

// ObserveRender records one drawn frame and the population it showed
func (c *Collector) ObserveRender(population int, d time.Duration, err error) {
	if err != nil {
		c.renderFailure.Inc()
		return
	}
	c.population.Set(float64(population))
	c.renderTime.Observe(d.Seconds())
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler routes /metrics and /healthz
func (c *Collector) Handler() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Serve runs the metrics endpoint on addr until ctx is cancelled
func Serve(ctx context.Context, addr string, h http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("metrics server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "[Serve] metrics server on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "[Serve] failed to shut down metrics server")
	}
	logger.Debug().Msg("metrics server stopped")
	return nil
}
