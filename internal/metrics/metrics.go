// Package metrics exposes frame-loop counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Faultbox/strider/internal/logger"
)

const namespace = "strider"

// Metrics holds the collectors updated by the frame loop. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	frames        prometheus.Counter
	frameSeconds  prometheus.Histogram
	jumps         prometheus.Counter
	transitions   *prometheus.CounterVec
	lockChanges   *prometheus.CounterVec
	grounded      prometheus.Gauge
	configReloads prometheus.Counter
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Controller updates run while enabled.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_delta_seconds",
			Help:      "Delta time passed to the controller.",
			Buckets:   []float64{0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25},
		}),
		jumps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jumps_total",
			Help:      "Jumps launched.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "animation_transitions_total",
			Help:      "Animation cross-fades started, by target state.",
		}, []string{"to"}),
		lockChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pointer_lock_changes_total",
			Help:      "Pointer lock transitions, by event.",
		}, []string{"event"}),
		grounded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "grounded",
			Help:      "1 while the character stands on a surface.",
		}),
		configReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_reloads_total",
			Help:      "Tuning reloads applied from the config file.",
		}),
	}
	m.registry.MustRegister(
		m.frames, m.frameSeconds, m.jumps, m.transitions,
		m.lockChanges, m.grounded, m.configReloads,
	)
	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Frame records one controller update.
func (m *Metrics) Frame(dt float32, grounded bool) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameSeconds.Observe(float64(dt))
	if grounded {
		m.grounded.Set(1)
	} else {
		m.grounded.Set(0)
	}
}

// Jump records a launched jump.
func (m *Metrics) Jump() {
	if m == nil {
		return
	}
	m.jumps.Inc()
}

// Transition records an animation cross-fade toward state.
func (m *Metrics) Transition(state string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(state).Inc()
}

// LockChange records a pointer lock or unlock.
func (m *Metrics) LockChange(event string) {
	if m == nil {
		return
	}
	m.lockChanges.WithLabelValues(event).Inc()
}

// ConfigReload records an applied tuning reload.
func (m *Metrics) ConfigReload() {
	if m == nil {
		return
	}
	m.configReloads.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Server is a running /metrics listener.
type Server struct {
	srv *http.Server
}

// Serve starts a /metrics listener on addr in the background.
func (m *Metrics) Serve(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log := logger.Named("metrics")
	go func() {
		log.Info("metrics listener started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics listener failed", zap.Error(err))
		}
	}()
	return &Server{srv: srv}
}

// Close stops the listener, waiting up to timeout for in-flight scrapes.
func (s *Server) Close(timeout time.Duration) error {
	if s == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
