package observability

import (
	"context"
	"errors"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of a workspace.
type Metrics struct {
	Selections    *prometheus.CounterVec
	SelectionSize *prometheus.HistogramVec
	MixedDepth    prometheus.Counter
	Rebuilds      prometheus.Counter
	Layers        prometheus.Gauge
	Groups        prometheus.Gauge
	Pruned        prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// It panics if they are already registered, like prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scena_selections_total",
				Help: "Total number of selections computed, by mode",
			},
			[]string{"mode"},
		),
		SelectionSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scena_selection_leaves",
				Help:    "Number of layers covered by a computed selection",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"mode"},
		),
		MixedDepth: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scena_selection_mixed_depth_total",
			Help: "Same-depth selections whose input spanned several depths",
		}),
		Rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scena_rebuilds_total",
			Help: "Total number of documents loaded into the workspace",
		}),
		Layers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scena_layers",
			Help: "Number of layers of the current document",
		}),
		Groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scena_groups",
			Help: "Number of live groups of the current document",
		}),
		Pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scena_groups_pruned_total",
			Help: "Stored groups dropped because no layer refers to them",
		}),
	}
	reg.MustRegister(m.Selections, m.SelectionSize, m.MixedDepth, m.Rebuilds, m.Layers, m.Groups, m.Pruned)
	return m
}

// Hooks returns lifecycle hooks recording into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSelect: func(_ context.Context, e *domain.SelectEvent) {
			mode := string(e.Mode)
			m.Selections.WithLabelValues(mode).Inc()
			m.SelectionSize.WithLabelValues(mode).Observe(float64(e.Leaves))
			if errors.Is(e.Err, group.ErrMixedDepth) {
				m.MixedDepth.Inc()
			}
		},
		OnRebuild: func(_ context.Context, e *domain.RebuildEvent) {
			m.Rebuilds.Inc()
			m.Layers.Set(float64(e.Layers))
			m.Groups.Set(float64(e.Groups))
			m.Pruned.Add(float64(len(e.Pruned)))
		},
	}
}
