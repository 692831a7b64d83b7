// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the validation counters of one MultiTrack instance.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Validations   prometheus.Counter
	Corrections   prometheus.Counter
	Tracks        prometheus.Gauge
	DataHeight    prometheus.Gauge
	PublishErrors prometheus.Counter
}

// New registers the collectors on reg.
// Use a fresh registry per instance when running several sensors.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounter(prometheus.CounterOpts{
			Name: "multitrack_validations_total",
			Help: "The total number of track validation passes",
		}),
		Corrections: f.NewCounter(prometheus.CounterOpts{
			Name: "multitrack_corrections_total",
			Help: "The total number of corrections applied to user track settings",
		}),
		Tracks: f.NewGauge(prometheus.GaugeOpts{
			Name: "multitrack_tracks",
			Help: "Number of validated tracks",
		}),
		DataHeight: f.NewGauge(prometheus.GaugeOpts{
			Name: "multitrack_data_height",
			Help: "Total output rows after binning",
		}),
		PublishErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "multitrack_publish_errors_total",
			Help: "The total number of failed publications of validated arrays",
		}),
	}
}

// ObservePass records the outcome of one validation pass.
func (m *Metrics) ObservePass(tracks, dataHeight, messages int) {
	if m == nil {
		return
	}
	m.Validations.Inc()
	m.Corrections.Add(float64(messages))
	m.Tracks.Set(float64(tracks))
	m.DataHeight.Set(float64(dataHeight))
}

func (m *Metrics) ObservePublishError() {
	if m == nil {
		return
	}
	m.PublishErrors.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
