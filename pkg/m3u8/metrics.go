package m3u8

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what a mirror run fetched. Each Metrics owns its registry so
// several copiers can run in one process.
type Metrics struct {
	registry  *prometheus.Registry
	playlists prometheus.Counter
	segments  prometheus.Counter
	bytes     prometheus.Counter
	failures  *prometheus.CounterVec
}

// NewMetrics creates a Metrics with all counters registered.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		playlists: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hlscp",
			Name:      "playlists_fetched_total",
			Help:      "Total playlists fetched",
		}),
		segments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hlscp",
			Name:      "segments_downloaded_total",
			Help:      "Total segments written to disk",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hlscp",
			Name:      "segment_bytes_total",
			Help:      "Total segment bytes written to disk",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hlscp",
			Name:      "failures_total",
			Help:      "Failed operations by error kind",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.playlists, m.segments, m.bytes, m.failures)
	return m
}

// Registry exposes the underlying registry, e.g. for testutil or a handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the counters in the text exposition format, suitable
// for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return newError(ErrIO, "write metrics", path, err)
	}
	return nil
}

func (m *Metrics) playlistFetched() {
	if m != nil {
		m.playlists.Inc()
	}
}

func (m *Metrics) segmentSaved(n int64) {
	if m != nil {
		m.segments.Inc()
		m.bytes.Add(float64(n))
	}
}

func (m *Metrics) failed(err error) {
	if m != nil {
		m.failures.WithLabelValues(errorKind(err)).Inc()
	}
}
