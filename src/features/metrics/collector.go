package metrics

import (
	"github.com/contre95/hotfolder/src/features/hotfolder"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector records hot folder activity as Prometheus metrics.
type Collector struct {
	sessions prometheus.Gauge
	settled  *prometheus.CounterVec
	filtered *prometheus.CounterVec
	forward  *prometheus.CounterVec
}

var _ hotfolder.Recorder = (*Collector)(nil)

// NewCollector creates the hot folder metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hotfolder_active_sessions",
			Help: "Number of hot folders currently being watched.",
		}),
		settled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotfolder_events_settled_total",
			Help: "Files that settled and passed the extension filter.",
		}, []string{"folder_id"}),
		filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotfolder_events_filtered_total",
			Help: "Settled files dropped by the extension filter.",
		}, []string{"folder_id"}),
		forward: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotfolder_forward_total",
			Help: "Forwarding attempts by target and result.",
		}, []string{"target", "result"}),
	}
	for _, col := range []prometheus.Collector{c.sessions, c.settled, c.filtered, c.forward} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) SessionsActive(n int) {
	c.sessions.Set(float64(n))
}

func (c *Collector) EventSettled(folderID string) {
	c.settled.WithLabelValues(folderID).Inc()
}

func (c *Collector) EventFiltered(folderID string) {
	c.filtered.WithLabelValues(folderID).Inc()
}

func (c *Collector) Forwarded(target string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.forward.WithLabelValues(target, result).Inc()
}
