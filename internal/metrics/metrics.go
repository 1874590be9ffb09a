// Package metrics exposes the bridge's counters and gauges in Prometheus
// exposition format, and implements jobqueue.Recorder so the queue can
// report activity without depending on Prometheus itself.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements jobqueue.Recorder.
type Recorder struct {
	jobsEnqueued  *prometheus.CounterVec
	jobsDelivered *prometheus.CounterVec
	clientSeen    *prometheus.CounterVec
	resultsStored prometheus.Counter
}

// NewRecorder registers the bridge's metrics against the default registry
// and returns a Recorder ready to hand to jobqueue.WithRecorder.
func NewRecorder() *Recorder {
	return &Recorder{
		jobsEnqueued: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio_bridge",
			Subsystem: "queue",
			Name:      "jobs_enqueued_total",
			Help:      "Jobs appended to a client mailbox, by client_id.",
		}, []string{"client_id"}),
		jobsDelivered: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio_bridge",
			Subsystem: "queue",
			Name:      "jobs_delivered_total",
			Help:      "Jobs popped off a client mailbox by a poller, by client_id.",
		}, []string{"client_id"}),
		clientSeen: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio_bridge",
			Subsystem: "queue",
			Name:      "client_seen_total",
			Help:      "MarkSeen calls, by client_id.",
		}, []string{"client_id"}),
		resultsStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "studio_bridge",
			Subsystem: "queue",
			Name:      "results_stored_total",
			Help:      "Results posted back by a plugin, whether or not they were ever consumed.",
		}),
	}
}

// JobEnqueued implements jobqueue.Recorder.
func (r *Recorder) JobEnqueued(clientID string) { r.jobsEnqueued.WithLabelValues(clientID).Inc() }

// JobDelivered implements jobqueue.Recorder.
func (r *Recorder) JobDelivered(clientID string) { r.jobsDelivered.WithLabelValues(clientID).Inc() }

// ClientSeen implements jobqueue.Recorder.
func (r *Recorder) ClientSeen(clientID string) { r.clientSeen.WithLabelValues(clientID).Inc() }

// ResultStored implements jobqueue.Recorder.
func (r *Recorder) ResultStored() { r.resultsStored.Inc() }

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
