package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/openlava/openlava-go/pkg/lsb"
)

const MetricsPrefix = "lava_event_ingester_"

type Metrics struct {
	events       *prometheus.CounterVec
	decodeErrors prometheus.Counter
	sinkErrors   *prometheus.CounterVec
	batchSize    prometheus.Histogram
	checkpoint   prometheus.Gauge
}

var m = newMetrics(promauto.With(prometheus.DefaultRegisterer))

func Get() *Metrics {
	return m
}

func newMetrics(factory promauto.Factory) *Metrics {
	return &Metrics{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: MetricsPrefix + "events_total",
			Help: "Number of event log records ingested",
		}, []string{"type"}),
		decodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: MetricsPrefix + "decode_errors_total",
			Help: "Number of event log records skipped because they could not be decoded",
		}),
		sinkErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: MetricsPrefix + "sink_errors_total",
			Help: "Number of batches a sink failed to store",
		}, []string{"sink"}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricsPrefix + "batch_size",
			Help:    "Number of events per stored batch",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		checkpoint: factory.NewGauge(prometheus.GaugeOpts{
			Name: MetricsPrefix + "checkpoint_line",
			Help: "Line of the event log up to which every record has been stored",
		}),
	}
}

func (m *Metrics) RecordEvent(t lsb.EventType) {
	m.events.WithLabelValues(t.String()).Inc()
}

func (m *Metrics) RecordDecodeError() {
	m.decodeErrors.Inc()
}

func (m *Metrics) RecordSinkError(sink string) {
	m.sinkErrors.WithLabelValues(sink).Inc()
}

func (m *Metrics) RecordBatch(size int, line int64) {
	m.batchSize.Observe(float64(size))
	m.checkpoint.Set(float64(line))
}
