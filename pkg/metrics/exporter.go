package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "otterbridge"

// rawCounters is implemented by accumulators that can expose their raw
// error and latency totals in addition to the derived values.
type rawCounters interface {
	ErrorCount() int64
	CumulativeLatency() float64
}

// Exporter publishes the per-topic accumulators as Prometheus counters.
// Values are read at scrape time; nothing is copied in between.
type Exporter struct {
	source StatisticsSource

	messages *prometheus.Desc
	errors   *prometheus.Desc
	latency  *prometheus.Desc
}

// NewExporter creates a prometheus.Collector over source
func NewExporter(source StatisticsSource) *Exporter {
	labels := []string{"topic", "direction"}
	return &Exporter{
		source: source,
		messages: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "messages_total"),
			"Total number of messages relayed.",
			labels, nil,
		),
		errors: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "errors_total"),
			"Total number of messages that failed to relay.",
			labels, nil,
		),
		latency: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "latency_milliseconds_total"),
			"Cumulative relay latency in milliseconds.",
			labels, nil,
		),
	}
}

func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.messages
	ch <- e.errors
	ch <- e.latency
}

func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	e.collect(ch, DirectionPublish, e.source.PublishInformationByTopic())
	e.collect(ch, DirectionSubscribe, e.source.SubscribeInformationByTopic())
}

func (e *Exporter) collect(ch chan<- prometheus.Metric, dir Direction, infos map[string]Reader) {
	for topic, info := range infos {
		ch <- prometheus.MustNewConstMetric(e.messages, prometheus.CounterValue, float64(info.Count()), topic, string(dir))

		raw, ok := info.(rawCounters)
		if !ok {
			continue
		}
		if dir == DirectionPublish {
			ch <- prometheus.MustNewConstMetric(e.errors, prometheus.CounterValue, float64(raw.ErrorCount()), topic, string(dir))
		}
		ch <- prometheus.MustNewConstMetric(e.latency, prometheus.CounterValue, raw.CumulativeLatency(), topic, string(dir))
	}
}

var _ prometheus.Collector = (*Exporter)(nil)
