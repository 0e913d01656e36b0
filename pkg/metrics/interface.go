package metrics

import "time"

// StatisticsSource exposes the per-topic accumulators read by the admin
// reporting path. Implementations must return an entry for every configured
// topic, even before any traffic was relayed.
type StatisticsSource interface {
	PublishInformationByTopic() map[string]Reader
	SubscribeInformationByTopic() map[string]Reader
}

// Recorder is the write side used by relay workers.
type Recorder interface {
	RecordPublish(topic string, latency time.Duration, failed bool)
	RecordSubscribe(topic string, latency time.Duration, failed bool)
}

// Ensure Collector implements both sides
var (
	_ StatisticsSource = (*Collector)(nil)
	_ Recorder         = (*Collector)(nil)
)
