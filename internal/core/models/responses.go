package models

import "github.com/ottermq/otterbridge/pkg/metrics"

type ErrorResponse struct {
	Error string `json:"error"`
}

// Encoding names the format of a configuration document.
type Encoding string

const (
	EncodingYAML Encoding = "YAML"
)

type ConfigurationResponse struct {
	Content  string   `json:"content"`
	Encoding Encoding `json:"encoding"`
}

// StatisticsConsolidation is the ordered metric list of one topic in one direction.
type StatisticsConsolidation struct {
	Metrics []metrics.Metric `json:"metrics"`
}

type StatisticsResponse struct {
	PublisherExecutors  int                                `json:"publisher_executors"`
	SubscriberExecutors int                                `json:"subscriber_executors"`
	PublisherByTopic    map[string]StatisticsConsolidation `json:"publisher_by_topic"`
	SubscriberByTopic   map[string]StatisticsConsolidation `json:"subscriber_by_topic"`
}
