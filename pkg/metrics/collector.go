package metrics

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Direction distinguishes the two relay flows of a topic.
type Direction string

const (
	DirectionPublish   Direction = "publish"
	DirectionSubscribe Direction = "subscribe"
)

// Collector owns the publish and subscribe accumulators of every configured
// topic. Topics are registered once at construction and the maps are never
// written afterwards, so lookups need no locking.
type Collector struct {
	publish   map[string]*Information
	subscribe map[string]*Information
	topics    []string

	config *Config
}

// Config holds configuration for metrics collection
type Config struct {
	Enabled bool // Enable/disable recording; reads keep working when disabled
}

// DefaultConfig returns sensible defaults for metrics collection
func DefaultConfig() *Config {
	return &Config{Enabled: true}
}

// NewCollector registers accumulators for topics. Duplicate names share an entry.
func NewCollector(config *Config, topics []string) *Collector {
	if config == nil {
		config = DefaultConfig()
	}

	c := &Collector{
		publish:   make(map[string]*Information, len(topics)),
		subscribe: make(map[string]*Information, len(topics)),
		config:    config,
	}
	for _, topic := range topics {
		if _, ok := c.publish[topic]; ok {
			continue
		}
		c.topics = append(c.topics, topic)
		c.publish[topic] = NewInformation()
		c.subscribe[topic] = NewInformation()
	}
	return c
}

// RecordPublish records a message relayed from AMQP into Kafka
func (c *Collector) RecordPublish(topic string, latency time.Duration, failed bool) {
	c.record(DirectionPublish, c.publish, topic, latency, failed)
}

// RecordSubscribe records a message relayed from Kafka into AMQP
func (c *Collector) RecordSubscribe(topic string, latency time.Duration, failed bool) {
	c.record(DirectionSubscribe, c.subscribe, topic, latency, failed)
}

func (c *Collector) record(dir Direction, infos map[string]*Information, topic string, latency time.Duration, failed bool) {
	if !c.config.Enabled {
		return
	}

	info, ok := infos[topic]
	if !ok {
		log.Warn().Str("topic", topic).Str("direction", string(dir)).Msg("Dropping statistics for unregistered topic")
		return
	}
	info.Record(latency, failed)
}

// GetPublishInformation returns the publish accumulator of topic, or nil
func (c *Collector) GetPublishInformation(topic string) *Information {
	return c.publish[topic]
}

// GetSubscribeInformation returns the subscribe accumulator of topic, or nil
func (c *Collector) GetSubscribeInformation(topic string) *Information {
	return c.subscribe[topic]
}

func (c *Collector) PublishInformationByTopic() map[string]Reader {
	return toReaders(c.publish)
}

func (c *Collector) SubscribeInformationByTopic() map[string]Reader {
	return toReaders(c.subscribe)
}

// Topics returns the registered topics in registration order
func (c *Collector) Topics() []string {
	out := make([]string, len(c.topics))
	copy(out, c.topics)
	return out
}

// IsEnabled returns whether metrics collection is enabled
func (c *Collector) IsEnabled() bool {
	return c.config.Enabled
}

func toReaders(infos map[string]*Information) map[string]Reader {
	out := make(map[string]Reader, len(infos))
	for topic, info := range infos {
		out[topic] = info
	}
	return out
}
