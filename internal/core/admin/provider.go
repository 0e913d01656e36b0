package admin

import "time"

// ConfigurationProvider defines the minimal interface that admin operations need from the configuration layer
type ConfigurationProvider interface {
	CurrentConfiguration() (string, error)
	GetTopics() []string
	GetPublisherExecutors() int
	GetSubscriberExecutors() int
}

// Clock allows deterministic uptime in tests
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
