package relay

import (
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// KafkaOptions configures the Kafka side of the bridge.
type KafkaOptions struct {
	Brokers  []string
	GroupID  string
	ClientID string
}

func newSaramaConfig(opts KafkaOptions) *sarama.Config {
	config := sarama.NewConfig()
	if opts.ClientID != "" {
		config.ClientID = opts.ClientID
	}
	return config
}

// NewSyncProducer creates the producer used by the publish direction.
func NewSyncProducer(opts KafkaOptions) (sarama.SyncProducer, error) {
	config := newSaramaConfig(opts)
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(opts.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// ConsumerGroupFactory returns a constructor for independent group members,
// one per subscriber executor.
func ConsumerGroupFactory(opts KafkaOptions) func() (sarama.ConsumerGroup, error) {
	return func() (sarama.ConsumerGroup, error) {
		config := newSaramaConfig(opts)
		config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
		config.Consumer.Offsets.Initial = sarama.OffsetOldest
		config.Consumer.Group.Session.Timeout = 10 * time.Second
		config.Consumer.Group.Heartbeat.Interval = 3 * time.Second

		group, err := sarama.NewConsumerGroup(opts.Brokers, opts.GroupID, config)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
		}
		return group, nil
	}
}
