package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
)

// Options configures the executor layout of a Bridge.
type Options struct {
	Topics              []string
	PublisherExecutors  int
	SubscriberExecutors int
	RetryBackoff        time.Duration
}

// Bridge runs the publish executors (AMQP to Kafka) and the subscribe
// executors (Kafka to AMQP) until its context is cancelled.
type Bridge struct {
	opts       Options
	publisher  *Publisher
	subscriber *Subscriber
	newGroup   func() (sarama.ConsumerGroup, error)

	groups []sarama.ConsumerGroup
	wg     sync.WaitGroup
}

func NewBridge(opts Options, publisher *Publisher, subscriber *Subscriber, newGroup func() (sarama.ConsumerGroup, error)) *Bridge {
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = time.Second
	}
	return &Bridge{
		opts:       opts,
		publisher:  publisher,
		subscriber: subscriber,
		newGroup:   newGroup,
	}
}

// Start declares the AMQP topology and launches every executor.
// It returns once all executors are running.
func (b *Bridge) Start(ctx context.Context) error {
	if err := b.publisher.Declare(b.opts.Topics); err != nil {
		return err
	}

	for i := 0; i < b.opts.SubscriberExecutors; i++ {
		group, err := b.newGroup()
		if err != nil {
			b.closeGroups()
			return err
		}
		b.groups = append(b.groups, group)
	}

	for _, topic := range b.opts.Topics {
		for i := 0; i < b.opts.PublisherExecutors; i++ {
			tag := fmt.Sprintf("otterbridge-%s-%d", topic, i)
			b.wg.Add(1)
			go func(topic, tag string) {
				defer b.wg.Done()
				b.publish(ctx, topic, tag)
			}(topic, tag)
		}
	}

	for i, group := range b.groups {
		b.wg.Add(1)
		go func(id int, group sarama.ConsumerGroup) {
			defer b.wg.Done()
			b.consume(ctx, id, group)
		}(i, group)
	}

	log.Info().
		Strs("topics", b.opts.Topics).
		Int("publisher_executors", b.opts.PublisherExecutors).
		Int("subscriber_executors", b.opts.SubscriberExecutors).
		Msg("Bridge started")
	return nil
}

// publish keeps one publisher executor running, reopening its channel
// after RetryBackoff whenever Run fails.
func (b *Bridge) publish(ctx context.Context, topic, tag string) {
	for {
		err := b.publisher.Run(ctx, topic, tag)
		if ctx.Err() != nil {
			return
		}
		log.Error().Err(err).Str("topic", topic).Str("consumer", tag).Msg("Publisher executor stopped, restarting")
		select {
		case <-ctx.Done():
			return
		case <-time.After(b.opts.RetryBackoff):
		}
	}
}

func (b *Bridge) consume(ctx context.Context, id int, group sarama.ConsumerGroup) {
	for {
		if err := group.Consume(ctx, b.opts.Topics, b.subscriber); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			log.Error().Err(err).Int("executor", id).Msg("Error consuming messages")
			select {
			case <-ctx.Done():
				return
			case <-time.After(b.opts.RetryBackoff):
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// Wait blocks until every executor returned, then closes the consumer groups.
func (b *Bridge) Wait() {
	b.wg.Wait()
	b.closeGroups()
}

func (b *Bridge) closeGroups() {
	for _, group := range b.groups {
		if err := group.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close consumer group")
		}
	}
	b.groups = nil
}
