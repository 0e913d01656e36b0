package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/ottermq/otterbridge/pkg/metrics"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Publisher drains per-topic AMQP queues into Kafka topics and records
// every outcome as publish statistics.
type Publisher struct {
	open     ChannelFactory
	producer sarama.SyncProducer
	recorder metrics.Recorder
	exchange string
	prefetch int
}

func NewPublisher(open ChannelFactory, producer sarama.SyncProducer, recorder metrics.Recorder, exchange string, prefetch int) *Publisher {
	return &Publisher{
		open:     open,
		producer: producer,
		recorder: recorder,
		exchange: exchange,
		prefetch: prefetch,
	}
}

// Declare creates the bridge exchange and one bound queue per topic on a
// short-lived channel.
func (p *Publisher) Declare(topics []string) error {
	ch, err := p.open()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.exchange, amqp091.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}
	for _, topic := range topics {
		queue := PublishQueue(topic)
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, PublishRoutingKey(topic), p.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", queue, err)
		}
	}
	return nil
}

// Run consumes the queue of topic on its own channel until ctx is done.
// It returns ErrChannelClosed when the channel goes away underneath it.
func (p *Publisher) Run(ctx context.Context, topic, consumerTag string) error {
	ch, err := p.open()
	if err != nil {
		return err
	}
	defer ch.Close()

	if p.prefetch > 0 {
		if err := ch.Qos(p.prefetch, 0, false); err != nil {
			return fmt.Errorf("failed to set prefetch: %w", err)
		}
	}
	closed := ch.NotifyClose(make(chan *amqp091.Error, 1))

	deliveries, err := ch.Consume(PublishQueue(topic), consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", PublishQueue(topic), err)
	}

	log.Debug().Str("topic", topic).Str("consumer", consumerTag).Msg("Publisher executor started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr := <-closed:
			return closeReason(amqpErr)
		case d, ok := <-deliveries:
			if !ok {
				return ErrChannelClosed
			}
			p.relay(topic, d)
		}
	}
}

func (p *Publisher) relay(topic string, d amqp091.Delivery) {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(d.Body),
	}
	if d.MessageId != "" {
		msg.Key = sarama.StringEncoder(d.MessageId)
	}

	start := time.Now()
	_, _, err := p.producer.SendMessage(msg)
	p.recorder.RecordPublish(topic, time.Since(start), err != nil)

	if err != nil {
		log.Error().Err(err).Str("topic", topic).Uint64("delivery_tag", d.DeliveryTag).Msg("Failed to publish to Kafka")
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error().Err(nackErr).Str("topic", topic).Msg("Failed to nack delivery")
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error().Err(ackErr).Str("topic", topic).Msg("Failed to ack delivery")
	}
}
