package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/ottermq/otterbridge/pkg/metrics"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Subscriber forwards Kafka messages to the bridge exchange and records
// every outcome as subscribe statistics. It implements sarama.ConsumerGroupHandler.
// Each claim publishes on a channel of its own.
type Subscriber struct {
	open     ChannelFactory
	recorder metrics.Recorder
	exchange string
}

func NewSubscriber(open ChannelFactory, recorder metrics.Recorder, exchange string) *Subscriber {
	return &Subscriber{
		open:     open,
		recorder: recorder,
		exchange: exchange,
	}
}

func (s *Subscriber) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (s *Subscriber) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim ends the session with ErrChannelClosed when its channel
// closes, so the consumer group loop rejoins with a fresh channel.
func (s *Subscriber) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ch, err := s.open()
	if err != nil {
		return fmt.Errorf("claim %s/%d: %w", claim.Topic(), claim.Partition(), err)
	}
	defer ch.Close()
	closed := ch.NotifyClose(make(chan *amqp091.Error, 1))

	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			// failures are recorded by relay; the offset advances regardless
			_ = s.relay(session.Context(), ch, message)
			session.MarkMessage(message, "")

		case amqpErr := <-closed:
			return closeReason(amqpErr)

		case <-session.Context().Done():
			return nil
		}
	}
}

func (s *Subscriber) relay(ctx context.Context, ch Channel, message *sarama.ConsumerMessage) error {
	publishing := amqp091.Publishing{
		ContentType:  "application/octet-stream",
		DeliveryMode: amqp091.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    message.Timestamp,
		Body:         message.Value,
	}
	if len(message.Key) > 0 {
		publishing.CorrelationId = string(message.Key)
	}

	start := time.Now()
	err := ch.PublishWithContext(ctx, s.exchange, SubscribeRoutingKey(message.Topic), false, false, publishing)
	s.recorder.RecordSubscribe(message.Topic, time.Since(start), err != nil)

	if err != nil {
		log.Error().Err(err).
			Str("topic", message.Topic).
			Int32("partition", message.Partition).
			Int64("offset", message.Offset).
			Msg("Failed to publish to AMQP")
	}
	return err
}

var _ sarama.ConsumerGroupHandler = (*Subscriber)(nil)
