package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Channel is the subset of *amqp091.Channel used by the relay.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	NotifyClose(receiver chan *amqp091.Error) chan *amqp091.Error
	Close() error
}

// ChannelFactory opens a new channel. Every executor owns the channel it
// opened, so a channel exception only stops that executor.
type ChannelFactory func() (Channel, error)

// ErrChannelClosed is returned by an executor whose channel was closed by
// the broker or the connection.
var ErrChannelClosed = errors.New("amqp channel closed")

var _ Channel = (*amqp091.Channel)(nil)

// PublishQueue is the AMQP queue drained into the Kafka topic.
func PublishQueue(topic string) string {
	return "otterbridge.publish." + topic
}

// PublishRoutingKey binds PublishQueue to the bridge exchange.
func PublishRoutingKey(topic string) string {
	return "publish." + topic
}

// SubscribeRoutingKey is used for messages relayed from Kafka into AMQP.
func SubscribeRoutingKey(topic string) string {
	return "subscribe." + topic
}

// DialAMQP opens a connection to the broker at url.
func DialAMQP(url string) (*amqp091.Connection, error) {
	log.Debug().Msg("Connecting to AMQP broker")

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	return conn, nil
}

// ConnectionChannels opens channels on conn.
func ConnectionChannels(conn *amqp091.Connection) ChannelFactory {
	return func() (Channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, fmt.Errorf("failed to open channel: %w", err)
		}
		return ch, nil
	}
}

// closeReason turns a close notification into an error.
func closeReason(amqpErr *amqp091.Error) error {
	if amqpErr == nil {
		return ErrChannelClosed
	}
	return fmt.Errorf("%w: %v", ErrChannelClosed, amqpErr)
}
