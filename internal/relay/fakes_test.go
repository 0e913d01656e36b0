package relay

import (
	"context"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/rabbitmq/amqp091-go"
)

// newMockProducer returns a sarama mock whose expectations are verified on cleanup.
func newMockProducer(t *testing.T) *mocks.SyncProducer {
	t.Helper()
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)
	t.Cleanup(func() { _ = producer.Close() })
	return producer
}

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

// fakeChannel records topology declarations and publishes.
type fakeChannel struct {
	mu         sync.Mutex
	prefetch   int
	exchanges  []string
	queues     []string
	bindings   map[string]string
	deliveries map[string]chan amqp091.Delivery
	published  []published
	publishErr error
	consumeErr error
	openErr    error
	opens      int
	closes     int
	notify     []chan *amqp091.Error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		bindings:   make(map[string]string),
		deliveries: make(map[string]chan amqp091.Delivery),
	}
}

// factory hands out f on every open, counting the opens.
func (f *fakeChannel) factory() ChannelFactory {
	return func() (Channel, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.openErr != nil {
			return nil, f.openErr
		}
		f.opens++
		return f, nil
	}
}

func (f *fakeChannel) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

func (f *fakeChannel) NotifyClose(receiver chan *amqp091.Error) chan *amqp091.Error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notify = append(f.notify, receiver)
	return receiver
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

// fail simulates a channel exception: close listeners receive amqpErr and
// every open delivery stream ends. Consumers opened afterwards get new streams.
func (f *fakeChannel) fail(amqpErr *amqp091.Error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, receiver := range f.notify {
		receiver <- amqpErr
		close(receiver)
	}
	f.notify = nil
	for queue, deliveries := range f.deliveries {
		close(deliveries)
		delete(f.deliveries, queue)
	}
}

func (f *fakeChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefetch = prefetchCount
	return nil
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchanges = append(f.exchanges, name)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues = append(f.queues, name)
	return amqp091.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bindings[name] = key
	return nil
}

func (f *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	return f.queueDeliveries(queue), nil
}

// queueDeliveries must be called with mu held.
func (f *fakeChannel) queueDeliveries(queue string) chan amqp091.Delivery {
	ch, ok := f.deliveries[queue]
	if !ok {
		ch = make(chan amqp091.Delivery, 16)
		f.deliveries[queue] = ch
	}
	return ch
}

func (f *fakeChannel) deliver(queue string, d amqp091.Delivery) {
	f.mu.Lock()
	ch := f.queueDeliveries(queue)
	f.mu.Unlock()
	ch <- d
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) publishedMessages() []published {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]published, len(f.published))
	copy(out, f.published)
	return out
}

// fakeAcknowledger records the settlement of deliveries.
type fakeAcknowledger struct {
	mu     sync.Mutex
	acked  []uint64
	nacked []uint64
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = append(a.nacked, tag)
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcknowledger) counts() (acked, nacked int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.acked), len(a.nacked)
}

// fakeSession is a minimal sarama.ConsumerGroupSession.
type fakeSession struct {
	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string           { return "member-1" }
func (s *fakeSession) GenerationID() int32        { return 1 }
func (s *fakeSession) Commit()                    {}
func (s *fakeSession) Context() context.Context   { return s.ctx }

func (s *fakeSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {}

func (s *fakeSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {}

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}

func (s *fakeSession) markedOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.marked))
	copy(out, s.marked)
	return out
}

// fakeClaim is a minimal sarama.ConsumerGroupClaim.
type fakeClaim struct {
	topic    string
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return c.topic }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

// fakeGroup is a sarama.ConsumerGroup whose Consume blocks until ctx is done.
type fakeGroup struct {
	mu       sync.Mutex
	consumed int
	topics   []string
	closed   bool
}

func (g *fakeGroup) Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error {
	g.mu.Lock()
	g.consumed++
	g.topics = topics
	g.mu.Unlock()
	<-ctx.Done()
	return nil
}

func (g *fakeGroup) Errors() <-chan error { return nil }

func (g *fakeGroup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}

func (g *fakeGroup) Pause(partitions map[string][]int32)  {}
func (g *fakeGroup) Resume(partitions map[string][]int32) {}
func (g *fakeGroup) PauseAll()                            {}
func (g *fakeGroup) ResumeAll()                           {}

func (g *fakeGroup) state() (consumed int, closed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.consumed, g.closed
}

var (
	_ Channel                     = (*fakeChannel)(nil)
	_ amqp091.Acknowledger        = (*fakeAcknowledger)(nil)
	_ sarama.ConsumerGroupSession = (*fakeSession)(nil)
	_ sarama.ConsumerGroupClaim   = (*fakeClaim)(nil)
	_ sarama.ConsumerGroup        = (*fakeGroup)(nil)
)
