package metrics

// MockSource is a StatisticsSource over fixed maps, for tests.
type MockSource struct {
	Publish   map[string]Reader
	Subscribe map[string]Reader
}

// NewMockSource creates a zero-traffic source for topics.
func NewMockSource(topics ...string) *MockSource {
	m := &MockSource{
		Publish:   make(map[string]Reader, len(topics)),
		Subscribe: make(map[string]Reader, len(topics)),
	}
	for _, topic := range topics {
		m.Publish[topic] = NewInformation()
		m.Subscribe[topic] = NewInformation()
	}
	return m
}

func (m *MockSource) PublishInformationByTopic() map[string]Reader   { return m.Publish }
func (m *MockSource) SubscribeInformationByTopic() map[string]Reader { return m.Subscribe }

// FixedReader derives its values from constant counters.
type FixedReader struct {
	Messages          int64
	Errors            int64
	CumulativeLatency float64
}

func (f FixedReader) Count() int64 { return f.Messages }

func (f FixedReader) Throughput(durationSeconds int64) float64 {
	return perSecond(f.Messages, durationSeconds)
}

func (f FixedReader) AverageLatency() float64 {
	if f.Messages <= 0 {
		return 0
	}
	return f.CumulativeLatency / float64(f.Messages)
}

func (f FixedReader) QPS(durationSeconds int64) float64 {
	return perSecond(f.Messages, durationSeconds)
}

func (f FixedReader) ErrorRating() float64 {
	if f.Messages <= 0 {
		return 0
	}
	return float64(f.Errors) / float64(f.Messages)
}

var _ StatisticsSource = (*MockSource)(nil)
