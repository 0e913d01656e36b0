package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Collect(t *testing.T) {
	c := NewCollector(nil, []string{"orders"})
	c.RecordPublish("orders", 3*time.Millisecond, false)
	c.RecordPublish("orders", 5*time.Millisecond, true)
	c.RecordSubscribe("orders", 2*time.Millisecond, false)

	exporter := NewExporter(c)

	// publish: messages, errors, latency; subscribe: messages, latency
	assert.Equal(t, 5, testutil.CollectAndCount(exporter))

	expected := `
# HELP otterbridge_messages_total Total number of messages relayed.
# TYPE otterbridge_messages_total counter
otterbridge_messages_total{direction="publish",topic="orders"} 2
otterbridge_messages_total{direction="subscribe",topic="orders"} 1
`
	err := testutil.CollectAndCompare(exporter, strings.NewReader(expected), "otterbridge_messages_total")
	require.NoError(t, err)

	expected = `
# HELP otterbridge_errors_total Total number of messages that failed to relay.
# TYPE otterbridge_errors_total counter
otterbridge_errors_total{direction="publish",topic="orders"} 1
`
	err = testutil.CollectAndCompare(exporter, strings.NewReader(expected), "otterbridge_errors_total")
	require.NoError(t, err)
}

func TestExporter_ReaderWithoutRawCounters(t *testing.T) {
	source := &MockSource{
		Publish:   map[string]Reader{"alerts": FixedReader{Messages: 7}},
		Subscribe: map[string]Reader{"alerts": FixedReader{Messages: 3}},
	}

	assert.Equal(t, 2, testutil.CollectAndCount(NewExporter(source)))
}
