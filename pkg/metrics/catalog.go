package metrics

// FormatKind tells how a metric value is rendered in a report.
type FormatKind uint8

const (
	FormatInteger FormatKind = iota
	FormatDecimal
)

// Kind enumerates the metrics reported per topic and direction.
type Kind uint8

const (
	MessageCount Kind = iota
	Throughput
	AvgLatency
	QPS
	ErrorRate
)

type kindInfo struct {
	name        string
	description string
	format      FormatKind
}

var catalog = [...]kindInfo{
	MessageCount: {"message_count", "Amount of messages processed", FormatInteger},
	Throughput:   {"throughput", "Amount of messages processed per second", FormatDecimal},
	AvgLatency:   {"average_latency", "Average latency in milliseconds", FormatDecimal},
	QPS:          {"qps", "Queries per second", FormatDecimal},
	ErrorRate:    {"error_rate", "Rate of errors over messages processed", FormatDecimal},
}

// Kinds returns every metric kind in report order.
func Kinds() []Kind {
	return []Kind{MessageCount, Throughput, AvgLatency, QPS, ErrorRate}
}

func (k Kind) Name() string        { return catalog[k].name }
func (k Kind) Description() string { return catalog[k].description }
func (k Kind) Format() FormatKind  { return catalog[k].format }
func (k Kind) String() string      { return k.Name() }

// Metric is a single formatted entry of a statistics report.
type Metric struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       string `json:"value"`
}
