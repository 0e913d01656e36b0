package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

// Reader exposes the derived values of a topic/direction accumulator.
// Every call loads the underlying counters independently, so two reads taken
// during active traffic may observe different counts.
type Reader interface {
	Count() int64
	Throughput(durationSeconds int64) float64
	AverageLatency() float64
	QPS(durationSeconds int64) float64
	ErrorRating() float64
}

// Information accumulates relay outcomes for one topic in one direction.
// Counters only grow for the lifetime of the process.
type Information struct {
	count         atomic.Int64
	errorCount    atomic.Int64
	latencyMillis atomic.Uint64 // float64 bits
}

// NewInformation returns a zeroed accumulator.
func NewInformation() *Information {
	return &Information{}
}

// Record registers one processed message. Failed messages still count
// towards the message total.
func (i *Information) Record(latency time.Duration, failed bool) {
	i.count.Add(1)
	i.addLatency(float64(latency) / float64(time.Millisecond))
	if failed {
		i.errorCount.Add(1)
	}
}

func (i *Information) addLatency(millis float64) {
	for {
		old := i.latencyMillis.Load()
		next := math.Float64bits(math.Float64frombits(old) + millis)
		if i.latencyMillis.CompareAndSwap(old, next) {
			return
		}
	}
}

func (i *Information) Count() int64 {
	return i.count.Load()
}

// ErrorCount returns the raw number of failed messages.
func (i *Information) ErrorCount() int64 {
	return i.errorCount.Load()
}

// CumulativeLatency returns the summed latency in milliseconds.
func (i *Information) CumulativeLatency() float64 {
	return math.Float64frombits(i.latencyMillis.Load())
}

// Throughput is messages per second since start; zero before a full second elapsed.
func (i *Information) Throughput(durationSeconds int64) float64 {
	return perSecond(i.count.Load(), durationSeconds)
}

func (i *Information) AverageLatency() float64 {
	count := i.count.Load()
	if count <= 0 {
		return 0
	}
	return i.CumulativeLatency() / float64(count)
}

// QPS shares the throughput formula but is reported under its own name.
func (i *Information) QPS(durationSeconds int64) float64 {
	return perSecond(i.count.Load(), durationSeconds)
}

// ErrorRating is the plain ratio of failed to processed messages.
func (i *Information) ErrorRating() float64 {
	count := i.count.Load()
	if count <= 0 {
		return 0
	}
	return float64(i.errorCount.Load()) / float64(count)
}

func perSecond(count, durationSeconds int64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return float64(count) / float64(durationSeconds)
}

var _ Reader = (*Information)(nil)
