package metrics

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// BuildMetrics computes the report entries for one topic/direction pair.
// Entries always come in catalog order; the error rate is appended only when
// includeErrorRate is set, which is the case for the publish direction.
func BuildMetrics(durationSeconds int64, info Reader, includeErrorRate bool) []Metric {
	size := 4
	if includeErrorRate {
		size = 5
	}
	metrics := make([]Metric, 0, size)
	metrics = append(metrics,
		buildMetric(MessageCount, strconv.FormatInt(info.Count(), 10)),
		derivedMetric(Throughput, info.Throughput(durationSeconds)),
		derivedMetric(AvgLatency, info.AverageLatency()),
		derivedMetric(QPS, info.QPS(durationSeconds)),
	)
	if includeErrorRate {
		metrics = append(metrics, derivedMetric(ErrorRate, info.ErrorRating()))
	}
	return metrics
}

func derivedMetric(kind Kind, value float64) Metric {
	return buildMetric(kind, FormatValue(kind.Format(), value))
}

func buildMetric(kind Kind, value string) Metric {
	return Metric{
		Name:        kind.Name(),
		Description: kind.Description(),
		Value:       value,
	}
}

// FormatValue renders value according to format. Integers carry no decimals
// or separators; decimals carry exactly two places. Rounding is half up on
// the shortest decimal form of value, so 1.005 renders as 1.01.
// Non-finite values render as zero.
func FormatValue(format FormatKind, value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	d := decimal.NewFromFloat(value)
	if format == FormatInteger {
		return d.Round(0).String()
	}
	return d.Round(2).StringFixed(2)
}
