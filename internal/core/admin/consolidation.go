package admin

import (
	"github.com/ottermq/otterbridge/internal/core/models"
	"github.com/ottermq/otterbridge/pkg/metrics"
)

// Consolidate builds the metric list of every configured topic for one
// direction. The result holds exactly one entry per topic. A topic without an
// accumulator in infos panics with *MissingTopicError.
func Consolidate(topics []string, infos map[string]metrics.Reader, durationSeconds int64, includeErrorRate bool) map[string]models.StatisticsConsolidation {
	direction := metrics.DirectionSubscribe
	if includeErrorRate {
		direction = metrics.DirectionPublish
	}

	result := make(map[string]models.StatisticsConsolidation, len(topics))
	for _, topic := range topics {
		info, ok := infos[topic]
		if !ok || info == nil {
			panic(&MissingTopicError{Topic: topic, Direction: string(direction)})
		}
		result[topic] = models.StatisticsConsolidation{
			Metrics: metrics.BuildMetrics(durationSeconds, info, includeErrorRate),
		}
	}
	return result
}
