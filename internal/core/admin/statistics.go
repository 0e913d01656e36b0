package admin

import (
	"github.com/ottermq/otterbridge/internal/core/models"
)

func (s *Service) Statistics() *models.StatisticsResponse {
	durationSeconds := s.uptimeSeconds()
	topics := s.config.GetTopics()

	return &models.StatisticsResponse{
		PublisherExecutors:  s.config.GetPublisherExecutors(),
		SubscriberExecutors: s.config.GetSubscriberExecutors(),
		PublisherByTopic:    Consolidate(topics, s.stats.PublishInformationByTopic(), durationSeconds, true),
		SubscriberByTopic:   Consolidate(topics, s.stats.SubscribeInformationByTopic(), durationSeconds, false),
	}
}

// uptimeSeconds truncates to whole seconds; a clock stepping backwards yields zero.
func (s *Service) uptimeSeconds() int64 {
	seconds := int64(s.clock.Now().Sub(s.startedAt).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}
