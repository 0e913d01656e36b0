package admin

import (
	"time"

	"github.com/ottermq/otterbridge/internal/core/models"
	"github.com/ottermq/otterbridge/pkg/metrics"
)

// AdminService answers the two operator questions: the running
// configuration and per-topic performance since startup.
type AdminService interface {
	// Configuration returns the current configuration document.
	Configuration() (*models.ConfigurationResponse, error)
	// Statistics returns per-topic publish and subscribe metrics since startup.
	Statistics() *models.StatisticsResponse
	// GetBridgeInfo returns product, version and uptime details.
	GetBridgeInfo() models.OverviewBridgeDetails
	// StartedAt returns the instant uptime is measured from.
	StartedAt() time.Time
}

type Service struct {
	config    ConfigurationProvider
	stats     metrics.StatisticsSource
	clock     Clock
	startedAt time.Time
	version   string
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces the wall clock, for tests
func WithClock(clock Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// NewService captures the start instant once; it never changes afterwards.
func NewService(config ConfigurationProvider, stats metrics.StatisticsSource, opts ...Option) *Service {
	s := &Service{
		config: config,
		stats:  stats,
		clock:  RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.clock.Now()
	return s
}

func (s *Service) StartedAt() time.Time {
	return s.startedAt
}

var _ AdminService = (*Service)(nil)
