package admin

import (
	"runtime"
	"time"

	"github.com/ottermq/otterbridge/internal/core/models"
)

const product = "OtterBridge"

// WithVersion sets the version reported by GetBridgeInfo
func WithVersion(version string) Option {
	return func(s *Service) { s.version = version }
}

// GetBridgeInfo returns basic information about the running bridge.
func (s *Service) GetBridgeInfo() models.OverviewBridgeDetails {
	return models.OverviewBridgeDetails{
		Product:    product,
		Version:    s.version,
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion:  runtime.Version(),
		UptimeSecs: s.uptimeSeconds(),
		StartTime:  s.startedAt.Format(time.RFC3339),
		Topics:     s.config.GetTopics(),
	}
}
