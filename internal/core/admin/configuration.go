package admin

import (
	"github.com/ottermq/otterbridge/internal/core/models"
	"github.com/rs/zerolog/log"
)

// Configuration fetches the document from the provider on every call.
func (s *Service) Configuration() (*models.ConfigurationResponse, error) {
	content, err := s.config.CurrentConfiguration()
	if err != nil {
		log.Error().Err(err).Msg("Failed to render current configuration")
		return nil, NewInternalError("failed to render configuration", err)
	}
	return &models.ConfigurationResponse{
		Content:  content,
		Encoding: models.EncodingYAML,
	}, nil
}
