package api

import (
	"errors"

	"github.com/ottermq/otterbridge/internal/core/admin"
	"github.com/ottermq/otterbridge/internal/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// GetConfiguration godoc
// @Summary Get the running configuration
// @Description Retrieve the configuration document this instance is running with
// @Tags admin
// @Produce json
// @Success 200 {object} models.ConfigurationResponse
// @Failure 500 {object} models.ErrorResponse "Failed to get configuration"
// @Router /admin/configuration [get]
func GetConfiguration(c *fiber.Ctx, svc admin.AdminService) error {
	resp, err := svc.Configuration()
	if err != nil {
		var statusErr *admin.StatusError
		if errors.As(err, &statusErr) {
			log.Debug().Str("code", statusErr.Code().String()).Msg("Configuration request failed")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to get configuration: " + err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetStatistics godoc
// @Summary Get per-topic statistics
// @Description Retrieve publish and subscribe metrics per topic since startup
// @Tags admin
// @Produce json
// @Success 200 {object} models.StatisticsResponse
// @Router /admin/statistics [get]
func GetStatistics(c *fiber.Ctx, svc admin.AdminService) error {
	return c.Status(fiber.StatusOK).JSON(svc.Statistics())
}

// GetBridgeInfo godoc
// @Summary Get basic bridge information
// @Description Retrieve product, version and uptime of the running bridge
// @Tags admin
// @Produce json
// @Success 200 {object} models.OverviewBridgeDetails
// @Router /admin/overview [get]
func GetBridgeInfo(c *fiber.Ctx, svc admin.AdminService) error {
	return c.Status(fiber.StatusOK).JSON(svc.GetBridgeInfo())
}
