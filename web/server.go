package web

import (
	"io"

	"github.com/ottermq/otterbridge/internal/core/admin"
	"github.com/ottermq/otterbridge/web/handlers/api"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type WebServer struct {
	config   *Config
	Admin    admin.AdminService
	gatherer prometheus.Gatherer
}

type Config struct {
	WebServerPort  string
	ApiPrefix      string
	MetricsPath    string
	EnableAdminAPI bool
	EnableMetrics  bool
	AllowOrigins   string
}

func NewWebServer(config *Config, svc admin.AdminService, gatherer prometheus.Gatherer) (*WebServer, error) {
	return &WebServer{
		config:   config,
		Admin:    svc,
		gatherer: gatherer,
	}, nil
}

func (ws *WebServer) SetupApp(logFile io.Writer) *fiber.App {
	app := ws.configServer(logFile)

	if ws.config.EnableAdminAPI {
		ws.AddAdminApi(app)
	}
	if ws.config.EnableMetrics && ws.gatherer != nil {
		log.Info().Str("path", ws.config.MetricsPath).Msg("Prometheus metrics enabled")
		ws.AddMetrics(app)
	}

	return app
}

func (ws *WebServer) AddAdminApi(app *fiber.App) {
	apiAdminGrp := app.Group(ws.config.ApiPrefix + "/admin")
	apiAdminGrp.Get("/configuration", func(c *fiber.Ctx) error {
		return api.GetConfiguration(c, ws.Admin)
	})
	apiAdminGrp.Get("/statistics", func(c *fiber.Ctx) error {
		return api.GetStatistics(c, ws.Admin)
	})
	apiAdminGrp.Get("/overview", func(c *fiber.Ctx) error {
		return api.GetBridgeInfo(c, ws.Admin)
	})
}

func (ws *WebServer) AddMetrics(app *fiber.App) {
	handler := promhttp.HandlerFor(ws.gatherer, promhttp.HandlerOpts{})
	app.Get(ws.config.MetricsPath, adaptor.HTTPHandler(handler))
}

func (ws *WebServer) configServer(logFile io.Writer) *fiber.App {

	config := fiber.Config{
		Prefork:               false,
		AppName:               "otterbridge-admin",
		DisableStartupMessage: true,
	}
	app := fiber.New(config)

	// a missing topic registration surfaces as a 500 instead of killing the process
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: ws.config.AllowOrigins,
		AllowMethods: "GET,OPTIONS",
	}))

	app.Use(logger.New(logger.Config{
		Output: logFile,
	}))
	return app
}
