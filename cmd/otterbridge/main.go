package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ottermq/otterbridge/config"
	"github.com/ottermq/otterbridge/internal/core/admin"
	"github.com/ottermq/otterbridge/internal/relay"
	"github.com/ottermq/otterbridge/pkg/logger"
	"github.com/ottermq/otterbridge/pkg/metrics"
	"github.com/ottermq/otterbridge/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	VERSION = ""
)

// @title OtterBridge Admin API
// @version 1.0
// @description Configuration and statistics of a running OtterBridge instance
// @host localhost:3000
// @BasePath /api/
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "otterbridge",
		Short:         "Relay messages between an AMQP broker and Kafka",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the bridge and the admin server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	})
	return root
}

func versionString() string {
	if VERSION == "" {
		return "otterbridge dev"
	}
	return "otterbridge " + VERSION
}

func serve() error {
	// Load configuration from YAML file, .env file, environment variables, or defaults
	cfg, err := config.LoadConfig(VERSION)
	if err != nil {
		return err
	}

	// Initialize logger with configured log level
	logger.Init(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	topics := cfg.GetTopics()
	collector := metrics.NewCollector(&metrics.Config{Enabled: cfg.Web.EnableStatistics}, topics)

	conn, err := relay.DialAMQP(cfg.AMQP.URL)
	if err != nil {
		return err
	}
	defer conn.Close()
	channels := relay.ConnectionChannels(conn)
	connClosed := conn.NotifyClose(make(chan *amqp091.Error, 1))

	kafkaOpts := relay.KafkaOptions{
		Brokers:  cfg.Kafka.Brokers,
		GroupID:  cfg.Kafka.GroupID,
		ClientID: cfg.Kafka.ClientID,
	}
	producer, err := relay.NewSyncProducer(kafkaOpts)
	if err != nil {
		return err
	}
	defer producer.Close()

	bridge := relay.NewBridge(relay.Options{
		Topics:              topics,
		PublisherExecutors:  cfg.GetPublisherExecutors(),
		SubscriberExecutors: cfg.GetSubscriberExecutors(),
	},
		relay.NewPublisher(channels, producer, collector, cfg.AMQP.Exchange, cfg.AMQP.Prefetch),
		relay.NewSubscriber(channels, collector, cfg.AMQP.Exchange),
		relay.ConsumerGroupFactory(kafkaOpts),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := bridge.Start(ctx); err != nil {
		return err
	}
	service := admin.NewService(cfg, collector, admin.WithVersion(cfg.Version))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		metrics.NewExporter(collector),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	webServer, err := web.NewWebServer(&web.Config{
		WebServerPort:  cfg.Web.Port,
		ApiPrefix:      "/api",
		MetricsPath:    "/metrics",
		EnableAdminAPI: cfg.Web.EnableAdminAPI,
		EnableMetrics:  cfg.Web.EnableMetrics,
	}, service, registry)
	if err != nil {
		return err
	}

	// open "server.log" for appending
	logfile, err := os.OpenFile("server.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logfile.Close()

	app := webServer.SetupApp(logfile)

	// Start the web admin server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Web.Port)
		log.Info().Str("addr", addr).Msg("Starting web server")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("Web server error")
		}
	}()

	// Handle OS signals for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Executors reopen channels on their own; a lost connection stops the process.
	var lost error
	select {
	case <-stop:
	case amqpErr := <-connClosed:
		lost = errors.New("amqp connection closed")
		if amqpErr != nil {
			lost = fmt.Errorf("amqp connection lost: %w", amqpErr)
		}
		log.Error().Err(lost).Msg("AMQP connection lost")
	}
	log.Info().Msg("Shutting down OtterBridge...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		bridge.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("All executors stopped gracefully")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Timeout reached. Forcing shutdown")
	}

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown web server: %w", err)
	}
	log.Info().Msg("Server gracefully stopped")
	return lost
}
