// Lumen Core - smart lighting controller daemon
//
// This is the main entry point for the Lumen daemon. Lumen discovers
// Elgato-protocol key lights on the local network (or takes a static
// address list), keeps them in an in-memory registry, and applies
// whole-registry control operations: power toggle and stepped
// brightness/temperature adjustments.
//
// Control surfaces: the HTTP API (with a WebSocket event stream), and
// optionally MQTT command topics. State changes fan out to WebSocket
// clients, MQTT retained state topics, and InfluxDB telemetry.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumen-home/lumen-core/internal/api"
	"github.com/lumen-home/lumen-core/internal/control"
	"github.com/lumen-home/lumen-core/internal/device"
	"github.com/lumen-home/lumen-core/internal/discovery"
	"github.com/lumen-home/lumen-core/internal/elgato"
	"github.com/lumen-home/lumen-core/internal/infrastructure/config"
	"github.com/lumen-home/lumen-core/internal/infrastructure/logging"
	"github.com/lumen-home/lumen-core/internal/infrastructure/mqtt"
	"github.com/lumen-home/lumen-core/internal/infrastructure/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Lumen Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Registry and device client
	registry := device.NewRegistry()
	lightClient := elgato.NewClient(&http.Client{Timeout: cfg.GetRequestTimeout()})

	// Discovery service
	deviceCount, err := cfg.GetDeviceCount()
	if err != nil {
		return fmt.Errorf("reading device count: %w", err)
	}
	discoverer := discovery.NewService(registry, discovery.Options{
		Addresses:   cfg.Discovery.Addresses,
		DefaultPort: cfg.Lights.DefaultPort,
		DeviceCount: deviceCount,
		Timeout:     cfg.GetDiscoveryTimeout(),
	})
	discoverer.SetLogger(log)

	// Controller
	controller := control.NewController(registry, lightClient)
	controller.SetLogger(log)

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		if subErr := subscribeCommands(mqttClient, controller, discoverer, log); subErr != nil {
			return fmt.Errorf("subscribing to MQTT commands: %w", subErr)
		}
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var metrics *telemetry.Client
	if cfg.InfluxDB.Enabled {
		metrics, err = telemetry.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := metrics.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		metrics.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		controller.SetRecorder(metrics)
	} else {
		log.Info("telemetry disabled")
	}

	// Start API server
	server, err := api.New(api.Deps{
		Config:     cfg.API,
		WS:         cfg.WebSocket,
		Logger:     log,
		Registry:   registry,
		Controller: controller,
		Discoverer: discoverer,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	// Fan resulting light states out to WebSocket clients, and to MQTT
	// retained state topics when a broker is configured.
	publishers := statePublishers{server.Hub()}
	if mqttClient != nil {
		publishers = append(publishers, mqttClient)
	}
	controller.SetPublisher(publishers)

	// Initial discovery. A failure here is not fatal: the daemon stays up
	// and discovery can be retried over the API or MQTT.
	runInitialDiscovery(ctx, discoverer, mqttClient, log)

	if err := healthCheck(ctx, server, mqttClient, metrics); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)

	log.Info("Lumen Core stopped")
	return nil
}

// runInitialDiscovery performs the startup discovery pass and logs the outcome.
func runInitialDiscovery(ctx context.Context, discoverer *discovery.Service, mqttClient *mqtt.Client, log *logging.Logger) {
	endpoints, err := discoverer.Discover(ctx)

	var partial *discovery.PartialError
	switch {
	case err == nil:
		log.Info("initial discovery complete", "lights", len(endpoints))
	case errors.As(err, &partial):
		log.Warn("initial discovery partial",
			"found", partial.Found,
			"want", partial.Want,
		)
	default:
		log.Warn("initial discovery failed", "error", err)
		return
	}

	if mqttClient != nil {
		if pubErr := mqttClient.PublishDiscovery(endpoints); pubErr != nil {
			log.Warn("publishing discovery event failed", "error", pubErr)
		}
	}
}

// getConfigPath returns the configuration file path.
// Uses LUMEN_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("LUMEN_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// The MQTT and InfluxDB clients may be nil when disabled.
func healthCheck(ctx context.Context, server *api.Server, mqttClient *mqtt.Client, metrics *telemetry.Client) error {
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if metrics != nil {
		if err := metrics.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}

// statePublishers fans a resulting light state out to multiple sinks.
type statePublishers []control.StatePublisher

// PublishLightState implements control.StatePublisher.
func (p statePublishers) PublishLightState(ep device.Endpoint, state elgato.LightState) error {
	var errs []error
	for _, pub := range p {
		if err := pub.PublishLightState(ep, state); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
