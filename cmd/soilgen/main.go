package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/anibaldeboni/zero-paper/soilbyte/buildinfo"
	"github.com/anibaldeboni/zero-paper/soilbyte/config"
	"github.com/anibaldeboni/zero-paper/soilbyte/generator"
	"github.com/anibaldeboni/zero-paper/soilbyte/logging"
	"github.com/anibaldeboni/zero-paper/soilbyte/sensor"
	"github.com/anibaldeboni/zero-paper/soilbyte/store"
)

func main() {
	var configPath = flag.String("config", "", "Path to the YAML configuration file")
	var showVersion = flag.Bool("version", false, "Show version information")
	var showVersionShort = flag.Bool("v", false, "Show version information (short)")
	flag.Parse()

	if *showVersion || *showVersionShort {
		buildinfo.Print(os.Stdout, "Soilbyte Sensor Generator")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogConfig())
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	info := buildinfo.Get()
	logger.Infof("Starting soilbyte generator %s %s %s", info.Version, info.Date, info.GoVersion)
	if src := config.Source(); src != "" {
		logger.Infof("Using configuration from %s", src)
	} else {
		logger.Info("No configuration file found, using defaults")
	}

	st, err := store.Open(cfg.StoreConfig(logger))
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}

	source, err := newSource(cfg, logger)
	if err != nil {
		st.Close()
		logger.Fatalf("Failed to initialize sensor source: %v", err)
	}

	gen := generator.New(source, st, cfg.GeneratorConfig(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = gen.Start(ctx)

	if cerr := source.Close(); cerr != nil {
		logger.Warnf("Error closing sensor: %v", cerr)
	}
	if cerr := st.Close(); cerr != nil {
		logger.Warnf("Error closing store: %v", cerr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Generator failed: %v", err)
	}

	logger.Info("Shutdown completed")
}

// closableReader is a sensor.Reader that holds resources
type closableReader interface {
	sensor.Reader
	Close() error
}

// newSource builds the reading source selected in the configuration
func newSource(cfg *config.AppConfig, logger logrus.FieldLogger) (closableReader, error) {
	ranges := cfg.SensorRanges()

	var sim *sensor.SimulatedSensor
	if cfg.Generator.Seed != 0 {
		sim = sensor.NewSimulatedSensorWithSeed(ranges, cfg.Generator.Seed)
	} else {
		sim = sensor.NewSimulatedSensor(ranges)
	}

	switch cfg.Generator.Source {
	case "simulated":
		logger.Info("Using simulated sensor data")
		return sim, nil
	case "bme280":
		logger.Info("Attempting to use BME280 hardware sensor for temperature")
		hw, err := sensor.NewBME280Sensor(cfg.BME280Config(), ranges, sim)
		if err != nil {
			return nil, err
		}
		logger.Info("BME280 sensor initialized successfully")
		return hw, nil
	default:
		return nil, fmt.Errorf("unknown sensor source %q", cfg.Generator.Source)
	}
}
