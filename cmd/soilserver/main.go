package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anibaldeboni/zero-paper/soilbyte/buildinfo"
	"github.com/anibaldeboni/zero-paper/soilbyte/config"
	"github.com/anibaldeboni/zero-paper/soilbyte/logging"
	"github.com/anibaldeboni/zero-paper/soilbyte/sensor"
	"github.com/anibaldeboni/zero-paper/soilbyte/store"
	"github.com/anibaldeboni/zero-paper/soilbyte/web"
)

func main() {
	var configPath = flag.String("config", "", "Path to the YAML configuration file")
	var showVersion = flag.Bool("version", false, "Show version information")
	var showVersionShort = flag.Bool("v", false, "Show version information (short)")
	flag.Parse()

	if *showVersion || *showVersionShort {
		buildinfo.Print(os.Stdout, "Soilbyte Sensor API")
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
	logger.Infof("Starting soilbyte server %s %s %s", info.Version, info.Date, info.GoVersion)
	if src := config.Source(); src != "" {
		logger.Infof("Using configuration from %s", src)
	}

	st, err := store.Open(cfg.StoreConfig(logger))
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seeded, err := store.Seed(ctx, st, sensor.DefaultReading())
	if err != nil {
		logger.Fatalf("Failed to seed store: %v", err)
	}
	if seeded {
		logger.Info("Store was empty, seeded with default reading")
	}

	webServer := web.NewServer(ctx, st, cfg.WebConfig(), logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	serverErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := webServer.Start(); err != nil && !errors.Is(err, context.Canceled) {
			serverErr <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		logger.Errorf("Web server error: %v", err)
		shutdown(logger, cancel, &wg, cfg.Timeouts.ShutdownTimeout)
		st.Close()
		os.Exit(1)
	}

	shutdown(logger, cancel, &wg, cfg.Timeouts.ShutdownTimeout)
	logger.Info("Shutdown completed")
}

// shutdown cancels the server context and waits up to timeout for it to stop
func shutdown(logger logrus.FieldLogger, cancel context.CancelFunc, wg *sync.WaitGroup, timeout time.Duration) {
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()
	}()

	select {
	case <-done:
		logger.Info("All components shutdown successfully")
	case <-time.After(timeout):
		logger.Warn("Shutdown timeout reached, forcing exit")
	}
}
