package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/anibaldeboni/zero-paper/soilbyte/sensor"
)

// TestConfigConcurrentAccess checks Get under concurrent readers
func TestConfigConcurrentAccess(t *testing.T) {
	globalLoader = &ConfigLoader{}

	cfg, err := Load("testdata/soilbyte.yaml")
	if err != nil {
		t.Fatalf("Failed to load test config: %v", err)
	}

	if cfg.Web.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Web.Port)
	}
	if Source() != "testdata/soilbyte.yaml" {
		t.Errorf("Expected source testdata/soilbyte.yaml, got %q", Source())
	}

	const numGoroutines = 100
	var wg sync.WaitGroup
	errs := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < 10; j++ {
				cfg := Get()
				if cfg.Web.Port != 9090 {
					errs <- fmt.Errorf("race condition detected: wrong port %d", cfg.Web.Port)
					return
				}
				time.Sleep(time.Microsecond)
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

// TestConfigDefaults checks the values used when no file exists
func TestConfigDefaults(t *testing.T) {
	globalLoader = &ConfigLoader{}
	chdir(t, t.TempDir())

	cfg, err := Load("non-existent-file.yaml")
	if err != nil {
		t.Fatalf("Load should not fail when using defaults: %v", err)
	}

	if cfg.Web.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Web.Port)
	}
	if cfg.Web.Host != "0.0.0.0" {
		t.Errorf("Expected default host 0.0.0.0, got %s", cfg.Web.Host)
	}
	if cfg.Generator.Interval != 5*time.Second {
		t.Errorf("Expected default interval 5s, got %v", cfg.Generator.Interval)
	}
	if cfg.Store.Path != "data/sensor_data.json" {
		t.Errorf("Expected default store path data/sensor_data.json, got %s", cfg.Store.Path)
	}
	if cfg.Store.AtomicWrites == nil || !*cfg.Store.AtomicWrites {
		t.Error("Expected atomic writes enabled by default")
	}
	if Source() != "" {
		t.Errorf("Expected empty source for defaults, got %q", Source())
	}

	if *cfg.SensorRanges() != *sensor.DefaultRanges() {
		t.Errorf("Expected default ranges, got %+v", cfg.SensorRanges())
	}
}

func TestLoadFileNotFound(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := LoadFile("missing.yaml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	globalLoader = &ConfigLoader{}

	if _, err := Load("testdata/invalid.yaml"); err == nil {
		t.Error("Expected parse error for invalid file")
	}
}

func TestPartialOverrides(t *testing.T) {
	cfg, _, err := LoadFile("testdata/soilbyte.yaml")
	if err != nil {
		t.Fatalf("Failed to load test config: %v", err)
	}

	if cfg.Ranges.Nitrogen != (IntRange{Min: 20, Max: 40}) {
		t.Errorf("Expected nitrogen override, got %+v", cfg.Ranges.Nitrogen)
	}
	if cfg.Ranges.PH.Decimals != 2 {
		t.Errorf("Expected pH decimals default 2, got %d", cfg.Ranges.PH.Decimals)
	}
	if cfg.Ranges.CO2 != (IntRange{Min: 350, Max: 700}) {
		t.Errorf("Expected default co2 range, got %+v", cfg.Ranges.CO2)
	}
	if cfg.Store.Path != "data/sensor_data.db" {
		t.Errorf("Expected sqlite default path, got %s", cfg.Store.Path)
	}
	if cfg.Generator.Seed != 1234 {
		t.Errorf("Expected seed 1234, got %d", cfg.Generator.Seed)
	}
}

// TestConfigAdapters checks conversions into package configs
func TestConfigAdapters(t *testing.T) {
	cfg, _, err := LoadFile("testdata/soilbyte.yaml")
	if err != nil {
		t.Fatalf("Failed to load test config: %v", err)
	}

	webConfig := cfg.WebConfig()
	if webConfig.Port != 9090 {
		t.Errorf("Web adapter failed: expected port 9090, got %d", webConfig.Port)
	}
	if webConfig.ReadTimeout != 5*time.Second {
		t.Errorf("Web adapter failed: expected read timeout 5s, got %v", webConfig.ReadTimeout)
	}

	if got := cfg.GeneratorConfig().Interval; got != 2*time.Second {
		t.Errorf("Generator adapter failed: expected 2s, got %v", got)
	}

	storeConfig := cfg.StoreConfig(nil)
	if storeConfig.Type != "sqlite" {
		t.Errorf("Store adapter failed: expected sqlite, got %s", storeConfig.Type)
	}
	if storeConfig.AtomicWrites {
		t.Error("Store adapter failed: expected atomic writes disabled")
	}

	if bme := cfg.BME280Config(); bme.Address != 0x76 {
		t.Errorf("BME280 adapter failed: expected address 0x76, got 0x%x", bme.Address)
	}

	ranges := cfg.SensorRanges()
	if ranges.PH.Min != 6 || ranges.PH.Max != 7 {
		t.Errorf("Ranges adapter failed: expected pH [6,7], got %+v", ranges.PH)
	}

	if lc := cfg.LogConfig(); lc.Level != "debug" || lc.Format != "json" {
		t.Errorf("Log adapter failed: got %+v", lc)
	}
}

func TestGenerateExampleConfig(t *testing.T) {
	out := filepath.Join(t.TempDir(), "etc", "soilbyte.yaml")

	if err := GenerateExampleConfig(out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cfg, source, err := LoadFile(out)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	if source != out {
		t.Errorf("Expected source %s, got %s", out, source)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Web.Port)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
