package config

import (
	"github.com/anibaldeboni/zero-paper/soilbyte/sensor"
	"github.com/anibaldeboni/zero-paper/soilbyte/web"
)

// TestConfig returns a configuration for testing purposes
func TestConfig() *AppConfig {
	return defaultConfig()
}

// TestWebConfig returns a web config for testing
func TestWebConfig() *web.Config {
	return TestConfig().WebConfig()
}

// TestSensorRanges returns sensor ranges for testing
func TestSensorRanges() *sensor.Ranges {
	return TestConfig().SensorRanges()
}
