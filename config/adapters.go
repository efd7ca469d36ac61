package config

import (
	"github.com/sirupsen/logrus"
	"periph.io/x/devices/v3/bmxx80"

	"github.com/anibaldeboni/zero-paper/soilbyte/generator"
	"github.com/anibaldeboni/zero-paper/soilbyte/logging"
	"github.com/anibaldeboni/zero-paper/soilbyte/sensor"
	"github.com/anibaldeboni/zero-paper/soilbyte/store"
	"github.com/anibaldeboni/zero-paper/soilbyte/web"
)

// WebConfig converts config to web.Config
func (c *AppConfig) WebConfig() *web.Config {
	return &web.Config{
		Host:            c.Web.Host,
		Port:            c.Web.Port,
		ReadTimeout:     c.Web.ReadTimeout,
		WriteTimeout:    c.Web.WriteTimeout,
		IdleTimeout:     c.Web.IdleTimeout,
		ShutdownTimeout: c.Timeouts.WebShutdownTimeout,
	}
}

// GeneratorConfig converts config to generator.Config
func (c *AppConfig) GeneratorConfig() generator.Config {
	return generator.Config{
		Interval: c.Generator.Interval,
	}
}

// StoreConfig converts config to store.Config
func (c *AppConfig) StoreConfig(logger logrus.FieldLogger) *store.Config {
	return &store.Config{
		Type:         c.Store.Type,
		Path:         c.Store.Path,
		AtomicWrites: c.Store.AtomicWrites == nil || *c.Store.AtomicWrites,
		DSN:          c.Store.DSN,
		Logger:       logger,
	}
}

// SensorRanges converts config to sensor.Ranges
func (c *AppConfig) SensorRanges() *sensor.Ranges {
	r := c.Ranges
	return &sensor.Ranges{
		Nitrogen:    sensor.IntRange{Min: r.Nitrogen.Min, Max: r.Nitrogen.Max},
		Phosphorus:  sensor.IntRange{Min: r.Phosphorus.Min, Max: r.Phosphorus.Max},
		Potassium:   sensor.IntRange{Min: r.Potassium.Min, Max: r.Potassium.Max},
		PH:          sensor.FloatRange{Min: r.PH.Min, Max: r.PH.Max, Decimals: r.PH.Decimals},
		Moisture:    sensor.FloatRange{Min: r.Moisture.Min, Max: r.Moisture.Max, Decimals: r.Moisture.Decimals},
		Temperature: sensor.FloatRange{Min: r.Temperature.Min, Max: r.Temperature.Max, Decimals: r.Temperature.Decimals},
		CO2:         sensor.IntRange{Min: r.CO2.Min, Max: r.CO2.Max},
	}
}

// BME280Config converts config to sensor.BME280Config
func (c *AppConfig) BME280Config() *sensor.BME280Config {
	return &sensor.BME280Config{
		Address: c.Generator.BME280.I2CAddress,
		BusName: c.Generator.BME280.I2CBus,
		Options: &bmxx80.DefaultOpts, // Use default options
	}
}

// LogConfig converts config to logging.Config
func (c *AppConfig) LogConfig() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
	}
}
