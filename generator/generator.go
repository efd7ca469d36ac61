// Package generator produz leituras periódicas e as grava no armazenamento compartilhado.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anibaldeboni/zero-paper/soilbyte/sensor"
)

// Writer é a parte do store.Store usada pelo gerador
type Writer interface {
	Write(ctx context.Context, reading sensor.Reading) error
}

// Config define a configuração do gerador
type Config struct {
	Interval time.Duration
}

// DefaultConfig retorna o intervalo padrão de 5 segundos
func DefaultConfig() Config {
	return Config{Interval: 5 * time.Second}
}

// Generator lê de uma fonte de leituras e sobrescreve o armazenamento a cada intervalo
type Generator struct {
	sensor   sensor.Reader
	store    Writer
	interval time.Duration
	logger   logrus.FieldLogger
}

// New cria um novo gerador
func New(source sensor.Reader, store Writer, config Config, logger logrus.FieldLogger) *Generator {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Generator{
		sensor:   source,
		store:    store,
		interval: config.Interval,
		logger:   logger.WithField("component", "generator"),
	}
}

// Start grava uma leitura imediatamente e depois uma a cada intervalo.
// Qualquer falha encerra o loop e é retornada; não há retry.
func (g *Generator) Start(ctx context.Context) error {
	g.logger.Infof("Starting %s generator (writing every %v)", g.sensor.Name(), g.interval)

	if err := g.Tick(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("Generator stopped")
			return ctx.Err()

		case <-ticker.C:
			if err := g.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Tick amostra uma nova leitura e substitui a anterior no armazenamento
func (g *Generator) Tick(ctx context.Context) error {
	reading, err := g.sensor.Read()
	if err != nil {
		return fmt.Errorf("failed to read from %s sensor: %w", g.sensor.Name(), err)
	}

	if err := g.store.Write(ctx, reading); err != nil {
		return fmt.Errorf("failed to write reading: %w", err)
	}

	g.logger.WithField("source", g.sensor.Name()).Infof("Updated sensor data: %s", reading)

	return nil
}
