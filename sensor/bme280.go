package sensor

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// BME280Config contém as configurações para o sensor BME280
type BME280Config struct {
	Address uint16       // Endereço I2C do sensor (padrão: 0x76)
	BusName string       // Nome do barramento I2C (vazio para padrão)
	Options *bmxx80.Opts // Opções avançadas (nil para padrão)
}

// DefaultBME280Config retorna uma configuração padrão para o sensor
func DefaultBME280Config() *BME280Config {
	return &BME280Config{
		Address: 0x76,
		BusName: "",
		Options: &bmxx80.DefaultOpts,
	}
}

// envSensor é a parte do bmxx80.Dev usada aqui
type envSensor interface {
	Sense(env *physic.Env) error
	Halt() error
}

// BME280Sensor lê a temperatura de um BME280 via I2C e simula os demais campos
type BME280Sensor struct {
	device envSensor
	bus    i2c.BusCloser
	sim    *SimulatedSensor
	ranges *Ranges
	mu     sync.RWMutex
}

// NewBME280Sensor abre o barramento I2C e conecta ao BME280
func NewBME280Sensor(config *BME280Config, ranges *Ranges, sim *SimulatedSensor) (*BME280Sensor, error) {
	if config == nil {
		config = DefaultBME280Config()
	}

	if config.Options == nil {
		config.Options = &bmxx80.DefaultOpts
	}

	// Inicializa os drivers do periph.io
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io drivers: %w", err)
	}

	bus, err := i2creg.Open(config.BusName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus '%s': %w", config.BusName, err)
	}

	dev, err := bmxx80.NewI2C(bus, config.Address, config.Options)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize BME280 at address 0x%02X: %w", config.Address, err)
	}

	s := newBME280Sensor(dev, ranges, sim)
	s.bus = bus
	return s, nil
}

func newBME280Sensor(dev envSensor, ranges *Ranges, sim *SimulatedSensor) *BME280Sensor {
	if ranges == nil {
		ranges = DefaultRanges()
	}
	if sim == nil {
		sim = NewSimulatedSensor(ranges)
	}

	return &BME280Sensor{
		device: dev,
		sim:    sim,
		ranges: ranges,
	}
}

// Read combina a temperatura medida com os campos simulados
func (s *BME280Sensor) Read() (Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.device == nil {
		return Reading{}, errors.New("sensor not initialized")
	}

	reading, err := s.sim.Read()
	if err != nil {
		return Reading{}, err
	}

	var env physic.Env
	if err := s.device.Sense(&env); err != nil {
		return Reading{}, fmt.Errorf("failed to read sensor data: %w", err)
	}

	celsius := float64(env.Temperature-physic.ZeroCelsius) / float64(physic.Kelvin)
	reading.Temperature = Round(celsius, s.ranges.Temperature.Decimals)

	return reading, nil
}

// Name retorna o nome da fonte
func (s *BME280Sensor) Name() string {
	return "BME280"
}

// Close fecha a conexão com o sensor e libera os recursos
func (s *BME280Sensor) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error

	if s.device != nil {
		if err := s.device.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("failed to halt device: %w", err))
		}
		s.device = nil
	}

	if s.bus != nil {
		if err := s.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close I2C bus: %w", err))
		}
		s.bus = nil
	}

	if err := s.sim.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Garante que as implementações satisfazem a interface
var (
	_ Reader = (*SimulatedSensor)(nil)
	_ Reader = (*BME280Sensor)(nil)
)
