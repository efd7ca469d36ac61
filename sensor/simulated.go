package sensor

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrSensorClosed é retornado por leituras após Close
var ErrSensorClosed = errors.New("sensor is closed")

// Reader define a interface para fontes de leitura
type Reader interface {
	Read() (Reading, error)
	Name() string
}

// SimulatedSensor gera leituras aleatórias uniformes dentro dos limites configurados
type SimulatedSensor struct {
	ranges *Ranges
	rand   *rand.Rand
	mu     sync.Mutex
	closed bool
}

// NewSimulatedSensor cria um novo sensor simulado com semente baseada no tempo
func NewSimulatedSensor(ranges *Ranges) *SimulatedSensor {
	return NewSimulatedSensorWithSeed(ranges, time.Now().UnixNano())
}

// NewSimulatedSensorWithSeed cria um sensor com semente fixa (reprodutível)
func NewSimulatedSensorWithSeed(ranges *Ranges, seed int64) *SimulatedSensor {
	if ranges == nil {
		ranges = DefaultRanges()
	}

	return &SimulatedSensor{
		ranges: ranges,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Read amostra cada campo de forma independente
func (s *SimulatedSensor) Read() (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Reading{}, ErrSensorClosed
	}

	return Reading{
		Nitrogen:    s.intn(s.ranges.Nitrogen),
		Phosphorus:  s.intn(s.ranges.Phosphorus),
		Potassium:   s.intn(s.ranges.Potassium),
		PH:          s.uniform(s.ranges.PH),
		Moisture:    s.uniform(s.ranges.Moisture),
		Temperature: s.uniform(s.ranges.Temperature),
		CO2:         s.intn(s.ranges.CO2),
	}, nil
}

// intn sorteia um inteiro em [Min, Max], inclusive nas duas pontas
func (s *SimulatedSensor) intn(r IntRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + s.rand.Intn(r.Max-r.Min+1)
}

// uniform sorteia um decimal em [Min, Max] arredondado para a precisão do campo
func (s *SimulatedSensor) uniform(r FloatRange) float64 {
	v := Round(r.Min+s.rand.Float64()*(r.Max-r.Min), r.Decimals)
	// limites com mais casas que a precisão podem escapar após o arredondamento
	return min(max(v, r.Min), r.Max)
}

// Name retorna o nome da fonte
func (s *SimulatedSensor) Name() string {
	return "Simulated"
}

// Close marca o sensor como fechado
func (s *SimulatedSensor) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
