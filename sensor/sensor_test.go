package sensor

import (
	"encoding/json"
	"errors"
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestDefaultReading(t *testing.T) {
	data, err := json.Marshal(DefaultReading())
	if err != nil {
		t.Fatalf("Failed to marshal default reading: %v", err)
	}

	expected := `{"nitrogen":50,"phosphorus":30,"potassium":80,"pH":6.5,"moisture":45,"temperature":25,"co2":450}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}

func TestDefaultReadingWithinRanges(t *testing.T) {
	if !DefaultRanges().Contains(DefaultReading()) {
		t.Error("Expected default reading to be inside default ranges")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		expected float64
	}{
		{6.456, 2, 6.46},
		{6.454, 2, 6.45},
		{25.06, 1, 25.1},
		{39.96, 1, 40.0},
		{45, 2, 45},
		{7.0, 0, 7},
	}

	for _, tt := range tests {
		if got := Round(tt.value, tt.decimals); got != tt.expected {
			t.Errorf("Round(%v, %d): expected %v, got %v", tt.value, tt.decimals, tt.expected, got)
		}
	}
}

func TestSimulatedSensorRanges(t *testing.T) {
	ranges := DefaultRanges()
	sensor := NewSimulatedSensorWithSeed(ranges, 42)

	for i := 0; i < 5000; i++ {
		reading, err := sensor.Read()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if !ranges.Contains(reading) {
			t.Fatalf("Reading out of range: %s", reading)
		}
		if Round(reading.PH, 2) != reading.PH {
			t.Errorf("Expected pH with 2 decimals, got %v", reading.PH)
		}
		if Round(reading.Moisture, 2) != reading.Moisture {
			t.Errorf("Expected moisture with 2 decimals, got %v", reading.Moisture)
		}
		if Round(reading.Temperature, 1) != reading.Temperature {
			t.Errorf("Expected temperature with 1 decimal, got %v", reading.Temperature)
		}
	}
}

func TestSimulatedSensorCoversIntegerBounds(t *testing.T) {
	ranges := &Ranges{
		Nitrogen:    IntRange{Min: 1, Max: 3},
		Phosphorus:  IntRange{Min: 5, Max: 5},
		Potassium:   IntRange{Min: 20, Max: 150},
		PH:          FloatRange{Min: 5.5, Max: 8.5, Decimals: 2},
		Moisture:    FloatRange{Min: 10, Max: 70, Decimals: 2},
		Temperature: FloatRange{Min: 20, Max: 40, Decimals: 1},
		CO2:         IntRange{Min: 350, Max: 700},
	}
	sensor := NewSimulatedSensorWithSeed(ranges, 7)

	seen := map[int]bool{}
	for i := 0; i < 300; i++ {
		reading, _ := sensor.Read()
		seen[reading.Nitrogen] = true
		if reading.Phosphorus != 5 {
			t.Fatalf("Expected degenerate range to yield 5, got %d", reading.Phosphorus)
		}
	}

	for _, v := range []int{1, 2, 3} {
		if !seen[v] {
			t.Errorf("Expected value %d to be sampled", v)
		}
	}
}

func TestSimulatedSensorDeterministicSeed(t *testing.T) {
	a := NewSimulatedSensorWithSeed(nil, 99)
	b := NewSimulatedSensorWithSeed(nil, 99)

	for i := 0; i < 10; i++ {
		ra, _ := a.Read()
		rb, _ := b.Read()
		if ra != rb {
			t.Fatalf("Expected identical readings for same seed, got %v and %v", ra, rb)
		}
	}
}

func TestSimulatedSensorClosed(t *testing.T) {
	sensor := NewSimulatedSensor(nil)
	if err := sensor.Close(); err != nil {
		t.Fatalf("Unexpected close error: %v", err)
	}

	if _, err := sensor.Read(); !errors.Is(err, ErrSensorClosed) {
		t.Errorf("Expected ErrSensorClosed, got %v", err)
	}
}

// fakeDevice simula um bmxx80.Dev sem hardware
type fakeDevice struct {
	env    physic.Env
	err    error
	halted bool
}

func (f *fakeDevice) Sense(env *physic.Env) error {
	if f.err != nil {
		return f.err
	}
	*env = f.env
	return nil
}

func (f *fakeDevice) Halt() error {
	f.halted = true
	return nil
}

func TestBME280SensorTemperature(t *testing.T) {
	dev := &fakeDevice{}
	dev.env.Temperature = physic.ZeroCelsius + 23456*physic.MilliKelvin

	sensor := newBME280Sensor(dev, nil, NewSimulatedSensorWithSeed(nil, 1))

	reading, err := sensor.Read()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if reading.Temperature != 23.5 {
		t.Errorf("Expected temperature 23.5, got %v", reading.Temperature)
	}
	if !DefaultRanges().Nitrogen.Contains(reading.Nitrogen) {
		t.Errorf("Expected simulated nitrogen within range, got %d", reading.Nitrogen)
	}
	if sensor.Name() != "BME280" {
		t.Errorf("Expected name BME280, got %s", sensor.Name())
	}
}

func TestBME280SensorError(t *testing.T) {
	dev := &fakeDevice{err: errors.New("bus timeout")}
	sensor := newBME280Sensor(dev, nil, nil)

	if _, err := sensor.Read(); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestBME280SensorClose(t *testing.T) {
	dev := &fakeDevice{}
	sensor := newBME280Sensor(dev, nil, nil)

	if err := sensor.Close(); err != nil {
		t.Fatalf("Unexpected close error: %v", err)
	}
	if !dev.halted {
		t.Error("Expected device to be halted")
	}
	if _, err := sensor.Read(); err == nil {
		t.Error("Expected error after close, got nil")
	}
}

func TestDefaultBME280Config(t *testing.T) {
	config := DefaultBME280Config()

	if config.Address != 0x76 {
		t.Errorf("Expected default address 0x76, got 0x%02X", config.Address)
	}
	if config.Options == nil {
		t.Error("Expected non-nil options")
	}
}

func BenchmarkSimulatedRead(b *testing.B) {
	sensor := NewSimulatedSensorWithSeed(nil, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = sensor.Read()
	}
}
