// Package sensor define a leitura de solo do soilbyte e as fontes que a produzem.
package sensor

import (
	"fmt"
	"math"
)

// Reading representa uma leitura completa dos sensores de solo.
// A ordem dos campos define a ordem no JSON persistido e servido.
type Reading struct {
	Nitrogen    int     `json:"nitrogen"`    // mg/kg
	Phosphorus  int     `json:"phosphorus"`  // mg/kg
	Potassium   int     `json:"potassium"`   // mg/kg
	PH          float64 `json:"pH"`          // escala de pH
	Moisture    float64 `json:"moisture"`    // %
	Temperature float64 `json:"temperature"` // Celsius
	CO2         int     `json:"co2"`         // ppm
}

// DefaultReading retorna a leitura usada para semear o armazenamento vazio
func DefaultReading() Reading {
	return Reading{
		Nitrogen:    50,
		Phosphorus:  30,
		Potassium:   80,
		PH:          6.5,
		Moisture:    45,
		Temperature: 25,
		CO2:         450,
	}
}

// String retorna uma representação em string da leitura
func (r Reading) String() string {
	return fmt.Sprintf("N=%d P=%d K=%d pH=%.2f moisture=%.2f%% temp=%.1f°C co2=%dppm",
		r.Nitrogen, r.Phosphorus, r.Potassium, r.PH, r.Moisture, r.Temperature, r.CO2)
}

// IntRange é um intervalo fechado de inteiros
type IntRange struct {
	Min int
	Max int
}

// Contains informa se v está dentro do intervalo
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// FloatRange é um intervalo fechado de decimais com precisão fixa
type FloatRange struct {
	Min      float64
	Max      float64
	Decimals int
}

// Contains informa se v está dentro do intervalo
func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Ranges agrupa os limites de cada campo da leitura
type Ranges struct {
	Nitrogen    IntRange
	Phosphorus  IntRange
	Potassium   IntRange
	PH          FloatRange
	Moisture    FloatRange
	Temperature FloatRange
	CO2         IntRange
}

// DefaultRanges retorna os limites padrão dos sensores
func DefaultRanges() *Ranges {
	return &Ranges{
		Nitrogen:    IntRange{Min: 10, Max: 90},
		Phosphorus:  IntRange{Min: 5, Max: 60},
		Potassium:   IntRange{Min: 20, Max: 150},
		PH:          FloatRange{Min: 5.5, Max: 8.5, Decimals: 2},
		Moisture:    FloatRange{Min: 10, Max: 70, Decimals: 2},
		Temperature: FloatRange{Min: 20, Max: 40, Decimals: 1},
		CO2:         IntRange{Min: 350, Max: 700},
	}
}

// Contains verifica se todos os campos da leitura estão dentro dos limites
func (r *Ranges) Contains(reading Reading) bool {
	return r.Nitrogen.Contains(reading.Nitrogen) &&
		r.Phosphorus.Contains(reading.Phosphorus) &&
		r.Potassium.Contains(reading.Potassium) &&
		r.PH.Contains(reading.PH) &&
		r.Moisture.Contains(reading.Moisture) &&
		r.Temperature.Contains(reading.Temperature) &&
		r.CO2.Contains(reading.CO2)
}

// Round arredonda v para o número de casas decimais informado
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
