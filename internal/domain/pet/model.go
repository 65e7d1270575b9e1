package pet

import (
	"errors"
	"math"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAction = errors.New("invalid action")
)

const (
	MinStat = 0.0
	MaxStat = 100.0
)

// StatSnapshot es el estado completo de la mascota en un instante.
// Nunca se actualiza parcialmente: cada mutación produce un snapshot nuevo.
type StatSnapshot struct {
	Health      float64 `json:"health"`
	Hunger      float64 `json:"hunger"`
	Cleanliness float64 `json:"cleanliness"`
	Energy      float64 `json:"energy"`
	Happiness   float64 `json:"happiness"`
	Age         float64 `json:"age"` // minutos
}

// Birth devuelve los stats de nacimiento (también los de restart).
func Birth() StatSnapshot {
	return StatSnapshot{
		Health:      MaxStat,
		Hunger:      MaxStat,
		Cleanliness: MaxStat,
		Energy:      MaxStat,
		Happiness:   MaxStat,
		Age:         0,
	}
}

// Alive: happiness y age no cuentan para la vida.
func (s StatSnapshot) Alive() bool {
	return s.Health > 0 && s.Hunger > 0 && s.Cleanliness > 0 && s.Energy > 0
}

// Clamped lleva los cinco vitales a [0,100] y age a >= 0.
func (s StatSnapshot) Clamped() StatSnapshot {
	s.Health = clamp(s.Health)
	s.Hunger = clamp(s.Hunger)
	s.Cleanliness = clamp(s.Cleanliness)
	s.Energy = clamp(s.Energy)
	s.Happiness = clamp(s.Happiness)
	if s.Age < 0 {
		s.Age = 0
	}
	return s
}

// Validate rechaza payloads que no son números finitos.
// Valores fuera de rango no son error: se corrigen con Clamped.
func (s StatSnapshot) Validate() error {
	for _, v := range []float64{s.Health, s.Hunger, s.Cleanliness, s.Energy, s.Happiness, s.Age} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidInput
		}
	}
	return nil
}

func clamp(v float64) float64 {
	return math.Max(MinStat, math.Min(MaxStat, v))
}
