package pet

import "time"

// TickPeriod es la cadencia de referencia del decay (10s).
const TickPeriod = 10 * time.Second

const (
	HungerDecay      = 3.0
	CleanlinessDecay = 2.0
	EnergyDecay      = 2.5
	HappinessDecay   = 1.5

	HealthLossPerLowStat = 5.0
	HealthRegen          = 1.0
	HealthRegenThreshold = 70.0
)

// Decay avanza un tick con la cadencia de referencia.
func Decay(s StatSnapshot) StatSnapshot {
	return DecayWithPeriod(s, TickPeriod)
}

// DecayWithPeriod aplica un paso discreto de decay. Los deltas son fijos por
// tick; solo el incremento de age depende del periodo.
func DecayWithPeriod(s StatSnapshot, period time.Duration) StatSnapshot {
	next := s
	next.Hunger = clamp(s.Hunger - HungerDecay)
	next.Cleanliness = clamp(s.Cleanliness - CleanlinessDecay)
	next.Energy = clamp(s.Energy - EnergyDecay)
	next.Happiness = clamp(s.Happiness - HappinessDecay)
	next.Age = s.Age + period.Minutes()

	lowCount := 0
	for _, v := range []float64{next.Hunger, next.Cleanliness, next.Energy} {
		if v <= 0 {
			lowCount++
		}
	}

	switch {
	case lowCount > 0:
		next.Health = clamp(s.Health - HealthLossPerLowStat*float64(lowCount))
	case next.Hunger > HealthRegenThreshold &&
		next.Cleanliness > HealthRegenThreshold &&
		next.Energy > HealthRegenThreshold:
		next.Health = clamp(s.Health + HealthRegen)
	default:
		next.Health = clamp(s.Health)
	}

	return next
}
