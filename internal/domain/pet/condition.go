package pet

// Condition se deriva siempre de un StatSnapshot; nunca se persiste aparte.
type Condition string

const (
	ConditionDead     Condition = "dead"
	ConditionSleeping Condition = "sleeping"
	ConditionSick     Condition = "sick"
	ConditionHappy    Condition = "happy"
	ConditionIdle     Condition = "idle"
)

// Classify evalúa en orden de prioridad; el primer match gana.
func Classify(s StatSnapshot) Condition {
	switch {
	case s.Health <= 0 || s.Hunger <= 0 || s.Cleanliness <= 0 || s.Energy <= 0:
		return ConditionDead
	case s.Energy <= 20:
		return ConditionSleeping
	case s.Health <= 30 || s.Hunger <= 20 || s.Cleanliness <= 20:
		return ConditionSick
	case s.Happiness >= 80 && s.Health >= 80:
		return ConditionHappy
	default:
		return ConditionIdle
	}
}

// Urgencies lista los vitales en zona crítica, en orden fijo.
func Urgencies(s StatSnapshot) []string {
	out := make([]string, 0, 4)
	if s.Hunger <= 20 {
		out = append(out, "HUNGRY")
	}
	if s.Cleanliness <= 20 {
		out = append(out, "DIRTY")
	}
	if s.Energy <= 20 {
		out = append(out, "TIRED")
	}
	if s.Health <= 30 {
		out = append(out, "SICK")
	}
	return out
}
