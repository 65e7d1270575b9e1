package sharedstate

import (
	"time"

	"community-pet/internal/domain/pet"
)

// Record es el blob único por instancia. No tiene versión ni token de CAS:
// cualquier cliente lo reemplaza completo y gana la última escritura.
type Record struct {
	Stats          pet.StatSnapshot `json:"stats"`
	Alive          bool             `json:"alive"`
	LastActionBy   string           `json:"lastActionBy"`
	LastActionTime time.Time        `json:"lastActionTime"`
}

// Condition se deriva de Stats; nunca se guarda.
func (r Record) Condition() pet.Condition {
	return pet.Classify(r.Stats)
}
