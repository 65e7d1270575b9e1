package pet

import (
	"time"
)

// ActionKind define las acciones que cualquier cliente puede aplicar.
// @Enum feed, play, clean, sleep, talk
type ActionKind string

const (
	ActionFeed  ActionKind = "feed"
	ActionPlay  ActionKind = "play"
	ActionClean ActionKind = "clean"
	ActionSleep ActionKind = "sleep"
	ActionTalk  ActionKind = "talk"
)

// Kinds no incluye "death" ni "restart": esos solo existen como anuncios.
var Kinds = []ActionKind{ActionFeed, ActionPlay, ActionClean, ActionSleep, ActionTalk}

// ParseAction exige el nombre exacto: " Feed " no es una acción.
func ParseAction(s string) (ActionKind, error) {
	k := ActionKind(s)
	if !k.Valid() {
		return "", ErrInvalidAction
	}
	return k, nil
}

func (k ActionKind) Valid() bool {
	switch k {
	case ActionFeed, ActionPlay, ActionClean, ActionSleep, ActionTalk:
		return true
	default:
		return false
	}
}

// Cooldown coincide con la duración de la animación en el cliente.
func (k ActionKind) Cooldown() time.Duration {
	if k == ActionSleep {
		return 3 * time.Second
	}
	return 2 * time.Second
}

// CommunityMessage es la línea que se publica en el feed de la comunidad.
func (k ActionKind) CommunityMessage() string {
	switch k {
	case ActionFeed:
		return "fed the community pet a delicious pixel-burger! 🍔"
	case ActionPlay:
		return "played with the community pet and had a great time! 🎮"
	case ActionClean:
		return "cleaned up the community pet's mess! 🧼"
	case ActionSleep:
		return "tucked the community pet into bed for a nap! 😴"
	case ActionTalk:
		return "had a heart-to-heart conversation with the community pet! 💬"
	default:
		return ""
	}
}

// Resolve aplica la acción sobre stats y devuelve el snapshot nuevo y el
// mensaje para el usuario. Si la acción no existe no hay mutación.
func Resolve(kind ActionKind, s StatSnapshot) (StatSnapshot, string, error) {
	next := s
	var msg string

	switch kind {
	case ActionFeed:
		next.Hunger = clamp(s.Hunger + 25)
		next.Happiness = clamp(s.Happiness + 5)
		msg = "🍔 The pet enjoyed the meal!"
	case ActionPlay:
		next.Happiness = clamp(s.Happiness + 20)
		next.Energy = clamp(s.Energy - 10)
		msg = "🎮 The pet had fun playing!"
	case ActionClean:
		next.Cleanliness = clamp(s.Cleanliness + 30)
		next.Happiness = clamp(s.Happiness + 5)
		msg = "🧼 The pet feels fresh and clean!"
	case ActionSleep:
		next.Energy = clamp(s.Energy + 35)
		next.Health = clamp(s.Health + 5)
		msg = "😴 The pet had a refreshing nap!"
	case ActionTalk:
		next.Happiness = clamp(s.Happiness + 15)
		msg = "💬 The pet loves chatting with you!"
	default:
		return s, "", ErrInvalidAction
	}

	return next, msg, nil
}
