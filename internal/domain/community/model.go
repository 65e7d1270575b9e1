package community

import "time"

// Entry es una línea del feed de la comunidad. Append-only.
type Entry struct {
	ID        string
	Username  string
	Action    string
	Message   string
	Timestamp time.Time
}

// Feed es lo que ven todos los clientes. Total se mantiene aparte de
// Actions y puede no coincidir con la cantidad real de entradas.
type Feed struct {
	Actions      []Entry
	TotalActions int64
}
