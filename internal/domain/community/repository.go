package community

import "context"

const (
	DefaultWindow = 100
	DefaultLimit  = 10
	MaxLimit      = 100
)

// Repository guarda las entradas de cada instancia en una ventana acotada
// (las más nuevas) y un contador total independiente.
type Repository interface {
	Append(ctx context.Context, instanceID string, e Entry) error
	// Recent devuelve las más nuevas primero, hasta limit.
	Recent(ctx context.Context, instanceID string, limit int) ([]Entry, error)

	IncrementTotal(ctx context.Context, instanceID string) (int64, error)
	Total(ctx context.Context, instanceID string) (int64, error)
}
