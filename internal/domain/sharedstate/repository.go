package sharedstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("pet state not found")
	ErrMalformedRecord  = errors.New("malformed pet state record")
	ErrStoreUnavailable = errors.New("pet state store unavailable")
)

// Repository guarda un Record por instancia.
// Put reemplaza el record completo, sin merge ni chequeo de versión.
// Get devuelve ErrNotFound si no existe y ErrMalformedRecord si el blob no parsea.
type Repository interface {
	Get(ctx context.Context, instanceID string) (Record, error)
	Put(ctx context.Context, instanceID string, rec Record) error
}

// EncodeRecord / DecodeRecord definen el formato del blob que guardan los
// adapters SQL (JSON).
func EncodeRecord(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}

func DecodeRecord(b []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return rec, nil
}
