package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"community-pet/internal/domain/sharedstate"
)

// PetStateRepo guarda el record como un blob JSONB por instancia.
type PetStateRepo struct {
	db *sql.DB
}

func NewPetStateRepo(db *sql.DB) *PetStateRepo {
	return &PetStateRepo{db: db}
}

func (r *PetStateRepo) Get(ctx context.Context, instanceID string) (sharedstate.Record, error) {
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		return sharedstate.Record{}, sharedstate.ErrNotFound
	}

	var raw []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT record
		FROM pet_state
		WHERE instance_id = $1
	`, instanceID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sharedstate.Record{}, sharedstate.ErrNotFound
		}
		return sharedstate.Record{}, err
	}

	return sharedstate.DecodeRecord(raw)
}

// Put es un upsert de una sola sentencia: reemplaza el blob entero.
func (r *PetStateRepo) Put(ctx context.Context, instanceID string, rec sharedstate.Record) error {
	raw, err := sharedstate.EncodeRecord(rec)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pet_state (instance_id, record, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (instance_id) DO UPDATE
		SET record = EXCLUDED.record,
			updated_at = EXCLUDED.updated_at
	`,
		instanceID,
		raw,
		time.Now().UTC(),
	)
	return err
}
