package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"community-pet/internal/domain/sharedstate"
)

type PetStateRepo struct {
	db *sql.DB
}

func NewPetStateRepo(db *sql.DB) *PetStateRepo {
	return &PetStateRepo{db: db}
}

func (r *PetStateRepo) Get(ctx context.Context, instanceID string) (sharedstate.Record, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT record FROM pet_state WHERE instance_id = ?`, instanceID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sharedstate.Record{}, sharedstate.ErrNotFound
		}
		return sharedstate.Record{}, err
	}
	return sharedstate.DecodeRecord([]byte(raw))
}

func (r *PetStateRepo) Put(ctx context.Context, instanceID string, rec sharedstate.Record) error {
	raw, err := sharedstate.EncodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pet_state (instance_id, record, updated_at) VALUES (?, ?, ?)`,
		instanceID, string(raw), time.Now().UnixMilli(),
	)
	return err
}
