package repository

import (
	"context"
	"time"
)

// SequenceRepository allocates per-month ticket sequence values. The upsert
// increments under the row lock the database takes for the conflict, so two
// concurrent creations can never observe the same value.
type SequenceRepository interface {
	Next(ctx context.Context, year int, month time.Month) (int, error)
}

type sequenceRepository struct {
	db DB
}

// NewSequenceRepository builds repository.
func NewSequenceRepository(db DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) Next(ctx context.Context, year int, month time.Month) (int, error) {
	const query = `
        INSERT INTO ticket_sequences (year, month, last_seq)
        VALUES ($1,$2,1)
        ON CONFLICT (year, month)
        DO UPDATE SET last_seq = ticket_sequences.last_seq + 1
        RETURNING last_seq`
	var seq int
	if err := r.db.QueryRow(ctx, query, year, int(month)).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}
