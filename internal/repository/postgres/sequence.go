package postgres

import (
	"context"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

type sequenceRepository struct {
	q Querier
}

func NewSequenceRepository(q Querier) repository.SequenceRepository {
	return &sequenceRepository{q: q}
}

// Next issues the next value for kind through a single atomic upsert. Two
// concurrent callers serialize on the counter row, so values are unique and
// strictly increasing even under contention. The next value is never derived
// from scanning business records.
func (r *sequenceRepository) Next(ctx context.Context, kind domain.SequenceKind) (int64, error) {
	query := `INSERT INTO sequence_counters (kind, last_value) VALUES ($1, 1)
	          ON CONFLICT (kind) DO UPDATE SET last_value = sequence_counters.last_value + 1
	          RETURNING last_value`
	var value int64
	if err := r.q.QueryRowContext(ctx, query, kind).Scan(&value); err != nil {
		return 0, mapError(err)
	}
	return value, nil
}
