package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

type subjectRepository struct {
	q Querier
}

func NewSubjectRepository(q Querier) repository.SubjectRepository {
	return &subjectRepository{q: q}
}

func (r *subjectRepository) Create(ctx context.Context, s *domain.Subject) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query := `INSERT INTO subjects (id, name, code, created_on, updated_on) VALUES ($1, $2, $3, $4, $5)`
	now := time.Now()
	_, err := r.q.ExecContext(ctx, query, s.ID, s.Name, s.Code, now, now)
	return mapError(err)
}

func (r *subjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	query := `SELECT id, name, code, created_on, updated_on FROM subjects WHERE id = $1`
	s := &domain.Subject{}
	err := r.q.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Code, &s.CreatedOn, &s.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *subjectRepository) List(ctx context.Context) ([]domain.Subject, error) {
	query := `SELECT id, name, code, created_on, updated_on FROM subjects ORDER BY name`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.CreatedOn, &s.UpdatedOn); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
