package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

type classRepository struct {
	q Querier
}

func NewClassRepository(q Querier) repository.ClassRepository {
	return &classRepository{q: q}
}

func (r *classRepository) Create(ctx context.Context, c *domain.Class) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	query := `INSERT INTO classes (id, name, section, capacity, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now()
	_, err := r.q.ExecContext(ctx, query, c.ID, c.Name, c.Section, c.Capacity, now, now)
	return mapError(err)
}

func (r *classRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Class, error) {
	query := `SELECT id, name, section, capacity, created_on, updated_on FROM classes WHERE id = $1`
	c := &domain.Class{}
	err := r.q.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Section, &c.Capacity, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *classRepository) List(ctx context.Context) ([]domain.Class, error) {
	query := `SELECT id, name, section, capacity, created_on, updated_on FROM classes ORDER BY name, section`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var classes []domain.Class
	for rows.Next() {
		var c domain.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Section, &c.Capacity, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// AssignSubject upserts the class-subject join row. The original system
// spliced a placeholder entity into an in-memory collection; the join table
// is the intended semantics.
func (r *classRepository) AssignSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error) {
	query := `INSERT INTO class_subjects (class_id, subject_id, assigned_on)
	          VALUES ($1, $2, $3) ON CONFLICT (class_id, subject_id) DO NOTHING`
	res, err := r.q.ExecContext(ctx, query, classID, subjectID, time.Now())
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *classRepository) RemoveSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error) {
	query := `DELETE FROM class_subjects WHERE class_id = $1 AND subject_id = $2`
	res, err := r.q.ExecContext(ctx, query, classID, subjectID)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *classRepository) ListSubjects(ctx context.Context, classID uuid.UUID) ([]domain.Subject, error) {
	query := `SELECT s.id, s.name, s.code, s.created_on, s.updated_on
	          FROM subjects s
	          JOIN class_subjects cs ON cs.subject_id = s.id
	          WHERE cs.class_id = $1 ORDER BY s.name`
	rows, err := r.q.QueryContext(ctx, query, classID)
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
