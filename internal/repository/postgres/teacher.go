package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

const teacherColumns = `id, teacher_id, first_name, last_name, email, phone, specialization,
	joining_date, created_on, updated_on, deleted_on`

type teacherRepository struct {
	q Querier
}

func NewTeacherRepository(q Querier) repository.TeacherRepository {
	return &teacherRepository{q: q}
}

func (r *teacherRepository) Create(ctx context.Context, t *domain.Teacher) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	query := `INSERT INTO teachers (id, teacher_id, first_name, last_name, email, phone,
	            specialization, joining_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now()
	_, err := r.q.ExecContext(ctx, query, t.ID, t.TeacherID, t.FirstName, t.LastName, t.Email,
		t.Phone, t.Specialization, t.JoiningDate, now, now)
	return mapError(err)
}

func (r *teacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1 AND deleted_on IS NULL`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *teacherRepository) GetByTeacherID(ctx context.Context, teacherID string) (*domain.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE teacher_id = $1 AND deleted_on IS NULL`
	return r.scanOne(r.q.QueryRowContext(ctx, query, teacherID))
}

func (r *teacherRepository) GetByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE email = $1 AND deleted_on IS NULL`
	return r.scanOne(r.q.QueryRowContext(ctx, query, email))
}

func (r *teacherRepository) Update(ctx context.Context, t *domain.Teacher) error {
	query := `UPDATE teachers SET first_name=$1, last_name=$2, email=$3, phone=$4,
	            specialization=$5, joining_date=$6, updated_on=$7
	          WHERE id=$8 AND deleted_on IS NULL`
	res, err := r.q.ExecContext(ctx, query, t.FirstName, t.LastName, t.Email, t.Phone,
		t.Specialization, t.JoiningDate, time.Now(), t.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res)
}

func (r *teacherRepository) List(ctx context.Context) ([]domain.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE deleted_on IS NULL
	          ORDER BY last_name, first_name`
	return r.scanMany(ctx, query)
}

func (r *teacherRepository) Search(ctx context.Context, term string) ([]domain.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers
	          WHERE deleted_on IS NULL AND
	                (first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%' OR
	                 teacher_id ILIKE '%' || $1 || '%' OR specialization ILIKE '%' || $1 || '%')
	          ORDER BY last_name, first_name`
	return r.scanMany(ctx, query, term)
}

// AssignClass inserts the join row; returns false without error when the
// assignment already exists.
func (r *teacherRepository) AssignClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error) {
	query := `INSERT INTO teacher_classes (teacher_id, class_id, assigned_on)
	          VALUES ($1, $2, $3) ON CONFLICT (teacher_id, class_id) DO NOTHING`
	res, err := r.q.ExecContext(ctx, query, teacherID, classID, time.Now())
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *teacherRepository) RemoveClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error) {
	query := `DELETE FROM teacher_classes WHERE teacher_id = $1 AND class_id = $2`
	res, err := r.q.ExecContext(ctx, query, teacherID, classID)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *teacherRepository) AssignSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error) {
	query := `INSERT INTO teacher_subjects (teacher_id, subject_id, assigned_on)
	          VALUES ($1, $2, $3) ON CONFLICT (teacher_id, subject_id) DO NOTHING`
	res, err := r.q.ExecContext(ctx, query, teacherID, subjectID, time.Now())
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *teacherRepository) RemoveSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error) {
	query := `DELETE FROM teacher_subjects WHERE teacher_id = $1 AND subject_id = $2`
	res, err := r.q.ExecContext(ctx, query, teacherID, subjectID)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *teacherRepository) ListClasses(ctx context.Context, teacherID uuid.UUID) ([]domain.Class, error) {
	query := `SELECT c.id, c.name, c.section, c.capacity, c.created_on, c.updated_on
	          FROM classes c
	          JOIN teacher_classes tc ON tc.class_id = c.id
	          WHERE tc.teacher_id = $1 ORDER BY c.name, c.section`
	rows, err := r.q.QueryContext(ctx, query, teacherID)
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

func (r *teacherRepository) ListSubjects(ctx context.Context, teacherID uuid.UUID) ([]domain.Subject, error) {
	query := `SELECT s.id, s.name, s.code, s.created_on, s.updated_on
	          FROM subjects s
	          JOIN teacher_subjects ts ON ts.subject_id = s.id
	          WHERE ts.teacher_id = $1 ORDER BY s.name`
	rows, err := r.q.QueryContext(ctx, query, teacherID)
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

func (r *teacherRepository) CountClasses(ctx context.Context, teacherID uuid.UUID) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT count(*) FROM teacher_classes WHERE teacher_id = $1`, teacherID).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (r *teacherRepository) CountSubjects(ctx context.Context, teacherID uuid.UUID) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT count(*) FROM teacher_subjects WHERE teacher_id = $1`, teacherID).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (r *teacherRepository) scanOne(row *sql.Row) (*domain.Teacher, error) {
	t := &domain.Teacher{}
	err := row.Scan(&t.ID, &t.TeacherID, &t.FirstName, &t.LastName, &t.Email, &t.Phone,
		&t.Specialization, &t.JoiningDate, &t.CreatedOn, &t.UpdatedOn, &t.DeletedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *teacherRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Teacher, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var teachers []domain.Teacher
	for rows.Next() {
		var t domain.Teacher
		if err := rows.Scan(&t.ID, &t.TeacherID, &t.FirstName, &t.LastName, &t.Email, &t.Phone,
			&t.Specialization, &t.JoiningDate, &t.CreatedOn, &t.UpdatedOn, &t.DeletedOn); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}
