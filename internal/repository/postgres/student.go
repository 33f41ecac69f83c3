package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

const studentColumns = `id, student_id, first_name, last_name, date_of_birth, gender, email,
	phone, address, class_id, created_on, updated_on, deleted_on`

type studentRepository struct {
	q Querier
}

func NewStudentRepository(q Querier) repository.StudentRepository {
	return &studentRepository{q: q}
}

func (r *studentRepository) Create(ctx context.Context, s *domain.Student) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query := `INSERT INTO students (id, student_id, first_name, last_name, date_of_birth, gender,
	            email, phone, address, class_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now()
	_, err := r.q.ExecContext(ctx, query, s.ID, s.StudentID, s.FirstName, s.LastName, s.DateOfBirth,
		s.Gender, s.Email, s.Phone, s.Address, s.ClassID, now, now)
	return mapError(err)
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND deleted_on IS NULL`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *studentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND deleted_on IS NULL FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *studentRepository) GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1 AND deleted_on IS NULL`
	return r.scanOne(r.q.QueryRowContext(ctx, query, studentID))
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1 AND deleted_on IS NULL`
	return r.scanOne(r.q.QueryRowContext(ctx, query, email))
}

func (r *studentRepository) Update(ctx context.Context, s *domain.Student) error {
	query := `UPDATE students SET first_name=$1, last_name=$2, date_of_birth=$3, gender=$4,
	            email=$5, phone=$6, address=$7, class_id=$8, updated_on=$9
	          WHERE id=$10 AND deleted_on IS NULL`
	res, err := r.q.ExecContext(ctx, query, s.FirstName, s.LastName, s.DateOfBirth, s.Gender,
		s.Email, s.Phone, s.Address, s.ClassID, time.Now(), s.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res)
}

func (r *studentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE students SET deleted_on=$1, updated_on=$1 WHERE id=$2 AND deleted_on IS NULL`
	res, err := r.q.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res)
}

func (r *studentRepository) List(ctx context.Context) ([]domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE deleted_on IS NULL
	          ORDER BY last_name, first_name`
	return r.scanMany(ctx, query)
}

func (r *studentRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
	          WHERE class_id = $1 AND deleted_on IS NULL ORDER BY last_name, first_name`
	return r.scanMany(ctx, query, classID)
}

func (r *studentRepository) Search(ctx context.Context, term string) ([]domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
	          WHERE deleted_on IS NULL AND
	                (first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%' OR
	                 student_id ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
	          ORDER BY last_name, first_name`
	return r.scanMany(ctx, query, term)
}

func (r *studentRepository) scanOne(row *sql.Row) (*domain.Student, error) {
	s := &domain.Student{}
	err := row.Scan(&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.DateOfBirth, &s.Gender,
		&s.Email, &s.Phone, &s.Address, &s.ClassID, &s.CreatedOn, &s.UpdatedOn, &s.DeletedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

func (r *studentRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Student, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var s domain.Student
		if err := rows.Scan(&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.DateOfBirth, &s.Gender,
			&s.Email, &s.Phone, &s.Address, &s.ClassID, &s.CreatedOn, &s.UpdatedOn, &s.DeletedOn); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
