package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

const attendanceColumns = `id, student_id, date, is_present, remarks, created_on, updated_on`

type attendanceRepository struct {
	q Querier
}

func NewAttendanceRepository(q Querier) repository.AttendanceRepository {
	return &attendanceRepository{q: q}
}

// Create inserts the (student, date) record; returns false without error
// when the pair is already marked. The conflict is absorbed in the statement
// itself so a losing insert does not abort the surrounding transaction.
func (r *attendanceRepository) Create(ctx context.Context, a *domain.Attendance) (bool, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	query := `INSERT INTO attendance (id, student_id, date, is_present, remarks, created_on, updated_on)
	          VALUES ($1, $2, $3::date, $4, $5, $6, $7)
	          ON CONFLICT (student_id, date) DO NOTHING`
	now := time.Now()
	res, err := r.q.ExecContext(ctx, query, a.ID, a.StudentID, a.Date, a.IsPresent, a.Remarks, now, now)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *attendanceRepository) Update(ctx context.Context, a *domain.Attendance) error {
	query := `UPDATE attendance SET is_present=$1, remarks=$2, updated_on=$3 WHERE id=$4`
	res, err := r.q.ExecContext(ctx, query, a.IsPresent, a.Remarks, time.Now(), a.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res)
}

func (r *attendanceRepository) GetByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
	          WHERE student_id = $1 AND date = $2::date`
	return r.scanOne(r.q.QueryRowContext(ctx, query, studentID, date))
}

func (r *attendanceRepository) HasBeenMarked(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM attendance WHERE student_id = $1 AND date = $2::date)`
	var exists bool
	if err := r.q.QueryRowContext(ctx, query, studentID, date).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE date = $1::date ORDER BY student_id`
	return r.scanMany(ctx, query, date)
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance
	          WHERE student_id = $1 AND date >= $2::date AND date <= $3::date
	          ORDER BY date DESC`
	return r.scanMany(ctx, query, studentID, start, end)
}

func (r *attendanceRepository) ListByClass(ctx context.Context, classID uuid.UUID, date time.Time) ([]domain.Attendance, error) {
	query := `SELECT a.id, a.student_id, a.date, a.is_present, a.remarks, a.created_on, a.updated_on
	          FROM attendance a
	          JOIN students s ON s.id = a.student_id
	          WHERE s.class_id = $1 AND a.date = $2::date
	          ORDER BY s.last_name, s.first_name`
	return r.scanMany(ctx, query, classID, date)
}

func (r *attendanceRepository) ListByClassRange(ctx context.Context, classID uuid.UUID, start, end time.Time) ([]domain.Attendance, error) {
	query := `SELECT a.id, a.student_id, a.date, a.is_present, a.remarks, a.created_on, a.updated_on
	          FROM attendance a
	          JOIN students s ON s.id = a.student_id
	          WHERE s.class_id = $1 AND a.date >= $2::date AND a.date <= $3::date
	          ORDER BY a.date`
	return r.scanMany(ctx, query, classID, start, end)
}

func (r *attendanceRepository) scanOne(row *sql.Row) (*domain.Attendance, error) {
	a := &domain.Attendance{}
	err := row.Scan(&a.ID, &a.StudentID, &a.Date, &a.IsPresent, &a.Remarks, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *attendanceRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Attendance, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []domain.Attendance
	for rows.Next() {
		var a domain.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Date, &a.IsPresent, &a.Remarks, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
