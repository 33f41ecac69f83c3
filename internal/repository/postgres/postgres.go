package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/logger"
	"smartschool-backend/internal/repository"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so the same repository
// code serves direct calls and calls inside WithinTx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type registry struct {
	books      repository.BookRepository
	loans      repository.LoanRepository
	attendance repository.AttendanceRepository
	donations  repository.DonationRepository
	students   repository.StudentRepository
	teachers   repository.TeacherRepository
	classes    repository.ClassRepository
	subjects   repository.SubjectRepository
	sequences  repository.SequenceRepository
	users      repository.UserRepository
}

func newRegistry(q Querier) registry {
	return registry{
		books:      NewBookRepository(q),
		loans:      NewLoanRepository(q),
		attendance: NewAttendanceRepository(q),
		donations:  NewDonationRepository(q),
		students:   NewStudentRepository(q),
		teachers:   NewTeacherRepository(q),
		classes:    NewClassRepository(q),
		subjects:   NewSubjectRepository(q),
		sequences:  NewSequenceRepository(q),
		users:      NewUserRepository(q),
	}
}

func (r registry) Books() repository.BookRepository             { return r.books }
func (r registry) Loans() repository.LoanRepository             { return r.loans }
func (r registry) Attendance() repository.AttendanceRepository  { return r.attendance }
func (r registry) Donations() repository.DonationRepository     { return r.donations }
func (r registry) Students() repository.StudentRepository       { return r.students }
func (r registry) Teachers() repository.TeacherRepository       { return r.teachers }
func (r registry) Classes() repository.ClassRepository          { return r.classes }
func (r registry) Subjects() repository.SubjectRepository       { return r.subjects }
func (r registry) Sequences() repository.SequenceRepository     { return r.sequences }
func (r registry) Users() repository.UserRepository             { return r.users }

// Store implements repository.Store on PostgreSQL.
type Store struct {
	registry
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		registry: newRegistry(db),
		db:       db,
	}
}

// WithinTx runs fn inside a single database transaction. Rollback happens on
// any error or panic; serialization and lock failures surface as
// domain.ErrConflict so callers know to retry the whole operation.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r repository.Registry) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, newRegistry(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

// mapError converts driver-level errors into the domain taxonomy. Anything
// unrecognized is an infrastructure failure and passes through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, pqErr.Constraint)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Code)
		}
	}
	return err
}
