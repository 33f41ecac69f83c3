package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

const loanColumns = `id, book_id, borrower_id, borrow_date, due_date, return_date,
	fine_amount, fine_collected, status, created_on, updated_on`

type loanRepository struct {
	q Querier
}

func NewLoanRepository(q Querier) repository.LoanRepository {
	return &loanRepository{q: q}
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	query := `INSERT INTO loans (id, book_id, borrower_id, borrow_date, due_date, return_date,
	            fine_amount, fine_collected, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	now := time.Now()
	_, err := r.q.ExecContext(ctx, query, l.ID, l.BookID, l.BorrowerID, l.BorrowDate, l.DueDate,
		l.ReturnDate, l.FineAmount, l.FineCollected, l.Status, now, now)
	return mapError(err)
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *loanRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET due_date=$1, return_date=$2, fine_amount=$3, fine_collected=$4,
	            status=$5, updated_on=$6
	          WHERE id=$7`
	res, err := r.q.ExecContext(ctx, query, l.DueDate, l.ReturnDate, l.FineAmount, l.FineCollected,
		l.Status, time.Now(), l.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res)
}

func (r *loanRepository) List(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY borrow_date DESC`
	return r.scanMany(ctx, query)
}

func (r *loanRepository) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE borrower_id = $1 ORDER BY borrow_date DESC`
	return r.scanMany(ctx, query, borrowerID)
}

func (r *loanRepository) ListActive(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 ORDER BY borrow_date DESC`
	return r.scanMany(ctx, query, domain.LoanStatusBorrowed)
}

func (r *loanRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
	          WHERE status = $1 AND due_date::date < $2::date ORDER BY due_date`
	return r.scanMany(ctx, query, domain.LoanStatusBorrowed, asOf)
}

func (r *loanRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE book_id = $1 ORDER BY borrow_date DESC`
	return r.scanMany(ctx, query, bookID)
}

func (r *loanRepository) CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int, error) {
	query := `SELECT count(*) FROM loans WHERE borrower_id = $1 AND status = $2`
	var count int
	err := r.q.QueryRowContext(ctx, query, borrowerID, domain.LoanStatusBorrowed).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (r *loanRepository) CountByBook(ctx context.Context) (map[uuid.UUID]int, error) {
	query := `SELECT book_id, count(*) FROM loans GROUP BY book_id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var bookID uuid.UUID
		var count int
		if err := rows.Scan(&bookID, &count); err != nil {
			return nil, err
		}
		counts[bookID] = count
	}
	return counts, rows.Err()
}

func (r *loanRepository) scanOne(row *sql.Row) (*domain.Loan, error) {
	l := &domain.Loan{}
	err := row.Scan(&l.ID, &l.BookID, &l.BorrowerID, &l.BorrowDate, &l.DueDate, &l.ReturnDate,
		&l.FineAmount, &l.FineCollected, &l.Status, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return l, nil
}

func (r *loanRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.BookID, &l.BorrowerID, &l.BorrowDate, &l.DueDate, &l.ReturnDate,
			&l.FineAmount, &l.FineCollected, &l.Status, &l.CreatedOn, &l.UpdatedOn); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
