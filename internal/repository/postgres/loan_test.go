package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"smartschool-backend/internal/domain"
)

func TestLoanRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		loan := &domain.Loan{
			BookID:     uuid.New(),
			BorrowerID: uuid.New(),
			BorrowDate: time.Now(),
			DueDate:    time.Now().Add(14 * 24 * time.Hour),
			Status:     domain.LoanStatusBorrowed,
		}

		mock.ExpectExec("INSERT INTO loans").
			WithArgs(sqlmock.AnyArg(), loan.BookID, loan.BorrowerID, loan.BorrowDate, loan.DueDate,
				nil, nil, false, loan.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, loan)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, loan.ID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "book_id", "borrower_id", "borrow_date", "due_date",
			"return_date", "fine_amount", "fine_collected", "status", "created_on", "updated_on"}).
			AddRow(id, uuid.New(), uuid.New(), time.Now(), time.Now(),
				nil, nil, false, "BORROWED", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM loans WHERE id").
			WithArgs(id).
			WillReturnRows(rows)

		loan, err := repo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, id, loan.ID)
		assert.Equal(t, domain.LoanStatusBorrowed, loan.Status)
		assert.Nil(t, loan.ReturnDate)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM loans WHERE id").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLoanRepository(db)
	ctx := context.Background()

	t.Run("MissingRow", func(t *testing.T) {
		loan := &domain.Loan{ID: uuid.New(), Status: domain.LoanStatusReturned}

		mock.ExpectExec("UPDATE loans SET").
			WithArgs(loan.DueDate, nil, nil, false, loan.Status, sqlmock.AnyArg(), loan.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, loan)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
