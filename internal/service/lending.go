package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/logger"
	"smartschool-backend/internal/repository"
)

type lendingService struct {
	store          repository.Store
	maxActiveLoans int
	finePerDay     decimal.Decimal
	now            func() time.Time
}

func NewLendingService(store repository.Store, maxActiveLoans int, finePerDay decimal.Decimal) LendingService {
	return &lendingService{
		store:          store,
		maxActiveLoans: maxActiveLoans,
		finePerDay:     finePerDay,
		now:            time.Now,
	}
}

// Create opens a loan. Availability and the borrower quota are re-checked
// under row locks inside the transaction, so two borrowers racing for the
// last copy cannot both succeed: one commits, the other gets
// ErrBookUnavailable (or ErrQuotaExceeded) with nothing applied.
func (s *lendingService) Create(ctx context.Context, bookID, borrowerID uuid.UUID, borrowDate, dueDate time.Time) (*domain.Loan, error) {
	if !dueDate.After(borrowDate) {
		return nil, fmt.Errorf("due date must be after borrow date: %w", domain.ErrInvalidArgument)
	}

	var loan *domain.Loan
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		book, err := r.Books().GetByIDForUpdate(ctx, bookID)
		if err != nil {
			return fmt.Errorf("book %s: %w", bookID, err)
		}
		if book.AvailableCopies <= 0 {
			return fmt.Errorf("book %s: %w", bookID, domain.ErrBookUnavailable)
		}

		// Lock the borrower row so concurrent creations for the same
		// borrower serialize before the quota count.
		if _, err := r.Students().GetByIDForUpdate(ctx, borrowerID); err != nil {
			return fmt.Errorf("borrower %s: %w", borrowerID, err)
		}
		active, err := r.Loans().CountActiveByBorrower(ctx, borrowerID)
		if err != nil {
			return err
		}
		if active >= s.maxActiveLoans {
			return fmt.Errorf("borrower %s has %d active loans: %w", borrowerID, active, domain.ErrQuotaExceeded)
		}

		loan = &domain.Loan{
			BookID:     bookID,
			BorrowerID: borrowerID,
			BorrowDate: borrowDate,
			DueDate:    dueDate,
			Status:     domain.LoanStatusBorrowed,
		}
		if err := r.Loans().Create(ctx, loan); err != nil {
			return err
		}
		return r.Books().AdjustAvailability(ctx, bookID, -1)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Loan created", "loan_id", loan.ID, "book_id", bookID, "borrower_id", borrowerID)
	return loan, nil
}

// Return closes a loan: fine, return date, status and the availability
// increment commit as one unit. A second return of the same loan fails with
// ErrInvalidTransition and mutates nothing.
func (s *lendingService) Return(ctx context.Context, loanID uuid.UUID, collectFine bool) (*domain.Loan, error) {
	var loan *domain.Loan
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		var err error
		loan, err = r.Loans().GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return fmt.Errorf("loan %s: %w", loanID, err)
		}
		if loan.Status != domain.LoanStatusBorrowed {
			return fmt.Errorf("loan %s is %s: %w", loanID, loan.Status, domain.ErrInvalidTransition)
		}

		if collectFine {
			fine := OverdueFine(loan, s.now(), s.finePerDay)
			loan.FineAmount = &fine
			loan.FineCollected = fine.GreaterThan(decimal.Zero)
		}
		returnedAt := s.now()
		loan.ReturnDate = &returnedAt
		loan.Status = domain.LoanStatusReturned

		if err := r.Loans().Update(ctx, loan); err != nil {
			return err
		}
		return r.Books().AdjustAvailability(ctx, loan.BookID, 1)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Loan returned", "loan_id", loan.ID, "fine_collected", loan.FineCollected)
	return loan, nil
}

// Renew pushes the due date forward. Availability and fines are untouched.
func (s *lendingService) Renew(ctx context.Context, loanID uuid.UUID, newDueDate time.Time) (*domain.Loan, error) {
	var loan *domain.Loan
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		var err error
		loan, err = r.Loans().GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return fmt.Errorf("loan %s: %w", loanID, err)
		}
		if loan.Status != domain.LoanStatusBorrowed {
			return fmt.Errorf("only active loans can be renewed: %w", domain.ErrInvalidTransition)
		}
		if !newDueDate.After(loan.DueDate) {
			return fmt.Errorf("new due date must be later than the current due date: %w", domain.ErrInvalidArgument)
		}
		loan.DueDate = newDueDate
		return r.Loans().Update(ctx, loan)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// MarkLost flags the loan as lost. A lost copy is not circulating, so
// availability is not restored.
func (s *lendingService) MarkLost(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	var loan *domain.Loan
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		var err error
		loan, err = r.Loans().GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return fmt.Errorf("loan %s: %w", loanID, err)
		}
		loan.Status = domain.LoanStatusLost
		return r.Loans().Update(ctx, loan)
	})
	if err != nil {
		return nil, err
	}

	logger.Warn("Loan marked as lost", "loan_id", loan.ID, "book_id", loan.BookID)
	return loan, nil
}

func (s *lendingService) CalculateFine(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	loan, err := s.store.Loans().GetByID(ctx, loanID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("loan %s: %w", loanID, err)
	}
	return OverdueFine(loan, s.now(), s.finePerDay), nil
}

func (s *lendingService) Get(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	return s.store.Loans().GetByID(ctx, loanID)
}

func (s *lendingService) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]domain.Loan, error) {
	return s.store.Loans().ListByBorrower(ctx, borrowerID)
}

func (s *lendingService) ListActive(ctx context.Context) ([]domain.Loan, error) {
	return s.store.Loans().ListActive(ctx)
}

func (s *lendingService) ListOverdue(ctx context.Context) ([]domain.Loan, error) {
	return s.store.Loans().ListOverdue(ctx, s.now())
}

func (s *lendingService) HistoryByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Loan, error) {
	return s.store.Loans().ListByBook(ctx, bookID)
}

func (s *lendingService) Summary(ctx context.Context, start, end *time.Time) (*domain.LendingSummary, error) {
	active, err := s.store.Loans().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.store.Loans().ListOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}
	all, err := s.store.Loans().List(ctx)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil {
		filtered := all[:0]
		for _, l := range all {
			if !l.BorrowDate.Before(*start) && !l.BorrowDate.After(*end) {
				filtered = append(filtered, l)
			}
		}
		all = filtered
	}
	return BuildLendingSummary(len(active), len(overdue), all), nil
}

// OverdueFine computes the fine owed on a loan as of the given instant. It is
// a pure function of the loan's status and due date: zero unless the loan is
// still borrowed and past due, otherwise whole days overdue times the
// per-diem rate. Days are compared by calendar date.
func OverdueFine(loan *domain.Loan, asOf time.Time, perDiem decimal.Decimal) decimal.Decimal {
	if loan.Status != domain.LoanStatusBorrowed {
		return decimal.Zero
	}
	due := dateOnly(loan.DueDate)
	today := dateOnly(asOf)
	if !due.Before(today) {
		return decimal.Zero
	}
	daysOverdue := int64(today.Sub(due).Hours() / 24)
	return perDiem.Mul(decimal.NewFromInt(daysOverdue))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
