package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "BORROWED"
	LoanStatusReturned LoanStatus = "RETURNED"
	LoanStatusLost     LoanStatus = "LOST"
)

// Loan records one lending of a book copy to a borrower. Overdue is not a
// persisted status: a loan is overdue while it is still BORROWED and its due
// date has passed.
type Loan struct {
	ID            uuid.UUID        `json:"id"`
	BookID        uuid.UUID        `json:"book_id"`
	BorrowerID    uuid.UUID        `json:"borrower_id"`
	BorrowDate    time.Time        `json:"borrow_date"`
	DueDate       time.Time        `json:"due_date"`
	ReturnDate    *time.Time       `json:"return_date,omitempty"`
	FineAmount    *decimal.Decimal `json:"fine_amount,omitempty"`
	FineCollected bool             `json:"fine_collected"`
	Status        LoanStatus       `json:"status"`
	CreatedOn     time.Time        `json:"created_on"`
	UpdatedOn     time.Time        `json:"updated_on"`
}

// IsOverdue reports whether the loan is past due as of the given instant.
// Comparison is by calendar date, not clock time.
func (l *Loan) IsOverdue(asOf time.Time) bool {
	if l.Status != LoanStatusBorrowed {
		return false
	}
	due := l.DueDate.Truncate(24 * time.Hour)
	today := asOf.Truncate(24 * time.Hour)
	return due.Before(today)
}

// LendingSummary aggregates loan activity for reporting.
type LendingSummary struct {
	TotalActiveLendings int                  `json:"total_active_lendings"`
	OverdueLendings     int                  `json:"overdue_lendings"`
	TotalFinesCollected decimal.Decimal      `json:"total_fines_collected"`
	PendingFines        decimal.Decimal      `json:"pending_fines"`
	LendingsByStatus    map[LoanStatus]int   `json:"lendings_by_status"`
	MonthlyLendings     []MonthlyLendingStat `json:"monthly_lendings"`
}

type MonthlyLendingStat struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	LendingCount   int             `json:"lending_count"`
	ReturnCount    int             `json:"return_count"`
	FinesCollected decimal.Decimal `json:"fines_collected"`
}

// BookSummary aggregates the catalog and circulation state.
type BookSummary struct {
	TotalBooks      int            `json:"total_books"`
	AvailableBooks  int            `json:"available_books"`
	BorrowedBooks   int            `json:"borrowed_books"`
	OverdueBooks    int            `json:"overdue_books"`
	BooksByCategory map[string]int `json:"books_by_category"`
	PopularBooks    []PopularBook  `json:"popular_books"`
}

type PopularBook struct {
	BookID      uuid.UUID `json:"book_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	BorrowCount int       `json:"borrow_count"`
}
