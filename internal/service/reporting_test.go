package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"smartschool-backend/internal/domain"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestBuildLendingSummary(t *testing.T) {
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	loans := []domain.Loan{
		{Status: domain.LoanStatusReturned, BorrowDate: march, FineAmount: decPtr(5), FineCollected: true},
		{Status: domain.LoanStatusReturned, BorrowDate: march, FineAmount: decPtr(3), FineCollected: false},
		{Status: domain.LoanStatusBorrowed, BorrowDate: april},
		{Status: domain.LoanStatusLost, BorrowDate: april, FineAmount: decPtr(2), FineCollected: true},
	}

	summary := BuildLendingSummary(7, 2, loans)

	assert.Equal(t, 7, summary.TotalActiveLendings)
	assert.Equal(t, 2, summary.OverdueLendings)
	assert.True(t, summary.TotalFinesCollected.Equal(decimal.NewFromInt(7)))
	assert.True(t, summary.PendingFines.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 2, summary.LendingsByStatus[domain.LoanStatusReturned])
	assert.Equal(t, 1, summary.LendingsByStatus[domain.LoanStatusBorrowed])
	assert.Equal(t, 1, summary.LendingsByStatus[domain.LoanStatusLost])

	// Newest month first.
	if assert.Len(t, summary.MonthlyLendings, 2) {
		assert.Equal(t, 4, summary.MonthlyLendings[0].Month)
		assert.Equal(t, 2, summary.MonthlyLendings[0].LendingCount)
		assert.Equal(t, 0, summary.MonthlyLendings[0].ReturnCount)
		assert.True(t, summary.MonthlyLendings[0].FinesCollected.Equal(decimal.NewFromInt(2)))

		assert.Equal(t, 3, summary.MonthlyLendings[1].Month)
		assert.Equal(t, 2, summary.MonthlyLendings[1].ReturnCount)
		assert.True(t, summary.MonthlyLendings[1].FinesCollected.Equal(decimal.NewFromInt(5)))
	}
}

func TestBuildBookSummary(t *testing.T) {
	a := domain.Book{ID: uuid.New(), Title: "Algorithms", Category: "CS", TotalCopies: 4, AvailableCopies: 1}
	b := domain.Book{ID: uuid.New(), Title: "Botany", Category: "Science", TotalCopies: 2, AvailableCopies: 2}

	summary := BuildBookSummary([]domain.Book{a, b}, []domain.Loan{{}, {}},
		map[uuid.UUID]int{a.ID: 3}, 10)

	assert.Equal(t, 6, summary.TotalBooks)
	assert.Equal(t, 3, summary.AvailableBooks)
	assert.Equal(t, 3, summary.BorrowedBooks)
	assert.Equal(t, 2, summary.OverdueBooks)
	assert.Equal(t, 4, summary.BooksByCategory["CS"])
	assert.Equal(t, 2, summary.BooksByCategory["Science"])
	if assert.Len(t, summary.PopularBooks, 1) {
		assert.Equal(t, a.ID, summary.PopularBooks[0].BookID)
		assert.Equal(t, 3, summary.PopularBooks[0].BorrowCount)
	}
}

func TestBuildDonationSummary(t *testing.T) {
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	donations := []domain.Donation{
		{Status: domain.DonationStatusCompleted, Amount: decimal.NewFromInt(100), CreatedOn: jan},
		{Status: domain.DonationStatusCompleted, Amount: decimal.NewFromInt(50), CreatedOn: feb},
		{Status: domain.DonationStatusPending, Amount: decimal.NewFromInt(999), CreatedOn: feb},
		{Status: domain.DonationStatusFailed, Amount: decimal.NewFromInt(10), CreatedOn: feb},
	}

	summary := BuildDonationSummary(donations)

	assert.Equal(t, 4, summary.TotalDonations)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(150)), "only completed donations count toward the total")
	assert.Equal(t, 2, summary.DonationsByStatus[domain.DonationStatusCompleted])
	assert.Equal(t, 1, summary.DonationsByStatus[domain.DonationStatusPending])
	assert.Equal(t, 1, summary.DonationsByStatus[domain.DonationStatusFailed])

	if assert.Len(t, summary.MonthlyDonations, 2) {
		assert.Equal(t, 2, summary.MonthlyDonations[0].Month)
		assert.Equal(t, 1, summary.MonthlyDonations[0].DonationCount)
		assert.True(t, summary.MonthlyDonations[0].TotalAmount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, 1, summary.MonthlyDonations[1].Month)
	}
}

func TestRankPopularBooks(t *testing.T) {
	a := domain.Book{ID: uuid.New(), Title: "Atlas"}
	b := domain.Book{ID: uuid.New(), Title: "Zoology"}
	c := domain.Book{ID: uuid.New(), Title: "Chemistry"}
	d := domain.Book{ID: uuid.New(), Title: "Drama"}

	counts := map[uuid.UUID]int{a.ID: 2, b.ID: 5, c.ID: 2}

	// c before a in the input; equal counts keep that ordering.
	ranked := rankPopularBooks([]domain.Book{c, b, a, d}, counts, 10)

	if assert.Len(t, ranked, 3, "books never borrowed are excluded") {
		assert.Equal(t, "Zoology", ranked[0].Title)
		assert.Equal(t, "Chemistry", ranked[1].Title)
		assert.Equal(t, "Atlas", ranked[2].Title)
	}

	limited := rankPopularBooks([]domain.Book{a, b, c}, counts, 1)
	if assert.Len(t, limited, 1) {
		assert.Equal(t, b.ID, limited[0].BookID)
	}
}
