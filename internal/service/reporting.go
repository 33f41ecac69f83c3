package service

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartschool-backend/internal/domain"
)

// Pure aggregation folds shared by the summary endpoints. They never touch
// storage; callers fetch the rows and hand them in.

type yearMonth struct {
	year  int
	month int
}

func sortedMonthsDesc[T any](buckets map[yearMonth]T) []yearMonth {
	months := make([]yearMonth, 0, len(buckets))
	for ym := range buckets {
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year > months[j].year
		}
		return months[i].month > months[j].month
	})
	return months
}

// BuildLendingSummary folds a loan slice into the lending report. Fine
// totals split on the FineCollected flag; monthly buckets are keyed by
// borrow month and ordered newest first.
func BuildLendingSummary(activeCount, overdueCount int, loans []domain.Loan) *domain.LendingSummary {
	summary := &domain.LendingSummary{
		TotalActiveLendings: activeCount,
		OverdueLendings:     overdueCount,
		TotalFinesCollected: decimal.Zero,
		PendingFines:        decimal.Zero,
		LendingsByStatus:    make(map[domain.LoanStatus]int),
	}

	buckets := make(map[yearMonth]*domain.MonthlyLendingStat)
	for i := range loans {
		loan := &loans[i]
		summary.LendingsByStatus[loan.Status]++

		if loan.FineAmount != nil {
			if loan.FineCollected {
				summary.TotalFinesCollected = summary.TotalFinesCollected.Add(*loan.FineAmount)
			} else {
				summary.PendingFines = summary.PendingFines.Add(*loan.FineAmount)
			}
		}

		ym := yearMonth{loan.BorrowDate.Year(), int(loan.BorrowDate.Month())}
		stat, ok := buckets[ym]
		if !ok {
			stat = &domain.MonthlyLendingStat{Year: ym.year, Month: ym.month, FinesCollected: decimal.Zero}
			buckets[ym] = stat
		}
		stat.LendingCount++
		if loan.Status == domain.LoanStatusReturned {
			stat.ReturnCount++
		}
		if loan.FineAmount != nil && loan.FineCollected {
			stat.FinesCollected = stat.FinesCollected.Add(*loan.FineAmount)
		}
	}

	for _, ym := range sortedMonthsDesc(buckets) {
		summary.MonthlyLendings = append(summary.MonthlyLendings, *buckets[ym])
	}
	return summary
}

// BuildBookSummary folds the catalog and circulation state into the book
// report. Copy counts are summed per title, overdue is counted per loan.
func BuildBookSummary(books []domain.Book, overdue []domain.Loan, borrowCounts map[uuid.UUID]int, popularLimit int) *domain.BookSummary {
	summary := &domain.BookSummary{
		OverdueBooks:    len(overdue),
		BooksByCategory: make(map[string]int),
	}
	for _, book := range books {
		summary.TotalBooks += book.TotalCopies
		summary.AvailableBooks += book.AvailableCopies
		summary.BorrowedBooks += book.TotalCopies - book.AvailableCopies
		summary.BooksByCategory[book.Category] += book.TotalCopies
	}
	summary.PopularBooks = rankPopularBooks(books, borrowCounts, popularLimit)
	return summary
}

// BuildDonationSummary folds donations into the contribution report. Only
// COMPLETED donations enter the amount totals; every status is counted.
func BuildDonationSummary(donations []domain.Donation) *domain.DonationSummary {
	summary := &domain.DonationSummary{
		TotalAmount:       decimal.Zero,
		TotalDonations:    len(donations),
		DonationsByStatus: make(map[domain.DonationStatus]int),
	}

	buckets := make(map[yearMonth]*domain.MonthlyDonationStat)
	for i := range donations {
		d := &donations[i]
		summary.DonationsByStatus[d.Status]++
		if d.Status != domain.DonationStatusCompleted {
			continue
		}
		summary.TotalAmount = summary.TotalAmount.Add(d.Amount)

		ym := yearMonth{d.CreatedOn.Year(), int(d.CreatedOn.Month())}
		stat, ok := buckets[ym]
		if !ok {
			stat = &domain.MonthlyDonationStat{Year: ym.year, Month: ym.month, TotalAmount: decimal.Zero}
			buckets[ym] = stat
		}
		stat.DonationCount++
		stat.TotalAmount = stat.TotalAmount.Add(d.Amount)
	}

	for _, ym := range sortedMonthsDesc(buckets) {
		summary.MonthlyDonations = append(summary.MonthlyDonations, *buckets[ym])
	}
	return summary
}
