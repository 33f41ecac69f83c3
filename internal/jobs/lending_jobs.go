package jobs

import (
	"context"
	"time"

	"smartschool-backend/internal/logger"
)

// SendOverdueReminders emails each borrower with an overdue loan. A failed
// send is logged and skipped; the loan stays overdue and the next run will
// remind again.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.services.Lending.ListOverdue(ctx)
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}

		sent := 0
		today := time.Now()
		for _, loan := range overdue {
			student, err := jr.store.Students().GetByID(ctx, loan.BorrowerID)
			if err != nil {
				logger.Error("Failed to load borrower for overdue reminder",
					"loan_id", loan.ID, "borrower_id", loan.BorrowerID, "error", err)
				continue
			}
			if student.Email == "" {
				continue
			}
			book, err := jr.store.Books().GetByID(ctx, loan.BookID)
			if err != nil {
				logger.Error("Failed to load book for overdue reminder",
					"loan_id", loan.ID, "book_id", loan.BookID, "error", err)
				continue
			}

			daysOverdue := int(today.Sub(loan.DueDate).Hours() / 24)
			if daysOverdue < 1 {
				daysOverdue = 1
			}
			name := student.FirstName + " " + student.LastName
			if err := jr.services.Email.SendOverdueNotice(ctx, student.Email, name, book.Title, daysOverdue); err != nil {
				logger.Error("Failed to send overdue reminder",
					"loan_id", loan.ID, "email", student.Email, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Overdue reminders sent", "overdue_loans", len(overdue), "reminders_sent", sent)
	})
}
