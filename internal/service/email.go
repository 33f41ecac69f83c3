package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"smartschool-backend/internal/logger"
)

type sendgridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendgridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendgridEmailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.Debug("Sending email", "to", to, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendgridEmailService) SendOverdueNotice(ctx context.Context, to, name, bookTitle string, daysOverdue int) error {
	subject := fmt.Sprintf("Overdue Book Reminder: %s", bookTitle)
	plainText := fmt.Sprintf("Dear %s,\n\nThe book %q is %d day(s) overdue. Please return it to the school library.", name, bookTitle, daysOverdue)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Overdue Book Reminder</h2>
				<p>Dear %s,</p>
				<p>The book <strong>%s</strong> is <strong>%d</strong> day(s) overdue. Please return it to the school library.</p>
			</body>
		</html>
	`, name, bookTitle, daysOverdue)

	return s.send(to, name, subject, plainText, htmlContent)
}

func (s *sendgridEmailService) SendDonationReceipt(ctx context.Context, to, name, receiptNumber string, amount decimal.Decimal) error {
	subject := fmt.Sprintf("Donation Receipt %s", receiptNumber)
	plainText := fmt.Sprintf("Dear %s,\n\nThank you for your donation of %s. Your receipt number is %s.", name, amount.StringFixed(2), receiptNumber)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Thank You for Your Donation</h2>
				<p>Dear %s,</p>
				<p>We gratefully acknowledge your donation of <strong>%s</strong>.</p>
				<p>Receipt number: <strong>%s</strong></p>
			</body>
		</html>
	`, name, amount.StringFixed(2), receiptNumber)

	return s.send(to, name, subject, plainText, htmlContent)
}
