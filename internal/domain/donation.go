package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "PENDING"
	DonationStatusCompleted DonationStatus = "COMPLETED"
	DonationStatusFailed    DonationStatus = "FAILED"
	DonationStatusRefunded  DonationStatus = "REFUNDED"
)

type Donation struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	DonorName     string          `json:"donor_name"`
	DonorEmail    string          `json:"donor_email,omitempty"`
	DonorPhone    string          `json:"donor_phone,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	Status        DonationStatus  `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	ReceiptNumber string          `json:"receipt_number"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
}

// DonationSummary reports contribution totals. TotalAmount sums only
// COMPLETED donations; TotalDonations counts every status.
type DonationSummary struct {
	TotalAmount       decimal.Decimal        `json:"total_amount"`
	TotalDonations    int                    `json:"total_donations"`
	DonationsByStatus map[DonationStatus]int `json:"donations_by_status"`
	MonthlyDonations  []MonthlyDonationStat  `json:"monthly_donations"`
}

type MonthlyDonationStat struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DonationCount int             `json:"donation_count"`
}
