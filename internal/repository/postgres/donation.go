package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

const donationColumns = `id, amount, donor_name, donor_email, donor_phone, payment_method,
	transaction_id, status, notes, receipt_number, created_on, updated_on`

type donationRepository struct {
	q Querier
}

func NewDonationRepository(q Querier) repository.DonationRepository {
	return &donationRepository{q: q}
}

func (r *donationRepository) Create(ctx context.Context, d *domain.Donation) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	query := `INSERT INTO donations (id, amount, donor_name, donor_email, donor_phone, payment_method,
	            transaction_id, status, notes, receipt_number, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now()
	_, err := r.q.ExecContext(ctx, query, d.ID, d.Amount, d.DonorName, d.DonorEmail, d.DonorPhone,
		d.PaymentMethod, d.TransactionID, d.Status, d.Notes, d.ReceiptNumber, now, now)
	return mapError(err)
}

func (r *donationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *donationRepository) Update(ctx context.Context, d *domain.Donation) error {
	query := `UPDATE donations SET status=$1, notes=$2, updated_on=$3 WHERE id=$4`
	res, err := r.q.ExecContext(ctx, query, d.Status, d.Notes, time.Now(), d.ID)
	if err != nil {
		return mapError(err)
	}
	return requireRow(res)
}

func (r *donationRepository) List(ctx context.Context) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations ORDER BY created_on DESC`
	return r.scanMany(ctx, query)
}

func (r *donationRepository) ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE status = $1 ORDER BY created_on DESC`
	return r.scanMany(ctx, query, status)
}

func (r *donationRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations
	          WHERE created_on >= $1 AND created_on <= $2 ORDER BY created_on DESC`
	return r.scanMany(ctx, query, start, end)
}

func (r *donationRepository) TotalCompleted(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(sum(amount), 0) FROM donations WHERE status = $1`
	var total decimal.Decimal
	err := r.q.QueryRowContext(ctx, query, domain.DonationStatusCompleted).Scan(&total)
	if err != nil {
		return decimal.Zero, mapError(err)
	}
	return total, nil
}

func (r *donationRepository) scanOne(row *sql.Row) (*domain.Donation, error) {
	d := &domain.Donation{}
	err := row.Scan(&d.ID, &d.Amount, &d.DonorName, &d.DonorEmail, &d.DonorPhone, &d.PaymentMethod,
		&d.TransactionID, &d.Status, &d.Notes, &d.ReceiptNumber, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

func (r *donationRepository) scanMany(ctx context.Context, query string, args ...any) ([]domain.Donation, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.Amount, &d.DonorName, &d.DonorEmail, &d.DonorPhone, &d.PaymentMethod,
			&d.TransactionID, &d.Status, &d.Notes, &d.ReceiptNumber, &d.CreatedOn, &d.UpdatedOn); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
