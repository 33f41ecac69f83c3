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

type donationService struct {
	store repository.Store
	email EmailService
}

func NewDonationService(store repository.Store, email EmailService) DonationService {
	return &donationService{store: store, email: email}
}

// Process records a donation and completes it in one transaction. The
// receipt number is drawn from the atomic donation counter inside the same
// transaction, so a rollback reserves no receipt that any committed donation
// skipped past; numbers on committed donations are unique, though a failed
// attempt can leave a gap.
func (s *donationService) Process(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	if donation.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("donation amount must be positive: %w", domain.ErrInvalidArgument)
	}
	if donation.DonorName == "" {
		return nil, fmt.Errorf("donor name is required: %w", domain.ErrInvalidArgument)
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		seq, err := r.Sequences().Next(ctx, domain.SequenceKindDonationReceipt)
		if err != nil {
			return err
		}
		donation.ID = uuid.New()
		donation.ReceiptNumber = domain.FormatReceiptNumber(seq)
		donation.Status = domain.DonationStatusPending
		if err := r.Donations().Create(ctx, donation); err != nil {
			return err
		}

		// Payment is captured out of band before this call, so the record
		// transitions straight through to completed.
		donation.Status = domain.DonationStatusCompleted
		return r.Donations().Update(ctx, donation)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Donation processed", "donation_id", donation.ID,
		"receipt_number", donation.ReceiptNumber, "amount", donation.Amount)

	if s.email != nil && donation.DonorEmail != "" {
		if err := s.email.SendDonationReceipt(ctx, donation.DonorEmail, donation.DonorName,
			donation.ReceiptNumber, donation.Amount); err != nil {
			logger.Warn("Failed to send donation receipt", "donation_id", donation.ID, "error", err)
		}
	}
	return donation, nil
}

func (s *donationService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) (*domain.Donation, error) {
	var donation *domain.Donation
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		var err error
		donation, err = r.Donations().GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("donation %s: %w", id, err)
		}
		if !validDonationTransition(donation.Status, status) {
			return fmt.Errorf("donation %s cannot move from %s to %s: %w",
				id, donation.Status, status, domain.ErrInvalidTransition)
		}
		donation.Status = status
		return r.Donations().Update(ctx, donation)
	})
	if err != nil {
		return nil, err
	}
	return donation, nil
}

func validDonationTransition(from, to domain.DonationStatus) bool {
	switch from {
	case domain.DonationStatusPending:
		return to == domain.DonationStatusCompleted || to == domain.DonationStatusFailed
	case domain.DonationStatusCompleted:
		return to == domain.DonationStatusRefunded
	default:
		return false
	}
}

func (s *donationService) Get(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	return s.store.Donations().GetByID(ctx, id)
}

func (s *donationService) ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error) {
	return s.store.Donations().ListByStatus(ctx, status)
}

func (s *donationService) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Donation, error) {
	return s.store.Donations().ListByDateRange(ctx, start, end)
}

func (s *donationService) Summary(ctx context.Context, start, end *time.Time) (*domain.DonationSummary, error) {
	var (
		donations []domain.Donation
		err       error
	)
	if start != nil && end != nil {
		donations, err = s.store.Donations().ListByDateRange(ctx, *start, *end)
	} else {
		donations, err = s.store.Donations().List(ctx)
	}
	if err != nil {
		return nil, err
	}
	return BuildDonationSummary(donations), nil
}

func (s *donationService) Total(ctx context.Context, start, end *time.Time) (decimal.Decimal, error) {
	if start == nil && end == nil {
		return s.store.Donations().TotalCompleted(ctx)
	}
	summary, err := s.Summary(ctx, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.TotalAmount, nil
}
