package domain

import "errors"

// Sentinel errors for business outcomes. Services wrap these with context via
// fmt.Errorf("...: %w", Err...); callers test with errors.Is. Infrastructure
// failures (driver errors, failed commits) are never converted to these and
// propagate unchanged.
var (
	// ErrNotFound signals that a referenced entity does not exist or has
	// been soft-deleted. A data-integrity condition, not retryable.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidTransition signals an operation attempted from a loan state
	// that forbids it, e.g. returning an already-returned loan.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrBookUnavailable signals that a book has no circulating copies left.
	ErrBookUnavailable = errors.New("book not available for lending")

	// ErrQuotaExceeded signals that a borrower is at the active-loan limit.
	ErrQuotaExceeded = errors.New("borrower active loan quota exceeded")

	// ErrDuplicate signals a unique-key violation (ISBN, email, receipt).
	ErrDuplicate = errors.New("duplicate unique key")

	// ErrInvalidArgument signals malformed or out-of-range caller input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict signals that a precondition re-checked inside the
	// transaction no longer held at commit time. Callers should retry the
	// whole operation from scratch.
	ErrConflict = errors.New("concurrent modification conflict")
)
