package domain

import (
	"fmt"
	"time"
)

// SequenceKind names one monotonic counter. Each kind owns a single counter
// row; the next value is issued by an atomic increment, never by scanning
// existing records.
type SequenceKind string

const (
	SequenceKindDonationReceipt SequenceKind = "DONATION_RECEIPT"
	SequenceKindStudentID       SequenceKind = "STUDENT_ID"
	SequenceKindTeacherID       SequenceKind = "TEACHER_ID"
)

// FormatReceiptNumber renders a donation receipt number, e.g. DON000123.
func FormatReceiptNumber(n int64) string {
	return fmt.Sprintf("DON%06d", n)
}

// FormatStudentID renders a student business id, e.g. STU260042.
func FormatStudentID(n int64, issuedOn time.Time) string {
	return fmt.Sprintf("STU%02d%04d", issuedOn.Year()%100, n)
}

// FormatTeacherID renders a teacher business id, e.g. TCH260007.
func FormatTeacherID(n int64, issuedOn time.Time) string {
	return fmt.Sprintf("TCH%02d%04d", issuedOn.Year()%100, n)
}
