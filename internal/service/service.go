package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartschool-backend/internal/domain"
)

type LendingService interface {
	Create(ctx context.Context, bookID, borrowerID uuid.UUID, borrowDate, dueDate time.Time) (*domain.Loan, error)
	Return(ctx context.Context, loanID uuid.UUID, collectFine bool) (*domain.Loan, error)
	Renew(ctx context.Context, loanID uuid.UUID, newDueDate time.Time) (*domain.Loan, error)
	MarkLost(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	CalculateFine(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)
	Get(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]domain.Loan, error)
	ListActive(ctx context.Context) ([]domain.Loan, error)
	ListOverdue(ctx context.Context) ([]domain.Loan, error)
	HistoryByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Loan, error)
	Summary(ctx context.Context, start, end *time.Time) (*domain.LendingSummary, error)
}

type BookService interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Book, error)
	Search(ctx context.Context, term string) ([]domain.Book, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Book, error)
	ListByAuthor(ctx context.Context, author string) ([]domain.Book, error)
	ListAvailable(ctx context.Context) ([]domain.Book, error)
	IsAvailable(ctx context.Context, id uuid.UUID) (bool, error)
	Summary(ctx context.Context) (*domain.BookSummary, error)
	PopularBooks(ctx context.Context, count int) ([]domain.PopularBook, error)
}

type AttendanceService interface {
	HasBeenMarked(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error)
	BulkCreate(ctx context.Context, date time.Time, classID uuid.UUID, entries []domain.StudentAttendanceEntry) error
	BulkUpdate(ctx context.Context, date time.Time, entries []domain.StudentAttendanceEntry) error
	StudentPercentage(ctx context.Context, studentID uuid.UUID, start, end time.Time) (float64, error)
	ClassPercentages(ctx context.Context, classID uuid.UUID, start, end time.Time) (map[uuid.UUID]float64, error)
	MonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyAttendance, error)
	DailySummary(ctx context.Context, date time.Time) (*domain.AttendanceSummary, error)
	AbsentStudents(ctx context.Context, date time.Time) ([]domain.Student, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]domain.Attendance, error)
	ListByClass(ctx context.Context, classID uuid.UUID, date time.Time) ([]domain.Attendance, error)
}

type DonationService interface {
	Process(ctx context.Context, donation *domain.Donation) (*domain.Donation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) (*domain.Donation, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Donation, error)
	Summary(ctx context.Context, start, end *time.Time) (*domain.DonationSummary, error)
	Total(ctx context.Context, start, end *time.Time) (decimal.Decimal, error)
}

type StudentService interface {
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error)
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Student, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]domain.Student, error)
	Search(ctx context.Context, term string) ([]domain.Student, error)
	TransferToClass(ctx context.Context, studentID, newClassID uuid.UUID) error
	LendingHistory(ctx context.Context, studentID uuid.UUID) ([]domain.Loan, error)
	Summary(ctx context.Context) (*domain.StudentSummary, error)
}

type TeacherService interface {
	Create(ctx context.Context, teacher *domain.Teacher) (*domain.Teacher, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Teacher, error)
	GetByTeacherID(ctx context.Context, teacherID string) (*domain.Teacher, error)
	Update(ctx context.Context, teacher *domain.Teacher) error
	List(ctx context.Context) ([]domain.Teacher, error)
	Search(ctx context.Context, term string) ([]domain.Teacher, error)
	AssignClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error)
	RemoveClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error)
	AssignSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error)
	RemoveSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error)
	Classes(ctx context.Context, teacherID uuid.UUID) ([]domain.Class, error)
	Subjects(ctx context.Context, teacherID uuid.UUID) ([]domain.Subject, error)
	Workload(ctx context.Context, teacherID uuid.UUID) (int, error)
	Summary(ctx context.Context) (*domain.TeacherSummary, error)
}

type ClassService interface {
	Create(ctx context.Context, class *domain.Class) (*domain.Class, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Class, error)
	List(ctx context.Context) ([]domain.Class, error)
	AssignSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error)
	RemoveSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error)
	Subjects(ctx context.Context, classID uuid.UUID) ([]domain.Subject, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// EmailService sends notification mail. Implementations are best effort and
// are never called inside a transaction.
type EmailService interface {
	SendOverdueNotice(ctx context.Context, to, name, bookTitle string, daysOverdue int) error
	SendDonationReceipt(ctx context.Context, to, name, receiptNumber string, amount decimal.Decimal) error
}

// CodeGenerator produces opaque visual codes (QR payloads) for catalog items.
// Best-effort decoration, not part of any invariant.
type CodeGenerator interface {
	Generate(key string) string
}
