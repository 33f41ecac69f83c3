package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartschool-backend/internal/domain"
)

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	// GetByIDForUpdate locks the book row for the remainder of the enclosing
	// transaction. Outside a transaction it degrades to a plain read.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Book, error)
	Search(ctx context.Context, term string) ([]domain.Book, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Book, error)
	ListByAuthor(ctx context.Context, author string) ([]domain.Book, error)
	ListAvailable(ctx context.Context) ([]domain.Book, error)
	// AdjustAvailability applies available_copies += delta guarded by
	// 0 <= available <= total. Returns domain.ErrBookUnavailable (wrapped)
	// without mutating when the guard rejects, domain.ErrNotFound when the
	// book does not exist.
	AdjustAvailability(ctx context.Context, id uuid.UUID, delta int) error
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	List(ctx context.Context) ([]domain.Loan, error)
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]domain.Loan, error)
	ListActive(ctx context.Context) ([]domain.Loan, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Loan, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Loan, error)
	CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int, error)
	CountByBook(ctx context.Context) (map[uuid.UUID]int, error)
}

type AttendanceRepository interface {
	// Create inserts the (student, date) record; false without error means
	// the pair was already marked.
	Create(ctx context.Context, att *domain.Attendance) (bool, error)
	Update(ctx context.Context, att *domain.Attendance) error
	GetByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*domain.Attendance, error)
	HasBeenMarked(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]domain.Attendance, error)
	ListByClass(ctx context.Context, classID uuid.UUID, date time.Time) ([]domain.Attendance, error)
	ListByClassRange(ctx context.Context, classID uuid.UUID, start, end time.Time) ([]domain.Attendance, error)
}

type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	Update(ctx context.Context, donation *domain.Donation) error
	List(ctx context.Context) ([]domain.Donation, error)
	ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Donation, error)
	TotalCompleted(ctx context.Context) (decimal.Decimal, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	// GetByIDForUpdate locks the student row; the borrower quota is
	// re-checked under this lock during loan creation.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	Update(ctx context.Context, student *domain.Student) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Student, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]domain.Student, error)
	Search(ctx context.Context, term string) ([]domain.Student, error)
}

type TeacherRepository interface {
	Create(ctx context.Context, teacher *domain.Teacher) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Teacher, error)
	GetByTeacherID(ctx context.Context, teacherID string) (*domain.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*domain.Teacher, error)
	Update(ctx context.Context, teacher *domain.Teacher) error
	List(ctx context.Context) ([]domain.Teacher, error)
	Search(ctx context.Context, term string) ([]domain.Teacher, error)

	// Class/subject assignments are join-table rows, not collection splices.
	AssignClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error)
	RemoveClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error)
	AssignSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error)
	RemoveSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error)
	ListClasses(ctx context.Context, teacherID uuid.UUID) ([]domain.Class, error)
	ListSubjects(ctx context.Context, teacherID uuid.UUID) ([]domain.Subject, error)
	CountClasses(ctx context.Context, teacherID uuid.UUID) (int, error)
	CountSubjects(ctx context.Context, teacherID uuid.UUID) (int, error)
}

type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Class, error)
	List(ctx context.Context) ([]domain.Class, error)
	AssignSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error)
	RemoveSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error)
	ListSubjects(ctx context.Context, classID uuid.UUID) ([]domain.Subject, error)
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *domain.Subject) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error)
	List(ctx context.Context) ([]domain.Subject, error)
}

// SequenceRepository issues monotonically increasing values from a per-kind
// counter row via an atomic increment.
type SequenceRepository interface {
	Next(ctx context.Context, kind domain.SequenceKind) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Registry groups the typed repositories visible inside one atomic unit.
type Registry interface {
	Books() BookRepository
	Loans() LoanRepository
	Attendance() AttendanceRepository
	Donations() DonationRepository
	Students() StudentRepository
	Teachers() TeacherRepository
	Classes() ClassRepository
	Subjects() SubjectRepository
	Sequences() SequenceRepository
	Users() UserRepository
}

// Store is the entity store. WithinTx runs fn inside one transaction: every
// repository obtained from the passed Registry operates on that transaction,
// which is rolled back if fn returns an error or panics and committed
// otherwise. This is the only way multi-step mutations are composed; call
// sites never manage begin/commit/rollback themselves.
type Store interface {
	Registry
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Registry) error) error
}
