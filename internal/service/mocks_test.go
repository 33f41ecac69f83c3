package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

// MockBookRepo
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookRepo) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}
func (m *MockBookRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookRepo) List(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookRepo) Search(ctx context.Context, term string) ([]domain.Book, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookRepo) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookRepo) ListByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	args := m.Called(ctx, author)
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookRepo) ListAvailable(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookRepo) AdjustAvailability(ctx context.Context, id uuid.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
func (m *MockLoanRepo) List(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]domain.Loan, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListActive(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) ListByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Loan, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int, error) {
	args := m.Called(ctx, borrowerID)
	return args.Int(0), args.Error(1)
}
func (m *MockLoanRepo) CountByBook(ctx context.Context) (map[uuid.UUID]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

// MockAttendanceRepo
type MockAttendanceRepo struct {
	mock.Mock
}

func (m *MockAttendanceRepo) Create(ctx context.Context, att *domain.Attendance) (bool, error) {
	args := m.Called(ctx, att)
	return args.Bool(0), args.Error(1)
}
func (m *MockAttendanceRepo) Update(ctx context.Context, att *domain.Attendance) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}
func (m *MockAttendanceRepo) GetByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*domain.Attendance, error) {
	args := m.Called(ctx, studentID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}
func (m *MockAttendanceRepo) HasBeenMarked(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error) {
	args := m.Called(ctx, studentID, date)
	return args.Bool(0), args.Error(1)
}
func (m *MockAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Attendance), args.Error(1)
}
func (m *MockAttendanceRepo) ListByStudent(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]domain.Attendance, error) {
	args := m.Called(ctx, studentID, start, end)
	return args.Get(0).([]domain.Attendance), args.Error(1)
}
func (m *MockAttendanceRepo) ListByClass(ctx context.Context, classID uuid.UUID, date time.Time) ([]domain.Attendance, error) {
	args := m.Called(ctx, classID, date)
	return args.Get(0).([]domain.Attendance), args.Error(1)
}
func (m *MockAttendanceRepo) ListByClassRange(ctx context.Context, classID uuid.UUID, start, end time.Time) ([]domain.Attendance, error) {
	args := m.Called(ctx, classID, start, end)
	return args.Get(0).([]domain.Attendance), args.Error(1)
}

// MockDonationRepo
type MockDonationRepo struct {
	mock.Mock
}

func (m *MockDonationRepo) Create(ctx context.Context, donation *domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}
func (m *MockDonationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) Update(ctx context.Context, donation *domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}
func (m *MockDonationRepo) List(ctx context.Context) ([]domain.Donation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) ListByStatus(ctx context.Context, status domain.DonationStatus) ([]domain.Donation, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Donation, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) TotalCompleted(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockStudentRepo
type MockStudentRepo struct {
	mock.Mock
}

func (m *MockStudentRepo) Create(ctx context.Context, student *domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}
func (m *MockStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentRepo) GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentRepo) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentRepo) Update(ctx context.Context, student *domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}
func (m *MockStudentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockStudentRepo) List(ctx context.Context) ([]domain.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Student), args.Error(1)
}
func (m *MockStudentRepo) ListByClass(ctx context.Context, classID uuid.UUID) ([]domain.Student, error) {
	args := m.Called(ctx, classID)
	return args.Get(0).([]domain.Student), args.Error(1)
}
func (m *MockStudentRepo) Search(ctx context.Context, term string) ([]domain.Student, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.Student), args.Error(1)
}

// MockTeacherRepo
type MockTeacherRepo struct {
	mock.Mock
}

func (m *MockTeacherRepo) Create(ctx context.Context, teacher *domain.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}
func (m *MockTeacherRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Teacher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Teacher), args.Error(1)
}
func (m *MockTeacherRepo) GetByTeacherID(ctx context.Context, teacherID string) (*domain.Teacher, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Teacher), args.Error(1)
}
func (m *MockTeacherRepo) GetByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Teacher), args.Error(1)
}
func (m *MockTeacherRepo) Update(ctx context.Context, teacher *domain.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}
func (m *MockTeacherRepo) List(ctx context.Context) ([]domain.Teacher, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Teacher), args.Error(1)
}
func (m *MockTeacherRepo) Search(ctx context.Context, term string) ([]domain.Teacher, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.Teacher), args.Error(1)
}
func (m *MockTeacherRepo) AssignClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teacherID, classID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTeacherRepo) RemoveClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teacherID, classID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTeacherRepo) AssignSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teacherID, subjectID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTeacherRepo) RemoveSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teacherID, subjectID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTeacherRepo) ListClasses(ctx context.Context, teacherID uuid.UUID) ([]domain.Class, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).([]domain.Class), args.Error(1)
}
func (m *MockTeacherRepo) ListSubjects(ctx context.Context, teacherID uuid.UUID) ([]domain.Subject, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).([]domain.Subject), args.Error(1)
}
func (m *MockTeacherRepo) CountClasses(ctx context.Context, teacherID uuid.UUID) (int, error) {
	args := m.Called(ctx, teacherID)
	return args.Int(0), args.Error(1)
}
func (m *MockTeacherRepo) CountSubjects(ctx context.Context, teacherID uuid.UUID) (int, error) {
	args := m.Called(ctx, teacherID)
	return args.Int(0), args.Error(1)
}

// MockClassRepo
type MockClassRepo struct {
	mock.Mock
}

func (m *MockClassRepo) Create(ctx context.Context, class *domain.Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}
func (m *MockClassRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Class), args.Error(1)
}
func (m *MockClassRepo) List(ctx context.Context) ([]domain.Class, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Class), args.Error(1)
}
func (m *MockClassRepo) AssignSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, classID, subjectID)
	return args.Bool(0), args.Error(1)
}
func (m *MockClassRepo) RemoveSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, classID, subjectID)
	return args.Bool(0), args.Error(1)
}
func (m *MockClassRepo) ListSubjects(ctx context.Context, classID uuid.UUID) ([]domain.Subject, error) {
	args := m.Called(ctx, classID)
	return args.Get(0).([]domain.Subject), args.Error(1)
}

// MockSubjectRepo
type MockSubjectRepo struct {
	mock.Mock
}

func (m *MockSubjectRepo) Create(ctx context.Context, subject *domain.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}
func (m *MockSubjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subject), args.Error(1)
}
func (m *MockSubjectRepo) List(ctx context.Context) ([]domain.Subject, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Subject), args.Error(1)
}

// MockSequenceRepo
type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) Next(ctx context.Context, kind domain.SequenceKind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOverdueNotice(ctx context.Context, to, name, bookTitle string, daysOverdue int) error {
	args := m.Called(ctx, to, name, bookTitle, daysOverdue)
	return args.Error(0)
}
func (m *MockEmailService) SendDonationReceipt(ctx context.Context, to, name, receiptNumber string, amount decimal.Decimal) error {
	args := m.Called(ctx, to, name, receiptNumber, amount)
	return args.Error(0)
}

// mockStore wires the repository mocks behind the Store interface. WithinTx
// runs the closure against the same mocks, so a test observes the calls made
// inside the transaction directly.
type mockStore struct {
	books      *MockBookRepo
	loans      *MockLoanRepo
	attendance *MockAttendanceRepo
	donations  *MockDonationRepo
	students   *MockStudentRepo
	teachers   *MockTeacherRepo
	classes    *MockClassRepo
	subjects   *MockSubjectRepo
	sequences  *MockSequenceRepo
	users      *MockUserRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		books:      new(MockBookRepo),
		loans:      new(MockLoanRepo),
		attendance: new(MockAttendanceRepo),
		donations:  new(MockDonationRepo),
		students:   new(MockStudentRepo),
		teachers:   new(MockTeacherRepo),
		classes:    new(MockClassRepo),
		subjects:   new(MockSubjectRepo),
		sequences:  new(MockSequenceRepo),
		users:      new(MockUserRepo),
	}
}

func (s *mockStore) Books() repository.BookRepository             { return s.books }
func (s *mockStore) Loans() repository.LoanRepository             { return s.loans }
func (s *mockStore) Attendance() repository.AttendanceRepository  { return s.attendance }
func (s *mockStore) Donations() repository.DonationRepository     { return s.donations }
func (s *mockStore) Students() repository.StudentRepository       { return s.students }
func (s *mockStore) Teachers() repository.TeacherRepository       { return s.teachers }
func (s *mockStore) Classes() repository.ClassRepository          { return s.classes }
func (s *mockStore) Subjects() repository.SubjectRepository       { return s.subjects }
func (s *mockStore) Sequences() repository.SequenceRepository     { return s.sequences }
func (s *mockStore) Users() repository.UserRepository             { return s.users }

func (s *mockStore) WithinTx(ctx context.Context, fn func(ctx context.Context, r repository.Registry) error) error {
	return fn(ctx, s)
}
