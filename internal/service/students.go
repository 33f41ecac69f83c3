package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/logger"
	"smartschool-backend/internal/repository"
)

type studentService struct {
	store repository.Store
	now   func() time.Time
}

func NewStudentService(store repository.Store) StudentService {
	return &studentService{store: store, now: time.Now}
}

// Create registers a student. The business id is drawn from the student
// counter inside the same transaction as the insert, so an enrollment that
// rolls back never burns an id that a committed student skipped.
func (s *studentService) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	if student.FirstName == "" || student.LastName == "" {
		return nil, fmt.Errorf("first and last name are required: %w", domain.ErrInvalidArgument)
	}
	if student.Email == "" {
		return nil, fmt.Errorf("email is required: %w", domain.ErrInvalidArgument)
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		if _, err := r.Classes().GetByID(ctx, student.ClassID); err != nil {
			return fmt.Errorf("class %s: %w", student.ClassID, err)
		}
		seq, err := r.Sequences().Next(ctx, domain.SequenceKindStudentID)
		if err != nil {
			return err
		}
		student.ID = uuid.New()
		student.StudentID = domain.FormatStudentID(seq, s.now())
		return r.Students().Create(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Student enrolled", "id", student.ID, "student_id", student.StudentID, "class_id", student.ClassID)
	return student, nil
}

func (s *studentService) Get(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	return s.store.Students().GetByID(ctx, id)
}

func (s *studentService) GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error) {
	return s.store.Students().GetByStudentID(ctx, studentID)
}

// Update rewrites contact and profile fields. The business id and class are
// immutable here; class moves go through TransferToClass.
func (s *studentService) Update(ctx context.Context, student *domain.Student) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		current, err := r.Students().GetByIDForUpdate(ctx, student.ID)
		if err != nil {
			return err
		}
		student.StudentID = current.StudentID
		student.ClassID = current.ClassID
		return r.Students().Update(ctx, student)
	})
}

func (s *studentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		active, err := r.Loans().CountActiveByBorrower(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("student %s has %d active loans: %w", id, active, domain.ErrConflict)
		}
		return r.Students().SoftDelete(ctx, id)
	})
}

func (s *studentService) List(ctx context.Context) ([]domain.Student, error) {
	return s.store.Students().List(ctx)
}

func (s *studentService) ListByClass(ctx context.Context, classID uuid.UUID) ([]domain.Student, error) {
	return s.store.Students().ListByClass(ctx, classID)
}

func (s *studentService) Search(ctx context.Context, term string) ([]domain.Student, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.store.Students().List(ctx)
	}
	return s.store.Students().Search(ctx, term)
}

func (s *studentService) TransferToClass(ctx context.Context, studentID, newClassID uuid.UUID) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		student, err := r.Students().GetByIDForUpdate(ctx, studentID)
		if err != nil {
			return fmt.Errorf("student %s: %w", studentID, err)
		}
		if _, err := r.Classes().GetByID(ctx, newClassID); err != nil {
			return fmt.Errorf("class %s: %w", newClassID, err)
		}
		if student.ClassID == newClassID {
			return nil
		}
		student.ClassID = newClassID
		return r.Students().Update(ctx, student)
	})
}

func (s *studentService) LendingHistory(ctx context.Context, studentID uuid.UUID) ([]domain.Loan, error) {
	if _, err := s.store.Students().GetByID(ctx, studentID); err != nil {
		return nil, fmt.Errorf("student %s: %w", studentID, err)
	}
	return s.store.Loans().ListByBorrower(ctx, studentID)
}

func (s *studentService) Summary(ctx context.Context) (*domain.StudentSummary, error) {
	students, err := s.store.Students().List(ctx)
	if err != nil {
		return nil, err
	}
	classes, err := s.store.Classes().List(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.store.Loans().ListOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}

	classNames := make(map[uuid.UUID]string, len(classes))
	for _, c := range classes {
		classNames[c.ID] = fmt.Sprintf("%s - %s", c.Name, c.Section)
	}

	summary := &domain.StudentSummary{
		TotalStudents:    len(students),
		StudentsByGender: make(map[string]int),
		StudentsByClass:  make(map[string]int),
	}
	for _, st := range students {
		summary.StudentsByGender[st.Gender]++
		if name, ok := classNames[st.ClassID]; ok {
			summary.StudentsByClass[name]++
		}
	}

	borrowers := make(map[uuid.UUID]bool)
	for _, loan := range overdue {
		borrowers[loan.BorrowerID] = true
	}
	summary.StudentsWithOverdueBooks = len(borrowers)

	// Average attendance over the last 30 days across all students.
	end := s.now()
	start := end.AddDate(0, 0, -30)
	var sum float64
	for _, st := range students {
		records, err := s.store.Attendance().ListByStudent(ctx, st.ID, start, end)
		if err != nil {
			return nil, err
		}
		sum += presenceRatio(records)
	}
	if len(students) > 0 {
		summary.AverageAttendanceRate = sum / float64(len(students))
	}
	return summary, nil
}
