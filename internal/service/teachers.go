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

// maxClassesPerTeacher caps class assignments per teacher.
const maxClassesPerTeacher = 5

type teacherService struct {
	store repository.Store
	now   func() time.Time
}

func NewTeacherService(store repository.Store) TeacherService {
	return &teacherService{store: store, now: time.Now}
}

func (s *teacherService) Create(ctx context.Context, teacher *domain.Teacher) (*domain.Teacher, error) {
	if teacher.FirstName == "" || teacher.LastName == "" {
		return nil, fmt.Errorf("first and last name are required: %w", domain.ErrInvalidArgument)
	}
	if teacher.Email == "" {
		return nil, fmt.Errorf("email is required: %w", domain.ErrInvalidArgument)
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		seq, err := r.Sequences().Next(ctx, domain.SequenceKindTeacherID)
		if err != nil {
			return err
		}
		teacher.ID = uuid.New()
		teacher.TeacherID = domain.FormatTeacherID(seq, s.now())
		if teacher.JoiningDate.IsZero() {
			teacher.JoiningDate = s.now()
		}
		return r.Teachers().Create(ctx, teacher)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Teacher registered", "id", teacher.ID, "teacher_id", teacher.TeacherID)
	return teacher, nil
}

func (s *teacherService) Get(ctx context.Context, id uuid.UUID) (*domain.Teacher, error) {
	return s.store.Teachers().GetByID(ctx, id)
}

func (s *teacherService) GetByTeacherID(ctx context.Context, teacherID string) (*domain.Teacher, error) {
	return s.store.Teachers().GetByTeacherID(ctx, teacherID)
}

func (s *teacherService) Update(ctx context.Context, teacher *domain.Teacher) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		current, err := r.Teachers().GetByID(ctx, teacher.ID)
		if err != nil {
			return err
		}
		teacher.TeacherID = current.TeacherID
		return r.Teachers().Update(ctx, teacher)
	})
}

func (s *teacherService) List(ctx context.Context) ([]domain.Teacher, error) {
	return s.store.Teachers().List(ctx)
}

func (s *teacherService) Search(ctx context.Context, term string) ([]domain.Teacher, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.store.Teachers().List(ctx)
	}
	return s.store.Teachers().Search(ctx, term)
}

// AssignClass links the teacher to a class. The workload cap is re-checked
// inside the transaction; the upsert makes a repeated assignment a no-op,
// reported by the false return.
func (s *teacherService) AssignClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error) {
	var assigned bool
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		if _, err := r.Teachers().GetByID(ctx, teacherID); err != nil {
			return fmt.Errorf("teacher %s: %w", teacherID, err)
		}
		if _, err := r.Classes().GetByID(ctx, classID); err != nil {
			return fmt.Errorf("class %s: %w", classID, err)
		}
		count, err := r.Teachers().CountClasses(ctx, teacherID)
		if err != nil {
			return err
		}
		if count >= maxClassesPerTeacher {
			return fmt.Errorf("teacher %s already has %d classes: %w", teacherID, count, domain.ErrQuotaExceeded)
		}
		assigned, err = r.Teachers().AssignClass(ctx, teacherID, classID)
		return err
	})
	if err != nil {
		return false, err
	}
	return assigned, nil
}

func (s *teacherService) RemoveClass(ctx context.Context, teacherID, classID uuid.UUID) (bool, error) {
	return s.store.Teachers().RemoveClass(ctx, teacherID, classID)
}

// AssignSubject links the teacher to a subject they are qualified for: the
// subject name must contain the teacher's specialization (or vice versa),
// compared case-insensitively.
func (s *teacherService) AssignSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error) {
	var assigned bool
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		teacher, err := r.Teachers().GetByID(ctx, teacherID)
		if err != nil {
			return fmt.Errorf("teacher %s: %w", teacherID, err)
		}
		subject, err := r.Subjects().GetByID(ctx, subjectID)
		if err != nil {
			return fmt.Errorf("subject %s: %w", subjectID, err)
		}
		if !qualifiedFor(teacher.Specialization, subject.Name) {
			return fmt.Errorf("teacher %s specialization %q does not cover subject %q: %w",
				teacherID, teacher.Specialization, subject.Name, domain.ErrInvalidArgument)
		}
		assigned, err = r.Teachers().AssignSubject(ctx, teacherID, subjectID)
		return err
	})
	if err != nil {
		return false, err
	}
	return assigned, nil
}

func qualifiedFor(specialization, subjectName string) bool {
	if specialization == "" {
		return false
	}
	spec := strings.ToLower(specialization)
	name := strings.ToLower(subjectName)
	return strings.Contains(name, spec) || strings.Contains(spec, name)
}

func (s *teacherService) RemoveSubject(ctx context.Context, teacherID, subjectID uuid.UUID) (bool, error) {
	return s.store.Teachers().RemoveSubject(ctx, teacherID, subjectID)
}

func (s *teacherService) Classes(ctx context.Context, teacherID uuid.UUID) ([]domain.Class, error) {
	return s.store.Teachers().ListClasses(ctx, teacherID)
}

func (s *teacherService) Subjects(ctx context.Context, teacherID uuid.UUID) ([]domain.Subject, error) {
	return s.store.Teachers().ListSubjects(ctx, teacherID)
}

// Workload is the larger of the class count and the subject count, since a
// subject taught across several assigned classes is still one preparation.
func (s *teacherService) Workload(ctx context.Context, teacherID uuid.UUID) (int, error) {
	if _, err := s.store.Teachers().GetByID(ctx, teacherID); err != nil {
		return 0, fmt.Errorf("teacher %s: %w", teacherID, err)
	}
	classes, err := s.store.Teachers().CountClasses(ctx, teacherID)
	if err != nil {
		return 0, err
	}
	subjects, err := s.store.Teachers().CountSubjects(ctx, teacherID)
	if err != nil {
		return 0, err
	}
	if classes > subjects {
		return classes, nil
	}
	return subjects, nil
}

func (s *teacherService) Summary(ctx context.Context) (*domain.TeacherSummary, error) {
	teachers, err := s.store.Teachers().List(ctx)
	if err != nil {
		return nil, err
	}
	summary := &domain.TeacherSummary{
		TotalTeachers:            len(teachers),
		TeachersBySpecialization: make(map[string]int),
	}
	total := 0
	for _, t := range teachers {
		summary.TeachersBySpecialization[t.Specialization]++
		n, err := s.store.Teachers().CountClasses(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		total += n
	}
	if len(teachers) > 0 {
		summary.AverageClassesPerTeacher = float64(total) / float64(len(teachers))
	}
	return summary, nil
}
