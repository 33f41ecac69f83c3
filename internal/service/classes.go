package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/repository"
)

type classService struct {
	store repository.Store
}

func NewClassService(store repository.Store) ClassService {
	return &classService{store: store}
}

func (s *classService) Create(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	if class.Name == "" {
		return nil, fmt.Errorf("class name is required: %w", domain.ErrInvalidArgument)
	}
	if class.Capacity < 1 {
		return nil, fmt.Errorf("class capacity must be positive: %w", domain.ErrInvalidArgument)
	}
	class.ID = uuid.New()
	if err := s.store.Classes().Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *classService) Get(ctx context.Context, id uuid.UUID) (*domain.Class, error) {
	return s.store.Classes().GetByID(ctx, id)
}

func (s *classService) List(ctx context.Context) ([]domain.Class, error) {
	return s.store.Classes().List(ctx)
}

// AssignSubject adds the subject to the class curriculum. The upsert makes a
// repeated assignment a no-op, reported by the false return.
func (s *classService) AssignSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error) {
	var assigned bool
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		if _, err := r.Classes().GetByID(ctx, classID); err != nil {
			return fmt.Errorf("class %s: %w", classID, err)
		}
		if _, err := r.Subjects().GetByID(ctx, subjectID); err != nil {
			return fmt.Errorf("subject %s: %w", subjectID, err)
		}
		var err error
		assigned, err = r.Classes().AssignSubject(ctx, classID, subjectID)
		return err
	})
	if err != nil {
		return false, err
	}
	return assigned, nil
}

func (s *classService) RemoveSubject(ctx context.Context, classID, subjectID uuid.UUID) (bool, error) {
	return s.store.Classes().RemoveSubject(ctx, classID, subjectID)
}

func (s *classService) Subjects(ctx context.Context, classID uuid.UUID) ([]domain.Subject, error) {
	return s.store.Classes().ListSubjects(ctx, classID)
}
