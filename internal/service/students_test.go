package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartschool-backend/internal/domain"
)

func TestStudentService_Create(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	classID := uuid.New()

	t.Run("AssignsSequencedStudentID", func(t *testing.T) {
		store := newMockStore()
		svc := &studentService{store: store, now: func() time.Time { return fixed }}

		store.classes.On("GetByID", ctx, classID).Return(&domain.Class{ID: classID}, nil)
		store.sequences.On("Next", ctx, domain.SequenceKindStudentID).Return(int64(42), nil)
		store.students.On("Create", ctx, mock.AnythingOfType("*domain.Student")).Return(nil)

		student, err := svc.Create(ctx, &domain.Student{
			FirstName: "Ravi", LastName: "Kumar", Email: "ravi@school.test", ClassID: classID,
		})
		assert.NoError(t, err)
		assert.Equal(t, "STU260042", student.StudentID)
	})

	t.Run("UnknownClass", func(t *testing.T) {
		store := newMockStore()
		svc := &studentService{store: store, now: time.Now}

		store.classes.On("GetByID", ctx, classID).Return(nil, domain.ErrNotFound)

		_, err := svc.Create(ctx, &domain.Student{
			FirstName: "Ravi", LastName: "Kumar", Email: "ravi@school.test", ClassID: classID,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		store.sequences.AssertNotCalled(t, "Next", ctx, mock.Anything)
	})
}

func TestStudentService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("BlockedByActiveLoans", func(t *testing.T) {
		store := newMockStore()
		svc := &studentService{store: store, now: time.Now}

		store.loans.On("CountActiveByBorrower", ctx, id).Return(2, nil)

		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, domain.ErrConflict)
		store.students.AssertNotCalled(t, "SoftDelete", ctx, id)
	})

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		svc := &studentService{store: store, now: time.Now}

		store.loans.On("CountActiveByBorrower", ctx, id).Return(0, nil)
		store.students.On("SoftDelete", ctx, id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, id))
	})
}

func TestStudentService_TransferToClass(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.New()
	oldClass := uuid.New()
	newClass := uuid.New()

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		svc := &studentService{store: store, now: time.Now}

		store.students.On("GetByIDForUpdate", ctx, studentID).
			Return(&domain.Student{ID: studentID, ClassID: oldClass}, nil)
		store.classes.On("GetByID", ctx, newClass).Return(&domain.Class{ID: newClass}, nil)
		store.students.On("Update", ctx, mock.MatchedBy(func(s *domain.Student) bool {
			return s.ClassID == newClass
		})).Return(nil)

		assert.NoError(t, svc.TransferToClass(ctx, studentID, newClass))
	})

	t.Run("SameClassIsNoop", func(t *testing.T) {
		store := newMockStore()
		svc := &studentService{store: store, now: time.Now}

		store.students.On("GetByIDForUpdate", ctx, studentID).
			Return(&domain.Student{ID: studentID, ClassID: oldClass}, nil)
		store.classes.On("GetByID", ctx, oldClass).Return(&domain.Class{ID: oldClass}, nil)

		assert.NoError(t, svc.TransferToClass(ctx, studentID, oldClass))
		store.students.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})
}
